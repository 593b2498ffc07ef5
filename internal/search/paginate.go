package search

import "github.com/joblens/joblens/internal/domain"

// Paginate slices a filtered, ranked result set by offset and limit.
// The returned page is a copy; hasMore is true iff records remain past it.
func Paginate(jobs []domain.Job, offset, limit int) (page []domain.Job, hasMore bool) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(jobs) {
		return []domain.Job{}, false
	}

	end := len(jobs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	page = make([]domain.Job, end-offset)
	copy(page, jobs[offset:end])
	return page, end < len(jobs)
}
