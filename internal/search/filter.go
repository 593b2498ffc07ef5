// Package search implements the filter, rank and pagination stages shared
// by the remote provider and the local catalog. Everything here is a pure
// function over already-normalized records, so both sources go through
// exactly the same logic.
package search

import (
	"sort"
	"strings"

	"github.com/joblens/joblens/internal/domain"
)

// Apply filters jobs by every active dimension of req (dimensions combine
// with AND) and returns the survivors ranked. The input slice is never
// mutated; ties keep their input order so pagination over repeated calls
// with the same input stays stable.
func Apply(jobs []domain.Job, req domain.SearchRequest) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if Matches(j, req) {
			out = append(out, j)
		}
	}
	rank(out)
	return out
}

// Matches reports whether a single job satisfies every active filter of
// req independently.
func Matches(j domain.Job, req domain.SearchRequest) bool {
	if kw := strings.ToLower(req.Keyword); kw != "" {
		haystack := strings.ToLower(j.Title + " " + j.Company + " " + j.Description)
		if !strings.Contains(haystack, kw) {
			return false
		}
	}

	if loc := strings.ToLower(req.Location); loc != "" {
		matched := strings.Contains(strings.ToLower(j.Location), loc)
		// A remote listing counts as matching any location query that
		// mentions remote.
		if !matched && j.Remote && strings.Contains(loc, "remote") {
			matched = true
		}
		if !matched {
			return false
		}
	}

	if req.JobType != "" {
		want := domain.ParseJobType(req.JobType)
		if want == "" || j.Type != want {
			return false
		}
	}

	if req.Remote != nil && j.Remote != *req.Remote {
		return false
	}

	if c := strings.ToLower(req.Company); c != "" {
		if !strings.Contains(strings.ToLower(j.Company), c) {
			return false
		}
	}

	if req.Salary != "" {
		if j.SalaryBucket == "" || !strings.EqualFold(j.SalaryBucket, req.Salary) {
			return false
		}
	}

	if req.DatePosted != "" {
		window, ok := RecencyWindow(req.DatePosted)
		if !ok {
			return false
		}
		age, ok := PostedAge(j.Posted)
		if !ok || age > window {
			return false
		}
	}

	// Experience is accepted as a request field but is not a predicate;
	// it participates in cache keys only.

	return true
}

// rank orders jobs in place: urgent first, then new, then most recently
// posted. sort.SliceStable preserves input order between equal ranks.
func rank(jobs []domain.Job) {
	sort.SliceStable(jobs, func(i, k int) bool {
		a, b := jobs[i], jobs[k]
		if a.Urgent != b.Urgent {
			return a.Urgent
		}
		if a.IsNew != b.IsNew {
			return a.IsNew
		}
		return postedRank(a) < postedRank(b)
	})
}

// postedRank maps a job to a sortable age; unparseable recency strings
// sort last.
func postedRank(j domain.Job) int64 {
	age, ok := PostedAge(j.Posted)
	if !ok {
		return int64(^uint64(0) >> 1)
	}
	return int64(age)
}
