package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/joblens/joblens/internal/domain"
)

// BuildKey produces the canonical cache key for a filter set: sorted
// field=value pairs built only from defined, trimmed, non-empty fields.
// Transient empty-string states collapse to the same key as absent fields,
// so {keyword: ""} and {} never cause two requests. Offset is pagination
// state, not identity, and is excluded.
func BuildKey(req domain.SearchRequest) string {
	req = req.Normalized()

	pairs := make([]string, 0, 9)
	add := func(field, value string) {
		if value = strings.TrimSpace(value); value != "" {
			pairs = append(pairs, field+"="+strings.ToLower(value))
		}
	}

	add("keyword", req.Keyword)
	add("location", req.Location)
	add("jobType", req.JobType)
	add("experience", req.Experience)
	add("salary", req.Salary)
	add("company", req.Company)
	add("datePosted", req.DatePosted)
	if req.Remote != nil {
		pairs = append(pairs, "remote="+strconv.FormatBool(*req.Remote))
	}
	if req.Limit != domain.DefaultLimit {
		pairs = append(pairs, "limit="+strconv.Itoa(req.Limit))
	}

	sort.Strings(pairs)
	return strings.Join(pairs, "|")
}
