package domain

import "strings"

// JobType enumerates the employment types a listing can carry.
type JobType string

const (
	TypeFullTime   JobType = "Full-time"
	TypePartTime   JobType = "Part-time"
	TypeContract   JobType = "Contract"
	TypeInternship JobType = "Internship"
)

// ParseJobType coerces a free-form employment-type string to the nearest
// known JobType. Unknown values return an empty type, which is excluded
// from type-filter matching rather than treated as an error.
func ParseJobType(s string) JobType {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-")) {
	case "full-time", "fulltime", "full time", "permanent":
		return TypeFullTime
	case "part-time", "parttime", "part time":
		return TypePartTime
	case "contract", "contractor", "freelance", "temporary":
		return TypeContract
	case "internship", "intern", "trainee":
		return TypeInternship
	default:
		return ""
	}
}

// Job is the canonical, normalized job listing. Instances are immutable
// once produced: the pipeline selects and copies them into result sets
// but never rewrites a field in place.
type Job struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Salary       string   `json:"salary,omitempty"`
	SalaryBucket string   `json:"salaryBucket,omitempty"`
	Type         JobType  `json:"type,omitempty"`
	Remote       bool     `json:"remote"`
	Urgent       bool     `json:"urgent"`
	IsNew        bool     `json:"isNew"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements,omitempty"`
	Benefits     []string `json:"benefits,omitempty"`
	Posted       string   `json:"posted"`
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// SearchRequest carries the optional filter dimensions of one search.
// An absent (empty after trimming) field means "no constraint"; Remote is
// a pointer so that false and unset stay distinguishable.
type SearchRequest struct {
	Keyword    string `json:"keyword,omitempty" form:"keyword"`
	Location   string `json:"location,omitempty" form:"location"`
	JobType    string `json:"jobType,omitempty" form:"jobType"`
	Experience string `json:"experience,omitempty" form:"experience"`
	Salary     string `json:"salary,omitempty" form:"salary"`
	Company    string `json:"company,omitempty" form:"company"`
	DatePosted string `json:"datePosted,omitempty" form:"datePosted"`
	Remote     *bool  `json:"remote,omitempty" form:"remote"`
	Limit      int    `json:"limit,omitempty" form:"limit"`
	Offset     int    `json:"offset,omitempty" form:"offset"`
}

// Normalized returns a copy with trimmed strings, Limit clamped to
// [1, MaxLimit] (default DefaultLimit) and Offset clamped to >= 0.
// A field that trims to "" is treated as absent everywhere downstream.
func (r SearchRequest) Normalized() SearchRequest {
	out := r
	out.Keyword = strings.TrimSpace(r.Keyword)
	out.Location = strings.TrimSpace(r.Location)
	out.JobType = strings.TrimSpace(r.JobType)
	out.Experience = strings.TrimSpace(r.Experience)
	out.Salary = strings.TrimSpace(r.Salary)
	out.Company = strings.TrimSpace(r.Company)
	out.DatePosted = strings.TrimSpace(r.DatePosted)

	if out.Limit <= 0 {
		out.Limit = DefaultLimit
	}
	if out.Limit > MaxLimit {
		out.Limit = MaxLimit
	}
	if out.Offset < 0 {
		out.Offset = 0
	}

	return out
}

// SearchResponse is one page of results. Total counts every record that
// matched the filters on the selected source, independent of pagination.
type SearchResponse struct {
	Jobs    []Job `json:"jobs"`
	Total   int   `json:"total"`
	HasMore bool  `json:"hasMore"`
}
