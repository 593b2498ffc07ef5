package remotive

import (
	"fmt"
	"net/http"
)

// Config defines Remotive API client settings
type Config struct {
	BaseURL    string
	Category   string
	HTTPClient *http.Client
	PageSize   int
}

// Client queries the Remotive remote-jobs API
type Client struct {
	baseURL    string
	category   string
	httpClient *http.Client
	pageSize   int
}

// SearchParams describe a job search request in Remotive's vocabulary
type SearchParams struct {
	Search      string
	CompanyName string
	Limit       int
}

type jobSearchResponse struct {
	JobCount int          `json:"job-count"`
	Jobs     []jobPosting `json:"jobs"`
}

type jobPosting struct {
	ID                        int64    `json:"id"`
	URL                       string   `json:"url"`
	Title                     string   `json:"title"`
	CompanyName               string   `json:"company_name"`
	Category                  string   `json:"category"`
	Tags                      []string `json:"tags"`
	JobType                   string   `json:"job_type"`
	PublicationDate           string   `json:"publication_date"`
	CandidateRequiredLocation string   `json:"candidate_required_location"`
	Salary                    string   `json:"salary"`
	Description               string   `json:"description"`
}

// Listing is a raw provider job posting handed to the normalizer.
type Listing struct {
	ID          string
	Title       string
	CompanyName string
	Location    string
	Salary      string
	JobType     string
	Tags        []string
	PublishedAt string
	URL         string
	Description string
}

// Result wraps one provider response page.
type Result struct {
	Listings []Listing
	Total    int
}

// APIError reports a non-2xx provider response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remotive: API error (%d): %s", e.StatusCode, e.Body)
}

// DecodeError reports a 2xx response whose body could not be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("remotive: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
