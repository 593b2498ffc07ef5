// Package remotive is a minimal client for a Remotive-style remote-jobs
// API. It performs a single best-effort request per call; retry policy
// belongs to the caller.
package remotive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
)

const (
	defaultBaseURL  = "https://remotive.com"
	defaultPageSize = 50
)

// NewClient instantiates a Remotive API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		baseURL:    baseURL,
		category:   cfg.Category,
		httpClient: httpClient,
		pageSize:   pageSize,
	}, nil
}

// SearchJobs queries the provider with the given params. Failures are
// typed: transport errors pass through, non-2xx statuses become *APIError
// and unparseable 2xx bodies become *DecodeError.
func (c *Client) SearchJobs(ctx context.Context, params SearchParams) (Result, error) {
	if c == nil {
		return Result{}, fmt.Errorf("remotive: client is nil")
	}

	u, err := c.buildSearchURL(params)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{}, fmt.Errorf("remotive: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("remotive: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{}, &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload jobSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, &DecodeError{Err: err}
	}

	listings := make([]Listing, 0, len(payload.Jobs))
	for _, posting := range payload.Jobs {
		listings = append(listings, mapPosting(posting))
	}

	return Result{Listings: listings, Total: payload.JobCount}, nil
}

func (c *Client) buildSearchURL(params SearchParams) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("remotive: parse base url: %w", err)
	}

	u.Path = path.Join(u.Path, "api", "remote-jobs")

	values := url.Values{}
	limit := params.Limit
	if limit <= 0 {
		limit = c.pageSize
	}
	values.Set("limit", strconv.Itoa(limit))

	if params.Search != "" {
		values.Set("search", params.Search)
	}
	if params.CompanyName != "" {
		values.Set("company_name", params.CompanyName)
	}
	if c.category != "" {
		values.Set("category", c.category)
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func mapPosting(posting jobPosting) Listing {
	var id string
	if posting.ID != 0 {
		id = strconv.FormatInt(posting.ID, 10)
	}

	return Listing{
		ID:          id,
		Title:       posting.Title,
		CompanyName: posting.CompanyName,
		Location:    posting.CandidateRequiredLocation,
		Salary:      posting.Salary,
		JobType:     posting.JobType,
		Tags:        posting.Tags,
		PublishedAt: posting.PublicationDate,
		URL:         posting.URL,
		Description: posting.Description,
	}
}
