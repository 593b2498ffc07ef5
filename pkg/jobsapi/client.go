// Package jobsapi is a client for the search API exposed by the server
// binary. It satisfies the query layer's Searcher contract, so UI
// surfaces can sit a Querier directly on top of it.
package jobsapi

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

	"github.com/joblens/joblens/internal/domain"
)

// Config defines search API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client queries the search API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates a search API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("jobsapi: base url is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// Search issues one search call with the request's filters mapped to
// query parameters.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error) {
	u, err := c.searchURL(req)
	if err != nil {
		return domain.SearchResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("jobsapi: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("jobsapi: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.SearchResponse{}, fmt.Errorf("jobsapi: API error (%d): %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out domain.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.SearchResponse{}, fmt.Errorf("jobsapi: decode response: %w", err)
	}

	return out, nil
}

// Get fetches a single job by ID.
func (c *Client) Get(ctx context.Context, id string) (domain.Job, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.Job{}, fmt.Errorf("jobsapi: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, "api", "jobs", id)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Job{}, fmt.Errorf("jobsapi: build request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.Job{}, fmt.Errorf("jobsapi: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return domain.Job{}, fmt.Errorf("jobsapi: API error (%d)", resp.StatusCode)
	}

	var out domain.Job
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Job{}, fmt.Errorf("jobsapi: decode response: %w", err)
	}

	return out, nil
}

func (c *Client) searchURL(req domain.SearchRequest) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("jobsapi: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, "api", "jobs")

	values := url.Values{}
	set := func(key, val string) {
		if val != "" {
			values.Set(key, val)
		}
	}

	set("keyword", req.Keyword)
	set("location", req.Location)
	set("jobType", req.JobType)
	set("experience", req.Experience)
	set("salary", req.Salary)
	set("company", req.Company)
	set("datePosted", req.DatePosted)
	if req.Remote != nil {
		values.Set("remote", strconv.FormatBool(*req.Remote))
	}
	if req.Limit > 0 {
		values.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Offset > 0 {
		values.Set("offset", strconv.Itoa(req.Offset))
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}
