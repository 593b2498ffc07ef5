// Package remotive adapts the Remotive API client to the pipeline's
// Provider contract: it translates request filters to the provider's
// query vocabulary, classifies failures, and normalizes payloads into
// canonical Job records.
package remotive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joblens/joblens/internal/domain"
	jobdomain "github.com/joblens/joblens/internal/domain/job"
	"github.com/joblens/joblens/internal/search"
	"github.com/joblens/joblens/pkg/remotive"
)

const providerName = "remotive"

// searchClient describes the subset of the Remotive client used by the
// provider.
type searchClient interface {
	SearchJobs(ctx context.Context, params remotive.SearchParams) (remotive.Result, error)
}

// Provider implements job.Provider using the Remotive API
type Provider struct {
	client searchClient
	now    func() time.Time
}

// NewProvider builds a Remotive provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("remotive provider: client is required")
	}
	return &Provider{client: client, now: time.Now}, nil
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return providerName
}

// Fetch performs one bounded provider attempt and returns normalized
// records. Failures come back classified as *job.ProviderError so the
// orchestrator can fall back without inspecting transport details.
func (p *Provider) Fetch(ctx context.Context, req domain.SearchRequest) ([]domain.Job, int, error) {
	params := remotive.SearchParams{
		Search:      req.Keyword,
		CompanyName: req.Company,
	}

	result, err := p.client.SearchJobs(ctx, params)
	if err != nil {
		return nil, 0, classify(err)
	}

	now := p.now()
	jobs := make([]domain.Job, 0, len(result.Listings))
	for _, l := range result.Listings {
		jobs = append(jobs, normalize(l, now))
	}

	return jobs, result.Total, nil
}

var _ jobdomain.Provider = (*Provider)(nil)

func classify(err error) *jobdomain.ProviderError {
	perr := &jobdomain.ProviderError{Provider: providerName, Err: err}

	var apiErr *remotive.APIError
	var decodeErr *remotive.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		perr.Class = jobdomain.FailureMalformed
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 500 {
			perr.Class = jobdomain.FailureUnavailable
		} else {
			perr.Class = jobdomain.FailureRejected
		}
	default:
		// Timeouts, cancelled contexts, DNS and connection failures.
		perr.Class = jobdomain.FailureUnavailable
	}

	return perr
}

// normalize maps one provider listing into the canonical Job shape. Every
// field is mapped defensively: missing optionals stay empty, unknown
// employment types clear the type, a missing ID gets a generated one.
func normalize(l remotive.Listing, now time.Time) domain.Job {
	j := domain.Job{
		ID:           strings.TrimSpace(l.ID),
		Title:        strings.TrimSpace(l.Title),
		Company:      strings.TrimSpace(l.CompanyName),
		Location:     strings.TrimSpace(l.Location),
		Salary:       strings.TrimSpace(l.Salary),
		Type:         domain.ParseJobType(l.JobType),
		Description:  strings.TrimSpace(l.Description),
		Requirements: requirementsFromTags(l.Tags),
	}

	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Location == "" {
		j.Location = "Remote"
	}
	j.Remote = isRemoteLocation(j.Location)
	j.SalaryBucket = search.SalaryBucket(j.Salary)
	j.Urgent = isUrgent(j.Title, l.Tags)

	if age, ok := publishedAge(l.PublishedAt, now); ok {
		j.Posted = search.FormatPostedAge(age)
		j.IsNew = age <= 3*24*time.Hour
	}

	return j
}

func publishedAge(published string, now time.Time) (time.Duration, bool) {
	if published == "" {
		return 0, false
	}

	ts, err := time.Parse(time.RFC3339, published)
	if err != nil {
		// Remotive publishes bare timestamps without a zone suffix.
		ts, err = time.Parse("2006-01-02T15:04:05", published)
	}
	if err != nil {
		return 0, false
	}

	age := now.Sub(ts)
	if age < 0 {
		age = 0
	}
	return age, true
}

func isRemoteLocation(location string) bool {
	loc := strings.ToLower(location)
	return strings.Contains(loc, "remote") || strings.Contains(loc, "anywhere") || strings.Contains(loc, "worldwide")
}

func isUrgent(title string, tags []string) bool {
	t := strings.ToLower(title)
	if strings.Contains(t, "urgent") || strings.Contains(t, "immediate start") {
		return true
	}
	for _, tag := range tags {
		if strings.EqualFold(tag, "urgent") {
			return true
		}
	}
	return false
}

func requirementsFromTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
