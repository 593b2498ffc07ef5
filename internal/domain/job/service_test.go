package job

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/joblens/joblens/internal/catalog"
	"github.com/joblens/joblens/internal/domain"
	"github.com/joblens/joblens/internal/search"
	"github.com/joblens/joblens/pkg/logging"
)

type fakeProvider struct {
	jobs  []domain.Job
	total int
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Fetch(_ context.Context, _ domain.SearchRequest) ([]domain.Job, int, error) {
	f.calls++
	return f.jobs, f.total, f.err
}

func boolPtr(v bool) *bool { return &v }

// eightJobCatalog has 3 remote jobs mentioning "engineer" in title or
// description, out of 8 total.
func eightJobCatalog() *catalog.Catalog {
	jobs := []domain.Job{
		{ID: "c1", Title: "Software Engineer", Company: "A", Location: "Remote", Remote: true,
			Description: "Backend work", Posted: "1 day ago"},
		{ID: "c2", Title: "Designer", Company: "B", Location: "Remote", Remote: true,
			Description: "Visual design", Posted: "2 days ago"},
		{ID: "c3", Title: "Data Engineer", Company: "C", Location: "Remote", Remote: true,
			Description: "Pipelines", Posted: "3 days ago"},
		{ID: "c4", Title: "Engineer", Company: "D", Location: "NYC",
			Description: "On-site platform role", Posted: "1 day ago"},
		{ID: "c5", Title: "Support", Company: "E", Location: "Remote", Remote: true,
			Description: "We help engineers ship", Posted: "4 days ago"},
		{ID: "c6", Title: "PM", Company: "F", Location: "Austin, TX",
			Description: "Roadmaps", Posted: "1 week ago"},
		{ID: "c7", Title: "QA Analyst", Company: "G", Location: "Chicago, IL",
			Description: "Testing", Posted: "2 weeks ago"},
		{ID: "c8", Title: "Recruiter", Company: "H", Location: "Remote", Remote: true,
			Description: "Hiring", Posted: "3 weeks ago"},
	}
	return catalog.New(jobs)
}

func newTestService(t *testing.T, provider Provider, cat Catalog) Service {
	t.Helper()
	opts := []Option{
		WithCatalog(cat),
		WithLogger(logging.Nop()),
	}
	if provider != nil {
		opts = append(opts, WithProvider(provider))
	}
	svc, err := NewService(opts...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewService_RequiresCatalog(t *testing.T) {
	if _, err := NewService(); err == nil {
		t.Fatal("expected an error without a catalog")
	}
}

func TestSearch_UsesProviderWhenItMatches(t *testing.T) {
	provider := &fakeProvider{
		jobs: []domain.Job{
			{ID: "p1", Title: "Go Engineer", Company: "Acme", Location: "Remote",
				Remote: true, Description: "Services", Posted: "1 day ago"},
		},
		total: 1,
	}
	svc := newTestService(t, provider, eightJobCatalog())

	resp, err := svc.Search(context.Background(), domain.SearchRequest{Keyword: "engineer"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(resp.Jobs) != 1 || resp.Jobs[0].ID != "p1" {
		t.Fatalf("expected the provider result, got %+v", resp.Jobs)
	}
	if resp.Total != 1 || resp.HasMore {
		t.Errorf("Total = %d, HasMore = %v", resp.Total, resp.HasMore)
	}
}

func TestSearch_FallbackEqualsCatalogPipeline(t *testing.T) {
	// For every failure class, the response must equal what the catalog
	// plus the shared engine produce for the same request.
	req := domain.SearchRequest{Keyword: "engineer", Remote: boolPtr(true), Limit: 2}
	cat := eightJobCatalog()

	local, _ := cat.Fetch(req.Normalized())
	matched := search.Apply(local, req.Normalized())
	wantPage, wantHasMore := search.Paginate(matched, 0, 2)

	classes := []FailureClass{FailureUnavailable, FailureRejected, FailureMalformed}
	for _, class := range classes {
		t.Run(class.String(), func(t *testing.T) {
			provider := &fakeProvider{
				err: &ProviderError{Class: class, Provider: "fake", Err: fmt.Errorf("boom")},
			}
			svc := newTestService(t, provider, cat)

			resp, err := svc.Search(context.Background(), req)
			if err != nil {
				t.Fatalf("classified provider failures must not surface: %v", err)
			}

			if len(resp.Jobs) != len(wantPage) {
				t.Fatalf("got %d jobs, want %d", len(resp.Jobs), len(wantPage))
			}
			for i := range wantPage {
				if resp.Jobs[i].ID != wantPage[i].ID {
					t.Errorf("job %d = %s, want %s", i, resp.Jobs[i].ID, wantPage[i].ID)
				}
			}
			if resp.Total != len(matched) || resp.HasMore != wantHasMore {
				t.Errorf("Total = %d HasMore = %v, want %d %v",
					resp.Total, resp.HasMore, len(matched), wantHasMore)
			}
		})
	}
}

func TestSearch_FallsBackOnEmptyProviderMatch(t *testing.T) {
	// The provider answers, but nothing survives filtering; the catalog
	// substitutes fully.
	provider := &fakeProvider{
		jobs:  []domain.Job{{ID: "p1", Title: "Florist", Company: "X", Description: "Flowers"}},
		total: 1,
	}
	svc := newTestService(t, provider, eightJobCatalog())

	resp, err := svc.Search(context.Background(), domain.SearchRequest{Keyword: "engineer"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	for _, j := range resp.Jobs {
		if j.ID == "p1" {
			t.Fatal("provider and catalog results must never be merged")
		}
	}
	if resp.Total == 0 {
		t.Error("catalog should have produced matches")
	}
}

func TestSearch_UnclassifiedProviderErrorAbsorbed(t *testing.T) {
	provider := &fakeProvider{err: errors.New("some bug")}
	svc := newTestService(t, provider, eightJobCatalog())

	if _, err := svc.Search(context.Background(), domain.SearchRequest{}); err != nil {
		t.Fatalf("unclassified provider errors must be absorbed: %v", err)
	}
}

func TestSearch_NoResultsIsNotAnError(t *testing.T) {
	svc := newTestService(t, nil, catalog.New(nil))

	resp, err := svc.Search(context.Background(), domain.SearchRequest{Keyword: "anything"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Jobs) != 0 || resp.Total != 0 || resp.HasMore {
		t.Errorf("want an empty valid response, got %+v", resp)
	}
}

func TestSearch_ExampleScenario(t *testing.T) {
	// {keyword:"engineer", remote:true, limit:2} against 8 catalog jobs
	// of which 3 are remote and mention engineer.
	svc := newTestService(t, nil, eightJobCatalog())
	req := domain.SearchRequest{Keyword: "engineer", Remote: boolPtr(true), Limit: 2}

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Jobs) != 2 || resp.Total != 3 || !resp.HasMore {
		t.Fatalf("page 1: len=%d total=%d hasMore=%v, want 2/3/true",
			len(resp.Jobs), resp.Total, resp.HasMore)
	}

	req.Offset = 2
	resp, err = svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Jobs) != 1 || resp.Total != 3 || resp.HasMore {
		t.Fatalf("page 2: len=%d total=%d hasMore=%v, want 1/3/false",
			len(resp.Jobs), resp.Total, resp.HasMore)
	}
}

func TestSearch_PaginationConsistency(t *testing.T) {
	svc := newTestService(t, nil, eightJobCatalog())

	full, err := svc.Search(context.Background(), domain.SearchRequest{Limit: domain.MaxLimit})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	var concat []string
	limit := 3
	for offset := 0; ; offset += limit {
		resp, err := svc.Search(context.Background(), domain.SearchRequest{Limit: limit, Offset: offset})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		for _, j := range resp.Jobs {
			concat = append(concat, j.ID)
		}
		if !resp.HasMore {
			break
		}
	}

	if len(concat) != len(full.Jobs) {
		t.Fatalf("concatenated %d jobs, want %d", len(concat), len(full.Jobs))
	}
	for i, j := range full.Jobs {
		if concat[i] != j.ID {
			t.Errorf("position %d: %s, want %s (pages must not shuffle)", i, concat[i], j.ID)
		}
	}
}

func TestSearch_NormalizesRequest(t *testing.T) {
	svc := newTestService(t, nil, eightJobCatalog())

	resp, err := svc.Search(context.Background(), domain.SearchRequest{
		Keyword: "  engineer  ",
		Limit:   10_000,
		Offset:  -5,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Total == 0 {
		t.Error("trimmed keyword should match")
	}
}

func TestGet(t *testing.T) {
	svc := newTestService(t, nil, eightJobCatalog())

	j, err := svc.Get(context.Background(), "c3")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if j.ID != "c3" {
		t.Errorf("ID = %s, want c3", j.ID)
	}

	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound for empty id, got %v", err)
	}
}

func TestGet_ScansBeyondOnePage(t *testing.T) {
	// More records than one maximum-size page; the target sits on the
	// second one.
	jobs := make([]domain.Job, 0, domain.MaxLimit+20)
	for i := 0; i < domain.MaxLimit+20; i++ {
		jobs = append(jobs, domain.Job{
			ID:      fmt.Sprintf("bulk-%03d", i),
			Title:   "Engineer",
			Company: "Acme",
			Posted:  "1 day ago",
		})
	}
	svc := newTestService(t, nil, catalog.New(jobs))

	j, err := svc.Get(context.Background(), fmt.Sprintf("bulk-%03d", domain.MaxLimit+10))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if j.ID != fmt.Sprintf("bulk-%03d", domain.MaxLimit+10) {
		t.Errorf("ID = %s", j.ID)
	}

	if _, err := svc.Get(context.Background(), "bulk-999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}
