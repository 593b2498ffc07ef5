package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblens/joblens/internal/domain"
)

func boolPtr(v bool) *bool { return &v }

func fixtureJobs() []domain.Job {
	return []domain.Job{
		{
			ID: "j1", Title: "Backend Engineer", Company: "Acme", Location: "Remote",
			Remote: true, Type: domain.TypeFullTime, SalaryBucket: Bucket100kTo150,
			Description: "Go services", Posted: "2 days ago",
		},
		{
			ID: "j2", Title: "Designer", Company: "Acme", Location: "Austin, TX",
			Type: domain.TypePartTime, SalaryBucket: Bucket50kTo100k,
			Description: "Product design", Posted: "1 week ago",
		},
		{
			ID: "j3", Title: "Data Engineer", Company: "Globex", Location: "Remote",
			Remote: true, Type: domain.TypeContract, SalaryBucket: Bucket100kTo150,
			Description: "Pipelines and warehousing", Posted: "just now", IsNew: true,
		},
		{
			ID: "j4", Title: "Support Specialist", Company: "Initech", Location: "Chicago, IL",
			Type: domain.TypeFullTime, Description: "Customer support", Posted: "3 weeks ago",
		},
	}
}

func ids(jobs []domain.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestApply_KeywordMatchesTitleCompanyDescription(t *testing.T) {
	jobs := fixtureJobs()

	assert.ElementsMatch(t, []string{"j1", "j3"},
		ids(Apply(jobs, domain.SearchRequest{Keyword: "engineer"})))
	assert.ElementsMatch(t, []string{"j1", "j2"},
		ids(Apply(jobs, domain.SearchRequest{Keyword: "acme"})))
	assert.ElementsMatch(t, []string{"j3"},
		ids(Apply(jobs, domain.SearchRequest{Keyword: "warehousing"})))
}

func TestApply_EmptyKeywordMatchesEverything(t *testing.T) {
	jobs := fixtureJobs()
	assert.Len(t, Apply(jobs, domain.SearchRequest{}), len(jobs))
	assert.Len(t, Apply(jobs, domain.SearchRequest{Keyword: "   "}.Normalized()), len(jobs))
}

func TestApply_LocationTreatsRemoteJobsAsMatchingRemoteQueries(t *testing.T) {
	jobs := fixtureJobs()

	assert.ElementsMatch(t, []string{"j2"},
		ids(Apply(jobs, domain.SearchRequest{Location: "austin"})))
	// j1 and j3 have Location "Remote"; a remote query also admits any
	// record flagged remote regardless of its location text.
	assert.ElementsMatch(t, []string{"j1", "j3"},
		ids(Apply(jobs, domain.SearchRequest{Location: "remote"})))
}

func TestApply_JobTypeExactMatch(t *testing.T) {
	jobs := fixtureJobs()

	assert.ElementsMatch(t, []string{"j1", "j4"},
		ids(Apply(jobs, domain.SearchRequest{JobType: "Full-time"})))
	// Provider vocabulary coerces to the enum before comparing.
	assert.ElementsMatch(t, []string{"j3"},
		ids(Apply(jobs, domain.SearchRequest{JobType: "freelance"})))
	assert.Empty(t, Apply(jobs, domain.SearchRequest{JobType: "gibberish"}))
}

func TestApply_RemoteBoolean(t *testing.T) {
	jobs := fixtureJobs()

	assert.ElementsMatch(t, []string{"j1", "j3"},
		ids(Apply(jobs, domain.SearchRequest{Remote: boolPtr(true)})))
	assert.ElementsMatch(t, []string{"j2", "j4"},
		ids(Apply(jobs, domain.SearchRequest{Remote: boolPtr(false)})))
}

func TestApply_SalaryBucketEquality(t *testing.T) {
	jobs := fixtureJobs()

	assert.ElementsMatch(t, []string{"j1", "j3"},
		ids(Apply(jobs, domain.SearchRequest{Salary: Bucket100kTo150})))
	// j4 has no bucket; it never matches an active salary filter.
	assert.Empty(t, Apply(jobs, domain.SearchRequest{Salary: "1k-2k"}))
}

func TestApply_DatePostedWindows(t *testing.T) {
	jobs := fixtureJobs()

	assert.ElementsMatch(t, []string{"j3"},
		ids(Apply(jobs, domain.SearchRequest{DatePosted: "24h"})))
	assert.ElementsMatch(t, []string{"j1", "j3"},
		ids(Apply(jobs, domain.SearchRequest{DatePosted: "3d"})))
	assert.ElementsMatch(t, []string{"j1", "j2", "j3"},
		ids(Apply(jobs, domain.SearchRequest{DatePosted: "7d"})))
	assert.ElementsMatch(t, []string{"j1", "j2", "j3", "j4"},
		ids(Apply(jobs, domain.SearchRequest{DatePosted: "30d"})))
}

func TestApply_FilterConjunction(t *testing.T) {
	jobs := fixtureJobs()
	req := domain.SearchRequest{
		Keyword: "engineer",
		Remote:  boolPtr(true),
		Salary:  Bucket100kTo150,
	}

	matched := Apply(jobs, req)
	require.NotEmpty(t, matched)

	// Every survivor satisfies each active dimension independently.
	for _, j := range matched {
		assert.True(t, Matches(j, domain.SearchRequest{Keyword: req.Keyword}), "keyword: %s", j.ID)
		assert.True(t, Matches(j, domain.SearchRequest{Remote: req.Remote}), "remote: %s", j.ID)
		assert.True(t, Matches(j, domain.SearchRequest{Salary: req.Salary}), "salary: %s", j.ID)
	}
}

func TestApply_Ordering(t *testing.T) {
	jobs := []domain.Job{
		{ID: "old", Posted: "2 weeks ago"},
		{ID: "new", IsNew: true, Posted: "1 day ago"},
		{ID: "urgent", Urgent: true, Posted: "1 week ago"},
		{ID: "recent", Posted: "2 days ago"},
		{ID: "urgent-new", Urgent: true, IsNew: true, Posted: "1 day ago"},
	}

	got := ids(Apply(jobs, domain.SearchRequest{}))
	assert.Equal(t, []string{"urgent-new", "urgent", "new", "recent", "old"}, got)
}

func TestApply_StableBetweenCalls(t *testing.T) {
	// Equal-ranked records must keep input order so pagination never
	// shuffles between calls.
	jobs := []domain.Job{
		{ID: "a", Posted: "2 days ago"},
		{ID: "b", Posted: "2 days ago"},
		{ID: "c", Posted: "2 days ago"},
	}

	first := ids(Apply(jobs, domain.SearchRequest{}))
	second := ids(Apply(jobs, domain.SearchRequest{}))
	assert.Equal(t, []string{"a", "b", "c"}, first)
	assert.Equal(t, first, second)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	jobs := []domain.Job{
		{ID: "z", Posted: "3 weeks ago"},
		{ID: "a", Urgent: true, Posted: "1 day ago"},
	}

	_ = Apply(jobs, domain.SearchRequest{})
	assert.Equal(t, "z", jobs[0].ID)
	assert.Equal(t, "a", jobs[1].ID)
}

func TestPaginate(t *testing.T) {
	jobs := fixtureJobs()

	page, hasMore := Paginate(jobs, 0, 3)
	assert.Len(t, page, 3)
	assert.True(t, hasMore)

	page, hasMore = Paginate(jobs, 3, 3)
	assert.Len(t, page, 1)
	assert.False(t, hasMore)

	page, hasMore = Paginate(jobs, 99, 3)
	assert.Empty(t, page)
	assert.False(t, hasMore)
}

func TestPaginate_ConcatenatedPagesEqualFullSet(t *testing.T) {
	jobs := Apply(fixtureJobs(), domain.SearchRequest{})
	limit := 2

	var concat []domain.Job
	for offset := 0; ; offset += limit {
		page, hasMore := Paginate(jobs, offset, limit)
		concat = append(concat, page...)
		if !hasMore {
			break
		}
	}

	assert.Equal(t, ids(jobs), ids(concat))
}
