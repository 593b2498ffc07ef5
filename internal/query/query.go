// Package query is the client-side companion of the search pipeline: it
// debounces free-text input, collapses filter sets to canonical cache
// keys, serves fresh responses from cache, retries transport failures
// with bounded exponential backoff, grows pages incrementally, and
// guarantees that superseded in-flight responses are discarded.
package query

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/joblens/joblens/internal/cache"
	"github.com/joblens/joblens/internal/domain"
	"github.com/joblens/joblens/pkg/logging"
)

// ErrExhausted is surfaced once every retry attempt has failed. The
// underlying transport error is logged, never shown: callers present a
// generic retry affordance and may call Retry to re-issue the request.
var ErrExhausted = errors.New("failed to load jobs")

// Searcher executes one search call. Both the orchestrator itself and the
// HTTP API client satisfy it.
type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error)
}

// State is the lifecycle stage of the current query.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateInFlight
	StateRetryScheduled
	StateSuccess
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateInFlight:
		return "in-flight"
	case StateRetryScheduled:
		return "retry-scheduled"
	case StateSuccess:
		return "success"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Snapshot is the observable result state delivered on every transition.
// Jobs accumulates every page fetched so far for the current filter key.
type Snapshot struct {
	Key     string
	State   State
	Jobs    []domain.Job
	Total   int
	HasMore bool
	Err     error
}

// Config tunes one Querier. Zero values take the defaults below.
type Config struct {
	Debounce    time.Duration // quiet period for free-text filters
	StaleAfter  time.Duration // cache entries younger than this skip the network
	EvictAfter  time.Duration // cache entries older than this are discarded
	MaxAttempts int           // total attempts per request, including the first
	RetryBase   time.Duration
	RetryCap    time.Duration
}

func (c Config) withDefaults() Config {
	if c.Debounce <= 0 {
		c.Debounce = 500 * time.Millisecond
	}
	if c.StaleAfter <= 0 {
		c.StaleAfter = 5 * time.Minute
	}
	if c.EvictAfter <= 0 {
		c.EvictAfter = 10 * time.Minute
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 4
	}
	if c.RetryBase <= 0 {
		c.RetryBase = time.Second
	}
	if c.RetryCap <= 0 {
		c.RetryCap = 30 * time.Second
	}
	return c
}

// Querier manages the query lifecycle for one UI surface. Each surface
// owns its own instance; instances share nothing but an optional Store.
type Querier struct {
	mu       sync.Mutex
	cfg      Config
	searcher Searcher
	store    cache.Store
	logger   *logging.Logger
	onUpdate func(Snapshot)
	now      func() time.Time

	filters    domain.SearchRequest
	key        string
	gen        uint64
	state      State
	attempt    int
	jobs       []domain.Job
	total      int
	hasMore    bool
	nextOffset int

	// paging parameters of the request that exhausted, so Retry re-issues
	// exactly it
	retryOffset int
	retryAppend bool

	debounceTimer *time.Timer
	retryTimer    *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// New creates a Querier. onUpdate receives a Snapshot on every state
// transition and must not call back into the Querier.
func New(searcher Searcher, store cache.Store, cfg Config, logger *logging.Logger, onUpdate func(Snapshot)) *Querier {
	if logger == nil {
		logger = logging.New("info")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Querier{
		cfg:      cfg.withDefaults(),
		searcher: searcher,
		store:    store,
		logger:   logger,
		onUpdate: onUpdate,
		now:      time.Now,
		state:    StateIdle,
		// Seeding the baseline filters with the normalized zero request
		// makes the first keystroke a text-only change, so it debounces
		// like every later one.
		filters: domain.SearchRequest{}.Normalized(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Update applies a new filter set. Changes confined to the free-text
// dimensions (keyword, location, company) wait out the debounce quiet
// period; any other change dispatches immediately, flushing pending text.
// A filter change supersedes whatever is in flight: the old request's
// response will be discarded when it lands.
func (q *Querier) Update(req domain.SearchRequest) {
	q.mu.Lock()

	if q.closed {
		q.mu.Unlock()
		return
	}

	norm := req.Normalized()
	norm.Offset = 0
	newKey := BuildKey(norm)

	if q.state != StateIdle && newKey == q.key {
		q.mu.Unlock()
		return
	}

	textOnly := sameNonTextFilters(q.filters, norm)

	q.filters = norm
	q.key = newKey
	q.gen++
	gen := q.gen
	q.resetResultLocked()
	q.stopRetryLocked()

	if textOnly {
		q.state = StateDebouncing
		if q.debounceTimer != nil {
			q.debounceTimer.Stop()
		}
		q.debounceTimer = time.AfterFunc(q.cfg.Debounce, func() {
			q.flush(gen)
		})
		q.emitUnlock()
		return
	}

	if q.debounceTimer != nil {
		q.debounceTimer.Stop()
		q.debounceTimer = nil
	}
	q.dispatchLocked(gen)
}

// LoadMore fetches the next page for the current filter key and appends
// it to the accumulated set. It is a no-op unless the current state is
// Success with more records available.
func (q *Querier) LoadMore() {
	q.mu.Lock()

	if q.closed || q.state != StateSuccess || !q.hasMore {
		q.mu.Unlock()
		return
	}

	q.state = StateInFlight
	q.attempt = 0
	gen := q.gen
	offset := q.nextOffset
	go q.fetch(gen, offset, true)
	q.emitUnlock()
}

// Retry re-issues the request that exhausted, keeping its paging
// parameters so an exhausted LoadMore resumes where it failed instead of
// discarding pages already accumulated.
func (q *Querier) Retry() {
	q.mu.Lock()

	if q.closed || q.state != StateExhausted {
		q.mu.Unlock()
		return
	}

	q.attempt = 0
	q.state = StateInFlight
	gen := q.gen
	offset, appendPage := q.retryOffset, q.retryAppend
	go q.fetch(gen, offset, appendPage)
	q.emitUnlock()
}

// Snapshot returns the current observable state.
func (q *Querier) Snapshot() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// Close cancels in-flight work and stops both timers. A cancelled query's
// eventual response is discarded: not cached, not delivered.
func (q *Querier) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true

	if q.debounceTimer != nil {
		q.debounceTimer.Stop()
		q.debounceTimer = nil
	}
	q.stopRetryLocked()
	q.cancel()
}

// flush runs when the debounce quiet period elapses.
func (q *Querier) flush(gen uint64) {
	q.mu.Lock()

	if q.closed || gen != q.gen {
		q.mu.Unlock()
		return
	}
	q.dispatchLocked(gen)
}

// dispatchLocked consults the cache and either serves it or starts a
// fetch. Called with the lock held; always releases it.
func (q *Querier) dispatchLocked(gen uint64) {
	if entry, ok := q.lookupLocked(); ok {
		q.jobs = entry.Jobs
		q.total = entry.Total
		q.hasMore = entry.HasMore
		q.nextOffset = entry.Offset

		if entry.Age(q.now()) < q.cfg.StaleAfter {
			q.state = StateSuccess
			q.emitUnlock()
			return
		}

		// Stale but not yet evicted: serve it immediately and revalidate
		// the first page in the background.
		q.state = StateInFlight
		go q.fetch(gen, 0, false)
		q.emitUnlock()
		return
	}

	q.state = StateInFlight
	q.attempt = 0
	go q.fetch(gen, 0, false)
	q.emitUnlock()
}

func (q *Querier) lookupLocked() (cache.Entry, bool) {
	if q.store == nil {
		return cache.Entry{}, false
	}

	entry, ok := q.store.Get(q.ctx, q.key)
	if !ok {
		return cache.Entry{}, false
	}
	if entry.Age(q.now()) >= q.cfg.EvictAfter {
		q.store.Delete(q.ctx, q.key)
		return cache.Entry{}, false
	}
	return entry, true
}

// fetch performs one attempt. Runs outside the lock; the generation check
// on completion implements supersession (last key wins).
func (q *Querier) fetch(gen uint64, offset int, appendPage bool) {
	req := q.requestFor(offset)
	resp, err := q.searcher.Search(q.ctx, req)

	q.mu.Lock()

	if q.closed || gen != q.gen {
		q.mu.Unlock()
		return
	}

	if err != nil {
		q.attempt++
		if q.attempt >= q.cfg.MaxAttempts {
			q.logger.Warn("search attempts exhausted",
				"key", q.key, "attempts", q.attempt, "err", err)
			q.state = StateExhausted
			q.retryOffset = offset
			q.retryAppend = appendPage
			q.emitUnlock()
			return
		}

		delay := backoffDelay(q.attempt-1, q.cfg.RetryBase, q.cfg.RetryCap)
		q.logger.Debug("search failed, retry scheduled",
			"key", q.key, "attempt", q.attempt, "delay", delay, "err", err)
		q.state = StateRetryScheduled
		q.retryTimer = time.AfterFunc(delay, func() {
			q.retryFire(gen, offset, appendPage)
		})
		q.emitUnlock()
		return
	}

	if appendPage {
		q.jobs = append(q.jobs, resp.Jobs...)
	} else {
		q.jobs = resp.Jobs
	}
	q.total = resp.Total
	q.hasMore = resp.HasMore
	q.nextOffset = offset + q.filters.Limit
	q.attempt = 0
	q.state = StateSuccess

	if q.store != nil {
		q.store.Set(q.ctx, q.key, cache.Entry{
			Jobs:      q.jobs,
			Total:     q.total,
			HasMore:   q.hasMore,
			Offset:    q.nextOffset,
			FetchedAt: q.now(),
		}, q.cfg.EvictAfter)
	}

	q.emitUnlock()
}

func (q *Querier) retryFire(gen uint64, offset int, appendPage bool) {
	q.mu.Lock()

	if q.closed || gen != q.gen {
		q.mu.Unlock()
		return
	}

	q.state = StateInFlight
	go q.fetch(gen, offset, appendPage)
	q.emitUnlock()
}

func (q *Querier) requestFor(offset int) domain.SearchRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	req := q.filters
	req.Offset = offset
	return req
}

func (q *Querier) resetResultLocked() {
	q.jobs = nil
	q.total = 0
	q.hasMore = false
	q.nextOffset = 0
	q.attempt = 0
	q.retryOffset = 0
	q.retryAppend = false
}

func (q *Querier) stopRetryLocked() {
	if q.retryTimer != nil {
		q.retryTimer.Stop()
		q.retryTimer = nil
	}
}

func (q *Querier) snapshotLocked() Snapshot {
	snap := Snapshot{
		Key:     q.key,
		State:   q.state,
		Jobs:    append([]domain.Job(nil), q.jobs...),
		Total:   q.total,
		HasMore: q.hasMore,
	}
	if q.state == StateExhausted {
		snap.Err = ErrExhausted
	}
	return snap
}

// emitUnlock delivers the current snapshot and releases the lock. Every
// state transition funnels through here.
func (q *Querier) emitUnlock() {
	snap := q.snapshotLocked()
	notify := q.onUpdate
	q.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
}

// sameNonTextFilters reports whether a and b differ only in the free-text
// dimensions that debounce (keyword, location, company).
func sameNonTextFilters(a, b domain.SearchRequest) bool {
	if a.JobType != b.JobType || a.Experience != b.Experience ||
		a.Salary != b.Salary || a.DatePosted != b.DatePosted || a.Limit != b.Limit {
		return false
	}
	if (a.Remote == nil) != (b.Remote == nil) {
		return false
	}
	if a.Remote != nil && *a.Remote != *b.Remote {
		return false
	}
	return true
}
