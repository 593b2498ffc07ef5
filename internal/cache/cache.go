// Package cache stores search responses keyed by canonical filter keys.
// Writes are last-write-wins per key; entries are superseded wholesale,
// never merged.
package cache

import (
	"context"
	"time"

	"github.com/joblens/joblens/internal/domain"
)

// Entry is one cached, possibly multi-page, search result. Offset records
// how far incremental fetching has advanced for the key.
type Entry struct {
	Jobs      []domain.Job `json:"jobs"`
	Total     int          `json:"total"`
	HasMore   bool         `json:"hasMore"`
	Offset    int          `json:"offset"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

// Age reports how old the entry is at now.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

// Store is the backend contract shared by the in-memory and Redis
// implementations. TTL on Set is the eviction horizon; freshness decisions
// below it belong to the caller.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
