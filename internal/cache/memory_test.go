package cache

import (
	"context"
	"testing"
	"time"

	"github.com/joblens/joblens/internal/domain"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory(0)
	defer m.Close()
	ctx := context.Background()

	entry := Entry{
		Jobs:      []domain.Job{{ID: "j1", Title: "Engineer"}},
		Total:     1,
		HasMore:   false,
		Offset:    20,
		FetchedAt: time.Now(),
	}
	m.Set(ctx, "keyword=go", entry, time.Minute)

	got, ok := m.Get(ctx, "keyword=go")
	if !ok {
		t.Fatal("expected a hit")
	}
	if len(got.Jobs) != 1 || got.Jobs[0].ID != "j1" || got.Offset != 20 {
		t.Errorf("entry round-trip mismatch: %+v", got)
	}
}

func TestMemory_MissOnUnknownKey(t *testing.T) {
	m := NewMemory(0)
	defer m.Close()

	if _, ok := m.Get(context.Background(), "nope"); ok {
		t.Fatal("expected a miss")
	}
}

func TestMemory_ExpiredEntryDroppedLazily(t *testing.T) {
	m := NewMemory(0) // no janitor, expiry enforced on read
	defer m.Close()
	ctx := context.Background()

	m.Set(ctx, "k", Entry{Total: 1}, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("expired entry served")
	}
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory(0)
	defer m.Close()
	ctx := context.Background()

	m.Set(ctx, "k", Entry{Total: 1}, time.Minute)
	m.Delete(ctx, "k")

	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("deleted entry served")
	}
}

func TestMemory_JanitorSweeps(t *testing.T) {
	m := NewMemory(5 * time.Millisecond)
	defer m.Close()
	ctx := context.Background()

	m.Set(ctx, "short", Entry{}, time.Millisecond)
	m.Set(ctx, "long", Entry{}, time.Minute)

	time.Sleep(30 * time.Millisecond)

	m.mu.RLock()
	_, shortAlive := m.items["short"]
	_, longAlive := m.items["long"]
	m.mu.RUnlock()

	if shortAlive {
		t.Error("janitor left an expired item behind")
	}
	if !longAlive {
		t.Error("janitor removed a live item")
	}
}

func TestMemory_CloseIsIdempotent(t *testing.T) {
	m := NewMemory(time.Minute)
	m.Close()
	m.Close()
}

func TestEntry_Age(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	e := Entry{FetchedAt: now.Add(-3 * time.Minute)}

	if got := e.Age(now); got != 3*time.Minute {
		t.Errorf("Age = %v, want 3m", got)
	}
}
