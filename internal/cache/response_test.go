package cache

import (
	"errors"
	"testing"
	"time"

	"guildbadge/internal/domain"
)

func TestGetOrFetchServesLiveEntryWithoutRefetch(t *testing.T) {
	s := NewStore()
	key := Key{Kind: "invite", ID: "abc"}

	calls := 0
	fetch := func() (string, error) {
		calls++
		return "payload-1", nil
	}

	first, err := GetOrFetch(s, key, time.Minute, fetch)
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	second, err := GetOrFetch(s, key, time.Minute, fetch)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}
	if first != second {
		t.Fatalf("cached payload changed: %q vs %q", first, second)
	}
}

func TestGetOrFetchRefetchesAfterTTL(t *testing.T) {
	s := NewStore()
	key := Key{Kind: "invite", ID: "abc"}

	calls := 0
	fetch := func() (string, error) {
		calls++
		return "payload", nil
	}

	if _, err := GetOrFetch(s, key, 10*time.Millisecond, fetch); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := GetOrFetch(s, key, 10*time.Millisecond, fetch); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if calls != 2 {
		t.Fatalf("expected refetch after ttl, got %d calls", calls)
	}
}

func TestGetOrFetchStaleFallbackOnRateLimit(t *testing.T) {
	s := NewStore()
	key := Key{Kind: "invite", ID: "abc"}

	if _, err := GetOrFetch(s, key, 5*time.Millisecond, func() (string, error) {
		return "known-good", nil
	}); err != nil {
		t.Fatalf("priming fetch failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	got, err := GetOrFetch(s, key, 5*time.Millisecond, func() (string, error) {
		return "", domain.RateLimited("upstream said 429")
	})
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if got != "known-good" {
		t.Fatalf("expected prior payload, got %q", got)
	}
}

func TestGetOrFetchStaleFallbackOnTransient(t *testing.T) {
	s := NewStore()
	key := Key{Kind: "user", ID: "42"}

	if _, err := GetOrFetch(s, key, time.Millisecond, func() (int, error) {
		return 7, nil
	}); err != nil {
		t.Fatalf("priming fetch failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	got, err := GetOrFetch(s, key, time.Millisecond, func() (int, error) {
		return 0, domain.Transient("timeout", nil)
	})
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected prior payload 7, got %d", got)
	}
}

func TestGetOrFetchPermanentFailurePropagates(t *testing.T) {
	s := NewStore()
	key := Key{Kind: "invite", ID: "missing"}

	_, err := GetOrFetch(s, key, time.Minute, func() (string, error) {
		return "", domain.NotFound("no such invite")
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found to propagate, got %v", err)
	}
}

func TestGetOrFetchNoStaleForPermanentFailure(t *testing.T) {
	s := NewStore()
	key := Key{Kind: "invite", ID: "abc"}

	if _, err := GetOrFetch(s, key, time.Millisecond, func() (string, error) {
		return "old", nil
	}); err != nil {
		t.Fatalf("priming fetch failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, err := GetOrFetch(s, key, time.Millisecond, func() (string, error) {
		return "", domain.Invalid("garbage body", nil)
	})
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("invalid must not be masked by stale data, got %v", err)
	}
}

func TestKeyKindsDoNotCollide(t *testing.T) {
	s := NewStore()

	if _, err := GetOrFetch(s, Key{Kind: "invite", ID: "x"}, time.Minute, func() (string, error) {
		return "invite-payload", nil
	}); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	got, err := GetOrFetch(s, Key{Kind: "user", ID: "x"}, time.Minute, func() (string, error) {
		return "user-payload", nil
	})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if got != "user-payload" {
		t.Fatalf("key collision across kinds: got %q", got)
	}
}
