package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"guildbadge/internal/domain"
)

// staleRetention bounds how long an expired entry stays around for
// stale fallback before the janitor sweeps it.
const staleRetention = 24 * time.Hour

// Key is a structured cache key. Kind separates lookup classes so that
// an invite code and an account id can never collide.
type Key struct {
	Kind string
	ID   string
}

func (k Key) String() string {
	return k.Kind + "\x1f" + k.ID
}

type entry struct {
	payload   any
	expiresAt time.Time
}

// Store is a process-wide TTL cache for structured upstream payloads.
// Entries are kept past their TTL (up to staleRetention) so that a
// rate-limited or failing upstream can be answered with the last known
// value instead of an error.
type Store struct {
	c *gocache.Cache
}

func NewStore() *Store {
	return &Store{
		c: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// GetOrFetch returns the live cached payload for key, or invokes fetch
// and caches the result for ttl. When fetch fails with a rate-limited
// or transient classification and any prior payload exists, the stale
// payload is returned instead of the error.
func GetOrFetch[T any](s *Store, key Key, ttl time.Duration, fetch func() (T, error)) (T, error) {

	k := key.String()
	now := time.Now()

	if v, found := s.c.Get(k); found {
		e := v.(entry)
		if now.Before(e.expiresAt) {
			return e.payload.(T), nil
		}
	}

	payload, err := fetch()
	if err != nil {
		if domain.StaleEligible(err) {
			if v, found := s.c.Get(k); found {
				return v.(entry).payload.(T), nil
			}
		}
		var zero T
		return zero, err
	}

	s.c.Set(k, entry{payload: payload, expiresAt: now.Add(ttl)}, staleRetention)
	return payload, nil
}

// ItemCount reports the number of live plus stale entries.
func (s *Store) ItemCount() int {
	return s.c.ItemCount()
}
