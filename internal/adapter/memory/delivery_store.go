package memory

import (
	"context"
	"sync"
	"time"
)

// DeliveryStore implements port.DeliveryStore with an expiring set.
// Expired entries are pruned on Claim.
type DeliveryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[string]time.Time
	now  func() time.Time
}

// NewDeliveryStore returns a store remembering ids for ttl. A non-positive
// ttl keeps ids forever.
func NewDeliveryStore(ttl time.Duration) *DeliveryStore {
	return &DeliveryStore{ttl: ttl, seen: make(map[string]time.Time), now: time.Now}
}

// prune drops expired ids. The caller holds mu.
func (s *DeliveryStore) prune(now time.Time) {
	for id, exp := range s.seen {
		if !exp.IsZero() && !now.Before(exp) {
			delete(s.seen, id)
		}
	}
}

// Claim records id and reports whether it was not already held.
func (s *DeliveryStore) Claim(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.prune(now)
	if _, ok := s.seen[id]; ok {
		return false, nil
	}
	var exp time.Time
	if s.ttl > 0 {
		exp = now.Add(s.ttl)
	}
	s.seen[id] = exp
	return true, nil
}

// Release forgets id so a later Claim succeeds again.
func (s *DeliveryStore) Release(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.seen, id)
	s.mu.Unlock()
	return nil
}
