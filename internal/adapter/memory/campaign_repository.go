// Package memory provides in-process implementations of the storage ports.
// They back local development runs and the HTTP tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"adtrack/internal/core/domain"
	"adtrack/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository on maps guarded by
// a mutex. Increments happen under the lock, which makes them atomic with
// respect to each other.
type CampaignRepository struct {
	mu        sync.Mutex
	campaigns map[string]*domain.Campaign
	ads       []domain.Ad
	now       func() time.Time
}

// NewCampaignRepository returns an empty repository.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{
		campaigns: make(map[string]*domain.Campaign),
		now:       time.Now,
	}
}

func clone(c *domain.Campaign) *domain.Campaign {
	cp := *c
	if c.TargetURL != nil {
		u := *c.TargetURL
		cp.TargetURL = &u
	}
	return &cp
}

func (r *CampaignRepository) insert(c *domain.Campaign) {
	c.Clicks, c.Purchases, c.UpdatedAt = 0, 0, c.CreatedAt
	r.campaigns[c.ID] = clone(c)
}

// Create stores c with zeroed counters.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(c)
	return nil
}

// CreateWithAd stores c and ad together.
func (r *CampaignRepository) CreateWithAd(ctx context.Context, c *domain.Campaign, ad *domain.Ad) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(c)
	r.ads = append(r.ads, *ad)
	return nil
}

// GetByID returns a copy of the campaign or port.ErrCampaignNotFound.
func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, port.ErrCampaignNotFound
	}
	return clone(c), nil
}

// Update applies patch and returns the updated campaign.
func (r *CampaignRepository) Update(ctx context.Context, id string, patch domain.CampaignPatch) (*domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, port.ErrCampaignNotFound
	}
	if !patch.Empty() {
		patch.Apply(c)
		c.UpdatedAt = r.now().UTC()
	}
	return clone(c), nil
}

// List returns campaigns newest first, ties broken by id.
func (r *CampaignRepository) List(ctx context.Context, filter port.CampaignFilter) ([]domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	out := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		out = append(out, *clone(c))
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// IncrementClicks adds one click to a campaign that has a target URL.
func (r *CampaignRepository) IncrementClicks(ctx context.Context, id string) (*domain.Campaign, error) {
	return r.increment(ctx, id, func(c *domain.Campaign) bool {
		if !c.Targeted() {
			return false
		}
		c.Clicks++
		return true
	})
}

// IncrementPurchases adds one purchase to the campaign.
func (r *CampaignRepository) IncrementPurchases(ctx context.Context, id string) (*domain.Campaign, error) {
	return r.increment(ctx, id, func(c *domain.Campaign) bool {
		c.Purchases++
		return true
	})
}

func (r *CampaignRepository) increment(ctx context.Context, id string, apply func(*domain.Campaign) bool) (*domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok || !apply(c) {
		return nil, port.ErrCampaignNotFound
	}
	c.UpdatedAt = r.now().UTC()
	return clone(c), nil
}

// ListAds returns ads newest first, ties broken by id.
func (r *CampaignRepository) ListAds(ctx context.Context) ([]domain.Ad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	out := append([]domain.Ad(nil), r.ads...)
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
