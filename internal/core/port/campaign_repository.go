package port

import (
	"context"
	"errors"

	"adtrack/internal/core/domain"
)

var (
	// ErrCampaignNotFound is returned when a campaign does not exist or, for
	// IncrementClicks, has no target URL.
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrInvalidArgument marks malformed caller input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPersistence wraps failures of the backing store.
	ErrPersistence = errors.New("persistence failure")
	// ErrInvalidSignature is returned for webhooks failing HMAC verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// CampaignRepository defines the persistence layer for campaigns and ads.
// It is an outbound port in hexagonal architecture. Implementations must be
// concurrency-safe and perform the counter increments atomically at the
// storage level.
type CampaignRepository interface {
	// Create stores a new campaign. ID and CreatedAt are set by the caller.
	Create(ctx context.Context, c *domain.Campaign) error
	// CreateWithAd stores a campaign and an ad referencing it atomically.
	CreateWithAd(ctx context.Context, c *domain.Campaign, ad *domain.Ad) error
	// GetByID returns a campaign by id.
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	// Update writes the fields set in patch and returns the updated campaign.
	Update(ctx context.Context, id string, patch domain.CampaignPatch) (*domain.Campaign, error)
	// List returns campaigns newest first.
	List(ctx context.Context, filter CampaignFilter) ([]domain.Campaign, error)

	// IncrementClicks adds one click to a campaign that has a target URL.
	IncrementClicks(ctx context.Context, id string) (*domain.Campaign, error)
	// IncrementPurchases adds one purchase to a campaign.
	IncrementPurchases(ctx context.Context, id string) (*domain.Campaign, error)

	// ListAds returns saved ads newest first.
	ListAds(ctx context.Context) ([]domain.Ad, error)
}

// CampaignFilter narrows a campaign listing. The zero value lists everything.
type CampaignFilter struct {
	Status *domain.Status
}
