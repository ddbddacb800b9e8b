package port

import (
	"context"

	"adtrack/internal/core/domain"
)

// TrackingUseCase defines the business operations of the dashboard backend.
// This interface represents the primary port into the application domain.
type TrackingUseCase interface {
	// CreateCampaign stores a new campaign with zero counters.
	CreateCampaign(ctx context.Context, in domain.NewCampaign) (*domain.Campaign, error)
	// GetCampaign returns a campaign by id.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// ListCampaigns returns campaigns newest first.
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]domain.Campaign, error)
	// UpdateCampaign changes descriptive fields of a campaign.
	UpdateCampaign(ctx context.Context, id string, patch domain.CampaignPatch) (*domain.Campaign, error)

	// ConfigureTarget binds a campaign to a destination URL and returns its
	// tracking link.
	ConfigureTarget(ctx context.Context, id, rawURL string) (*TargetConfig, error)
	// TrackingLink returns the tracking link of an existing campaign,
	// annotated with src when non-empty.
	TrackingLink(ctx context.Context, id, src string) (string, error)

	// RegisterClick counts one click and returns the URL to redirect to.
	// Nothing is counted and an error is returned when the campaign is
	// unknown or has no target URL.
	RegisterClick(ctx context.Context, id, src string) (string, error)
	// RecordPurchase attributes an order to the campaign named by its
	// correlation token. Only persistence failures are returned as errors.
	RecordPurchase(ctx context.Context, order domain.OrderNotification, deliveryID string) (*domain.Attribution, error)

	// Publish saves a creative as a live campaign and an ad.
	Publish(ctx context.Context, cr domain.Creative) (*PublishResult, error)
	// ListAds returns saved ads newest first.
	ListAds(ctx context.Context) ([]domain.Ad, error)
}

// TargetConfig is returned by ConfigureTarget.
type TargetConfig struct {
	TrackingLink string
	Campaign     *domain.Campaign
}

// PublishResult is returned by Publish.
type PublishResult struct {
	Campaign *domain.Campaign
	Ad       *domain.Ad
}
