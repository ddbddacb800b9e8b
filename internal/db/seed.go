package db

import (
	"context"
	"fmt"
	"time"

	"adtrack/internal/core/domain"
	"adtrack/internal/core/port"
)

// demoCampaigns mirrors what the dashboard shows on a fresh install.
var demoCampaigns = []domain.NewCampaign{
	{Name: "Summer Sale", Platform: "Instagram", Format: "Post", Headline: "Limited Time Offer!", Caption: "Don't miss out on this exclusive deal. Shop now!", Status: domain.StatusLive, TargetURL: "https://shop.example.com/collections/summer"},
	{Name: "New Arrivals", Platform: "Instagram", Format: "Story", Headline: "Fresh drops", Caption: "#Shopify #Deals #Trending", Status: domain.StatusLive, TargetURL: "https://shop.example.com/collections/new?sort=created"},
	{Name: "Holiday Draft", Platform: "Pinterest", Format: "Pin", Headline: "Gift guide", Status: domain.StatusDraft},
}

// Seed inserts demo campaigns through the use case so ids and defaults are
// assigned the same way as for real campaigns. It is not idempotent: every
// call adds another set.
func Seed(ctx context.Context, svc port.TrackingUseCase) error {
	for _, nc := range demoCampaigns {
		ctxOp, cancel := context.WithTimeout(ctx, 5*time.Second)
		_, err := svc.CreateCampaign(ctxOp, nc)
		cancel()
		if err != nil {
			return fmt.Errorf("seed campaign %q: %w", nc.Name, err)
		}
	}
	return nil
}
