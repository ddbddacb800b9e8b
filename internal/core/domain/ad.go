package domain

import "time"

// Ad is a single saved creative. Publishing a creative stores it both as a
// campaign and as an ad referencing that campaign.
type Ad struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaignId"`
	Platform   string    `json:"platform"`
	Format     string    `json:"format"`
	Headline   string    `json:"headline"`
	Caption    string    `json:"caption"`
	ImageURL   string    `json:"imageUrl"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Creative is the input of a publish request.
type Creative struct {
	Platform string `json:"platform"`
	Format   string `json:"format"`
	Headline string `json:"headline"`
	Caption  string `json:"caption"`
	ImageURL string `json:"imageUrl"`
}
