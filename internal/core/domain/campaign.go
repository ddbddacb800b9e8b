package domain

import "time"

// Status is the publication state of a campaign as shown on the dashboard.
type Status string

const (
	StatusLive     Status = "Live"
	StatusDraft    Status = "Draft"
	StatusImported Status = "Imported"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusLive, StatusDraft, StatusImported:
		return true
	}
	return false
}

// Campaign represents a tracked ad campaign. Clicks and Purchases only ever
// grow and are changed exclusively by the repository increment operations.
type Campaign struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Platform  string    `json:"platform"`
	Format    string    `json:"format"`
	Headline  string    `json:"headline"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"imageUrl"`
	Status    Status    `json:"status"`
	TargetURL *string   `json:"targetUrl"` // nil while the campaign has no destination
	Clicks    int64     `json:"clicks"`
	Purchases int64     `json:"purchases"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Targeted reports whether the campaign has a destination the tracking
// link can redirect to.
func (c *Campaign) Targeted() bool {
	return c.TargetURL != nil && *c.TargetURL != ""
}

// NewCampaign holds the caller supplied fields of a campaign being created.
type NewCampaign struct {
	Name      string `json:"name"`
	Platform  string `json:"platform"`
	Format    string `json:"format"`
	Headline  string `json:"headline"`
	Caption   string `json:"caption"`
	ImageURL  string `json:"imageUrl"`
	Status    Status `json:"status"`
	TargetURL string `json:"targetUrl"`
}

// CampaignPatch describes a partial update of a campaign. Nil fields are
// left untouched. The counters are deliberately absent.
type CampaignPatch struct {
	Name      *string `json:"name"`
	Platform  *string `json:"platform"`
	Format    *string `json:"format"`
	Headline  *string `json:"headline"`
	Caption   *string `json:"caption"`
	ImageURL  *string `json:"imageUrl"`
	Status    *Status `json:"status"`
	TargetURL *string `json:"targetUrl"`
}

// Empty reports whether the patch changes nothing.
func (p CampaignPatch) Empty() bool {
	return p.Name == nil && p.Platform == nil && p.Format == nil &&
		p.Headline == nil && p.Caption == nil && p.ImageURL == nil &&
		p.Status == nil && p.TargetURL == nil
}

// Apply copies the set fields of p onto c.
func (p CampaignPatch) Apply(c *Campaign) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Platform != nil {
		c.Platform = *p.Platform
	}
	if p.Format != nil {
		c.Format = *p.Format
	}
	if p.Headline != nil {
		c.Headline = *p.Headline
	}
	if p.Caption != nil {
		c.Caption = *p.Caption
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.TargetURL != nil {
		u := *p.TargetURL
		c.TargetURL = &u
	}
}
