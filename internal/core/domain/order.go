package domain

// OrderNotification is the subset of a Shopify order webhook payload the
// correlator looks at. Unknown fields are ignored when decoding.
type OrderNotification struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LandingSite   string `json:"landing_site"`
	ReferringSite string `json:"referring_site"`
	TotalPrice    string `json:"total_price"`
	Currency      string `json:"currency"`
}

// CorrelationFields returns the payload fields that may carry the
// correlation parameter, in lookup order.
func (o OrderNotification) CorrelationFields() []string {
	return []string{o.LandingSite, o.ReferringSite}
}

// Outcome is the result of trying to attribute an order to a campaign.
type Outcome string

const (
	// OutcomeAttributed means the campaign purchase counter was incremented.
	OutcomeAttributed Outcome = "attributed"
	// OutcomeUnattributed means the order carried no correlation token.
	OutcomeUnattributed Outcome = "unattributed"
	// OutcomeUnknownCampaign means the token did not match any campaign.
	OutcomeUnknownCampaign Outcome = "unknown_campaign"
	// OutcomeDuplicate means the webhook delivery was already processed.
	OutcomeDuplicate Outcome = "duplicate"
)

// Attribution describes what happened to a single order notification.
type Attribution struct {
	OrderID    int64
	CampaignID string
	Outcome    Outcome
	Purchases  int64
}
