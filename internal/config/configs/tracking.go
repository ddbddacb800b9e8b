package configs

import "time"

// Tracking holds settings for tracking links and purchase attribution.
type Tracking struct {
	// BaseURL is the public prefix of tracking links; the campaign id is
	// appended as the last path segment.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080/c"`
	// CorrelationParam is the query parameter carrying the campaign id to
	// the shop and back in order webhooks.
	CorrelationParam string `env:"CORRELATION_PARAM" envDefault:"cid"`
	// ClickTimeout bounds the click counter write. A redirect is only issued
	// once the write is confirmed.
	ClickTimeout time.Duration `env:"CLICK_TIMEOUT" envDefault:"3s"`
	// WebhookSecret is the Shopify app secret used to verify the
	// X-Shopify-Hmac-Sha256 header. Empty disables verification.
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

// Storage selects the campaign store.
type Storage struct {
	// Driver is "postgres" or "memory".
	Driver string `env:"DRIVER" envDefault:"postgres"`
}
