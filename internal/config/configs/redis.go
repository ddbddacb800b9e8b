package configs

import "time"

// Redis configures the webhook delivery store. An empty Addr disables it and
// webhooks are then processed without redelivery detection.
type Redis struct {
	Addr     string `env:"ADDRESS"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	// DeliveryTTL is how long a processed delivery id is remembered. Shopify
	// retries a failed webhook for up to 48 hours.
	DeliveryTTL time.Duration `env:"DELIVERY_TTL" envDefault:"72h"`
}

// Enabled reports whether a Redis address was configured.
func (c Redis) Enabled() bool {
	return c.Addr != ""
}
