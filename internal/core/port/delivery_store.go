package port

import "context"

// DeliveryStore remembers webhook delivery ids so a redelivered webhook is
// not counted twice.
type DeliveryStore interface {
	// Claim marks id as being processed. It returns false when id was
	// already claimed.
	Claim(ctx context.Context, id string) (bool, error)
	// Release forgets a claim so a later redelivery is processed again.
	Release(ctx context.Context, id string) error
}

// Recorder receives tracking events for metrics.
type Recorder interface {
	Click()
	ClickFailed()
	Purchase(outcome string)
}
