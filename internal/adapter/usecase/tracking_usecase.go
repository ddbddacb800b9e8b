package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"adtrack/internal/core/domain"
	"adtrack/internal/core/port"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 12

	defaultClickTimeout = 3 * time.Second
)

// Settings carries the tracking configuration the use case needs.
type Settings struct {
	BaseURL          string
	CorrelationParam string
	ClickTimeout     time.Duration
}

// Option customises a TrackingUseCase.
type Option func(*TrackingUseCase)

// WithDeliveryStore enables webhook redelivery detection.
func WithDeliveryStore(s port.DeliveryStore) Option {
	return func(u *TrackingUseCase) { u.deliveries = s }
}

// WithRecorder sets the metrics sink.
func WithRecorder(r port.Recorder) Option {
	return func(u *TrackingUseCase) { u.recorder = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(u *TrackingUseCase) { u.now = now }
}

// WithIDGenerator replaces the campaign id generator.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(u *TrackingUseCase) { u.newID = gen }
}

// TrackingUseCase implements port.TrackingUseCase. It owns click counting,
// purchase attribution and target configuration on top of a
// port.CampaignRepository.
type TrackingUseCase struct {
	repo       port.CampaignRepository
	deliveries port.DeliveryStore
	recorder   port.Recorder
	logger     *slog.Logger

	baseURL      string
	param        string
	clickTimeout time.Duration

	now   func() time.Time
	newID func() (string, error)
}

type nopRecorder struct{}

func (nopRecorder) Click()          {}
func (nopRecorder) ClickFailed()    {}
func (nopRecorder) Purchase(string) {}

// NewTrackingUseCase creates a use case over repo. Zero settings fall back
// to the "cid" correlation parameter and a 3 second click timeout.
func NewTrackingUseCase(repo port.CampaignRepository, settings Settings, logger *slog.Logger, opts ...Option) *TrackingUseCase {
	u := &TrackingUseCase{
		repo:         repo,
		recorder:     nopRecorder{},
		logger:       logger,
		baseURL:      settings.BaseURL,
		param:        settings.CorrelationParam,
		clickTimeout: settings.ClickTimeout,
		now:          time.Now,
		newID: func() (string, error) {
			return gonanoid.Generate(idAlphabet, idLength)
		},
	}
	if u.param == "" {
		u.param = domain.DefaultCorrelationParam
	}
	if u.clickTimeout <= 0 {
		u.clickTimeout = defaultClickTimeout
	}
	if u.logger == nil {
		u.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", port.ErrPersistence, op, err)
}

func invalidArgument(err error) error {
	return fmt.Errorf("%w: %w", port.ErrInvalidArgument, err)
}

// storeError passes ErrCampaignNotFound through and marks everything else
// as a persistence failure.
func storeError(op string, err error) error {
	if errors.Is(err, port.ErrCampaignNotFound) {
		return err
	}
	return persistenceError(op, err)
}

func (u *TrackingUseCase) timestamp() time.Time {
	// Postgres keeps microseconds; truncating keeps both stores in agreement.
	return u.now().UTC().Truncate(time.Microsecond)
}

// CreateCampaign stores a new campaign. Status defaults to Live and a
// non-empty TargetURL must be a valid http(s) URL.
func (u *TrackingUseCase) CreateCampaign(ctx context.Context, in domain.NewCampaign) (*domain.Campaign, error) {
	if in.Status == "" {
		in.Status = domain.StatusLive
	}
	if !in.Status.Valid() {
		return nil, invalidArgument(fmt.Errorf("unknown status %q", in.Status))
	}
	id, err := u.newID()
	if err != nil {
		return nil, fmt.Errorf("generate campaign id: %w", err)
	}
	c := &domain.Campaign{
		ID:        id,
		Name:      in.Name,
		Platform:  in.Platform,
		Format:    in.Format,
		Headline:  in.Headline,
		Caption:   in.Caption,
		ImageURL:  in.ImageURL,
		Status:    in.Status,
		CreatedAt: u.timestamp(),
	}
	if strings.TrimSpace(in.TargetURL) != "" {
		target, err := domain.ValidateTargetURL(in.TargetURL)
		if err != nil {
			return nil, invalidArgument(err)
		}
		c.TargetURL = &target
	}
	if err = u.repo.Create(ctx, c); err != nil {
		return nil, persistenceError("create campaign", err)
	}
	u.logger.Info("campaign created", slog.String("campaign_id", c.ID), slog.String("platform", c.Platform))
	return c, nil
}

// GetCampaign returns a campaign by id.
func (u *TrackingUseCase) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	if id == "" {
		return nil, port.ErrCampaignNotFound
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get campaign", err)
	}
	return c, nil
}

// ListCampaigns returns campaigns newest first.
func (u *TrackingUseCase) ListCampaigns(ctx context.Context, filter port.CampaignFilter) ([]domain.Campaign, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, invalidArgument(fmt.Errorf("unknown status %q", *filter.Status))
	}
	list, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, persistenceError("list campaigns", err)
	}
	return list, nil
}

// UpdateCampaign applies a descriptive patch. A target URL in the patch is
// validated like ConfigureTarget does.
func (u *TrackingUseCase) UpdateCampaign(ctx context.Context, id string, patch domain.CampaignPatch) (*domain.Campaign, error) {
	if id == "" {
		return nil, port.ErrCampaignNotFound
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, invalidArgument(fmt.Errorf("unknown status %q", *patch.Status))
	}
	if patch.TargetURL != nil {
		target, err := domain.ValidateTargetURL(*patch.TargetURL)
		if err != nil {
			return nil, invalidArgument(err)
		}
		patch.TargetURL = &target
	}
	c, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError("update campaign", err)
	}
	return c, nil
}

// ConfigureTarget validates rawURL, stores it as the campaign target and
// returns the tracking link. The URL is checked before the campaign is
// looked up.
func (u *TrackingUseCase) ConfigureTarget(ctx context.Context, id, rawURL string) (*port.TargetConfig, error) {
	target, err := domain.ValidateTargetURL(rawURL)
	if err != nil {
		return nil, invalidArgument(err)
	}
	if id == "" {
		return nil, port.ErrCampaignNotFound
	}
	c, err := u.repo.Update(ctx, id, domain.CampaignPatch{TargetURL: &target})
	if err != nil {
		return nil, storeError("save target url", err)
	}
	u.logger.Info("target url configured", slog.String("campaign_id", c.ID), slog.String("target_url", target))
	return &port.TargetConfig{
		TrackingLink: domain.TrackingLink(u.baseURL, c.ID, ""),
		Campaign:     c,
	}, nil
}

// TrackingLink returns the link of an existing campaign.
func (u *TrackingUseCase) TrackingLink(ctx context.Context, id, src string) (string, error) {
	c, err := u.GetCampaign(ctx, id)
	if err != nil {
		return "", err
	}
	return domain.TrackingLink(u.baseURL, c.ID, src), nil
}

// RegisterClick increments the click counter and builds the redirect URL.
// The increment runs under the click timeout; the URL is only returned once
// the store confirmed the write. Every call counts, repeated visits
// included.
func (u *TrackingUseCase) RegisterClick(ctx context.Context, id, src string) (string, error) {
	if id == "" {
		return "", port.ErrCampaignNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, u.clickTimeout)
	defer cancel()

	c, err := u.repo.IncrementClicks(ctx, id)
	if errors.Is(err, port.ErrCampaignNotFound) {
		return "", err
	}
	if err != nil {
		u.recorder.ClickFailed()
		return "", persistenceError("increment clicks", err)
	}
	if !c.Targeted() {
		// The store only increments targeted campaigns.
		return "", persistenceError("increment clicks", errors.New("store returned campaign without target url"))
	}
	u.recorder.Click()
	u.logger.Info("click tracked",
		slog.String("campaign_id", c.ID),
		slog.String("src", src),
		slog.Int64("clicks", c.Clicks),
	)
	return domain.RedirectURL(*c.TargetURL, u.param, c.ID), nil
}

// RecordPurchase attributes an order to a campaign. Orders without a token
// and tokens matching no campaign are acknowledged without error. When a
// delivery store is configured and deliveryID is set, a redelivered webhook
// is reported as a duplicate and not counted again. A failed increment
// releases the delivery claim and returns an error so the sender retries.
func (u *TrackingUseCase) RecordPurchase(ctx context.Context, order domain.OrderNotification, deliveryID string) (*domain.Attribution, error) {
	att := &domain.Attribution{OrderID: order.ID}

	id, ok := domain.CorrelateOrder(order, u.param)
	if !ok {
		att.Outcome = domain.OutcomeUnattributed
		u.recorder.Purchase(string(att.Outcome))
		u.logger.Info("order without correlation id, ignoring", slog.Int64("order_id", order.ID))
		return att, nil
	}
	att.CampaignID = id

	claimed := false
	if deliveryID != "" && u.deliveries != nil {
		first, err := u.deliveries.Claim(ctx, deliveryID)
		switch {
		case err != nil:
			u.logger.Warn("delivery store unavailable, processing without redelivery check",
				slog.String("delivery_id", deliveryID), slog.Any("error", err))
		case !first:
			att.Outcome = domain.OutcomeDuplicate
			u.recorder.Purchase(string(att.Outcome))
			u.logger.Info("duplicate order webhook, ignoring",
				slog.String("delivery_id", deliveryID), slog.String("campaign_id", id))
			return att, nil
		default:
			claimed = true
		}
	}

	c, err := u.repo.IncrementPurchases(ctx, id)
	if errors.Is(err, port.ErrCampaignNotFound) {
		att.Outcome = domain.OutcomeUnknownCampaign
		u.recorder.Purchase(string(att.Outcome))
		u.logger.Info("order correlation id not matching any campaign",
			slog.Int64("order_id", order.ID), slog.String("campaign_id", id))
		return att, nil
	}
	if err != nil {
		if claimed {
			if rerr := u.deliveries.Release(context.WithoutCancel(ctx), deliveryID); rerr != nil {
				u.logger.Error("release delivery claim", slog.String("delivery_id", deliveryID), slog.Any("error", rerr))
			}
		}
		return nil, persistenceError("increment purchases", err)
	}

	att.Outcome = domain.OutcomeAttributed
	att.Purchases = c.Purchases
	u.recorder.Purchase(string(att.Outcome))
	u.logger.Info("purchase tracked",
		slog.Int64("order_id", order.ID),
		slog.String("campaign_id", c.ID),
		slog.Int64("purchases", c.Purchases),
	)
	return att, nil
}

// Publish stores the creative as a live campaign plus an ad pointing at it.
func (u *TrackingUseCase) Publish(ctx context.Context, cr domain.Creative) (*port.PublishResult, error) {
	if strings.TrimSpace(cr.Platform) == "" {
		return nil, invalidArgument(errors.New("platform required"))
	}
	id, err := u.newID()
	if err != nil {
		return nil, fmt.Errorf("generate campaign id: %w", err)
	}
	now := u.timestamp()
	c := &domain.Campaign{
		ID:        id,
		Name:      fmt.Sprintf("%s Ad - %s", cr.Platform, now.Format("15:04:05")),
		Platform:  cr.Platform,
		Format:    cr.Format,
		Headline:  cr.Headline,
		Caption:   cr.Caption,
		ImageURL:  cr.ImageURL,
		Status:    domain.StatusLive,
		CreatedAt: now,
	}
	ad := &domain.Ad{
		ID:         uuid.NewString(),
		CampaignID: c.ID,
		Platform:   cr.Platform,
		Format:     cr.Format,
		Headline:   cr.Headline,
		Caption:    cr.Caption,
		ImageURL:   cr.ImageURL,
		Status:     domain.StatusLive,
		CreatedAt:  now,
	}
	if err = u.repo.CreateWithAd(ctx, c, ad); err != nil {
		return nil, persistenceError("publish", err)
	}
	u.logger.Info("creative published", slog.String("campaign_id", c.ID), slog.String("ad_id", ad.ID))
	return &port.PublishResult{Campaign: c, Ad: ad}, nil
}

// ListAds returns saved ads newest first.
func (u *TrackingUseCase) ListAds(ctx context.Context) ([]domain.Ad, error) {
	ads, err := u.repo.ListAds(ctx)
	if err != nil {
		return nil, persistenceError("list ads", err)
	}
	return ads, nil
}
