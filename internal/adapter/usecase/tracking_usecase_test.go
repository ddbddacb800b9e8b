package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adtrack/internal/core/domain"
	"adtrack/internal/core/port"
	"adtrack/internal/core/port/mocks"
)

var (
	fixedNow = time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	errDB    = errors.New("connection reset by peer")
)

func ptr[T any](v T) *T { return &v }

func newUseCase(repo port.CampaignRepository, opts ...Option) *TrackingUseCase {
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() (string, error) { return "C1", nil }),
	}, opts...)
	return NewTrackingUseCase(repo, Settings{BaseURL: "https://t.example.com/c/"}, slog.New(slog.NewTextHandler(io.Discard, nil)), opts...)
}

func targeted(id, target string, clicks int64) *domain.Campaign {
	return &domain.Campaign{ID: id, TargetURL: ptr(target), Clicks: clicks, Status: domain.StatusLive}
}

// TestRegisterClickRedirects ensures the correlation parameter is appended
// with the right separator.
func TestRegisterClickRedirects(t *testing.T) {
	cases := map[string]string{
		"https://shop.example.com/p/1":     "https://shop.example.com/p/1?cid=C1",
		"https://shop.example.com/p/1?v=2": "https://shop.example.com/p/1?v=2&cid=C1",
	}
	for target, want := range cases {
		repo := mocks.NewMockCampaignRepository(t)
		repo.EXPECT().IncrementClicks(mock.Anything, "C1").Return(targeted("C1", target, 1), nil).Once()

		got, err := newUseCase(repo).RegisterClick(context.Background(), "C1", "instagram")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRegisterClickCountsEveryVisit(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().IncrementClicks(mock.Anything, "C1").Return(targeted("C1", "https://shop.example.com", 1), nil).Times(2)

	svc := newUseCase(repo)
	for i := 0; i < 2; i++ {
		_, err := svc.RegisterClick(context.Background(), "C1", "")
		require.NoError(t, err)
	}
}

func TestRegisterClickNotFound(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().IncrementClicks(mock.Anything, "nope").Return(nil, port.ErrCampaignNotFound)

	svc := newUseCase(repo)
	_, err := svc.RegisterClick(context.Background(), "nope", "")
	assert.ErrorIs(t, err, port.ErrCampaignNotFound)
	assert.NotErrorIs(t, err, port.ErrPersistence)

	_, err = svc.RegisterClick(context.Background(), "", "")
	assert.ErrorIs(t, err, port.ErrCampaignNotFound)
}

func TestRegisterClickPersistenceFailure(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().IncrementClicks(mock.Anything, "C1").Return(nil, errDB)

	got, err := newUseCase(repo).RegisterClick(context.Background(), "C1", "")
	assert.ErrorIs(t, err, port.ErrPersistence)
	assert.ErrorIs(t, err, errDB)
	assert.Empty(t, got)
}

// TestRegisterClickTimeout ensures a slow store fails the click instead of
// redirecting with an unconfirmed increment.
func TestRegisterClickTimeout(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().IncrementClicks(mock.Anything, "C1").
		RunAndReturn(func(ctx context.Context, id string) (*domain.Campaign, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	svc := NewTrackingUseCase(repo, Settings{ClickTimeout: 20 * time.Millisecond}, nil)
	start := time.Now()
	got, err := svc.RegisterClick(context.Background(), "C1", "")
	assert.ErrorIs(t, err, port.ErrPersistence)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, got)
	assert.Less(t, time.Since(start), 2*time.Second)
}

// TestConcurrentClicks ensures every concurrent visit reaches the store
// exactly once.
func TestConcurrentClicks(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)

	var clicks atomic.Int64
	repo.EXPECT().IncrementClicks(mock.Anything, "C1").
		RunAndReturn(func(ctx context.Context, id string) (*domain.Campaign, error) {
			return targeted(id, "https://shop.example.com", clicks.Add(1)), nil
		})

	svc := newUseCase(repo)
	const count = 50
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.RegisterClick(context.Background(), "C1", "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(count), clicks.Load())
}

func TestRecordPurchaseAttributed(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().IncrementPurchases(mock.Anything, "C1").Return(&domain.Campaign{ID: "C1", Purchases: 1}, nil).Once()

	att, err := newUseCase(repo).RecordPurchase(context.Background(), domain.OrderNotification{
		ID:          1001,
		LandingSite: "https://shop.example.com/p/1?cid=C1&utm=ig",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAttributed, att.Outcome)
	assert.Equal(t, "C1", att.CampaignID)
	assert.Equal(t, int64(1), att.Purchases)
}

func TestRecordPurchaseUnattributed(t *testing.T) {
	// No expectations: the repository must not be touched.
	repo := mocks.NewMockCampaignRepository(t)

	att, err := newUseCase(repo).RecordPurchase(context.Background(), domain.OrderNotification{
		LandingSite: "https://shop.example.com/other",
	}, "delivery-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnattributed, att.Outcome)
	assert.Empty(t, att.CampaignID)
}

func TestRecordPurchaseUnknownCampaign(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().IncrementPurchases(mock.Anything, "stale").Return(nil, port.ErrCampaignNotFound)

	att, err := newUseCase(repo).RecordPurchase(context.Background(), domain.OrderNotification{
		LandingSite: "/p/1?cid=stale",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnknownCampaign, att.Outcome)
}

func TestRecordPurchasePersistenceFailureReleasesClaim(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	deliveries := mocks.NewMockDeliveryStore(t)
	deliveries.EXPECT().Claim(mock.Anything, "delivery-1").Return(true, nil).Once()
	repo.EXPECT().IncrementPurchases(mock.Anything, "C1").Return(nil, errDB).Once()
	deliveries.EXPECT().Release(mock.Anything, "delivery-1").Return(nil).Once()

	att, err := newUseCase(repo, WithDeliveryStore(deliveries)).RecordPurchase(context.Background(), domain.OrderNotification{
		LandingSite: "/p/1?cid=C1",
	}, "delivery-1")
	assert.ErrorIs(t, err, port.ErrPersistence)
	assert.Nil(t, att)
}

func TestRecordPurchaseDuplicateDelivery(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	deliveries := mocks.NewMockDeliveryStore(t)
	deliveries.EXPECT().Claim(mock.Anything, "delivery-1").Return(false, nil).Once()

	att, err := newUseCase(repo, WithDeliveryStore(deliveries)).RecordPurchase(context.Background(), domain.OrderNotification{
		LandingSite: "/p/1?cid=C1",
	}, "delivery-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDuplicate, att.Outcome)
}

func TestRecordPurchaseDeliveryStoreDown(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	deliveries := mocks.NewMockDeliveryStore(t)
	deliveries.EXPECT().Claim(mock.Anything, "delivery-1").Return(false, errors.New("redis: connection refused"))
	repo.EXPECT().IncrementPurchases(mock.Anything, "C1").Return(&domain.Campaign{ID: "C1", Purchases: 4}, nil)

	att, err := newUseCase(repo, WithDeliveryStore(deliveries)).RecordPurchase(context.Background(), domain.OrderNotification{
		LandingSite: "/p/1?cid=C1",
	}, "delivery-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAttributed, att.Outcome)
	assert.Equal(t, int64(4), att.Purchases)
}

func TestConfigureTarget(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().
		Update(mock.Anything, "C1", mock.MatchedBy(func(p domain.CampaignPatch) bool {
			return p.TargetURL != nil && *p.TargetURL == "https://shop.example.com/p/1" && p.Name == nil
		})).
		Return(targeted("C1", "https://shop.example.com/p/1", 0), nil)

	cfg, err := newUseCase(repo).ConfigureTarget(context.Background(), "C1", "  https://shop.example.com/p/1 ")
	require.NoError(t, err)
	assert.Equal(t, "https://t.example.com/c/C1", cfg.TrackingLink)
	assert.Equal(t, "C1", cfg.Campaign.ID)
}

func TestConfigureTargetErrors(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	svc := newUseCase(repo)

	for _, raw := range []string{"", "shop.example.com/p/1", "ftp://shop.example.com"} {
		_, err := svc.ConfigureTarget(context.Background(), "C1", raw)
		assert.ErrorIs(t, err, port.ErrInvalidArgument, raw)
	}

	repo.EXPECT().Update(mock.Anything, "missing", mock.Anything).Return(nil, port.ErrCampaignNotFound).Once()
	_, err := svc.ConfigureTarget(context.Background(), "missing", "https://shop.example.com")
	assert.ErrorIs(t, err, port.ErrCampaignNotFound)

	repo.EXPECT().Update(mock.Anything, "C1", mock.Anything).Return(nil, errDB).Once()
	_, err = svc.ConfigureTarget(context.Background(), "C1", "https://shop.example.com")
	assert.ErrorIs(t, err, port.ErrPersistence)
}

func TestCreateCampaignDefaults(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().
		Create(mock.Anything, mock.MatchedBy(func(c *domain.Campaign) bool {
			return c.ID == "C1" && c.Status == domain.StatusLive && c.Clicks == 0 &&
				c.Purchases == 0 && c.TargetURL == nil && c.CreatedAt.Equal(fixedNow)
		})).
		Return(nil)

	c, err := newUseCase(repo).CreateCampaign(context.Background(), domain.NewCampaign{Name: "Summer"})
	require.NoError(t, err)
	assert.Equal(t, "Summer", c.Name)
	assert.False(t, c.Targeted())
}

func TestCreateCampaignValidation(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	svc := newUseCase(repo)

	_, err := svc.CreateCampaign(context.Background(), domain.NewCampaign{Status: "Paused"})
	assert.ErrorIs(t, err, port.ErrInvalidArgument)

	_, err = svc.CreateCampaign(context.Background(), domain.NewCampaign{TargetURL: "not a url"})
	assert.ErrorIs(t, err, port.ErrInvalidArgument)
}

func TestDefaultIDGenerator(t *testing.T) {
	svc := NewTrackingUseCase(mocks.NewMockCampaignRepository(t), Settings{}, nil)
	id, err := svc.newID()
	require.NoError(t, err)
	assert.Len(t, id, idLength)
	assert.Regexp(t, `^[A-Za-z0-9]+$`, id)
}

func TestPublish(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().
		CreateWithAd(mock.Anything, mock.AnythingOfType("*domain.Campaign"), mock.AnythingOfType("*domain.Ad")).
		Run(func(ctx context.Context, c *domain.Campaign, ad *domain.Ad) {
			assert.Equal(t, c.ID, ad.CampaignID)
		}).
		Return(nil)

	res, err := newUseCase(repo).Publish(context.Background(), domain.Creative{Platform: "Instagram", Format: "Story", Headline: "Limited Time Offer!"})
	require.NoError(t, err)
	assert.Equal(t, "Instagram Ad - 12:30:45", res.Campaign.Name)
	assert.Equal(t, domain.StatusLive, res.Campaign.Status)
	assert.NotEmpty(t, res.Ad.ID)

	_, err = newUseCase(repo).Publish(context.Background(), domain.Creative{})
	assert.ErrorIs(t, err, port.ErrInvalidArgument)
}

func TestUpdateCampaignRejectsUnknownStatus(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	_, err := newUseCase(repo).UpdateCampaign(context.Background(), "C1", domain.CampaignPatch{Status: ptr(domain.Status("Archived"))})
	assert.ErrorIs(t, err, port.ErrInvalidArgument)
}
