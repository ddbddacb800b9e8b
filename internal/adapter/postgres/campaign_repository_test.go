package postgres

import (
	"context"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adtrack/internal/config/configs"
	"adtrack/internal/core/domain"
	"adtrack/internal/core/port"
	"adtrack/internal/db"
)

// newTestRepository connects to the database named by PSQL_TEST_ADDRESS,
// applies migrations and returns a repository. The test is skipped when the
// variable is unset.
func newTestRepository(t *testing.T) *CampaignRepository {
	t.Helper()
	addr := os.Getenv("PSQL_TEST_ADDRESS")
	if addr == "" {
		t.Skip("PSQL_TEST_ADDRESS not set")
	}
	require.NoError(t, db.Migrate(addr))

	u, err := url.Parse(addr)
	require.NoError(t, err)
	pool, err := db.NewPostgresPool(context.Background(), configs.Postgres{Addr: *u, MaxConns: 16})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewCampaignRepository(pool)
}

func newCampaign(target string) *domain.Campaign {
	c := &domain.Campaign{
		ID:        uuid.NewString()[:12],
		Name:      "Integration",
		Platform:  "Instagram",
		Format:    "Post",
		Status:    domain.StatusLive,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if target != "" {
		c.TargetURL = &target
	}
	return c
}

func TestCampaignRepositoryIntegration(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	c := newCampaign("")
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Clicks)
	assert.Nil(t, got.TargetURL)

	_, err = repo.IncrementClicks(ctx, c.ID)
	assert.ErrorIs(t, err, port.ErrCampaignNotFound, "no target url")

	target := "https://shop.example.com/p/1"
	updated, err := repo.Update(ctx, c.ID, domain.CampaignPatch{TargetURL: &target})
	require.NoError(t, err)
	require.NotNil(t, updated.TargetURL)
	assert.Equal(t, target, *updated.TargetURL)

	const workers = 25
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.IncrementClicks(ctx, c.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, err := repo.IncrementPurchases(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), p.Clicks)
	assert.Equal(t, int64(1), p.Purchases)

	_, err = repo.GetByID(ctx, "does-not-exist")
	assert.ErrorIs(t, err, port.ErrCampaignNotFound)
	_, err = repo.IncrementPurchases(ctx, "does-not-exist")
	assert.ErrorIs(t, err, port.ErrCampaignNotFound)
}

func TestCampaignRepositoryCreateWithAdIntegration(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	c := newCampaign("")
	ad := &domain.Ad{ID: uuid.NewString(), CampaignID: c.ID, Platform: "Instagram", Status: domain.StatusLive, CreatedAt: c.CreatedAt}
	require.NoError(t, repo.CreateWithAd(ctx, c, ad))

	ads, err := repo.ListAds(ctx)
	require.NoError(t, err)
	var found bool
	for _, a := range ads {
		if a.ID == ad.ID {
			found = true
			assert.Equal(t, c.ID, a.CampaignID)
		}
	}
	assert.True(t, found)

	live := domain.StatusLive
	list, err := repo.List(ctx, port.CampaignFilter{Status: &live})
	require.NoError(t, err)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt), "newest first")
	}
}
