package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adtrack/internal/core/domain"
	"adtrack/internal/core/port"
)

const campaignColumns = `id, name, platform, format, headline, caption, image_url, status, target_url, clicks, purchases, created_at, updated_at`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. Counter increments are single UPDATE statements so concurrent
// clicks never lose updates.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Platform,
		&c.Format,
		&c.Headline,
		&c.Caption,
		&c.ImageURL,
		&c.Status,
		&c.TargetURL,
		&c.Clicks,
		&c.Purchases,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const insertCampaign = `INSERT INTO campaigns (` + campaignColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,0,0,$10,$10)`

// Create inserts a campaign with zero counters.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	_, err := r.pool.Exec(ctx, insertCampaign, c.ID, c.Name, c.Platform, c.Format, c.Headline, c.Caption, c.ImageURL, c.Status, c.TargetURL, c.CreatedAt)
	if err != nil {
		return err
	}
	c.Clicks, c.Purchases, c.UpdatedAt = 0, 0, c.CreatedAt
	return nil
}

// CreateWithAd inserts a campaign and its ad in one transaction.
func (r *CampaignRepository) CreateWithAd(ctx context.Context, c *domain.Campaign, ad *domain.Ad) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	if _, err = tx.Exec(ctx, insertCampaign, c.ID, c.Name, c.Platform, c.Format, c.Headline, c.Caption, c.ImageURL, c.Status, c.TargetURL, c.CreatedAt); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO ads (id, campaign_id, platform, format, headline, caption, image_url, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`, ad.ID, ad.CampaignID, ad.Platform, ad.Format, ad.Headline, ad.Caption, ad.ImageURL, ad.Status, ad.CreatedAt)
	if err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return err
	}
	c.Clicks, c.Purchases, c.UpdatedAt = 0, 0, c.CreatedAt
	return nil
}

// GetByID returns a campaign by id.
func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
}

// Update writes the fields set in patch. An empty patch behaves like GetByID.
func (r *CampaignRepository) Update(ctx context.Context, id string, patch domain.CampaignPatch) (*domain.Campaign, error) {
	set := patchColumns(patch)
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set["updated_at"] = time.Now().UTC()

	query, args, err := psql.Update("campaigns").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + campaignColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}
	return scanCampaign(r.pool.QueryRow(ctx, query, args...))
}

func patchColumns(p domain.CampaignPatch) map[string]interface{} {
	set := make(map[string]interface{})
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Platform != nil {
		set["platform"] = *p.Platform
	}
	if p.Format != nil {
		set["format"] = *p.Format
	}
	if p.Headline != nil {
		set["headline"] = *p.Headline
	}
	if p.Caption != nil {
		set["caption"] = *p.Caption
	}
	if p.ImageURL != nil {
		set["image_url"] = *p.ImageURL
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.TargetURL != nil {
		set["target_url"] = *p.TargetURL
	}
	return set
}

// List returns campaigns ordered by creation time, newest first.
func (r *CampaignRepository) List(ctx context.Context, filter port.CampaignFilter) ([]domain.Campaign, error) {
	b := psql.Select(campaignColumns).From("campaigns").OrderBy("created_at DESC", "id")
	if filter.Status != nil {
		b = b.Where(sq.Eq{"status": string(*filter.Status)})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
}

// IncrementClicks adds one click in a single statement. Campaigns without
// a target URL are not matched and yield port.ErrCampaignNotFound.
func (r *CampaignRepository) IncrementClicks(ctx context.Context, id string) (*domain.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx, `UPDATE campaigns
SET clicks = clicks + 1, updated_at = now()
WHERE id = $1 AND target_url IS NOT NULL AND target_url <> ''
RETURNING `+campaignColumns, id))
}

// IncrementPurchases adds one purchase in a single statement.
func (r *CampaignRepository) IncrementPurchases(ctx context.Context, id string) (*domain.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx, `UPDATE campaigns
SET purchases = purchases + 1, updated_at = now()
WHERE id = $1
RETURNING `+campaignColumns, id))
}

// ListAds returns saved ads, newest first.
func (r *CampaignRepository) ListAds(ctx context.Context) ([]domain.Ad, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, COALESCE(campaign_id, ''), platform, format, headline, caption, image_url, status, created_at
FROM ads ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Ad, error) {
		var a domain.Ad
		err := row.Scan(&a.ID, &a.CampaignID, &a.Platform, &a.Format, &a.Headline, &a.Caption, &a.ImageURL, &a.Status, &a.CreatedAt)
		return a, err
	})
}
