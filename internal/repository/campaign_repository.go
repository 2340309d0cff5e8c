package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"soulboard/internal/interfaces"
	"soulboard/internal/models"
)

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) interfaces.CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = `
	id, chain_id, name, description, content_uri, status,
	start_date, end_date, duration_days, budget_lamports, booked_locations,
	advertiser_id, tx_signature, created_at, updated_at
`

func scanCampaign(row interface {
	Scan(dest ...interface{}) error
}) (*models.Campaign, error) {
	var c models.Campaign
	var txSignature sql.NullString
	var booked []int64
	err := row.Scan(
		&c.ID,
		&c.ChainID,
		&c.Name,
		&c.Description,
		&c.ContentURI,
		&c.Status,
		&c.StartDate,
		&c.EndDate,
		&c.DurationDays,
		&c.BudgetLamports,
		pq.Array(&booked),
		&c.AdvertiserID,
		&txSignature,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.BookedLocations = booked
	if txSignature.Valid {
		c.TxSignature = txSignature.String
	}
	return &c, nil
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	query := `
		INSERT INTO campaigns (
			chain_id, name, description, content_uri, status,
			start_date, end_date, duration_days, budget_lamports, booked_locations,
			advertiser_id, tx_signature
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		campaign.ChainID,
		campaign.Name,
		campaign.Description,
		campaign.ContentURI,
		campaign.Status,
		campaign.StartDate,
		campaign.EndDate,
		campaign.DurationDays,
		campaign.BudgetLamports,
		pq.Array(campaign.BookedLocations),
		campaign.AdvertiserID,
		campaign.TxSignature,
	).Scan(
		&campaign.ID,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23503":
				return fmt.Errorf("advertiser %s does not exist", campaign.AdvertiserID)
			case "23505":
				return fmt.Errorf("campaign with chain id %d already recorded", campaign.ChainID)
			}
		}
		log.Printf("Error creating campaign: %v", err)
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Printf("Error getting campaign: %v", err)
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return c, nil
}

func (r *campaignRepository) GetByChainID(ctx context.Context, chainID int64) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE chain_id = $1`

	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, chainID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Printf("Error getting campaign by chain id: %v", err)
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return c, nil
}

func (r *campaignRepository) List(ctx context.Context, filter interfaces.CampaignFilter) ([]*models.Campaign, error) {
	conditions := []string{}
	args := []interface{}{}
	argId := 1

	if filter.AdvertiserID != "" {
		conditions = append(conditions, fmt.Sprintf("advertiser_id = $%d", argId))
		args = append(args, filter.AdvertiserID)
		argId++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argId))
		args = append(args, filter.Status)
		argId++
	}
	if !filter.StartDate.IsZero() {
		conditions = append(conditions, fmt.Sprintf("start_date >= $%d", argId))
		args = append(args, filter.StartDate)
		argId++
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, fmt.Sprintf("end_date <= $%d", argId))
		args = append(args, filter.EndDate)
		argId++
	}

	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argId)
		args = append(args, filter.Limit)
		argId++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argId)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing campaigns: %v", err)
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			log.Printf("Error scanning campaign: %v", err)
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	if err = rows.Err(); err != nil {
		log.Printf("Error iterating campaigns: %v", err)
		return nil, fmt.Errorf("error iterating campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) Summary(ctx context.Context, filter interfaces.CampaignFilter) (*models.CampaignSummary, error) {
	conditions := []string{"status = 'active'"}
	args := []interface{}{}
	argId := 1

	if filter.AdvertiserID != "" {
		conditions = append(conditions, fmt.Sprintf("advertiser_id = $%d", argId))
		args = append(args, filter.AdvertiserID)
		argId++
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(SUM(budget_lamports), 0),
			COALESCE(SUM(COALESCE(array_length(booked_locations, 1), 0)), 0)
		FROM campaigns
		WHERE %s
	`, strings.Join(conditions, " AND "))

	var summary models.CampaignSummary
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&summary.ActiveCampaignCount,
		&summary.TotalBudgetLamports,
		&summary.TotalBookedSlots,
	)
	if err != nil {
		log.Printf("Error computing campaign summary: %v", err)
		return nil, fmt.Errorf("failed to compute campaign summary: %w", err)
	}

	return &summary, nil
}

func (r *campaignRepository) UpdateBookedLocations(ctx context.Context, chainID int64, locations []int64) error {
	query := `
		UPDATE campaigns
		SET booked_locations = $1, updated_at = NOW() AT TIME ZONE 'UTC'
		WHERE chain_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, pq.Array(locations), chainID)
	if err != nil {
		log.Printf("Error updating booked locations: %v", err)
		return fmt.Errorf("failed to update booked locations: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error getting rows affected: %v", err)
		return fmt.Errorf("failed to update booked locations: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *campaignRepository) Update(ctx context.Context, id string, campaign *models.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $1, description = $2, content_uri = $3, status = $4,
			start_date = $5, end_date = $6, duration_days = $7,
			budget_lamports = $8, booked_locations = $9, tx_signature = $10,
			updated_at = NOW() AT TIME ZONE 'UTC'
		WHERE id = $11
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		campaign.Name,
		campaign.Description,
		campaign.ContentURI,
		campaign.Status,
		campaign.StartDate,
		campaign.EndDate,
		campaign.DurationDays,
		campaign.BudgetLamports,
		pq.Array(campaign.BookedLocations),
		campaign.TxSignature,
		id,
	)
	if err != nil {
		log.Printf("Error updating campaign: %v", err)
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error getting rows affected: %v", err)
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
