package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"soulboard/internal/interfaces"
	"soulboard/internal/models"
)

type providerRepository struct {
	db *sql.DB
}

func NewProviderRepository(db *sql.DB) interfaces.ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) Create(ctx context.Context, provider *models.Provider) error {
	query := `
		INSERT INTO providers (name, email, wallet_address)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		provider.Name,
		provider.Email,
		provider.WalletAddress,
	).Scan(
		&provider.ID,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating provider: %v", err)
		return fmt.Errorf("failed to create provider: %w", err)
	}

	return nil
}

func (r *providerRepository) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	query := `
		SELECT id, name, email, wallet_address, created_at, updated_at
		FROM providers
		WHERE id = $1
	`

	var provider models.Provider
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&provider.ID,
		&provider.Name,
		&provider.Email,
		&provider.WalletAddress,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Printf("Error getting provider: %v", err)
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	return &provider, nil
}

func (r *providerRepository) GetByWallet(ctx context.Context, walletAddress string) (*models.Provider, error) {
	query := `
		SELECT id, name, email, wallet_address, created_at, updated_at
		FROM providers
		WHERE wallet_address = $1
	`

	var provider models.Provider
	err := r.db.QueryRowContext(ctx, query, walletAddress).Scan(
		&provider.ID,
		&provider.Name,
		&provider.Email,
		&provider.WalletAddress,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Printf("Error getting provider by wallet: %v", err)
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	return &provider, nil
}

func (r *providerRepository) List(ctx context.Context) ([]models.Provider, error) {
	query := `
		SELECT id, name, email, wallet_address, created_at, updated_at
		FROM providers
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("Error listing providers: %v", err)
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer rows.Close()

	var providers []models.Provider
	for rows.Next() {
		var p models.Provider
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Email,
			&p.WalletAddress,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			log.Printf("Error scanning provider: %v", err)
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		providers = append(providers, p)
	}

	if err = rows.Err(); err != nil {
		log.Printf("Error iterating providers: %v", err)
		return nil, fmt.Errorf("error iterating providers: %w", err)
	}

	return providers, nil
}

func (r *providerRepository) Update(ctx context.Context, id string, req *models.UpdateProviderRequest) error {
	setValues := []string{}
	args := []interface{}{}
	argId := 1

	if req.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argId))
		args = append(args, *req.Name)
		argId++
	}

	if req.Email != nil {
		setValues = append(setValues, fmt.Sprintf("email = $%d", argId))
		args = append(args, *req.Email)
		argId++
	}

	if len(setValues) == 0 {
		return fmt.Errorf("no fields to update")
	}

	setValues = append(setValues, "updated_at = NOW() AT TIME ZONE 'UTC'")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE providers SET %s WHERE id = $%d",
		strings.Join(setValues, ", "),
		argId,
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Printf("Error updating provider: %v", err)
		return fmt.Errorf("failed to update provider: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error getting rows affected: %v", err)
		return fmt.Errorf("failed to update provider: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("provider not found")
	}

	return nil
}
