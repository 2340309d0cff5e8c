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

type locationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) interfaces.LocationRepository {
	return &locationRepository{db: db}
}

const locationColumns = `
	id, device_id, name, address, city, state, zip_code,
	display_type, display_size, description, available_slots, images,
	active, price_per_day, foot_traffic, impressions, owner_id,
	tx_signature, created_at, updated_at
`

func scanLocation(row interface {
	Scan(dest ...interface{}) error
}) (*models.Location, error) {
	var loc models.Location
	var txSignature sql.NullString
	err := row.Scan(
		&loc.ID,
		&loc.DeviceID,
		&loc.Name,
		&loc.Address,
		&loc.City,
		&loc.State,
		&loc.ZipCode,
		&loc.DisplayType,
		&loc.DisplaySize,
		&loc.Description,
		&loc.AvailableSlots,
		pq.Array(&loc.Images),
		&loc.Active,
		&loc.PricePerDay,
		&loc.FootTraffic,
		&loc.Impressions,
		&loc.OwnerID,
		&txSignature,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if txSignature.Valid {
		loc.TxSignature = txSignature.String
	}
	return &loc, nil
}

func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (
			device_id, name, address, city, state, zip_code,
			display_type, display_size, description, available_slots, images,
			active, price_per_day, foot_traffic, impressions, owner_id, tx_signature
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		location.DeviceID,
		location.Name,
		location.Address,
		location.City,
		location.State,
		location.ZipCode,
		location.DisplayType,
		location.DisplaySize,
		location.Description,
		location.AvailableSlots,
		pq.Array(location.Images),
		location.Active,
		location.PricePerDay,
		location.FootTraffic,
		location.Impressions,
		location.OwnerID,
		location.TxSignature,
	).Scan(
		&location.ID,
		&location.CreatedAt,
		&location.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("location with device id %d already registered", location.DeviceID)
		}
		log.Printf("Error creating location: %v", err)
		return fmt.Errorf("failed to create location: %w", err)
	}

	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id string) (*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`

	loc, err := scanLocation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Printf("Error getting location: %v", err)
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return loc, nil
}

func (r *locationRepository) GetByDeviceID(ctx context.Context, deviceID int64) (*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE device_id = $1`

	loc, err := scanLocation(r.db.QueryRowContext(ctx, query, deviceID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Printf("Error getting location by device id: %v", err)
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return loc, nil
}

func (r *locationRepository) List(ctx context.Context, filter interfaces.LocationFilter) ([]*models.Location, error) {
	conditions := []string{}
	args := []interface{}{}
	argId := 1

	if filter.OwnerID != "" {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argId))
		args = append(args, filter.OwnerID)
		argId++
	}
	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("city = $%d", argId))
		args = append(args, filter.City)
		argId++
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "active = TRUE")
	}

	query := `SELECT ` + locationColumns + ` FROM locations`
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
		log.Printf("Error listing locations: %v", err)
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			log.Printf("Error scanning location: %v", err)
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err = rows.Err(); err != nil {
		log.Printf("Error iterating locations: %v", err)
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

func (r *locationRepository) Update(ctx context.Context, id string, req *models.UpdateLocationRequest) error {
	setValues := []string{}
	args := []interface{}{}
	argId := 1

	add := func(column string, value interface{}) {
		setValues = append(setValues, fmt.Sprintf("%s = $%d", column, argId))
		args = append(args, value)
		argId++
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Address != nil {
		add("address", *req.Address)
	}
	if req.City != nil {
		add("city", *req.City)
	}
	if req.State != nil {
		add("state", *req.State)
	}
	if req.ZipCode != nil {
		add("zip_code", *req.ZipCode)
	}
	if req.DisplayType != nil {
		add("display_type", *req.DisplayType)
	}
	if req.DisplaySize != nil {
		add("display_size", *req.DisplaySize)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Images != nil {
		add("images", pq.Array(*req.Images))
	}
	if req.PricePerDay != nil {
		add("price_per_day", *req.PricePerDay)
	}
	if req.FootTraffic != nil {
		add("foot_traffic", *req.FootTraffic)
	}
	if req.Impressions != nil {
		add("impressions", *req.Impressions)
	}

	if len(setValues) == 0 {
		return fmt.Errorf("no fields to update")
	}

	setValues = append(setValues, "updated_at = NOW() AT TIME ZONE 'UTC'")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE locations SET %s WHERE id = $%d",
		strings.Join(setValues, ", "),
		argId,
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Printf("Error updating location: %v", err)
		return fmt.Errorf("failed to update location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error getting rows affected: %v", err)
		return fmt.Errorf("failed to update location: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *locationRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `
		UPDATE locations
		SET active = $1, updated_at = NOW() AT TIME ZONE 'UTC'
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		log.Printf("Error setting location active state: %v", err)
		return fmt.Errorf("failed to update location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error getting rows affected: %v", err)
		return fmt.Errorf("failed to update location: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
