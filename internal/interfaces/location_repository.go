package interfaces

import (
	"context"

	"soulboard/internal/models"
)

// LocationFilter defines the filter criteria for listing locations
type LocationFilter struct {
	OwnerID    string
	City       string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// LocationRepository defines the interface for location data operations.
// Locations are never deleted; SetActive is the only way to take one off
// the marketplace.
type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id string) (*models.Location, error)
	GetByDeviceID(ctx context.Context, deviceID int64) (*models.Location, error)
	List(ctx context.Context, filter LocationFilter) ([]*models.Location, error)
	Update(ctx context.Context, id string, req *models.UpdateLocationRequest) error
	SetActive(ctx context.Context, id string, active bool) error
}
