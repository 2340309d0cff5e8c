package interfaces

import (
	"context"
	"time"

	"soulboard/internal/models"
)

// CampaignFilter defines the filter criteria for listing campaigns
type CampaignFilter struct {
	AdvertiserID string
	Status       string
	StartDate    time.Time
	EndDate      time.Time
	Limit        int
	Offset       int
}

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	GetByChainID(ctx context.Context, chainID int64) (*models.Campaign, error)
	List(ctx context.Context, filter CampaignFilter) ([]*models.Campaign, error)
	Summary(ctx context.Context, filter CampaignFilter) (*models.CampaignSummary, error)
	UpdateBookedLocations(ctx context.Context, chainID int64, locations []int64) error
	Update(ctx context.Context, id string, campaign *models.Campaign) error
}
