package interfaces

import (
	"context"

	"soulboard/internal/models"
)

// ProviderRepository defines the interface for provider data operations
type ProviderRepository interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	GetByWallet(ctx context.Context, walletAddress string) (*models.Provider, error)
	List(ctx context.Context) ([]models.Provider, error)
	Update(ctx context.Context, id string, req *models.UpdateProviderRequest) error
}
