package models

import "time"

// Provider owns one or more registered locations. WalletAddress is the
// on-chain identity booth registrations are attributed to.
type Provider struct {
	ID            string    `json:"id"`
	Name          string    `json:"name" validate:"required,min=3,max=255"`
	Email         string    `json:"email,omitempty" validate:"omitempty,email"`
	WalletAddress string    `json:"wallet_address" validate:"required,min=32,max=44"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateProviderRequest struct {
	Name          string `json:"name" validate:"required,min=3,max=255"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	WalletAddress string `json:"wallet_address" validate:"required,min=32,max=44"`
}

type UpdateProviderRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}
