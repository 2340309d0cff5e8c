package models

import "time"

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Campaign is the service's record of a submitted campaign. ChainID is the
// campaign's identity on-chain; BookedLocations mirrors the program's list of
// committed location device IDs and is refreshed by the chain sync.
type Campaign struct {
	ID              string         `json:"id"`
	ChainID         int64          `json:"chain_id"`
	Name            string         `json:"name" validate:"required"`
	Description     string         `json:"description"`
	ContentURI      string         `json:"content_uri"`
	Status          CampaignStatus `json:"status"`
	StartDate       time.Time      `json:"start_date" validate:"required"`
	EndDate         time.Time      `json:"end_date" validate:"required,gtfield=StartDate"`
	DurationDays    int            `json:"duration_days"`
	BudgetLamports  int64          `json:"budget_lamports" validate:"gt=0"`
	BookedLocations []int64        `json:"booked_locations"`
	AdvertiserID    string         `json:"advertiser_id" validate:"required,uuid4"`
	TxSignature     string         `json:"tx_signature,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type CampaignSummary struct {
	ActiveCampaignCount int   `json:"active_campaign_count"`
	TotalBudgetLamports int64 `json:"total_budget_lamports"`
	TotalBookedSlots    int64 `json:"total_booked_slots"`
}
