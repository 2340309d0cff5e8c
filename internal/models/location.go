package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"soulboard/internal/slots"
)

// Location is a registered advertising display. DeviceID is the numeric
// identity of the booth on-chain and is the key campaigns book against.
// Locations are never deleted, only deactivated.
type Location struct {
	ID             string    `json:"id" db:"id"`
	DeviceID       int64     `json:"device_id" db:"device_id"`
	Name           string    `json:"name" db:"name" validate:"required"`
	Address        string    `json:"address" db:"address"`
	City           string    `json:"city" db:"city"`
	State          string    `json:"state" db:"state"`
	ZipCode        string    `json:"zip_code" db:"zip_code"`
	DisplayType    string    `json:"display_type" db:"display_type"`
	DisplaySize    string    `json:"display_size" db:"display_size"`
	Description    string    `json:"description" db:"description"`
	AvailableSlots SlotList  `json:"available_slots" db:"available_slots"` // stored as JSONB
	Images         []string  `json:"images" db:"images"`
	Active         bool      `json:"active" db:"active"`
	PricePerDay    float64   `json:"price_per_day" db:"price_per_day"`
	FootTraffic    int       `json:"foot_traffic" db:"foot_traffic"`
	Impressions    int       `json:"impressions" db:"impressions"`
	OwnerID        string    `json:"owner_id" db:"owner_id"` // provider
	TxSignature    string    `json:"tx_signature,omitempty" db:"tx_signature"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// SlotList stores expanded slots as a JSONB column.
type SlotList []slots.ExpandedSlot

// Value implements driver.Valuer for JSONB serialization
func (s SlotList) Value() (driver.Value, error) {
	if s == nil {
		s = SlotList{}
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB deserialization
func (s *SlotList) Scan(value interface{}) error {
	if value == nil {
		*s = SlotList{}
		return nil
	}
	if bytes, ok := value.([]byte); ok {
		return json.Unmarshal(bytes, s)
	}
	return nil
}

type RegisterLocationRequest struct {
	Name        string               `json:"name" validate:"required"`
	Address     string               `json:"address" validate:"required"`
	City        string               `json:"city"`
	State       string               `json:"state"`
	ZipCode     string               `json:"zip_code"`
	DisplayType string               `json:"display_type" validate:"required"`
	DisplaySize string               `json:"display_size"`
	Description string               `json:"description"`
	Images      []string             `json:"images"`
	PricePerDay float64              `json:"price_per_day" validate:"gte=0"`
	FootTraffic int                  `json:"foot_traffic" validate:"gte=0"`
	Impressions int                  `json:"impressions" validate:"gte=0"`
	OwnerID     string               `json:"owner_id" validate:"required,uuid4"`
	TimeSlots   []slots.TimeSlotSpec `json:"time_slots" validate:"required,min=1"`
}

type UpdateLocationRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Address     *string   `json:"address,omitempty"`
	City        *string   `json:"city,omitempty"`
	State       *string   `json:"state,omitempty"`
	ZipCode     *string   `json:"zip_code,omitempty"`
	DisplayType *string   `json:"display_type,omitempty"`
	DisplaySize *string   `json:"display_size,omitempty"`
	Description *string   `json:"description,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	PricePerDay *float64  `json:"price_per_day,omitempty" validate:"omitempty,gte=0"`
	FootTraffic *int      `json:"foot_traffic,omitempty" validate:"omitempty,gte=0"`
	Impressions *int      `json:"impressions,omitempty" validate:"omitempty,gte=0"`
}
