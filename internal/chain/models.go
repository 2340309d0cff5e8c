package chain

import (
	"fmt"
	"strconv"
	"strings"
)

// LamportsPerSOL is the number of base units in one display unit of the
// chain's native currency. Prices entered in SOL are stored on-chain in
// lamports.
const LamportsPerSOL int64 = 1_000_000_000

// CampaignMetadata is the metadata record the on-chain program expects when
// creating a campaign. Budget is a structured field here; the program itself
// only knows a free-form additional-info string, so the budget is folded into
// that string at the wire boundary (see AdditionalInfo).
type CampaignMetadata struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContentURI   string `json:"content_uri"`
	StartDate    int64  `json:"start_date"` // unix seconds
	DurationDays int    `json:"duration_days"`
	Budget       int64  `json:"-"` // lamports
}

// AdditionalInfo serializes the budget into the legacy "budget:<n>" form the
// program stores verbatim.
func (m CampaignMetadata) AdditionalInfo() string {
	return fmt.Sprintf("budget:%d", m.Budget)
}

// ParseBudget extracts the budget from a stored additional-info string.
// Returns false when the string does not carry one.
func ParseBudget(additionalInfo string) (int64, bool) {
	for _, part := range strings.Split(additionalInfo, ";") {
		part = strings.TrimSpace(part)
		if v, ok := strings.CutPrefix(part, "budget:"); ok {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return 0, false
			}
			return n, true
		}
	}
	return 0, false
}

// BoothMetadata describes a physical display being registered on-chain.
type BoothMetadata struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	DisplayType string `json:"display_type"`
	DisplaySize string `json:"display_size"`
}

// Campaign is the on-chain view of a campaign as reported by the gateway.
// BookedLocations holds the numeric device IDs already committed to it.
type Campaign struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Authority       string  `json:"authority"` // advertiser wallet
	ContentURI      string  `json:"content_uri"`
	StartDate       int64   `json:"start_date"`
	DurationDays    int     `json:"duration_days"`
	AdditionalInfo  string  `json:"additional_info"`
	BookedLocations []int64 `json:"booked_locations"`
}

type txResponse struct {
	Signature  string `json:"signature"`
	DeviceID   int64  `json:"device_id,omitempty"`
	CampaignID int64  `json:"campaign_id,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
