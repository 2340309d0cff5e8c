package booking

import "fmt"

// ConflictError is returned when a location is already committed to an
// on-chain campaign. The committed state is authoritative; no retry applies.
type ConflictError struct {
	LocationID   int64
	CampaignID   int64
	CampaignName string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("location %d is already booked by campaign %q (id=%d)", e.LocationID, e.CampaignName, e.CampaignID)
}
