package booking

import (
	"context"
	"sort"
	"sync"

	"soulboard/internal/chain"
	"soulboard/internal/models"
)

// ChainClient is the slice of the chain boundary the ledger needs.
type ChainClient interface {
	AddLocationToCampaign(ctx context.Context, campaignID, locationID int64) (string, error)
}

// BookResult distinguishes a fresh booking from an idempotent no-op.
type BookResult int

const (
	Booked BookResult = iota
	AlreadyBooked
)

// Ledger tracks each user's personally booked locations and guards the
// invariant that a location is free, personally booked, or chain-committed,
// never more than one at once from this ledger's point of view.
//
// Per location the reachable transitions are:
//
//	Free → PersonallyBooked → ChainCommitted
//	Free → ChainCommitted (committed by another flow)
//	PersonallyBooked → Free (explicit removal)
//
// ChainCommitted is terminal; the program exposes no detach operation yet.
//
// The ledger does not fetch campaign snapshots itself; callers pass in the
// current snapshot and the ledger only evaluates it.
type Ledger struct {
	client ChainClient

	mu     sync.Mutex
	booked map[string]map[int64]*models.Location // user ID → device ID → location
}

func NewLedger(client ChainClient) *Ledger {
	return &Ledger{
		client: client,
		booked: make(map[string]map[int64]*models.Location),
	}
}

// IsChainCommitted reports whether any campaign in the snapshot already holds
// the location, returning the owning campaign when one does.
func (l *Ledger) IsChainCommitted(locationID int64, campaigns []chain.Campaign) (*chain.Campaign, bool) {
	for i := range campaigns {
		for _, id := range campaigns[i].BookedLocations {
			if id == locationID {
				return &campaigns[i], true
			}
		}
	}
	return nil, false
}

// Book adds the location to the user's personal set. Booking is refused with
// a *ConflictError when the location is already chain-committed, and is an
// idempotent no-op (AlreadyBooked) when it is already in the personal set.
func (l *Ledger) Book(userID string, loc *models.Location, campaigns []chain.Campaign) (BookResult, error) {
	if owner, committed := l.IsChainCommitted(loc.DeviceID, campaigns); committed {
		return 0, &ConflictError{
			LocationID:   loc.DeviceID,
			CampaignID:   owner.ID,
			CampaignName: owner.Name,
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	set := l.booked[userID]
	if set == nil {
		set = make(map[int64]*models.Location)
		l.booked[userID] = set
	}

	if _, ok := set[loc.DeviceID]; ok {
		return AlreadyBooked, nil
	}
	set[loc.DeviceID] = loc
	return Booked, nil
}

// Remove drops the location from the user's personal set. Removing an absent
// location is not an error.
func (l *Ledger) Remove(userID string, locationID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if set := l.booked[userID]; set != nil {
		delete(set, locationID)
	}
}

// List returns the user's personally booked locations ordered by device ID.
func (l *Ledger) List(userID string) []*models.Location {
	l.mu.Lock()
	defer l.mu.Unlock()

	set := l.booked[userID]
	out := make([]*models.Location, 0, len(set))
	for _, loc := range set {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
	return out
}

// IsBooked reports whether the location is in the user's personal set.
func (l *Ledger) IsBooked(userID string, locationID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	set := l.booked[userID]
	if set == nil {
		return false
	}
	_, ok := set[locationID]
	return ok
}

// AttachToCampaign commits the location to an on-chain campaign through the
// chain boundary. The personal booking is removed only after the chain call
// confirms success, so "personally booked" and "chain-committed" are never
// simultaneously true; on failure the personal state is left untouched and
// the chain error is returned as-is for the caller to surface.
func (l *Ledger) AttachToCampaign(ctx context.Context, userID string, locationID, campaignID int64) (string, error) {
	sig, err := l.client.AddLocationToCampaign(ctx, campaignID, locationID)
	if err != nil {
		return "", err
	}

	l.Remove(userID, locationID)
	return sig, nil
}
