package draft

import (
	"math"
	"sync"
	"time"

	"soulboard/internal/chain"
	"soulboard/internal/models"
)

// Step is a stage of the campaign draft flow.
type Step int

const (
	StepDetails Step = iota + 1
	StepBudget
	StepLocations
	StepCreative
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepBudget:
		return "budget"
	case StepLocations:
		return "locations"
	case StepCreative:
		return "creative"
	default:
		return "unknown"
	}
}

const secondsPerDay = 86400

// Builder accumulates campaign fields across the four draft steps and, once
// every step validates, produces the payload the chain boundary expects.
//
// A failed submission must not lose the advertiser's input: the builder stays
// on the creative step with every field intact, and only explicit success or
// cancellation discards it (both are the Store's job).
type Builder struct {
	mu sync.Mutex

	ID      string
	OwnerID string

	step      Step
	submitted bool

	name        string
	description string
	startDate   time.Time
	endDate     time.Time

	budgetLamports int64

	targetLocations []*models.Location

	creativeURL string
}

func newBuilder(id, ownerID string) *Builder {
	return &Builder{
		ID:      id,
		OwnerID: ownerID,
		step:    StepDetails,
	}
}

// Step returns the current step.
func (b *Builder) Step() Step {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.step
}

// SetDetails records the details fields. Values are stored regardless of
// validity; validation happens when advancing.
func (b *Builder) SetDetails(name, description string, start, end time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.submitted {
		return ErrAlreadySubmitted
	}
	b.name = name
	b.description = description
	b.startDate = start
	b.endDate = end
	return nil
}

func (b *Builder) SetBudget(lamports int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.submitted {
		return ErrAlreadySubmitted
	}
	b.budgetLamports = lamports
	return nil
}

func (b *Builder) SetTargetLocations(locations []*models.Location) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.submitted {
		return ErrAlreadySubmitted
	}
	b.targetLocations = locations
	return nil
}

func (b *Builder) SetCreativeURL(url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.submitted {
		return ErrAlreadySubmitted
	}
	b.creativeURL = url
	return nil
}

// Advance validates the current step and moves forward. It refuses with a
// *ValidationError while the step's required fields are invalid.
func (b *Builder) Advance() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.submitted {
		return ErrAlreadySubmitted
	}
	if err := b.validateStep(b.step); err != nil {
		return err
	}
	if b.step < StepCreative {
		b.step++
	}
	return nil
}

// Back moves one step backward. The step being left is not re-validated and
// its fields are kept.
func (b *Builder) Back() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.step > StepDetails {
		b.step--
	}
}

func (b *Builder) validateStep(s Step) error {
	switch s {
	case StepDetails:
		if b.name == "" {
			return &ValidationError{Step: s, Message: "name is required"}
		}
		if b.startDate.IsZero() {
			return &ValidationError{Step: s, Message: "start date is required"}
		}
		if b.endDate.IsZero() {
			return &ValidationError{Step: s, Message: "end date is required"}
		}
		if !b.endDate.After(b.startDate) {
			return &ValidationError{Step: s, Message: "end date must be after start date"}
		}
	case StepBudget:
		if b.budgetLamports <= 0 {
			return &ValidationError{Step: s, Message: "budget must be positive"}
		}
	case StepLocations:
		if len(b.targetLocations) == 0 {
			return &ValidationError{Step: s, Message: "at least one target location is required"}
		}
	case StepCreative:
		if b.creativeURL == "" {
			return &ValidationError{Step: s, Message: "a creative asset is required"}
		}
	}
	return nil
}

// BuildPayload validates every step and produces the chain-boundary payload:
// the campaign metadata plus the numeric device IDs of the target locations.
// Locations without a usable device ID are filtered out rather than sent.
func (b *Builder) BuildPayload() (chain.CampaignMetadata, []int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for s := StepDetails; s <= StepCreative; s++ {
		if err := b.validateStep(s); err != nil {
			return chain.CampaignMetadata{}, nil, err
		}
	}

	meta := chain.CampaignMetadata{
		Name:         b.name,
		Description:  b.description,
		ContentURI:   b.creativeURL,
		StartDate:    b.startDate.Unix(),
		DurationDays: durationDays(b.startDate, b.endDate),
		Budget:       b.budgetLamports,
	}

	ids := make([]int64, 0, len(b.targetLocations))
	for _, loc := range b.targetLocations {
		if loc == nil || loc.DeviceID <= 0 {
			continue
		}
		ids = append(ids, loc.DeviceID)
	}

	return meta, ids, nil
}

// markSubmitted finalizes the builder after a confirmed chain success.
func (b *Builder) markSubmitted() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitted = true
}

// Snapshot is the read view handed to the HTTP layer.
type Snapshot struct {
	ID              string             `json:"id"`
	OwnerID         string             `json:"owner_id"`
	Step            string             `json:"step"`
	Name            string             `json:"name,omitempty"`
	Description     string             `json:"description,omitempty"`
	StartDate       *time.Time         `json:"start_date,omitempty"`
	EndDate         *time.Time         `json:"end_date,omitempty"`
	BudgetLamports  int64              `json:"budget_lamports,omitempty"`
	TargetLocations []*models.Location `json:"target_locations,omitempty"`
	CreativeURL     string             `json:"creative_url,omitempty"`
}

func (b *Builder) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := Snapshot{
		ID:              b.ID,
		OwnerID:         b.OwnerID,
		Step:            b.step.String(),
		Name:            b.name,
		Description:     b.description,
		BudgetLamports:  b.budgetLamports,
		TargetLocations: b.targetLocations,
		CreativeURL:     b.creativeURL,
	}
	if !b.startDate.IsZero() {
		start := b.startDate
		snap.StartDate = &start
	}
	if !b.endDate.IsZero() {
		end := b.endDate
		snap.EndDate = &end
	}
	return snap
}

// durationDays is the campaign length in whole days, rounded up.
func durationDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Seconds() / secondsPerDay))
}
