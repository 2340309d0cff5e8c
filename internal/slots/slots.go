package slots

import (
	"time"

	"soulboard/internal/chain"
)

// DayPattern selects which weekdays a recurring slot covers. It is either a
// single weekday name or one of the aggregate tokens below.
type DayPattern string

const (
	Weekdays DayPattern = "Weekdays"
	Weekends DayPattern = "Weekends"
	AllDays  DayPattern = "All Days"
)

// SlotStatus is the booking state of a single expanded slot.
type SlotStatus string

const (
	StatusAvailable   SlotStatus = "available"
	StatusBooked      SlotStatus = "booked"
	StatusUnavailable SlotStatus = "unavailable"
)

// TimeSlotSpec is the provider-facing description of a recurring slot:
// a day pattern, a daily time window and a price in SOL.
type TimeSlotSpec struct {
	DayPattern DayPattern `json:"day_pattern"`
	StartTime  string     `json:"start_time"` // HH:MM, 24-hour
	EndTime    string     `json:"end_time"`   // HH:MM, 24-hour
	BasePrice  string     `json:"base_price"` // decimal SOL amount
}

// ExpandedSlot is one concrete dated slot produced from a TimeSlotSpec.
// SlotID is the unix-seconds timestamp of the slot's start instant and
// doubles as the slot's on-chain identity. Price is in lamports.
//
// Slots are immutable once created; a new spec submission produces new
// slots rather than mutating old ones.
type ExpandedSlot struct {
	SlotID  int64      `json:"slot_id"`
	Price   int64      `json:"price"`
	Status  SlotStatus `json:"status"`
	EndTime string     `json:"end_time"`
}

// dayPatternTable maps each pattern to its target weekdays, Monday first.
var dayPatternTable = map[DayPattern][]time.Weekday{
	"Monday":    {time.Monday},
	"Tuesday":   {time.Tuesday},
	"Wednesday": {time.Wednesday},
	"Thursday":  {time.Thursday},
	"Friday":    {time.Friday},
	"Saturday":  {time.Saturday},
	"Sunday":    {time.Sunday},
	Weekdays:    {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	Weekends:    {time.Saturday, time.Sunday},
	AllDays:     {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday},
}

// TargetWeekdays resolves a day pattern to its concrete weekdays.
func (p DayPattern) TargetWeekdays() ([]time.Weekday, bool) {
	days, ok := dayPatternTable[p]
	return days, ok
}

// Expand turns a spec into one ExpandedSlot per target weekday, each dated at
// the next strictly-future occurrence of that weekday relative to now. When
// now already falls on a target weekday the slot lands seven days out, never
// today, so a produced slot can never start before the registering
// transaction lands.
//
// The caller is expected to run Validate first; Expand returns the underlying
// parse error only when handed an unvalidated spec.
//
// Overlapping specs are not deduplicated here: duplicate SlotIDs are the
// consuming booking layer's problem to merge or reject.
func Expand(spec TimeSlotSpec, now time.Time) ([]ExpandedSlot, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	hour, minute, _ := parseClock(spec.StartTime)
	price, _ := PriceToLamports(spec.BasePrice)
	targets, _ := spec.DayPattern.TargetWeekdays()

	out := make([]ExpandedSlot, 0, len(targets))
	for _, target := range targets {
		start := nextOccurrence(now, target, hour, minute)
		out = append(out, ExpandedSlot{
			SlotID:  start.Unix(),
			Price:   price,
			Status:  StatusAvailable,
			EndTime: spec.EndTime,
		})
	}
	return out, nil
}

// nextOccurrence returns the next strictly-future occurrence of the target
// weekday at hour:minute. diff==0 means "today", which is pushed a full week
// ahead.
func nextOccurrence(now time.Time, target time.Weekday, hour, minute int) time.Time {
	diff := (7 + int(target) - int(now.Weekday())) % 7
	if diff == 0 {
		diff = 7
	}
	d := now.AddDate(0, 0, diff)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, now.Location())
}

// ExpandAll expands every spec against the same reference instant and
// concatenates the results in input order.
func ExpandAll(specs []TimeSlotSpec, now time.Time) ([]ExpandedSlot, error) {
	var out []ExpandedSlot
	for _, spec := range specs {
		expanded, err := Expand(spec, now)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// LamportsPerSOL re-exported for callers that only import this package.
const LamportsPerSOL = chain.LamportsPerSOL
