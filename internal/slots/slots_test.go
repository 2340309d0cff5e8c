package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	// Wednesday
	return time.Date(2025, 6, 11, 14, 30, 0, 0, time.UTC)
}

func TestExpandSingleDayIsStrictlyFuture(t *testing.T) {
	for _, day := range []DayPattern{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"} {
		spec := TimeSlotSpec{DayPattern: day, StartTime: "09:00", EndTime: "17:00", BasePrice: "1.5"}

		out, err := Expand(spec, fixedNow())
		require.NoError(t, err, "day %s", day)
		require.Len(t, out, 1, "day %s", day)

		assert.Greater(t, out[0].SlotID, fixedNow().Unix(), "slot for %s must be in the future", day)
	}
}

func TestExpandSameWeekdayAtEarlierHourSkipsToday(t *testing.T) {
	// now is Wednesday 14:30; a Wednesday 09:00 slot would already have
	// started today, so it must land a full week out.
	spec := TimeSlotSpec{DayPattern: "Wednesday", StartTime: "09:00", EndTime: "17:00", BasePrice: "1"}

	out, err := Expand(spec, fixedNow())
	require.NoError(t, err)
	require.Len(t, out, 1)

	want := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, want.Unix(), out[0].SlotID)
}

func TestExpandSameWeekdayAtLaterHourStillSkipsToday(t *testing.T) {
	// Even a start time later than now on the same weekday is pushed seven
	// days out; "today" is never produced.
	spec := TimeSlotSpec{DayPattern: "Wednesday", StartTime: "23:59", EndTime: "23:59", BasePrice: "1"}

	out, err := Expand(spec, fixedNow())
	require.NoError(t, err)
	require.Len(t, out, 1)

	want := time.Date(2025, 6, 18, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, want.Unix(), out[0].SlotID)
}

func TestExpandAggregateSizes(t *testing.T) {
	cases := []struct {
		pattern DayPattern
		count   int
	}{
		{Weekdays, 5},
		{Weekends, 2},
		{AllDays, 7},
		{"Friday", 1},
	}

	for _, tc := range cases {
		spec := TimeSlotSpec{DayPattern: tc.pattern, StartTime: "10:00", EndTime: "12:00", BasePrice: "0.25"}
		out, err := Expand(spec, fixedNow())
		require.NoError(t, err, "pattern %s", tc.pattern)
		assert.Len(t, out, tc.count, "pattern %s", tc.pattern)

		for _, slot := range out {
			assert.Equal(t, StatusAvailable, slot.Status)
			assert.Equal(t, "12:00", slot.EndTime)
			assert.Greater(t, slot.SlotID, fixedNow().Unix())
		}
	}
}

func TestExpandAllDaysCoversEveryWeekday(t *testing.T) {
	spec := TimeSlotSpec{DayPattern: AllDays, StartTime: "08:00", EndTime: "20:00", BasePrice: "2"}
	out, err := Expand(spec, fixedNow())
	require.NoError(t, err)
	require.Len(t, out, 7)

	seen := map[time.Weekday]bool{}
	for _, slot := range out {
		at := time.Unix(slot.SlotID, 0).UTC()
		seen[at.Weekday()] = true
		assert.Equal(t, 8, at.Hour())
		assert.Equal(t, 0, at.Minute())
		assert.Equal(t, 0, at.Second())
	}
	assert.Len(t, seen, 7)
}

func TestPriceToLamports(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"1", 1_000_000_000},
		{"1.5", 1_500_000_000},
		{"0.000000001", 1},
		{"0.25", 250_000_000},
		{"12.345678901", 12_345_678_901},
		{"0.0000000015", 2}, // tenth decimal rounds
	}

	for _, tc := range cases {
		got, err := PriceToLamports(tc.in)
		require.NoError(t, err, "price %q", tc.in)
		assert.Equal(t, tc.want, got, "price %q", tc.in)
	}
}

func TestPriceToLamportsRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "-1", "abc", "1.2.3"} {
		_, err := PriceToLamports(in)
		assert.Error(t, err, "price %q", in)
	}
}

func TestValidateRejectsIncompleteSpec(t *testing.T) {
	cases := []TimeSlotSpec{
		{StartTime: "09:00", EndTime: "17:00", BasePrice: "1"},
		{DayPattern: Weekdays, EndTime: "17:00", BasePrice: "1"},
		{DayPattern: Weekdays, StartTime: "09:00", BasePrice: "1"},
		{DayPattern: Weekdays, StartTime: "09:00", EndTime: "17:00"},
	}
	for i, spec := range cases {
		assert.ErrorIs(t, spec.Validate(), ErrIncompleteSpec, "case %d", i)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	bad := TimeSlotSpec{DayPattern: "Someday", StartTime: "09:00", EndTime: "17:00", BasePrice: "1"}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDayPattern)

	bad = TimeSlotSpec{DayPattern: Weekdays, StartTime: "25:00", EndTime: "17:00", BasePrice: "1"}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidTime)

	bad = TimeSlotSpec{DayPattern: Weekdays, StartTime: "09:00", EndTime: "17:60", BasePrice: "1"}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidTime)

	bad = TimeSlotSpec{DayPattern: Weekdays, StartTime: "09:00", EndTime: "17:00", BasePrice: "x"}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidPrice)
}

func TestExpandAllKeepsDuplicates(t *testing.T) {
	specs := []TimeSlotSpec{
		{DayPattern: "Monday", StartTime: "09:00", EndTime: "12:00", BasePrice: "1"},
		{DayPattern: "Monday", StartTime: "09:00", EndTime: "12:00", BasePrice: "1"},
	}
	out, err := ExpandAll(specs, fixedNow())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, out[0].SlotID, out[1].SlotID)
}
