package slots

import (
	"fmt"
	"strconv"
	"strings"

	"soulboard/internal/chain"
)

// Validate checks that all four fields of the spec are present and parseable.
// An incomplete spec must never reach Expand.
func (s TimeSlotSpec) Validate() error {
	if s.DayPattern == "" || s.StartTime == "" || s.EndTime == "" || s.BasePrice == "" {
		return ErrIncompleteSpec
	}

	if _, ok := s.DayPattern.TargetWeekdays(); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDayPattern, s.DayPattern)
	}

	if _, _, err := parseClock(s.StartTime); err != nil {
		return fmt.Errorf("%w: start_time %q", ErrInvalidTime, s.StartTime)
	}
	if _, _, err := parseClock(s.EndTime); err != nil {
		return fmt.Errorf("%w: end_time %q", ErrInvalidTime, s.EndTime)
	}

	if _, err := PriceToLamports(s.BasePrice); err != nil {
		return err
	}

	return nil
}

// parseClock parses an HH:MM 24-hour clock value.
func parseClock(v string) (hour, minute int, err error) {
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTime
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidTime
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidTime
	}
	return hour, minute, nil
}

// PriceToLamports converts a decimal SOL amount to lamports, rounding half
// away from zero past nine decimal places. Decimal string math avoids float
// drift on large amounts.
func PriceToLamports(price string) (int64, error) {
	price = strings.TrimSpace(price)
	if price == "" || strings.HasPrefix(price, "-") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, price)
	}

	whole, frac, _ := strings.Cut(price, ".")
	if whole == "" {
		whole = "0"
	}

	wholeN, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, price)
	}

	// Scale the fraction to exactly nine digits, rounding on the tenth.
	roundUp := false
	if len(frac) > 9 {
		if frac[9] >= '5' {
			roundUp = true
		}
		frac = frac[:9]
	}
	for len(frac) < 9 {
		frac += "0"
	}

	fracN, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, price)
	}
	if roundUp {
		fracN++
	}

	return wholeN*chain.LamportsPerSOL + fracN, nil
}
