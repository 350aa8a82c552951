package pais

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DrawRecord is one historical lottery result: six distinct main numbers in
// [1,37] plus a strong number in [1,7]. Records are immutable once created
// and owned by the repository; the engine only reads them.
type DrawRecord struct {
	DrawNumber   int       `json:"draw_number"`   // Unique, monotonically assigned by the source
	DrawDate     time.Time `json:"draw_date"`     // Date the draw took place
	MainNumbers  []int     `json:"main_numbers"`  // Exactly 6 distinct numbers, ascending
	StrongNumber int       `json:"strong_number"` // Supplementary number from the small domain
}

// Validate checks the domain and distinctness invariants of the record
func (d *DrawRecord) Validate() error {
	if d.DrawNumber <= 0 {
		return ErrValidation.WithDetails("draw number must be positive")
	}
	if len(d.MainNumbers) != MainNumbersPerDraw {
		return ErrValidation.WithDetails("exactly 6 main numbers are required")
	}

	seen := make(map[int]bool, MainNumbersPerDraw)
	for _, n := range d.MainNumbers {
		if n < MainNumberMin || n > MainNumberMax {
			return ErrValidation.WithDetails("main number out of range [1,37]")
		}
		if seen[n] {
			return ErrValidation.WithDetails("duplicate main number")
		}
		seen[n] = true
	}

	if d.StrongNumber < StrongNumberMin || d.StrongNumber > StrongNumberMax {
		return ErrValidation.WithDetails("strong number out of range [1,7]")
	}

	return nil
}

// Contains reports whether n is one of the record's main numbers
func (d *DrawRecord) Contains(n int) bool {
	for _, m := range d.MainNumbers {
		if m == n {
			return true
		}
	}
	return false
}

// supported layouts for tabular draw dates, most common first
var drawDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02.01.2006",
}

// ParseDrawRow converts one loosely-typed tabular row into a validated
// DrawRecord. Expected columns: draw number, date, six main numbers, strong
// number. Trailing columns are ignored. Conversion happens here, at the
// repository boundary, so the engine never sees raw string input.
func ParseDrawRow(row []string) (DrawRecord, error) {
	if len(row) < MainNumbersPerDraw+3 {
		return DrawRecord{}, ErrValidation.WithDetails("row has too few columns")
	}

	drawNumber, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return DrawRecord{}, ErrValidation.WithDetails("draw number is not an integer").WithCause(err)
	}

	drawDate, err := parseDrawDate(strings.TrimSpace(row[1]))
	if err != nil {
		return DrawRecord{}, err
	}

	numbers := make([]int, 0, MainNumbersPerDraw)
	for i := 2; i < 2+MainNumbersPerDraw; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(row[i]))
		if err != nil {
			return DrawRecord{}, ErrValidation.WithDetails("main number is not an integer").WithCause(err)
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	strong, err := strconv.Atoi(strings.TrimSpace(row[2+MainNumbersPerDraw]))
	if err != nil {
		return DrawRecord{}, ErrValidation.WithDetails("strong number is not an integer").WithCause(err)
	}

	record := DrawRecord{
		DrawNumber:   drawNumber,
		DrawDate:     drawDate,
		MainNumbers:  numbers,
		StrongNumber: strong,
	}
	if err := record.Validate(); err != nil {
		return DrawRecord{}, err
	}

	return record, nil
}

// parseDrawDate tries the supported date layouts in order
func parseDrawDate(value string) (time.Time, error) {
	for _, layout := range drawDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrValidation.WithDetails("unrecognized draw date format: " + value)
}
