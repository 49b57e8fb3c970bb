package models

import (
	"fmt"
	"strconv"
	"strings"
)

// SeatsPerRow is the fixed grid width used to derive display labels.
const SeatsPerRow = 4

// MaxSeatCapacity is the largest capacity the single-letter row scheme
// can label (rows A..Z, 4 seats each).
const MaxSeatCapacity = 26 * SeatsPerRow

// Seat carries both representations of a seat identity: the canonical
// numeric index (1..capacity) and the derived display label ("A1", "C3").
// Both are computed once at construction so call sites never re-parse.
type Seat struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
}

// SeatFromNumber builds a Seat from its canonical numeric index.
func SeatFromNumber(n int) (Seat, error) {
	if n < 1 || n > MaxSeatCapacity {
		return Seat{}, fmt.Errorf("seat number %d out of range 1..%d", n, MaxSeatCapacity)
	}
	row := (n - 1) / SeatsPerRow
	col := (n-1)%SeatsPerRow + 1
	return Seat{
		Number: n,
		Label:  fmt.Sprintf("%c%d", rune('A'+row), col),
	}, nil
}

// SeatFromLabel builds a Seat from a display label such as "B3". The
// returned label is always regenerated from the parsed number, so
// variants like "b3" or "B03" come back as the canonical "B3".
func SeatFromLabel(label string) (Seat, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 {
		return Seat{}, fmt.Errorf("invalid seat label %q", label)
	}
	row := label[0]
	if row < 'A' || row > 'Z' {
		return Seat{}, fmt.Errorf("invalid seat row in label %q", label)
	}
	col, err := strconv.Atoi(label[1:])
	if err != nil || col < 1 || col > SeatsPerRow {
		return Seat{}, fmt.Errorf("invalid seat column in label %q", label)
	}
	return SeatFromNumber(int(row-'A')*SeatsPerRow + col)
}

// ParseSeat accepts either representation. Numeric input is treated as a
// canonical index, anything else as a label, so re-applying the conversion
// to an already-converted value is a no-op.
func ParseSeat(input string) (Seat, error) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		return SeatFromNumber(n)
	}
	return SeatFromLabel(input)
}

// SeatLabels maps canonical seat numbers to display labels, skipping
// nothing: every number must be valid for the grid.
func SeatLabels(numbers []int) ([]string, error) {
	labels := make([]string, len(numbers))
	for i, n := range numbers {
		seat, err := SeatFromNumber(n)
		if err != nil {
			return nil, err
		}
		labels[i] = seat.Label
	}
	return labels, nil
}
