package mgrs

import (
	"fmt"
	"math"
	"strconv"
)

type parseState int

const (
	stateZoneDigits parseState = iota
	stateBandLetter
	stateColumnLetter
	stateRowLetter
	stateLocationDigits
	stateDone
)

// Parse parses an MGRS reference such as "31U DQ 48251 11932" or
// "31udq4825111932". Fields may be separated by spaces or tabs and letters
// are case insensitive. The location is either one run of digits split in
// half or two runs separated by whitespace, and its precision sets the
// reference's Accuracy. The 100km square must exist in the zone.
func Parse(s string) (Reference, error) {
	var (
		zone    int
		band    Band
		col     ColumnLetter
		row     RowLetter
		easting string
		north   string
		err     error
	)

	i := 0
	state := stateZoneDigits
	for state != stateDone {
		i = skipSpace(s, i)
		switch state {
		case stateZoneDigits:
			start := i
			for i < len(s) && i-start < 2 && isDigit(s[i]) {
				i++
			}
			if i == start {
				return Reference{}, fmt.Errorf("%w: missing zone number in %q", ErrInvalidZone, s)
			}
			if i < len(s) && isDigit(s[i]) {
				return Reference{}, fmt.Errorf("%w: zone number in %q has more than 2 digits", ErrInvalidZone, s)
			}
			zone, _ = strconv.Atoi(s[start:i])
			if err = checkZone(zone); err != nil {
				return Reference{}, err
			}
			state = stateBandLetter

		case stateBandLetter:
			if i >= len(s) {
				return Reference{}, fmt.Errorf("%w: missing latitude band in %q", ErrInvalidZoneLetter, s)
			}
			if band, err = BandFromLetter(s[i]); err != nil {
				return Reference{}, fmt.Errorf("%w %q", ErrInvalidZoneLetter, s[i])
			}
			i++
			state = stateColumnLetter

		case stateColumnLetter:
			if i >= len(s) {
				return Reference{}, fmt.Errorf("%w: missing 100km column in %q", ErrInvalidColLetter, s)
			}
			if col, err = ColumnLetterFromLetter(s[i]); err != nil {
				return Reference{}, err
			}
			i++
			state = stateRowLetter

		case stateRowLetter:
			if i >= len(s) {
				return Reference{}, fmt.Errorf("%w: missing 100km row in %q", ErrInvalidRowLetter, s)
			}
			if row, err = RowLetterFromLetter(s[i]); err != nil {
				return Reference{}, err
			}
			i++
			state = stateLocationDigits

		case stateLocationDigits:
			var runs []string
			for i < len(s) {
				start := i
				for i < len(s) && !isSpace(s[i]) {
					if !isDigit(s[i]) {
						if len(runs) == 0 {
							return Reference{}, fmt.Errorf("%w %q", ErrInvalidEastingChar, s[i])
						}
						return Reference{}, fmt.Errorf("%w %q", ErrInvalidNorthingChar, s[i])
					}
					i++
				}
				runs = append(runs, s[start:i])
				i = skipSpace(s, i)
			}

			switch len(runs) {
			case 0:
				return Reference{}, fmt.Errorf("%w: missing location in %q", ErrInvalidEastingChar, s)
			case 1:
				if len(runs[0])%2 != 0 {
					return Reference{}, fmt.Errorf("%w: odd number of location digits in %q", ErrInvalidNorthingChar, s)
				}
				half := len(runs[0]) / 2
				easting, north = runs[0][:half], runs[0][half:]
			case 2:
				easting, north = runs[0], runs[1]
			default:
				return Reference{}, fmt.Errorf("%w: unexpected %q after northing", ErrInvalidNorthingChar, runs[2])
			}
			state = stateDone
		}
	}

	accuracy, err := DeriveAccuracy(easting, north)
	if err != nil {
		return Reference{}, err
	}

	ref := Reference{
		GZD:      GridZoneDesignator{Zone: zone, Band: band},
		Square:   GridSquareID{Column: col, Row: row},
		Easting:  scaleDigits(easting),
		Northing: scaleDigits(north),
		Accuracy: accuracy,
	}
	if err := checkGridZone(zone, band, col.Letter()); err != nil {
		return Reference{}, err
	}
	if _, _, err := ref.Square.Offsets(zone); err != nil {
		return Reference{}, err
	}
	return ref, nil
}

// scaleDigits returns the meters held by a run of k digits, the high order k
// digits of a 5 digit field. The run has already been checked.
func scaleDigits(run string) float64 {
	v, _ := strconv.Atoi(run)
	return float64(v) * math.Pow10(maxAxisDigits-len(run))
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
