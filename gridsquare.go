package mgrs

import (
	"fmt"
	"math"
)

const (
	gridSquareSize = 100000.0
	columnsPerSet  = 8
	rowsPerSet     = 20
)

// columnSetOrigins are the column letters of the first 100km column in a
// zone, keyed by (zone-1) mod 3.
var columnSetOrigins = [3]byte{'A', 'J', 'S'}

// rowSetOrigins are the row letters at northing 0, keyed by (zone-1) mod 2.
var rowSetOrigins = [2]byte{'A', 'F'}

// GridSquareID is the two letter id of a 100km grid square, e.g. DQ.
type GridSquareID struct {
	Column ColumnLetter
	Row    RowLetter
}

// NewGridSquareID returns the id of the 100km square containing a UTM
// easting and northing in the given zone.
func NewGridSquareID(zone int, easting, northing float64) (GridSquareID, error) {
	col, err := EncodeColumn(zone, easting)
	if err != nil {
		return GridSquareID{}, err
	}
	row, err := EncodeRow(zone, northing)
	if err != nil {
		return GridSquareID{}, err
	}
	return GridSquareID{Column: col, Row: row}, nil
}

// Offsets returns the easting of the square's west edge and the northing of
// its south edge modulo 2,000,000m.
func (id GridSquareID) Offsets(zone int) (easting, rowNorthing float64, err error) {
	if !id.Column.Valid() {
		return 0, 0, fmt.Errorf("%w %s", ErrInvalidColLetter, id.Column)
	}
	if !id.Row.Valid() {
		return 0, 0, fmt.Errorf("%w %s", ErrInvalidRowLetter, id.Row)
	}
	easting, err = DecodeColumn(zone, id.Column.Letter())
	if err != nil {
		return 0, 0, err
	}
	rowNorthing, err = DecodeRow(zone, id.Row.Letter())
	if err != nil {
		return 0, 0, err
	}
	return easting, rowNorthing, nil
}

func (id GridSquareID) String() string {
	return id.Column.String() + id.Row.String()
}

// EncodeColumn returns the column letter for a UTM easting. Only eastings in
// [100000, 900000) have a column.
func EncodeColumn(zone int, easting float64) (ColumnLetter, error) {
	if err := checkZone(zone); err != nil {
		return ColumnInvalid, err
	}
	if !(easting >= utmMinEasting && easting < utmMaxEasting) {
		return ColumnInvalid, fmt.Errorf("%w: no 100km column for easting %v", ErrEastingOutOfRange, easting)
	}
	col := int(math.Floor(easting/gridSquareSize)) - 1
	origin := indexOf(columnLetters, columnSetOrigins[(zone-1)%3])
	return ColumnLetter(origin + col + 1), nil
}

// DecodeColumn returns the easting of the west edge of the 100km column with
// the given letter. The letter must belong to the zone's column set.
func DecodeColumn(zone int, letter byte) (float64, error) {
	if err := checkZone(zone); err != nil {
		return 0, err
	}
	c := toUpper(letter)
	if c == 'I' || c == 'O' {
		return 0, fmt.Errorf("%w %q", ErrInvalidColLetter, letter)
	}

	col, err := walkLetters(columnSetOrigins[(zone-1)%3], c, 'Z')
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidEastingChar, letter)
	}
	if col >= columnsPerSet {
		return 0, fmt.Errorf("%w %q: not a column of zone %d", ErrInvalidColLetter, letter, zone)
	}
	return float64(col+1) * gridSquareSize, nil
}

// EncodeRow returns the row letter for a UTM northing.
func EncodeRow(zone int, northing float64) (RowLetter, error) {
	if err := checkZone(zone); err != nil {
		return RowInvalid, err
	}
	if !(northing >= utmMinNorthing && northing <= utmMaxNorthing) {
		return RowInvalid, fmt.Errorf("%w: no 100km row for northing %v", ErrNorthingOutOfRange, northing)
	}
	row := int(math.Floor(northing/gridSquareSize)) % rowsPerSet
	origin := indexOf(rowLetters, rowSetOrigins[(zone-1)%2])
	return RowLetter((origin+row)%rowsPerSet + 1), nil
}

// DecodeRow returns the northing of the south edge of the 100km row with the
// given letter, in [0, 2000000). The caller resolves which 2,000,000m cycle
// the row is in, see Band.ResolveNorthing.
func DecodeRow(zone int, letter byte) (float64, error) {
	if err := checkZone(zone); err != nil {
		return 0, err
	}
	c := toUpper(letter)
	if c == 'I' || c == 'O' || (c > 'V' && c <= 'Z') {
		return 0, fmt.Errorf("%w %q", ErrInvalidRowLetter, letter)
	}

	row, err := walkLetters(rowSetOrigins[(zone-1)%2], c, 'V')
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidNorthingChar, letter)
	}
	return float64(row) * gridSquareSize, nil
}

// walkLetters counts the steps from origin to target through A..last,
// skipping I and O. One wrap from last back to A is allowed; needing a
// second one means target is not in the alphabet.
func walkLetters(origin, target, last byte) (int, error) {
	cur := origin
	steps := 0
	wrapped := false
	for cur != target {
		cur++
		if cur == 'I' || cur == 'O' {
			cur++
		}
		if cur > last {
			if wrapped {
				return 0, fmt.Errorf("letter %q not reachable from %q", target, origin)
			}
			cur = 'A'
			wrapped = true
		}
		steps++
	}
	return steps, nil
}

func checkZone(zone int) error {
	if zone < 1 || zone > 60 {
		return fmt.Errorf("%w: %d", ErrInvalidZone, zone)
	}
	return nil
}
