package mgrs

import "fmt"

// ColumnLetter is the first letter of a 100km grid square id. Columns use
// A-Z without I and O. The zero value is invalid.
type ColumnLetter uint8

// ColumnLetter constants
const (
	ColumnInvalid ColumnLetter = iota
	ColumnA
	ColumnB
	ColumnC
	ColumnD
	ColumnE
	ColumnF
	ColumnG
	ColumnH
	ColumnJ
	ColumnK
	ColumnL
	ColumnM
	ColumnN
	ColumnP
	ColumnQ
	ColumnR
	ColumnS
	ColumnT
	ColumnU
	ColumnV
	ColumnW
	ColumnX
	ColumnY
	ColumnZ
)

// RowLetter is the second letter of a 100km grid square id. Rows use A-V
// without I and O. The zero value is invalid.
type RowLetter uint8

// RowLetter constants
const (
	RowInvalid RowLetter = iota
	RowA
	RowB
	RowC
	RowD
	RowE
	RowF
	RowG
	RowH
	RowJ
	RowK
	RowL
	RowM
	RowN
	RowP
	RowQ
	RowR
	RowS
	RowT
	RowU
	RowV
)

const (
	columnLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	rowLetters    = "ABCDEFGHJKLMNPQRSTUV"
)

// ColumnLetterFromLetter returns the column letter for an upper or lower
// case letter. I, O and anything outside A-Z fail with ErrInvalidColLetter.
func ColumnLetterFromLetter(c byte) (ColumnLetter, error) {
	i := indexOf(columnLetters, toUpper(c))
	if i < 0 {
		return ColumnInvalid, fmt.Errorf("%w %q", ErrInvalidColLetter, c)
	}
	return ColumnLetter(i + 1), nil
}

// ColumnLetterFromIndex returns the column letter with dense index i, 0 (A)
// through 23 (Z).
func ColumnLetterFromIndex(i int) (ColumnLetter, error) {
	if i < 0 || i >= len(columnLetters) {
		return ColumnInvalid, fmt.Errorf("%w: index %d", ErrInvalidColLetter, i)
	}
	return ColumnLetter(i + 1), nil
}

// Valid reports whether c is one of the 24 column letters.
func (c ColumnLetter) Valid() bool {
	return c >= ColumnA && c <= ColumnZ
}

// Index returns the dense index of c. It panics if c is not valid.
func (c ColumnLetter) Index() int {
	if !c.Valid() {
		panic(fmt.Sprintf("mgrs: invalid column letter %d", uint8(c)))
	}
	return int(c) - 1
}

// Letter returns the upper case letter. It panics if c is not valid.
func (c ColumnLetter) Letter() byte {
	return columnLetters[c.Index()]
}

func (c ColumnLetter) String() string {
	if !c.Valid() {
		return fmt.Sprintf("ColumnLetter(%d)", uint8(c))
	}
	return string(c.Letter())
}

// RowLetterFromLetter returns the row letter for an upper or lower case
// letter. I, O and anything outside A-V fail with ErrInvalidRowLetter.
func RowLetterFromLetter(c byte) (RowLetter, error) {
	i := indexOf(rowLetters, toUpper(c))
	if i < 0 {
		return RowInvalid, fmt.Errorf("%w %q", ErrInvalidRowLetter, c)
	}
	return RowLetter(i + 1), nil
}

// RowLetterFromIndex returns the row letter with dense index i, 0 (A)
// through 19 (V).
func RowLetterFromIndex(i int) (RowLetter, error) {
	if i < 0 || i >= len(rowLetters) {
		return RowInvalid, fmt.Errorf("%w: index %d", ErrInvalidRowLetter, i)
	}
	return RowLetter(i + 1), nil
}

// Valid reports whether r is one of the 20 row letters.
func (r RowLetter) Valid() bool {
	return r >= RowA && r <= RowV
}

// Index returns the dense index of r. It panics if r is not valid.
func (r RowLetter) Index() int {
	if !r.Valid() {
		panic(fmt.Sprintf("mgrs: invalid row letter %d", uint8(r)))
	}
	return int(r) - 1
}

// Letter returns the upper case letter. It panics if r is not valid.
func (r RowLetter) Letter() byte {
	return rowLetters[r.Index()]
}

func (r RowLetter) String() string {
	if !r.Valid() {
		return fmt.Sprintf("RowLetter(%d)", uint8(r))
	}
	return string(r.Letter())
}

func indexOf(alphabet string, c byte) int {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return i
		}
	}
	return -1
}
