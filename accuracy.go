package mgrs

import (
	"fmt"
	"strings"
)

// Accuracy is the precision of an MGRS reference, from AccuracyOneMeter (10
// digits) to AccuracyTenKilometers (2 digits). The zero value is invalid.
type Accuracy uint8

// Accuracy constants
const (
	AccuracyInvalid Accuracy = iota
	AccuracyOneMeter
	AccuracyTenMeters
	AccuracyHundredMeters
	AccuracyOneKilometer
	AccuracyTenKilometers
)

// DefaultAccuracy is used when no accuracy is requested.
const DefaultAccuracy = AccuracyOneMeter

// maxAxisDigits is the number of digits in a full 1m easting or northing
// within a 100km square.
const maxAxisDigits = 5

var accuracyMeters = [...]int{1, 10, 100, 1000, 10000}

// AccuracyFromOrdinal returns the accuracy with ordinal 1 (finest) through 5.
func AccuracyFromOrdinal(o int) (Accuracy, error) {
	if o < int(AccuracyOneMeter) || o > int(AccuracyTenKilometers) {
		return AccuracyInvalid, fmt.Errorf("%w: ordinal %d", ErrInvalidAccuracy, o)
	}
	return Accuracy(o), nil
}

// AccuracyFromMeters returns the accuracy for 1, 10, 100, 1000 or 10000.
func AccuracyFromMeters(m int) (Accuracy, error) {
	for i, v := range accuracyMeters {
		if v == m {
			return Accuracy(i + 1), nil
		}
	}
	return AccuracyInvalid, fmt.Errorf("%w: %dm", ErrInvalidAccuracy, m)
}

// AccuracyFromDigits returns the accuracy for a total count of easting plus
// northing digits: 10, 8, 6, 4 or 2.
func AccuracyFromDigits(n int) (Accuracy, error) {
	if n%2 != 0 || n < 2 || n > 2*maxAxisDigits {
		return AccuracyInvalid, fmt.Errorf("%w: %d digits", ErrInvalidAccuracy, n)
	}
	return Accuracy(maxAxisDigits - n/2 + 1), nil
}

// DeriveAccuracy works out the accuracy of a reference from its easting and
// northing digit runs. A run of k digits holds the high order k digits of a
// 5 digit field; trailing zeros carry no precision, so "48250" and "4825"
// are both 10m. A reference of all zeros is 10km. Runs are padded on the
// right, not the left: a short run is a truncated reference, not a small
// value, and Parse scales it the same way.
func DeriveAccuracy(easting, northing string) (Accuracy, error) {
	if err := checkDigitRun(easting, ErrInvalidEastingChar); err != nil {
		return AccuracyInvalid, err
	}
	if err := checkDigitRun(northing, ErrInvalidNorthingChar); err != nil {
		return AccuracyInvalid, err
	}
	if (len(easting)+len(northing))%2 != 0 {
		return AccuracyInvalid, fmt.Errorf("%w: odd number of location digits in %q %q",
			ErrInvalidNorthingChar, easting, northing)
	}

	significant := len(significantDigits(easting))
	if n := len(significantDigits(northing)); n > significant {
		significant = n
	}
	if significant == 0 {
		significant = 1
	}
	return AccuracyFromDigits(2 * significant)
}

func significantDigits(run string) string {
	padded := run + strings.Repeat("0", maxAxisDigits-len(run))
	return strings.TrimRight(padded, "0")
}

func checkDigitRun(run string, kind error) error {
	if len(run) == 0 || len(run) > maxAxisDigits {
		return fmt.Errorf("%w: %q must have 1 to %d digits", kind, run, maxAxisDigits)
	}
	for i := 0; i < len(run); i++ {
		if !isDigit(run[i]) {
			return fmt.Errorf("%w %q", kind, run[i])
		}
	}
	return nil
}

// Valid reports whether a is one of the five accuracies.
func (a Accuracy) Valid() bool {
	return a >= AccuracyOneMeter && a <= AccuracyTenKilometers
}

// Meters returns the size of the precision box in meters. It panics if a is
// not valid.
func (a Accuracy) Meters() int {
	if !a.Valid() {
		panic(fmt.Sprintf("mgrs: invalid accuracy %d", uint8(a)))
	}
	return accuracyMeters[a-1]
}

// AxisDigits returns the number of easting (or northing) digits.
func (a Accuracy) AxisDigits() int {
	if !a.Valid() {
		panic(fmt.Sprintf("mgrs: invalid accuracy %d", uint8(a)))
	}
	return maxAxisDigits - int(a) + 1
}

// Digits returns the total number of easting and northing digits.
func (a Accuracy) Digits() int {
	return 2 * a.AxisDigits()
}

func (a Accuracy) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Accuracy(%d)", uint8(a))
	}
	if m := a.Meters(); m >= 1000 {
		return fmt.Sprintf("%dkm", m/1000)
	}
	return fmt.Sprintf("%dm", a.Meters())
}

func isDigit(r byte) bool {
	return r >= '0' && r <= '9'
}
