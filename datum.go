package mgrs

import (
	"fmt"
	"strings"
)

// Datum identifies the geodetic datum a coordinate is referenced to. Only
// WGS84 is supported; it is the zero value.
type Datum uint8

// Datum constants
const (
	DatumWGS84 Datum = iota
)

// ParseDatum returns the datum with the given name, ignoring case.
func ParseDatum(s string) (Datum, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WGS84", "WGS-84", "WGS 84":
		return DatumWGS84, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidDatum, s)
}

// Valid reports whether d is a supported datum.
func (d Datum) Valid() bool {
	return d == DatumWGS84
}

// Ellipsoid returns the reference ellipsoid of the datum.
func (d Datum) Ellipsoid() (Ellipsoid, error) {
	switch d {
	case DatumWGS84:
		return WGS84, nil
	}
	return Ellipsoid{}, fmt.Errorf("%w %d", ErrInvalidDatum, d)
}

func (d Datum) String() string {
	switch d {
	case DatumWGS84:
		return "WGS84"
	}
	return fmt.Sprintf("Datum(%d)", uint8(d))
}
