package mgrs

import "fmt"

// Hemisphere represents the hemisphere, north or south
type Hemisphere byte

// Hemisphere constants
const (
	HemisphereInvalid Hemisphere = iota
	HemisphereNorth
	HemisphereSouth
)

// ParseHemisphere parses "N" or "S", ignoring case.
func ParseHemisphere(s string) (Hemisphere, error) {
	switch s {
	case "N", "n":
		return HemisphereNorth, nil
	case "S", "s":
		return HemisphereSouth, nil
	}
	return HemisphereInvalid, fmt.Errorf("%w %q", ErrInvalidHemisphere, s)
}

// Valid reports whether h is north or south.
func (h Hemisphere) Valid() bool {
	return h == HemisphereNorth || h == HemisphereSouth
}

func (h Hemisphere) String() string {
	switch h {
	case HemisphereNorth:
		return "N"
	case HemisphereSouth:
		return "S"
	}
	return fmt.Sprintf("Hemisphere(%d)", byte(h))
}
