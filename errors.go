package mgrs

import "errors"

// Errors returned by the converters and the grid reference parser. They are
// usually wrapped with the offending value, so compare with errors.Is.
var (
	ErrInvalidLatitude     = errors.New("latitude out of range")
	ErrInvalidLongitude    = errors.New("longitude out of range")
	ErrInvalidLatitudeBand = errors.New("invalid latitude band")
	ErrInvalidZoneLetter   = errors.New("invalid zone letter")
	ErrInvalidZone         = errors.New("zone out of range")
	ErrInvalidColLetter    = errors.New("invalid column letter")
	ErrInvalidRowLetter    = errors.New("invalid row letter")
	ErrInvalidEastingChar  = errors.New("invalid easting")
	ErrInvalidNorthingChar = errors.New("invalid northing")
	ErrInvalidDatum        = errors.New("invalid datum")
	ErrInvalidHemisphere   = errors.New("invalid hemisphere")
	ErrInvalidAccuracy     = errors.New("invalid accuracy")
	ErrEastingOutOfRange   = errors.New("easting out of range")
	ErrNorthingOutOfRange  = errors.New("northing out of range")

	// ErrNoConvergence means the inverse projection did not settle within
	// maxInverseIterations. It indicates a defect, not bad input.
	ErrNoConvergence = errors.New("inverse projection did not converge")
)
