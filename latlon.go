package mgrs

import (
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Operating envelope of UTM and MGRS, in degrees.
const (
	minLatitude  = -80.0
	maxLatitude  = 84.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// meanEarthRadius is the WGS84 mean radius (2a+b)/3 in meters.
const meanEarthRadius = 6371008.8

// GeodeticCoord is a latitude and longitude in degrees.
type GeodeticCoord struct {
	Lat   float64
	Lon   float64
	Datum Datum
}

// NewGeodeticCoord validates lat and lon against the UTM/MGRS envelope,
// -80 <= lat <= 84 and -180 <= lon <= 180.
func NewGeodeticCoord(lat, lon float64) (GeodeticCoord, error) {
	g := GeodeticCoord{Lat: lat, Lon: lon, Datum: DatumWGS84}
	if err := g.validate(); err != nil {
		return GeodeticCoord{}, err
	}
	return g, nil
}

// GeodeticCoordFromLatLng converts an s2.LatLng, validating it the same way
// as NewGeodeticCoord.
func GeodeticCoordFromLatLng(ll s2.LatLng) (GeodeticCoord, error) {
	return NewGeodeticCoord(ll.Lat.Degrees(), ll.Lng.Degrees())
}

func (g GeodeticCoord) validate() error {
	// NaN fails both comparisons
	if !(g.Lat >= minLatitude && g.Lat <= maxLatitude) {
		return fmt.Errorf("%w: %v", ErrInvalidLatitude, g.Lat)
	}
	if !(g.Lon >= minLongitude && g.Lon <= maxLongitude) {
		return fmt.Errorf("%w: %v", ErrInvalidLongitude, g.Lon)
	}
	if !g.Datum.Valid() {
		return fmt.Errorf("%w %d", ErrInvalidDatum, g.Datum)
	}
	return nil
}

// LatLng returns the coordinate as an s2.LatLng.
func (g GeodeticCoord) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(g.Lat, g.Lon)
}

// Distance returns the great circle distance to o in meters, on a sphere of
// the WGS84 mean radius.
func (g GeodeticCoord) Distance(o GeodeticCoord) float64 {
	return angleToMeters(g.LatLng().Distance(o.LatLng()))
}

func angleToMeters(a s1.Angle) float64 {
	return a.Radians() * meanEarthRadius
}

func (g GeodeticCoord) String() string {
	return fmt.Sprintf("%.6f, %.6f", g.Lat, g.Lon)
}
