package mgrs

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// UTMCoord is a UTM coordinate. Convergence (degrees) and Scale are zero
// when the coordinate was not produced by a projection, e.g. decoded from an
// MGRS reference.
type UTMCoord struct {
	Zone        int
	Hemisphere  Hemisphere
	Easting     float64
	Northing    float64
	Datum       Datum
	Convergence float64
	Scale       float64
}

// String formats the coordinate with whole meters, e.g. "31 N 448251 5411932".
func (c UTMCoord) String() string {
	return fmt.Sprintf("%02d %s %d %d", c.Zone, c.Hemisphere, int64(c.Easting), int64(c.Northing))
}

// UTM is a UTM coordinate converter
type UTM struct {
	datum Datum
	tm    *transverseMercator
}

const utmMinLat = -80.5 // degrees
const utmMaxLat = 84.5  // degrees
const utmMinEasting = 100000.0
const utmMaxEasting = 900000.0
const utmMinNorthing = 0.0
const utmMaxNorthing = 10000000.0

const (
	utmScaleFactor   = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0 // southern hemisphere only
)

// NewUTM constructs a new UTM converter for the ellipsoid of datum.
func NewUTM(datum Datum) (*UTM, error) {
	ellipsoid, err := datum.Ellipsoid()
	if err != nil {
		return nil, err
	}
	tm, err := newTransverseMercator(ellipsoid, utmScaleFactor)
	if err != nil {
		return nil, err
	}
	return &UTM{datum: datum, tm: tm}, nil
}

// ConvertFromGeodetic converts geodetic (latitude and longitude) coordinates
// to UTM projection (zone, hemisphere, easting and northing) coordinates. The
// zone follows the Norway and Svalbard exceptions. Easting and northing are
// rounded to the micrometer, convergence to 1e-9 degrees and scale to 1e-12.
func (u *UTM) ConvertFromGeodetic(geodeticCoordinates GeodeticCoord) (UTMCoord, error) {
	if err := geodeticCoordinates.validate(); err != nil {
		return UTMCoord{}, err
	}
	lat := geodeticCoordinates.Lat
	lon := geodeticCoordinates.Lon

	zone := utmZone(lat, lon)
	latitude := s1.Angle(lat) * s1.Degree
	lambda := s1.Angle(lon-centralMeridian(zone)) * s1.Degree
	x, y, convergence, scale := u.tm.forward(latitude.Radians(), lambda.Radians())

	hemisphere := HemisphereNorth
	easting := x + utmFalseEasting
	northing := y
	if lat < 0 {
		hemisphere = HemisphereSouth
		northing += utmFalseNorthing
	}
	easting = roundTo(easting, 1e6)
	northing = roundTo(northing, 1e6)

	if (easting < utmMinEasting) || (easting > utmMaxEasting) {
		return UTMCoord{}, fmt.Errorf("%w: %v", ErrEastingOutOfRange, easting)
	}
	if (northing < utmMinNorthing) || (northing > utmMaxNorthing) {
		return UTMCoord{}, fmt.Errorf("%w: %v", ErrNorthingOutOfRange, northing)
	}

	return UTMCoord{
		Zone:        zone,
		Hemisphere:  hemisphere,
		Easting:     easting,
		Northing:    northing,
		Datum:       u.datum,
		Convergence: roundTo(s1.Angle(convergence).Degrees(), 1e9),
		Scale:       roundTo(scale, 1e12),
	}, nil
}

// ConvertToGeodetic converts UTM projection (zone, hemisphere, easting and
// northing) coordinates to geodetic (latitude and longitude) coordinates.
// The inverse iterates on tan(latitude) until the correction is at most
// 1e-12, giving up with ErrNoConvergence after 5 iterations. The result lies
// in the UTM envelope of -80.5 to 84.5 degrees latitude, which is slightly
// wider than NewGeodeticCoord accepts so that MGRS squares straddling the
// band limits decode. Longitude is normalised to (-180, 180].
func (u *UTM) ConvertToGeodetic(utmCoordinates UTMCoord) (GeodeticCoord, error) {
	lat, lon, _, _, err := u.inverse(utmCoordinates)
	if err != nil {
		return GeodeticCoord{}, err
	}
	return GeodeticCoord{Lat: lat, Lon: lon, Datum: utmCoordinates.Datum}, nil
}

// ConvergenceAndScale returns the grid convergence in degrees and the point
// scale factor at a UTM coordinate, computed by the inverse series.
func (u *UTM) ConvergenceAndScale(utmCoordinates UTMCoord) (convergence, scale float64, err error) {
	_, _, convergence, scale, err = u.inverse(utmCoordinates)
	if err != nil {
		return 0, 0, err
	}
	return roundTo(convergence, 1e9), roundTo(scale, 1e12), nil
}

func (u *UTM) inverse(utmCoordinates UTMCoord) (lat, lon, convergence, scale float64, err error) {
	zone := utmCoordinates.Zone
	hemisphere := utmCoordinates.Hemisphere
	easting := utmCoordinates.Easting
	northing := utmCoordinates.Northing

	if err := checkZone(zone); err != nil {
		return 0, 0, 0, 0, err
	}
	if !hemisphere.Valid() {
		return 0, 0, 0, 0, fmt.Errorf("%w %d", ErrInvalidHemisphere, hemisphere)
	}
	if !utmCoordinates.Datum.Valid() {
		return 0, 0, 0, 0, fmt.Errorf("%w %d", ErrInvalidDatum, utmCoordinates.Datum)
	}
	if !(easting >= utmMinEasting && easting <= utmMaxEasting) {
		return 0, 0, 0, 0, fmt.Errorf("%w: %v", ErrEastingOutOfRange, easting)
	}
	if !(northing >= utmMinNorthing && northing <= utmMaxNorthing) {
		return 0, 0, 0, 0, fmt.Errorf("%w: %v", ErrNorthingOutOfRange, northing)
	}

	y := northing
	if hemisphere == HemisphereSouth {
		y -= utmFalseNorthing
	}
	latitude, lambda, gamma, k, err := u.tm.inverse(easting-utmFalseEasting, y)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	lat = s1.Angle(latitude).Degrees()
	if (lat < utmMinLat) || (lat > utmMaxLat) {
		return 0, 0, 0, 0, fmt.Errorf("%w: %v", ErrInvalidLatitude, lat)
	}
	lon = normalizeLongitude(centralMeridian(zone) + s1.Angle(lambda).Degrees())
	return lat, lon, s1.Angle(gamma).Degrees(), k, nil
}

// utmZone returns the zone of a valid lat/lon in degrees, applying the
// southern Norway and Svalbard exceptions.
func utmZone(lat, lon float64) int {
	zone := int(math.Floor((lon+180)/6)) + 1
	if zone > 60 {
		// lon == 180
		zone = 60
	}

	// southern Norway
	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		zone = 32
	}

	// Svalbard, through 84N so that band X never lands in 32, 34 or 36
	if lat >= 72 {
		switch {
		case lon >= 0 && lon < 9:
			zone = 31
		case lon >= 9 && lon < 21:
			zone = 33
		case lon >= 21 && lon < 33:
			zone = 35
		case lon >= 33 && lon < 42:
			zone = 37
		}
	}
	return zone
}

// centralMeridian returns the central meridian of zone in degrees.
func centralMeridian(zone int) float64 {
	return float64((zone-1)*6-180) + 3
}

func normalizeLongitude(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon <= -180 {
		lon += 360
	}
	return lon
}

func roundTo(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}
