package mgrs

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// boundarySnap is the resolution, per degree, that inverse projected
// coordinates are rounded to before the band and zone are chosen, so that a
// point on a band, zone or envelope edge stays on it.
const boundarySnap = 1e9

// MGRS is an MGRS coordinate converter.
type MGRS struct {
	datum Datum
	utm   *UTM
}

// Reference is a parsed or encoded MGRS grid reference. Easting and Northing
// are meters within the 100km square, truncated to Accuracy.
type Reference struct {
	GZD      GridZoneDesignator
	Square   GridSquareID
	Easting  float64
	Northing float64
	Accuracy Accuracy
}

// NewMGRS constructs an MGRS converter for datum.
func NewMGRS(datum Datum) (*MGRS, error) {
	u, err := NewUTM(datum)
	if err != nil {
		return nil, err
	}
	return &MGRS{datum: datum, utm: u}, nil
}

// ConvertFromGeodetic converts Geodetic (latitude and longitude) coordinates
// to an MGRS reference with the given accuracy.
func (m *MGRS) ConvertFromGeodetic(geodeticCoordinates GeodeticCoord, accuracy Accuracy) (Reference, error) {
	if !accuracy.Valid() {
		return Reference{}, fmt.Errorf("%w %d", ErrInvalidAccuracy, accuracy)
	}
	utmCoordinates, err := m.utm.ConvertFromGeodetic(geodeticCoordinates)
	if err != nil {
		return Reference{}, err
	}
	band, err := BandForLatitude(geodeticCoordinates.Lat)
	if err != nil {
		return Reference{}, err
	}
	return newReference(utmCoordinates, band, accuracy)
}

// ConvertFromUTM converts UTM (zone, easting, and northing) coordinates to an
// MGRS reference. The band comes from the latitude of the coordinate. A
// coordinate given outside its natural zone, or in a zone MGRS replaces over
// Norway and Svalbard, is reprojected into the zone MGRS uses there.
func (m *MGRS) ConvertFromUTM(utmCoordinates UTMCoord, accuracy Accuracy) (Reference, error) {
	if !accuracy.Valid() {
		return Reference{}, fmt.Errorf("%w %d", ErrInvalidAccuracy, accuracy)
	}
	geodeticCoordinates, err := m.utm.ConvertToGeodetic(utmCoordinates)
	if err != nil {
		return Reference{}, err
	}
	geodeticCoordinates.Lat = roundTo(geodeticCoordinates.Lat, boundarySnap)
	geodeticCoordinates.Lon = roundTo(geodeticCoordinates.Lon, boundarySnap)
	if math.Abs(geodeticCoordinates.Lon) == 180 {
		// the antimeridian is the west edge of zone 1 and the east edge of zone 60
		geodeticCoordinates.Lon = 180
		if utmCoordinates.Zone == 1 {
			geodeticCoordinates.Lon = -180
		}
	}
	if utmCoordinates.Hemisphere == HemisphereNorth && geodeticCoordinates.Lat < 0 {
		// inverse series noise at the equator
		geodeticCoordinates.Lat = 0
	}
	if err := geodeticCoordinates.validate(); err != nil {
		return Reference{}, err
	}
	if utmZone(geodeticCoordinates.Lat, geodeticCoordinates.Lon) != utmCoordinates.Zone {
		return m.ConvertFromGeodetic(geodeticCoordinates, accuracy)
	}
	band, err := BandForLatitude(geodeticCoordinates.Lat)
	if err != nil {
		return Reference{}, err
	}
	return newReference(utmCoordinates, band, accuracy)
}

// ConvertToGeodetic converts an MGRS coordinate string to Geodetic (latitude
// and longitude) coordinates of the south west corner of its precision box.
func (m *MGRS) ConvertToGeodetic(mgrsCoordinates string) (GeodeticCoord, error) {
	utmCoordinates, err := m.ConvertToUTM(mgrsCoordinates)
	if err != nil {
		return GeodeticCoord{}, err
	}
	return m.utm.ConvertToGeodetic(utmCoordinates)
}

// ConvertToUTM converts an MGRS coordinate string to UTM projection (zone,
// hemisphere, easting and northing) coordinates.
func (m *MGRS) ConvertToUTM(mgrsCoordinates string) (UTMCoord, error) {
	ref, err := Parse(mgrsCoordinates)
	if err != nil {
		return UTMCoord{}, err
	}
	return m.toUTM(ref)
}

// toUTM converts ref and checks that the point lies in its latitude band,
// allowing two precision boxes of slack for squares that straddle a band
// boundary.
func (m *MGRS) toUTM(ref Reference) (UTMCoord, error) {
	utmCoordinates, err := ref.UTM()
	if err != nil {
		return UTMCoord{}, err
	}
	utmCoordinates.Datum = m.datum

	geodeticCoordinates, err := m.utm.ConvertToGeodetic(utmCoordinates)
	if err != nil {
		return UTMCoord{}, err
	}

	south, north := ref.GZD.Band.LatitudeRange()
	border := 2 * float64(ref.Accuracy.Meters()) / 1e5 // degrees
	lat := geodeticCoordinates.Lat
	if (lat < south-border) || (lat > north+border) {
		return UTMCoord{}, fmt.Errorf("%w: %s is at latitude %.6f, outside band %s",
			ErrInvalidLatitudeBand, ref, lat, ref.GZD.Band)
	}
	return utmCoordinates, nil
}

func newReference(utmCoordinates UTMCoord, band Band, accuracy Accuracy) (Reference, error) {
	zone := utmCoordinates.Zone
	square, err := NewGridSquareID(zone, utmCoordinates.Easting, utmCoordinates.Northing)
	if err != nil {
		return Reference{}, err
	}
	return Reference{
		GZD:      GridZoneDesignator{Zone: zone, Band: band},
		Square:   square,
		Easting:  truncate(math.Mod(utmCoordinates.Easting, gridSquareSize), accuracy),
		Northing: truncate(math.Mod(utmCoordinates.Northing, gridSquareSize), accuracy),
		Accuracy: accuracy,
	}, nil
}

// truncate drops the digits finer than accuracy, it never rounds.
func truncate(v float64, accuracy Accuracy) float64 {
	meters := float64(accuracy.Meters())
	return math.Floor(v/meters) * meters
}

// UTM returns the UTM coordinate of the south west corner of the reference's
// precision box.
func (r Reference) UTM() (UTMCoord, error) {
	if err := r.validate(); err != nil {
		return UTMCoord{}, err
	}
	zone := r.GZD.Zone
	easting, rowNorthing, err := r.Square.Offsets(zone)
	if err != nil {
		return UTMCoord{}, err
	}
	northing := r.GZD.Band.ResolveNorthing(rowNorthing)

	return UTMCoord{
		Zone:       zone,
		Hemisphere: r.GZD.Band.Hemisphere(),
		Easting:    easting + r.Easting,
		Northing:   northing + r.Northing,
		Datum:      DatumWGS84,
	}, nil
}

// LatLon returns the latitude and longitude of the south west corner of the
// reference's precision box.
func (r Reference) LatLon() (GeodeticCoord, error) {
	c, err := r.UTM()
	if err != nil {
		return GeodeticCoord{}, err
	}
	return DefaultUTMConverter.ConvertToGeodetic(c)
}

// Center returns the latitude and longitude of the middle of the reference's
// precision box.
func (r Reference) Center() (GeodeticCoord, error) {
	c, err := r.UTM()
	if err != nil {
		return GeodeticCoord{}, err
	}
	half := float64(r.Accuracy.Meters()) / 2
	c.Easting += half
	c.Northing += half
	return DefaultUTMConverter.ConvertToGeodetic(c)
}

// Rect returns the bounds of the reference's precision box. The box is square
// on the grid, so all four corners contribute to the bounds.
func (r Reference) Rect() (s2.Rect, error) {
	c, err := r.UTM()
	if err != nil {
		return s2.EmptyRect(), err
	}
	size := float64(r.Accuracy.Meters())
	rect := s2.EmptyRect()
	for _, d := range [4][2]float64{{0, 0}, {size, 0}, {0, size}, {size, size}} {
		corner := c
		corner.Easting += d[0]
		corner.Northing += d[1]
		g, err := DefaultUTMConverter.ConvertToGeodetic(corner)
		if err != nil {
			return s2.EmptyRect(), err
		}
		rect = rect.AddPoint(g.LatLng())
	}
	return rect, nil
}

func (r Reference) validate() error {
	if err := checkZone(r.GZD.Zone); err != nil {
		return err
	}
	if !r.GZD.Band.Valid() {
		return fmt.Errorf("%w %d", ErrInvalidZoneLetter, r.GZD.Band)
	}
	if !r.Accuracy.Valid() {
		return fmt.Errorf("%w %d", ErrInvalidAccuracy, r.Accuracy)
	}
	if !(r.Easting >= 0 && r.Easting < gridSquareSize) {
		return fmt.Errorf("%w: %v within 100km square", ErrEastingOutOfRange, r.Easting)
	}
	if !(r.Northing >= 0 && r.Northing < gridSquareSize) {
		return fmt.Errorf("%w: %v within 100km square", ErrNorthingOutOfRange, r.Northing)
	}
	if !r.Square.Column.Valid() {
		return fmt.Errorf("%w %s", ErrInvalidColLetter, r.Square.Column)
	}
	return checkGridZone(r.GZD.Zone, r.GZD.Band, r.Square.Column.Letter())
}

// checkGridZone rejects the grid zones that the Norway and Svalbard
// exceptions removed: 32X, 34X and 36X do not exist, and 31V only spans the
// western half of its zone.
func checkGridZone(zone int, band Band, column byte) error {
	if band == BandX && (zone == 32 || zone == 34 || zone == 36) {
		return fmt.Errorf("%w: grid zone %02dX does not exist", ErrInvalidZoneLetter, zone)
	}
	if band == BandV && zone == 31 && column > 'D' {
		return fmt.Errorf("%w %q: grid zone 31V ends at column D", ErrInvalidColLetter, column)
	}
	return nil
}

// Format returns the reference at accuracy as "ZZB CR EEEEE NNNNN". Digits
// are truncated, never rounded. It panics if accuracy is not valid.
func (r Reference) Format(accuracy Accuracy) string {
	return r.format(accuracy, " ")
}

// FormatCompact is Format without separators, e.g. "31UDQ4825111932".
func (r Reference) FormatCompact(accuracy Accuracy) string {
	return r.format(accuracy, "")
}

func (r Reference) format(accuracy Accuracy, sep string) string {
	digits := accuracy.AxisDigits()
	divisor := int64(accuracy.Meters())
	east := int64(r.Easting) / divisor
	north := int64(r.Northing) / divisor
	return fmt.Sprintf("%s%s%s%s%0*d%s%0*d", r.GZD, sep, r.Square, sep, digits, east, sep, digits, north)
}

func (r Reference) String() string {
	if !r.Accuracy.Valid() {
		return fmt.Sprintf("%s %s", r.GZD, r.Square)
	}
	return r.Format(r.Accuracy)
}
