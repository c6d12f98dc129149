package mgrs

import (
	"fmt"
	"math"
)

// Band is an MGRS latitude band. Bands are 8 degrees tall from C (80S-72S)
// to W (64N-72N); X covers the 12 degrees from 72N to 84N. The letters I and
// O are not used. The zero value is invalid.
type Band uint8

// Band constants
const (
	BandInvalid Band = iota
	BandC
	BandD
	BandE
	BandF
	BandG
	BandH
	BandJ
	BandK
	BandL
	BandM
	BandN
	BandP
	BandQ
	BandR
	BandS
	BandT
	BandU
	BandV
	BandW
	BandX
)

const numBands = 20

const bandLetters = "CDEFGHJKLMNPQRSTUVWX"

// twoMillion is the northing span covered by one cycle of 20 row letters.
const twoMillion = 2000000.0

type latitudeBand struct {
	minNorthing float64 // minimum northing for latitude band
	north       float64 // upper latitude for latitude band
	south       float64 // lower latitude for latitude band
}

// latitudeBands is indexed by Band.Index(). Southern hemisphere northings
// include the 10,000,000m false northing.
var latitudeBands = [numBands]latitudeBand{
	{1100000.0, -72.0, -80.0},
	{2000000.0, -64.0, -72.0},
	{2800000.0, -56.0, -64.0},
	{3700000.0, -48.0, -56.0},
	{4600000.0, -40.0, -48.0},
	{5500000.0, -32.0, -40.0},
	{6400000.0, -24.0, -32.0},
	{7300000.0, -16.0, -24.0},
	{8200000.0, -8.0, -16.0},
	{9100000.0, 0.0, -8.0},
	{0.0, 8.0, 0.0},
	{800000.0, 16.0, 8.0},
	{1700000.0, 24.0, 16.0},
	{2600000.0, 32.0, 24.0},
	{3500000.0, 40.0, 32.0},
	{4400000.0, 48.0, 40.0},
	{5300000.0, 56.0, 48.0},
	{6200000.0, 64.0, 56.0},
	{7000000.0, 72.0, 64.0},
	{7900000.0, 84.0, 72.0}}

// BandForLatitude returns the latitude band containing lat, which must be in
// [-80, 84]. Band boundaries belong to the band to their north, except 84N
// which belongs to X.
func BandForLatitude(lat float64) (Band, error) {
	if !(lat >= minLatitude && lat <= maxLatitude) {
		return BandInvalid, fmt.Errorf("%w: no band for latitude %v", ErrInvalidLatitudeBand, lat)
	}
	i := int(math.Floor((lat - minLatitude) / 8))
	if i >= numBands {
		i = numBands - 1
	}
	return Band(i + 1), nil
}

// BandFromLetter returns the band for an upper or lower case letter.
func BandFromLetter(c byte) (Band, error) {
	if i := indexOf(bandLetters, toUpper(c)); i >= 0 {
		return Band(i + 1), nil
	}
	return BandInvalid, fmt.Errorf("%w %q", ErrInvalidLatitudeBand, c)
}

// BandFromIndex returns the band with dense index i, 0 (C) through 19 (X).
func BandFromIndex(i int) (Band, error) {
	if i < 0 || i >= numBands {
		return BandInvalid, fmt.Errorf("%w: index %d", ErrInvalidLatitudeBand, i)
	}
	return Band(i + 1), nil
}

// MinNorthing returns the minimum northing of the band with the given letter.
func MinNorthing(letter byte) (float64, error) {
	b, err := BandFromLetter(letter)
	if err != nil {
		return 0, err
	}
	return b.MinNorthing(), nil
}

// Valid reports whether b is one of the 20 bands.
func (b Band) Valid() bool {
	return b >= BandC && b <= BandX
}

// Index returns the dense index of the band, 0 (C) through 19 (X). It
// panics if b is not valid.
func (b Band) Index() int {
	if !b.Valid() {
		panic(fmt.Sprintf("mgrs: invalid band %d", uint8(b)))
	}
	return int(b) - 1
}

// Letter returns the band letter. It panics if b is not valid.
func (b Band) Letter() byte {
	return bandLetters[b.Index()]
}

// MinNorthing returns the lowest northing, rounded down to 100km, at which
// the band begins anywhere in a zone.
func (b Band) MinNorthing() float64 {
	return latitudeBands[b.Index()].minNorthing
}

// LatitudeRange returns the southern and northern latitude of the band.
func (b Band) LatitudeRange() (south, north float64) {
	lb := latitudeBands[b.Index()]
	return lb.south, lb.north
}

// Hemisphere returns the hemisphere the band lies in.
func (b Band) Hemisphere() Hemisphere {
	if b < BandN {
		return HemisphereSouth
	}
	return HemisphereNorth
}

// ResolveNorthing turns the northing of a 100km row letter, which repeats
// every 2,000,000m, into the northing of that row inside the band.
func (b Band) ResolveNorthing(rowNorthing float64) float64 {
	n := rowNorthing
	lowest := b.MinNorthing()
	for n < lowest {
		n += twoMillion
	}
	return n
}

func (b Band) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Band(%d)", uint8(b))
	}
	return string(b.Letter())
}

// GridZoneDesignator is a UTM zone number plus a latitude band, e.g. 31U.
type GridZoneDesignator struct {
	Zone int
	Band Band
}

func (g GridZoneDesignator) String() string {
	return fmt.Sprintf("%02d%s", g.Zone, g.Band)
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
