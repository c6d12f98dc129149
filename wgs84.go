package mgrs

import (
	"fmt"
	"math"
)

// Ellipsoid holds the defining parameters of a reference ellipsoid.
type Ellipsoid struct {
	SemiMajorAxis float64 // a, meters
	Flattening    float64 // f
}

// WGS84 is the World Geodetic System 1984 ellipsoid.
var WGS84 = Ellipsoid{
	SemiMajorAxis: 6378137.0,
	Flattening:    1 / 298.257223563,
}

// eccentricity returns the first eccentricity e.
func (e Ellipsoid) eccentricity() float64 {
	return math.Sqrt(e.Flattening * (2 - e.Flattening))
}

// thirdFlattening returns Helmert's n = (a-b)/(a+b).
func (e Ellipsoid) thirdFlattening() float64 {
	return e.Flattening / (2 - e.Flattening)
}

// DefaultUTMConverter is a WGS84 ellipsoid based UTM converter.
var DefaultUTMConverter *UTM

// DefaultMGRSConverter is a WGS84 ellipsoid based MGRS converter.
var DefaultMGRSConverter *MGRS

func init() {
	var err error
	DefaultUTMConverter, err = NewUTM(DatumWGS84)
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 UTM converter: %s", err))
	}
	DefaultMGRSConverter, err = NewMGRS(DatumWGS84)
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 MGRS converter: %s", err))
	}
}
