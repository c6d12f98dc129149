package mgrs

import (
	"errors"
	"math"
)

const nTerms = 6

// Inverse projection contract: the Newton correction to tan(latitude) must
// fall below inverseTolerance within maxInverseIterations, otherwise the
// inverse fails with ErrNoConvergence. Valid WGS84 inputs settle in 2 or 3.
const (
	inverseTolerance     = 1e-12
	maxInverseIterations = 5
)

// transverseMercator provides conversions between geodetic coordinates
// relative to a central meridian and Transverse Mercator projection
// coordinates, using Krüger's series to 6th order in n with the
// coefficients of Karney (2011), "Transverse Mercator with an accuracy of a
// few nanometers".
type transverseMercator struct {
	// Ellipsoid Parameters
	semiMajorAxis float64
	eps           float64 // Eccentricity
	eps2          float64 // Eccentricity squared

	rectifyingRadius float64 // A, meridian arc length per radian of rectifying latitude
	k0A              float64 // scaleFactor * A
	scaleFactor      float64

	alpha [nTerms]float64 // forward series, Karney eq. 35
	beta  [nTerms]float64 // inverse series, Karney eq. 36
}

func newTransverseMercator(ellipsoid Ellipsoid, scaleFactor float64) (*transverseMercator, error) {
	if ellipsoid.SemiMajorAxis <= 0.0 {
		return nil, errors.New("semi-major axis must be greater than zero")
	}
	invFlattening := 1.0 / ellipsoid.Flattening
	if (invFlattening < 250) || (invFlattening > 350) {
		return nil, errors.New("inverse flattening must be between 250 and 350")
	}
	const minScaleFactor = 0.1
	const maxScaleFactor = 10.0
	if (scaleFactor < minScaleFactor) || (scaleFactor > maxScaleFactor) {
		return nil, errors.New("scale factor out of range")
	}

	t := &transverseMercator{
		semiMajorAxis: ellipsoid.SemiMajorAxis,
		eps:           ellipsoid.eccentricity(),
		scaleFactor:   scaleFactor,
	}
	t.eps2 = t.eps * t.eps

	var aOverA float64
	t.alpha, t.beta, aOverA = generateCoefficients(ellipsoid.thirdFlattening())
	t.rectifyingRadius = aOverA * ellipsoid.SemiMajorAxis
	t.k0A = scaleFactor * t.rectifyingRadius
	return t, nil
}

// generateCoefficients returns the alpha and beta series coefficients and the
// ratio A/a for Helmert's third flattening n. Only the shape of the
// ellipsoid matters, not its size.
func generateCoefficients(n1 float64) (alpha, beta [nTerms]float64, aOverA float64) {
	n2 := n1 * n1
	n3 := n2 * n1
	n4 := n3 * n1
	n5 := n4 * n1
	n6 := n5 * n1

	alpha[0] = n1/2 - 2*n2/3 + 5*n3/16 + 41*n4/180 - 127*n5/288 + 7891*n6/37800
	alpha[1] = 13*n2/48 - 3*n3/5 + 557*n4/1440 + 281*n5/630 - 1983433*n6/1935360
	alpha[2] = 61*n3/240 - 103*n4/140 + 15061*n5/26880 + 167603*n6/181440
	alpha[3] = 49561*n4/161280 - 179*n5/168 + 6601661*n6/7257600
	alpha[4] = 34729*n5/80640 - 3418889*n6/1995840
	alpha[5] = 212378941 * n6 / 319334400

	beta[0] = n1/2 - 2*n2/3 + 37*n3/96 - n4/360 - 81*n5/512 + 96199*n6/604800
	beta[1] = n2/48 + n3/15 - 437*n4/1440 + 46*n5/105 - 1118711*n6/3870720
	beta[2] = 17*n3/480 - 37*n4/840 - 209*n5/4480 + 5569*n6/90720
	beta[3] = 4397*n4/161280 - 11*n5/504 - 830251*n6/7257600
	beta[4] = 4583*n5/161280 - 108847*n6/3991680
	beta[5] = 20648693 * n6 / 638668800

	aOverA = (1 + n2/4 + n4/64 + n6/256) / (1 + n1)
	return alpha, beta, aOverA
}

// forward projects latitude and longitude from the central meridian, both in
// radians. x and y are in meters with no false easting or northing,
// convergence is in radians.
func (t *transverseMercator) forward(latitude, lambda float64) (x, y, convergence, scale float64) {
	cosLam := math.Cos(lambda)
	sinLam := math.Sin(lambda)
	tanLam := math.Tan(lambda)

	//  Ellipsoid to sphere
	//  --------- -- ------

	//  tau is tan(phi), tauP is tan(chi) of the conformal latitude chi
	tau := math.Tan(latitude)
	sigma := math.Sinh(t.eps * math.Atanh(t.eps*tau/math.Sqrt(1+tau*tau)))
	tauP := tau*math.Sqrt(1+sigma*sigma) - sigma*math.Sqrt(1+tau*tau)

	//  Sphere to first plane
	//  ------ -- ----- -----
	xiP := math.Atan2(tauP, cosLam)
	etaP := math.Asinh(sinLam / math.Sqrt(tauP*tauP+cosLam*cosLam))

	var c2kxi, s2kxi, c2keta, s2keta [nTerms]float64
	computeTrigSeries(2.0*xiP, c2kxi[:], s2kxi[:])
	computeHyperbolicSeries(2.0*etaP, c2keta[:], s2keta[:])

	//  First plane to second plane
	//  Accumulate terms for xi, eta and the p, q derivatives
	xi := xiP
	eta := etaP
	p := 1.0
	q := 0.0
	for k := nTerms - 1; k >= 0; k-- {
		j2 := float64(2 * (k + 1))
		xi += t.alpha[k] * s2kxi[k] * c2keta[k]
		eta += t.alpha[k] * c2kxi[k] * s2keta[k]
		p += j2 * t.alpha[k] * c2kxi[k] * c2keta[k]
		q += j2 * t.alpha[k] * s2kxi[k] * s2keta[k]
	}

	x = t.k0A * eta
	y = t.k0A * xi

	gammaP := math.Atan(tauP / math.Sqrt(1+tauP*tauP) * tanLam)
	gammaPP := math.Atan2(q, p)
	convergence = gammaP + gammaPP

	sinPhi := math.Sin(latitude)
	kP := math.Sqrt(1-t.eps2*sinPhi*sinPhi) * math.Sqrt(1+tau*tau) / math.Sqrt(tauP*tauP+cosLam*cosLam)
	kPP := t.rectifyingRadius / t.semiMajorAxis * math.Sqrt(p*p+q*q)
	scale = t.scaleFactor * kP * kPP
	return x, y, convergence, scale
}

// inverse converts x and y, in meters with no false easting or northing, to
// latitude and longitude from the central meridian in radians.
func (t *transverseMercator) inverse(x, y float64) (latitude, lambda, convergence, scale float64, err error) {
	//  Undo scale change and factor A
	eta := x / t.k0A
	xi := y / t.k0A

	var c2kxi, s2kxi, c2keta, s2keta [nTerms]float64
	computeTrigSeries(2.0*xi, c2kxi[:], s2kxi[:])
	computeHyperbolicSeries(2.0*eta, c2keta[:], s2keta[:])

	//  Second plane (xi, eta) to first plane (xiP, etaP)
	//  ------ ----- -------- -- ----- ----- ------------
	xiP := xi
	etaP := eta
	p := 1.0
	q := 0.0
	for k := nTerms - 1; k >= 0; k-- {
		j2 := float64(2 * (k + 1))
		xiP -= t.beta[k] * s2kxi[k] * c2keta[k]
		etaP -= t.beta[k] * c2kxi[k] * s2keta[k]
		p -= j2 * t.beta[k] * c2kxi[k] * c2keta[k]
		q += j2 * t.beta[k] * s2kxi[k] * s2keta[k]
	}

	//  First plane to sphere
	//  ----- ----- -- ------
	sinhEtaP := math.Sinh(etaP)
	sinXiP := math.Sin(xiP)
	cosXiP := math.Cos(xiP)
	tauP := sinXiP / math.Sqrt(sinhEtaP*sinhEtaP+cosXiP*cosXiP)

	//  Sphere to ellipsoid
	//  ------ -- ---------
	tau, err := t.geodeticTau(tauP)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	latitude = math.Atan(tau)
	lambda = math.Atan2(sinhEtaP, cosXiP)

	gammaP := math.Atan(math.Tan(xiP) * math.Tanh(etaP))
	gammaPP := math.Atan2(q, p)
	convergence = gammaP + gammaPP

	sinPhi := math.Sin(latitude)
	kP := math.Sqrt(1-t.eps2*sinPhi*sinPhi) * math.Sqrt(1+tau*tau) * math.Sqrt(sinhEtaP*sinhEtaP+cosXiP*cosXiP)
	kPP := t.rectifyingRadius / t.semiMajorAxis / math.Sqrt(p*p+q*q)
	scale = t.scaleFactor * kP * kPP
	return latitude, lambda, convergence, scale, nil
}

// geodeticTau solves tan(chi) = tauP for tau = tan(phi) by Newton's method.
func (t *transverseMercator) geodeticTau(tauP float64) (float64, error) {
	tau := tauP
	for n := 0; n < maxInverseIterations; n++ {
		sigma := math.Sinh(t.eps * math.Atanh(t.eps*tau/math.Sqrt(1+tau*tau)))
		tauI := tau*math.Sqrt(1+sigma*sigma) - sigma*math.Sqrt(1+tau*tau)
		delta := (tauP - tauI) / math.Sqrt(1+tauI*tauI) *
			(1 + (1-t.eps2)*tau*tau) / ((1 - t.eps2) * math.Sqrt(1+tau*tau))
		tau += delta
		if math.Abs(delta) <= inverseTolerance {
			return tau, nil
		}
	}
	return 0, ErrNoConvergence
}

func computeHyperbolicSeries(twoX float64, c2kx, s2kx []float64) {
	// Use trig identities to compute
	// c2kx[k] = cosh(2(k+1)X), s2kx[k] = sinh(2(k+1)X)   for k = 0 .. 5
	c2kx[0] = math.Cosh(twoX)
	s2kx[0] = math.Sinh(twoX)
	c2kx[1] = 2.0*c2kx[0]*c2kx[0] - 1.0
	s2kx[1] = 2.0 * c2kx[0] * s2kx[0]
	c2kx[2] = c2kx[0]*c2kx[1] + s2kx[0]*s2kx[1]
	s2kx[2] = c2kx[1]*s2kx[0] + c2kx[0]*s2kx[1]
	c2kx[3] = 2.0*c2kx[1]*c2kx[1] - 1.0
	s2kx[3] = 2.0 * c2kx[1] * s2kx[1]
	c2kx[4] = c2kx[0]*c2kx[3] + s2kx[0]*s2kx[3]
	s2kx[4] = c2kx[3]*s2kx[0] + c2kx[0]*s2kx[3]
	c2kx[5] = 2.0*c2kx[2]*c2kx[2] - 1.0
	s2kx[5] = 2.0 * c2kx[2] * s2kx[2]
}

func computeTrigSeries(twoY float64, c2ky, s2ky []float64) {
	// Use trig identities to compute
	// c2ky[k] = cos(2(k+1)Y), s2ky[k] = sin(2(k+1)Y)   for k = 0 .. 5
	c2ky[0] = math.Cos(twoY)
	s2ky[0] = math.Sin(twoY)
	c2ky[1] = 2.0*c2ky[0]*c2ky[0] - 1.0
	s2ky[1] = 2.0 * c2ky[0] * s2ky[0]
	c2ky[2] = c2ky[1]*c2ky[0] - s2ky[1]*s2ky[0]
	s2ky[2] = c2ky[1]*s2ky[0] + c2ky[0]*s2ky[1]
	c2ky[3] = 2.0*c2ky[1]*c2ky[1] - 1.0
	s2ky[3] = 2.0 * c2ky[1] * s2ky[1]
	c2ky[4] = c2ky[3]*c2ky[0] - s2ky[3]*s2ky[0]
	s2ky[4] = c2ky[3]*s2ky[0] + c2ky[0]*s2ky[3]
	c2ky[5] = 2.0*c2ky[2]*c2ky[2] - 1.0
	s2ky[5] = 2.0 * c2ky[2] * s2ky[2]
}
