package kinematics

import (
	"math"
)

const reallySmall = 1.0e-6

// PCMSqr returns the squared momentum of either particle in the
// center-of-momentum frame of a two-body system with total energy srts and
// masses m1 and m2. Below threshold the value is clamped to zero.
func PCMSqr(srts, m1, m2 float64) float64 {
	s := srts * srts
	x := (s - (m1+m2)*(m1+m2)) * (s - (m1-m2)*(m1-m2)) / (4 * s)
	if x < 0 {
		return 0
	}
	return x
}

// PCM returns the momentum of either particle in the center-of-momentum
// frame of a two-body system with total energy srts and masses m1 and m2.
func PCM(srts, m1, m2 float64) float64 {
	return math.Sqrt(PCMSqr(srts, m1, m2))
}

// TransverseDistanceSqr evaluates the UrQMD squared distance criterion
//
//	d^2 = dr^2 - (dr.dp)^2 / dp^2
//
// for the position difference dr and momentum difference dp of two
// particles in their center-of-momentum frame. Vanishing relative momentum
// would make the projection singular, so in that case the plain squared
// separation is returned instead.
func TransverseDistanceSqr(dr, dp ThreeVector) float64 {
	dp2 := dp.Sqr()
	dr2 := dr.Sqr()
	if dp2 < reallySmall {
		return dr2
	}
	drdp := dr.Dot(dp)
	return dr2 - drdp*drdp/dp2
}

// Direction returns the unit vector with polar angle cosine cosTheta and
// azimuthal angle phi.
func Direction(cosTheta, phi float64) ThreeVector {
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	return ThreeVector{
		sinTheta * math.Cos(phi),
		sinTheta * math.Sin(phi),
		cosTheta,
	}
}
