/*Package kinematics implements the relativistic vector algebra used by the
scatter-action engine: three- and four-vectors with the (+,-,-,-) metric,
Lorentz boosts, center-of-momentum quantities, and the transverse-distance
collision criterion.*/
package kinematics

import (
	"math"
)

// ThreeVector is a spatial vector or three-momentum.
type ThreeVector [3]float64

func (v ThreeVector) Sqr() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

func (v ThreeVector) Abs() float64 { return math.Sqrt(v.Sqr()) }

func (v ThreeVector) Dot(u ThreeVector) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

func (v ThreeVector) Add(u ThreeVector) ThreeVector {
	return ThreeVector{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

func (v ThreeVector) Sub(u ThreeVector) ThreeVector {
	return ThreeVector{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

func (v ThreeVector) Neg() ThreeVector {
	return ThreeVector{-v[0], -v[1], -v[2]}
}

func (v ThreeVector) Scale(a float64) ThreeVector {
	return ThreeVector{a * v[0], a * v[1], a * v[2]}
}

// FourVector is a four-momentum (E, px, py, pz) or four-position
// (t, x, y, z).
type FourVector [4]float64

// Sqr returns the invariant square x.x with the (+,-,-,-) metric. For a
// four-momentum this is the squared invariant mass.
func (p FourVector) Sqr() float64 {
	return p[0]*p[0] - p[1]*p[1] - p[2]*p[2] - p[3]*p[3]
}

// Abs returns sqrt(p.p), clamped at zero for slightly spacelike vectors
// produced by rounding.
func (p FourVector) Abs() float64 {
	s := p.Sqr()
	if s < 0 {
		return 0
	}
	return math.Sqrt(s)
}

func (p FourVector) ThreeVec() ThreeVector {
	return ThreeVector{p[1], p[2], p[3]}
}

// Velocity returns the three-velocity p/E of a four-momentum.
func (p FourVector) Velocity() ThreeVector {
	return ThreeVector{p[1] / p[0], p[2] / p[0], p[3] / p[0]}
}

func (p FourVector) Add(q FourVector) FourVector {
	return FourVector{p[0] + q[0], p[1] + q[1], p[2] + q[2], p[3] + q[3]}
}

func (p FourVector) Sub(q FourVector) FourVector {
	return FourVector{p[0] - q[0], p[1] - q[1], p[2] - q[2], p[3] - q[3]}
}

// LorentzBoost transforms p into the frame that moves with velocity beta
// relative to the current frame. Boosting the total momentum of a system by
// its own Velocity() lands in the center-of-momentum frame; boosting by the
// negated velocity undoes the transform.
func (p FourVector) LorentzBoost(beta ThreeVector) FourVector {
	b2 := beta.Sqr()
	if b2 == 0 {
		return p
	}
	gamma := 1 / math.Sqrt(1-b2)
	bp := beta[0]*p[1] + beta[1]*p[2] + beta[2]*p[3]
	a := (gamma-1)*bp/b2 - gamma*p[0]

	return FourVector{
		gamma * (p[0] - bp),
		p[1] + a*beta[0],
		p[2] + a*beta[1],
		p[3] + a*beta[2],
	}
}

// Gamma returns the Lorentz factor of a velocity vector.
func Gamma(beta ThreeVector) float64 {
	return 1 / math.Sqrt(1-beta.Sqr())
}
