package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFourVectorSqr(t *testing.T) {
	p := FourVector{2, 0.3, -0.4, 1.2}
	want := 4 - 0.09 - 0.16 - 1.44
	assert.InDelta(t, want, p.Sqr(), 1e-12, "invariant square")
	assert.InDelta(t, math.Sqrt(want), p.Abs(), 1e-12, "invariant mass")
}

func TestLorentzBoostPreservesInvariantMass(t *testing.T) {
	p := FourVector{3, 0.5, -1.2, 0.7}
	beta := ThreeVector{0.2, -0.3, 0.55}
	q := p.LorentzBoost(beta)
	assert.InDelta(t, p.Sqr(), q.Sqr(), 1e-10, "boost invariance")
}

func TestLorentzBoostRoundTrip(t *testing.T) {
	p := FourVector{2.5, 0.1, 0.9, -0.4}
	beta := ThreeVector{-0.3, 0.1, 0.4}
	q := p.LorentzBoost(beta).LorentzBoost(beta.Neg())
	for i := 0; i < 4; i++ {
		assert.InDelta(t, p[i], q[i], 1e-10, "round trip component")
	}
}

func TestBoostToCMFrame(t *testing.T) {
	// Boosting a system's total momentum by its own velocity must kill the
	// spatial components.
	a := FourVector{math.Sqrt(1 + 0.25), 0, 0, 0.5}
	b := FourVector{math.Sqrt(0.25 + 0.04), 0.2, 0, 0}
	total := a.Add(b)
	cm := total.LorentzBoost(total.Velocity())
	assert.InDelta(t, 0, cm[1], 1e-12)
	assert.InDelta(t, 0, cm[2], 1e-12)
	assert.InDelta(t, 0, cm[3], 1e-12)
	assert.InDelta(t, total.Abs(), cm[0], 1e-12, "CM energy is sqrt(s)")
}

func TestGamma(t *testing.T) {
	assert.InDelta(t, 1, Gamma(ThreeVector{}), 1e-12)
	assert.InDelta(t, 1/math.Sqrt(1-0.36), Gamma(ThreeVector{0, 0.6, 0}), 1e-12)
}
