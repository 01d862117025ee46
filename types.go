package gohadron

import (
	"github.com/hadronlab/gohadron/kinematics"
	"github.com/hadronlab/gohadron/species"
)

// Particle is one hadron in the transport simulation: a species, a
// four-momentum and four-position in the computational frame, and the
// formation bookkeeping used to suppress interactions of not-yet-formed
// hadrons.
type Particle struct {
	Type     *species.ParticleType
	Momentum kinematics.FourVector
	Position kinematics.FourVector

	// FormationTime is the simulation time at which the particle becomes
	// fully interacting. ScalingFactor multiplies its cross sections while
	// still unformed.
	FormationTime float64
	ScalingFactor float64
}

// NewParticle returns a formed on-shell particle of the given type at rest
// at the origin.
func NewParticle(t *species.ParticleType) Particle {
	return Particle{
		Type:          t,
		Momentum:      kinematics.FourVector{t.Mass, 0, 0, 0},
		ScalingFactor: 1,
	}
}

// EffectiveMass is the invariant mass of the particle's four-momentum, or
// the pole mass if no momentum has been assigned yet.
func (p *Particle) EffectiveMass() float64 {
	if p.Momentum == (kinematics.FourVector{}) {
		return p.Type.Mass
	}
	return p.Momentum.Abs()
}

// Boost transforms both momentum and position into the frame moving with
// velocity beta.
func (p *Particle) Boost(beta kinematics.ThreeVector) {
	p.Momentum = p.Momentum.LorentzBoost(beta)
	p.Position = p.Position.LorentzBoost(beta)
}

// BoostMomentum transforms only the momentum; positions stay in the
// computational frame.
func (p *Particle) BoostMomentum(beta kinematics.ThreeVector) {
	p.Momentum = p.Momentum.LorentzBoost(beta)
}

func (p *Particle) IsBaryon() bool { return p.Type.IsBaryon() }
