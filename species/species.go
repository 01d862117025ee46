/*Package species holds the static particle-type database consumed by the
scatter-action engine: pole masses and widths, quantum numbers, two-body
decay modes, and the Breit-Wigner spectral machinery built on top of them.

Types are immutable once the database is built, so a single database may be
shared by concurrently evaluated scatter actions.*/
package species

import (
	"math"

	"github.com/hadronlab/gohadron/kinematics"
)

// DecayMode is a two-body decay of a resonance. A and B are the product
// types, L the orbital angular momentum of the decay, and Branch the
// branching ratio at the pole mass.
type DecayMode struct {
	A, B   *ParticleType
	L      int
	Branch float64
}

// ParticleType describes one hadron species. Spin is twice the spin quantum
// number (2J), Charge is in units of e.
type ParticleType struct {
	Code         int
	Name         string
	Mass         float64 // pole mass, GeV
	Width        float64 // pole width, GeV
	Spin         int
	Charge       int
	BaryonNumber int
	Stable       bool
	Modes        []DecayMode
}

func (t *ParticleType) IsNucleon() bool {
	c := t.Code
	if c < 0 {
		c = -c
	}
	return c == Proton || c == Neutron
}

func (t *ParticleType) IsPion() bool {
	return t.Code == PionPlus || t.Code == PionZero || t.Code == PionMinus
}

func (t *ParticleType) IsBaryon() bool { return t.BaryonNumber != 0 }

// AntiparticleSign is +1 for particles and -1 for antiparticles.
func (t *ParticleType) AntiparticleSign() int {
	if t.BaryonNumber != 0 {
		if t.BaryonNumber < 0 {
			return -1
		}
		return 1
	}
	if t.Code < 0 {
		return -1
	}
	return 1
}

// AntiparticleCode returns the PDG code of the antiparticle (the same code
// for self-conjugate mesons).
func (t *ParticleType) AntiparticleCode() int { return conjugate(t.Code) }

// partialWidth evaluates one decay mode's width at off-shell mass m with
// the usual (p/p0)^(2L+1) threshold behavior and a 1/m phase-space factor.
func (t *ParticleType) partialWidth(m float64, mode *DecayMode) float64 {
	ma, mb := mode.A.Mass, mode.B.Mass
	if m <= ma+mb {
		return 0
	}
	p0 := kinematics.PCM(t.Mass, ma, mb)
	if p0 <= 0 {
		return 0
	}
	p := kinematics.PCM(m, ma, mb)
	ratio := p / p0
	return t.Width * mode.Branch *
		math.Pow(ratio, float64(2*mode.L+1)) * (t.Mass / m)
}

// TotalWidthAt returns the mass-dependent total width at off-shell mass m.
// Types without listed decay modes keep their pole width.
func (t *ParticleType) TotalWidthAt(m float64) float64 {
	if len(t.Modes) == 0 {
		return t.Width
	}
	w := 0.0
	for i := range t.Modes {
		w += t.partialWidth(m, &t.Modes[i])
	}
	return w
}

// SpectralFunction evaluates the relativistic Breit-Wigner spectral
// function
//
//	A(m) = (2/pi) m^2 G(m) / ((m^2 - M0^2)^2 + (m G(m))^2)
//
// with the mass-dependent width G(m). It is normalized to unity when
// integrated over m^2 in the narrow-width limit.
func (t *ParticleType) SpectralFunction(m float64) float64 {
	g := t.TotalWidthAt(m)
	if g <= 0 {
		return 0
	}
	m2 := m * m
	m02 := t.Mass * t.Mass
	d := m2 - m02
	return (2 / math.Pi) * m2 * g / (d*d + m2*g*g)
}

// PartialInWidth returns the width for forming this resonance at mass m
// from the incoming pair (a, b), i.e. the partial width of the matching
// decay mode evaluated off shell. Zero if no decay mode connects the
// resonance to the pair.
func (t *ParticleType) PartialInWidth(m float64, a, b *ParticleType) float64 {
	for i := range t.Modes {
		mode := &t.Modes[i]
		if (mode.A == a && mode.B == b) || (mode.A == b && mode.B == a) {
			return t.partialWidth(m, mode)
		}
	}
	return 0
}

// MinMass returns the lowest mass at which the type can exist: the lightest
// decay threshold for a resonance, the pole mass for a stable particle.
func (t *ParticleType) MinMass() float64 {
	if t.Stable || len(t.Modes) == 0 {
		return t.Mass
	}
	min := math.Inf(1)
	for i := range t.Modes {
		thr := t.Modes[i].A.Mass + t.Modes[i].B.Mass
		if thr < min {
			min = thr
		}
	}
	return min
}
