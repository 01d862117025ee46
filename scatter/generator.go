package scatter

import (
	gohadron "github.com/hadronlab/gohadron"
	"github.com/hadronlab/gohadron/kinematics"
	"github.com/hadronlab/gohadron/species"
)

// Hadron is one generator-native final-state hadron: its PDG code and
// four-momentum in the collision's center-of-momentum frame.
type Hadron struct {
	Code     int
	Momentum kinematics.FourVector
}

// StringGenerator is the soft string-fragmentation sub-system. It carries
// mutable event state across the call sequence and must be driven as
// Init, then exactly one successful NextSDiff/NextDDiff/NextNDiffSoft,
// then FinalState. The Next methods report failure of a single sampling
// attempt; the caller retries. Instances are one-per-worker, not
// reentrant.
type StringGenerator interface {
	Init(a, b *gohadron.Particle, time, gammaCM float64)

	// NextSDiff attempts a single-diffractive excitation: AB -> AX when
	// aSide is true, AB -> XB otherwise.
	NextSDiff(aSide bool) bool
	NextDDiff() bool
	NextNDiffSoft() bool

	// FinalState drains the hadrons of the last successful Next call,
	// with momenta in the CM frame and formation times already assigned.
	FinalState() []gohadron.Particle

	// DiffractiveCrossSections returns the parametrized
	// single-diffractive AB->AX, single-diffractive AB->XB and
	// double-diffractive cross sections in mb.
	DiffractiveCrossSections(codeA, codeB int, sqrtS float64) [3]float64
}

// HardConfig parametrizes one hard-process invocation.
type HardConfig struct {
	CodeA, CodeB int
	SqrtS        float64
	// Seed is drawn from the simulation's random source so repeated
	// invocations produce independent events.
	Seed float64
	// Types carries the simulation's species so the generator can match
	// its masses and widths to ours.
	Types []*species.ParticleType
}

// HardGenerator produces the final state of a hard non-diffractive
// collision. It retries internally until an event succeeds; the sampling is
// guaranteed to converge, so no retry bound is imposed here (unlike the
// soft sub-processes).
type HardGenerator interface {
	HardEvent(cfg HardConfig) []Hadron
}
