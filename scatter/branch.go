/*Package scatter implements the binary-collision engine of the transport
simulation. A ScatterAction is created per candidate collision and walks
through three phases: cross-section accumulation (AddAllProcesses), channel
selection, and final-state generation (GenerateFinalState). Afterwards the
outgoing particles are handed back to the surrounding simulation and the
action is discarded.*/
package scatter

import (
	"github.com/hadronlab/gohadron/species"
)

// ProcessType tags the microscopic process of a collision channel. The
// final-state generator dispatches on it with an exhaustive switch; new
// processes are added by extending this enumeration, not by subtyping.
type ProcessType int

const (
	ProcessNone ProcessType = iota
	// ProcessElastic is 2->2 scattering that keeps both identities.
	ProcessElastic
	// ProcessTwoToOne is resonance formation.
	ProcessTwoToOne
	// ProcessTwoToTwo is 2->2 inelastic scattering.
	ProcessTwoToTwo
	// ProcessStringSoft is soft string excitation via the diffractive and
	// soft non-diffractive sub-processes.
	ProcessStringSoft
	// ProcessStringHard is hard string excitation via the external
	// hadronization generator.
	ProcessStringHard
)

func (t ProcessType) String() string {
	switch t {
	case ProcessNone:
		return "None"
	case ProcessElastic:
		return "Elastic"
	case ProcessTwoToOne:
		return "TwoToOne"
	case ProcessTwoToTwo:
		return "TwoToTwo"
	case ProcessStringSoft:
		return "StringSoft"
	case ProcessStringHard:
		return "StringHard"
	}
	return "Invalid"
}

// CollisionBranch is one candidate outgoing channel: the outgoing species
// (empty for string channels, whose multiplicity is decided by the
// generator), the cross section in mb used as the sampling weight, and the
// process tag.
type CollisionBranch struct {
	Types   []*species.ParticleType
	Weight  float64
	Process ProcessType
}

// channelList accumulates branches together with the running total of
// their weights. The total always equals the sum of the held weights; it is
// maintained incrementally on every insertion.
type channelList struct {
	branches []*CollisionBranch
	total    float64
}

func (l *channelList) add(b *CollisionBranch) {
	if b == nil {
		return
	}
	l.branches = append(l.branches, b)
	l.total += b.Weight
}

func (l *channelList) addAll(bs []*CollisionBranch) {
	for _, b := range bs {
		l.add(b)
	}
}

// choose draws one branch with probability proportional to its weight:
// a uniform draw in [0, total) against the cumulative weights, taking the
// first branch whose cumulative upper bound strictly exceeds the draw.
func (l *channelList) choose(rng Source) (*CollisionBranch, error) {
	if len(l.branches) == 0 || l.total <= 0 {
		return nil, ErrNoChannels
	}
	r := rng.Uniform(0, l.total)
	cum := 0.0
	for _, b := range l.branches {
		cum += b.Weight
		if cum > r {
			return b, nil
		}
	}
	// r landed beyond the last cumulative bound through rounding.
	return l.branches[len(l.branches)-1], nil
}

// ChannelFilter adjusts the channel list before selection. The surrounding
// simulation uses it to fold potential-field effects into the weights; when
// no filter is configured the list passes through untouched.
type ChannelFilter interface {
	Filter(branches []*CollisionBranch, total float64) ([]*CollisionBranch, float64)
}
