package scatter

import (
	"fmt"
	"math"
	"sort"

	gohadron "github.com/hadronlab/gohadron"
	"github.com/hadronlab/gohadron/kinematics"
	"github.com/hadronlab/gohadron/species"
)

const (
	// softStringMaxTries bounds the soft sub-process retry loop. The hard
	// generator instead retries internally without bound; the two sampling
	// procedures have different convergence guarantees and the asymmetry
	// is deliberate.
	softStringMaxTries = 10000

	// stringCoherenceFactor additionally suppresses the leading string
	// fragments, taken as 0.7 from UrQMD (CTParam(59)).
	stringCoherenceFactor = 0.7
)

// GenerateFinalState decides on a channel and produces the outgoing
// particles. On return the outgoing momenta are in the computational frame,
// non-elastic products carry the interaction point as their position, and
// total four-momentum, charge and baryon number are conserved.
func (a *ScatterAction) GenerateFinalState() error {
	a.log.Debugf("incoming particles: %v", a.incoming)

	if a.filter != nil {
		a.channels.branches, a.channels.total =
			a.filter.Filter(a.channels.branches, a.channels.total)
	}
	proc, err := a.channels.choose(a.rng)
	if err != nil {
		return err
	}
	a.processType = proc.Process
	a.partialXS = proc.Weight
	a.outgoing = a.outgoing[:0]
	for _, t := range proc.Types {
		a.outgoing = append(a.outgoing, gohadron.NewParticle(t))
	}

	a.log.Debugf("chosen channel: %v, %d outgoing types",
		a.processType, len(proc.Types))

	middlePoint := a.interactionPoint()

	switch a.processType {
	case ProcessElastic:
		a.elasticScattering()
	case ProcessTwoToOne:
		if err := a.resonanceFormation(); err != nil {
			return err
		}
	case ProcessTwoToTwo:
		a.inelasticScattering()
	case ProcessStringSoft:
		if err := a.stringExcitationSoft(); err != nil {
			return err
		}
	case ProcessStringHard:
		if err := a.stringExcitationHard(); err != nil {
			return err
		}
	default:
		return &InvalidActionError{
			Reason: fmt.Sprintf("invalid process type %d requested",
				int(a.processType)),
			CodeA: a.incoming[0].Type.Code,
			CodeB: a.incoming[1].Type.Code,
		}
	}

	minusBeta := a.BetaCM().Neg()
	for i := range a.outgoing {
		if a.processType != ProcessElastic {
			a.outgoing[i].Position = middlePoint
		}
		a.outgoing[i].BoostMomentum(minusBeta)
	}
	return nil
}

// sampleCMDirection draws the scattering direction in the CM frame:
// isotropic by default, forward-peaked in t for nucleon-nucleon pairs when
// anisotropic sampling is configured.
func (a *ScatterAction) sampleCMDirection(pcm float64) kinematics.ThreeVector {
	bothNucleons := a.incoming[0].Type.IsNucleon() &&
		a.incoming[1].Type.IsNucleon()
	if !a.isotropic && bothNucleons && pcm > 0 {
		// exponential t-slope, b = 8 GeV^-2
		const slope = 8.0
		tMax := 4 * pcm * pcm
		u := a.rng.Canonical()
		t := -math.Log(1-u*(1-math.Exp(-slope*tMax))) / slope
		cosTheta := 1 - 2*t/tMax
		return kinematics.Direction(cosTheta, a.rng.Uniform(0, gohadron.TwoPi))
	}
	return kinematics.Direction(
		a.rng.Uniform(-1, 1), a.rng.Uniform(0, gohadron.TwoPi))
}

// twoBodyMomenta assigns back-to-back CM momenta with the given masses to
// the two outgoing slots.
func (a *ScatterAction) twoBodyMomenta(m1, m2 float64) {
	srts := a.SqrtS()
	pcm := kinematics.PCM(srts, m1, m2)
	dir := a.sampleCMDirection(pcm).Scale(pcm)
	a.outgoing[0].Momentum = kinematics.FourVector{
		math.Sqrt(m1*m1 + pcm*pcm), dir[0], dir[1], dir[2]}
	a.outgoing[1].Momentum = kinematics.FourVector{
		math.Sqrt(m2*m2 + pcm*pcm), -dir[0], -dir[1], -dir[2]}
}

// elasticScattering copies the incoming particles into the final state and
// resamples the momentum direction at fixed CM energy. Positions, formation
// times and scaling factors carry over unchanged.
func (a *ScatterAction) elasticScattering() {
	a.outgoing = a.outgoing[:0]
	a.outgoing = append(a.outgoing, a.incoming[0], a.incoming[1])
	a.twoBodyMomenta(
		a.incoming[0].EffectiveMass(), a.incoming[1].EffectiveMass())
}

// propagateFormation applies the shared formation rule for 2->1 and 2->2
// channels: the outgoing formation time is the larger incoming formation
// time if that exceeds the collision time (with the scaling factor of the
// later-formed incoming particle), the collision time otherwise.
func (a *ScatterAction) propagateFormation() {
	t0 := a.incoming[0].FormationTime
	t1 := a.incoming[1].FormationTime
	later := 0
	if t1 > t0 {
		later = 1
	}
	if t0 > a.timeOfExecution || t1 > a.timeOfExecution {
		for i := range a.outgoing {
			a.outgoing[i].FormationTime = math.Max(t0, t1)
			a.outgoing[i].ScalingFactor = a.incoming[later].ScalingFactor
		}
	} else {
		for i := range a.outgoing {
			a.outgoing[i].FormationTime = a.timeOfExecution
		}
	}
}

// resonanceFormation puts the single outgoing resonance at rest in the CM
// frame with the full collision energy.
func (a *ScatterAction) resonanceFormation() error {
	if len(a.outgoing) != 1 {
		return &InvalidActionError{
			Reason: fmt.Sprintf(
				"resonance formation with %d particles in final state",
				len(a.outgoing)),
			CodeA: a.incoming[0].Type.Code,
			CodeB: a.incoming[1].Type.Code,
		}
	}
	a.outgoing[0].Momentum = kinematics.FourVector{a.SqrtS(), 0, 0, 0}
	a.propagateFormation()
	a.log.Debugf("formed resonance %s with momentum %v",
		a.outgoing[0].Type.Name, a.outgoing[0].Momentum)
	return nil
}

// sampleResonanceMass draws an off-shell mass for an unstable outgoing
// type from its spectral function, restricted to [MinMass, maxMass].
// Rejection sampling against the peak value; if the window is too starved
// to accept, the in-range mass closest to the pole is used.
func (a *ScatterAction) sampleResonanceMass(
	t *species.ParticleType, maxMass float64,
) float64 {
	if t.Stable {
		return t.Mass
	}
	lo, hi := t.MinMass(), maxMass
	if hi <= lo {
		return lo
	}
	pole := math.Min(math.Max(t.Mass, lo), hi)
	peak := t.SpectralFunction(pole)
	if peak <= 0 {
		return pole
	}
	for try := 0; try < 100; try++ {
		m := a.rng.Uniform(lo, hi)
		if a.rng.Canonical() < t.SpectralFunction(m)/peak {
			return m
		}
	}
	return pole
}

// inelasticScattering samples the two-body phase space of the chosen 2->2
// branch at fixed CM energy.
func (a *ScatterAction) inelasticScattering() {
	srts := a.SqrtS()
	t1, t2 := a.outgoing[0].Type, a.outgoing[1].Type
	var m1, m2 float64
	if t1.Stable {
		m1 = t1.Mass
		m2 = a.sampleResonanceMass(t2, srts-m1)
	} else if t2.Stable {
		m2 = t2.Mass
		m1 = a.sampleResonanceMass(t1, srts-m2)
	} else {
		m1 = a.sampleResonanceMass(t1, srts-t2.MinMass())
		m2 = a.sampleResonanceMass(t2, srts-m1)
	}
	a.twoBodyMomenta(m1, m2)
	a.propagateFormation()
}

// stringExcitationSoft draws one of the four soft sub-processes from the
// cumulative sub-channel array, then retries the generator up to the
// bounded budget.
func (a *ScatterAction) stringExcitationSoft() error {
	if a.stringGen == nil {
		return ErrNoStringGenerator
	}
	a.stringGen.Init(&a.incoming[0], &a.incoming[1],
		a.timeOfExecution, a.GammaCM())

	// Sub-process selection over the first four entries (the fifth is the
	// hard channel, which never reaches this pathway).
	iproc := -1
	r := a.stringSubXS[4] * a.rng.Uniform(0, 1)
	for i := 0; i < 4; i++ {
		if r >= a.stringSubXS[i] && r < a.stringSubXS[i+1] {
			iproc = i
			break
		}
	}
	if iproc == -1 {
		return &InvalidActionError{
			Reason: "soft string subprocess is not specified",
			CodeA:  a.incoming[0].Type.Code,
			CodeB:  a.incoming[1].Type.Code,
		}
	}

	success := false
	for ntry := 0; ntry < softStringMaxTries && !success; ntry++ {
		switch iproc {
		case 0:
			success = a.stringGen.NextSDiff(true)
		case 1:
			success = a.stringGen.NextSDiff(false)
		case 2:
			success = a.stringGen.NextDDiff()
		case 3:
			success = a.stringGen.NextNDiffSoft()
		}
	}
	if !success {
		return &RetryError{Tries: softStringMaxTries}
	}

	a.outgoing = a.stringGen.FinalState()
	a.reconcileFormation()
	a.debugMomentumBalance()
	return nil
}

// stringExcitationHard delegates to the hard-process generator and turns
// its hadrons into simulation particles: generator-native neutral-kaon
// eigenstates are recombined 50/50 into K0/K0bar, fragments are ranked by
// descending longitudinal momentum, and each gets a boosted formation time
// plus a rank-dependent valence-quark suppression factor.
func (a *ScatterAction) stringExcitationHard() error {
	if a.hardGen == nil {
		return ErrNoStringGenerator
	}
	hadrons := a.hardGen.HardEvent(HardConfig{
		CodeA: a.incoming[0].Type.Code,
		CodeB: a.incoming[1].Type.Code,
		SqrtS: a.SqrtS(),
		Seed:  a.rng.Canonical(),
		Types: a.db.ListAll(),
	})

	intermediate := make([]gohadron.Particle, 0, len(hadrons))
	for _, h := range hadrons {
		code := h.Code
		if code == species.KShort || code == species.KLong {
			if a.rng.Uniform(0, 1) <= 0.5 {
				code = species.KZero
			} else {
				code = -species.KZero
			}
		}
		t, err := a.db.Find(code)
		if err != nil {
			return err
		}
		p := gohadron.NewParticle(t)
		p.Momentum = h.Momentum
		intermediate = append(intermediate, p)
	}

	// Fragments carrying a valence quark are identified by the highest
	// longitudinal momentum.
	sort.Slice(intermediate, func(i, j int) bool {
		return math.Abs(intermediate[i].Momentum[3]) >
			math.Abs(intermediate[j].Momentum[3])
	})

	baryonic := a.incoming[0].IsBaryon() || a.incoming[1].IsBaryon()
	minusBeta := a.BetaCM().Neg()
	a.outgoing = a.outgoing[:0]
	for rank, p := range intermediate {
		var sc float64
		if baryonic {
			switch rank {
			case 0:
				sc = 0.66
			case 1:
				sc = 0.34
			default:
				sc = 0
			}
		} else {
			if rank <= 1 {
				sc = 0.5
			} else {
				sc = 0
			}
		}
		p.ScalingFactor = stringCoherenceFactor * sc

		// Formation time: collision time plus the boosted proper
		// formation time of the fragment.
		v := p.Momentum.LorentzBoost(minusBeta).Velocity()
		gamma := kinematics.Gamma(v)
		p.FormationTime = a.stringFormationTime*gamma + a.timeOfExecution
		a.outgoing = append(a.outgoing, p)
	}

	a.reconcileFormation()
	a.debugMomentumBalance()
	return nil
}

// reconcileFormation carries the memory of unformed incoming state into a
// string final state: if either incoming particle was not yet formed at
// collision time, its scaling factor multiplies every outgoing factor and
// its formation time is a lower bound on every outgoing formation time.
func (a *ScatterAction) reconcileFormation() {
	t0 := a.incoming[0].FormationTime
	t1 := a.incoming[1].FormationTime
	tformIn := math.Max(t0, t1)
	if tformIn <= a.timeOfExecution {
		return
	}
	fin := a.incoming[1].ScalingFactor
	if t0 > t1 {
		fin = a.incoming[0].ScalingFactor
	}
	for i := range a.outgoing {
		a.outgoing[i].ScalingFactor *= fin
		if tformIn > a.outgoing[i].FormationTime {
			a.outgoing[i].FormationTime = tformIn
		}
	}
}

func (a *ScatterAction) debugMomentumBalance() {
	var out kinematics.FourVector
	for i := range a.outgoing {
		out = out.Add(a.outgoing[i].Momentum)
	}
	a.log.Debugf("incoming momentum: %v, outgoing momentum (CM): %v",
		a.TotalMomentum(), out)
}
