/*Package frag is a self-contained string-fragmentation generator
implementing the scatter.StringGenerator and scatter.HardGenerator
interfaces. It is a deliberately simple longitudinal-fragmentation model:
excited systems are split into hadrons through chains of exact two-body
splits, so four-momentum, charge and baryon number are conserved event by
event. Production transport codes would put a full event generator behind
these interfaces; this one keeps the library runnable on its own.*/
package frag

import (
	"math"
	"math/rand"

	gohadron "github.com/hadronlab/gohadron"
	"github.com/hadronlab/gohadron/kinematics"
	"github.com/hadronlab/gohadron/scatter"
	"github.com/hadronlab/gohadron/species"
)

const (
	pionMass = 0.13957
	// minExcitation is the minimum mass a diffractively excited system
	// must gain over its ground state.
	minExcitation = 2 * pionMass

	leadingFactor = 0.7 * 0.5
)

// Generator fragments soft and hard string excitations. It carries event
// state between Init, the Next calls and FinalState, and is therefore
// one-per-worker.
type Generator struct {
	db  *species.Database
	rng scatter.Source
	// tau is the proper formation time assigned to fragments, in fm.
	tau float64

	// per-event state
	inA, inB gohadron.Particle
	time     float64
	gammaCM  float64
	sqrts    float64
	pcm      float64
	final    []gohadron.Particle
}

// NewGenerator returns a generator drawing from rng and assigning the
// proper formation time tau (fm) to its fragments.
func NewGenerator(db *species.Database, rng scatter.Source, tau float64) *Generator {
	return &Generator{db: db, rng: rng, tau: tau}
}

// Init prepares the generator for one collision. Momenta handed in are in
// the computational frame; the generator works and reports in the CM frame
// with the A particle along +z.
func (g *Generator) Init(a, b *gohadron.Particle, time, gammaCM float64) {
	g.inA, g.inB = *a, *b
	g.time = time
	g.gammaCM = gammaCM
	total := a.Momentum.Add(b.Momentum)
	g.sqrts = total.Abs()
	g.pcm = kinematics.PCM(g.sqrts, a.EffectiveMass(), b.EffectiveMass())
	g.final = nil
}

// DiffractiveCrossSections parametrizes the single-diffractive AB->AX,
// AB->XB and double-diffractive cross sections. Meson beams get the
// additive-quark-model 2/3 suppression.
func (g *Generator) DiffractiveCrossSections(
	codeA, codeB int, sqrtS float64,
) [3]float64 {
	s := sqrtS * sqrtS
	if s <= 2 {
		return [3]float64{}
	}
	sd := 1.6 + 0.10*math.Log(s/2)
	dd := 0.8 + 0.05*math.Log(s/2)
	scale := quarkModelScale(codeA) * quarkModelScale(codeB)
	return [3]float64{sd * scale, sd * scale, dd * scale}
}

func quarkModelScale(code int) float64 {
	if code == species.PionPlus || code == -species.PionPlus {
		return 2.0 / 3.0
	}
	return 1
}

// NextSDiff excites one side diffractively: AB -> AX for aSide, AB -> XB
// otherwise. Reports false when the available energy cannot accommodate
// the minimum excitation.
func (g *Generator) NextSDiff(aSide bool) bool {
	surv, exc := g.inA, g.inB
	survDir := 1.0
	if !aSide {
		surv, exc = g.inB, g.inA
		survDir = -1
	}
	mSurv := surv.EffectiveMass()
	mExcMin := exc.EffectiveMass() + minExcitation
	mExcMax := g.sqrts - mSurv
	if mExcMax <= mExcMin {
		return false
	}
	mX := g.sampleDiffractiveMass(mExcMin, mExcMax)

	p := kinematics.PCM(g.sqrts, mSurv, mX)
	pSurv := kinematics.FourVector{
		math.Sqrt(mSurv*mSurv + p*p), 0, 0, survDir * p}
	pX := kinematics.FourVector{
		math.Sqrt(mX*mX + p*p), 0, 0, -survDir * p}

	out := []gohadron.Particle{g.formed(surv.Type, pSurv)}
	frags, ok := g.fragmentCluster(pX, exc.Type)
	if !ok {
		return false
	}
	g.final = append(out, frags...)
	g.assignFormation()
	return true
}

// NextDDiff excites both sides diffractively.
func (g *Generator) NextDDiff() bool {
	mA := g.inA.EffectiveMass()
	mB := g.inB.EffectiveMass()
	loA := mA + minExcitation
	loB := mB + minExcitation
	if loA+loB >= g.sqrts {
		return false
	}
	mXA := g.sampleDiffractiveMass(loA, g.sqrts-loB)
	mXB := g.sampleDiffractiveMass(loB, g.sqrts-mXA)

	p := kinematics.PCM(g.sqrts, mXA, mXB)
	pA := kinematics.FourVector{math.Sqrt(mXA*mXA + p*p), 0, 0, p}
	pB := kinematics.FourVector{math.Sqrt(mXB*mXB + p*p), 0, 0, -p}

	fragsA, okA := g.fragmentCluster(pA, g.inA.Type)
	if !okA {
		return false
	}
	fragsB, okB := g.fragmentCluster(pB, g.inB.Type)
	if !okB {
		return false
	}
	g.final = append(fragsA, fragsB...)
	g.assignFormation()
	return true
}

// NextNDiffSoft fragments the whole system as a single string.
func (g *Generator) NextNDiffSoft() bool {
	system := kinematics.FourVector{g.sqrts, 0, 0, 0}
	frags, ok := g.fragmentPair(system, g.inA.Type, g.inB.Type)
	if !ok {
		return false
	}
	g.final = frags
	g.assignFormation()
	return true
}

// FinalState drains the fragments of the last successful Next call.
func (g *Generator) FinalState() []gohadron.Particle {
	out := g.final
	g.final = nil
	return out
}

// sampleDiffractiveMass draws an excited mass from dN/dM^2 ~ 1/M^2, the
// triple-Regge behavior of diffractive excitation.
func (g *Generator) sampleDiffractiveMass(lo, hi float64) float64 {
	u := g.rng.Canonical()
	// uniform in 1/M^2 between the bounds
	inv := 1/(lo*lo) + u*(1/(hi*hi)-1/(lo*lo))
	return math.Sqrt(1 / inv)
}

func (g *Generator) formed(
	t *species.ParticleType, p kinematics.FourVector,
) gohadron.Particle {
	out := gohadron.NewParticle(t)
	out.Momentum = p
	return out
}

// coreType picks the hadron that carries the cluster parent's conserved
// numbers: a nucleon for baryonic clusters, a pion otherwise. The charge
// argument steers the choice so the remaining difference can be carried by
// pions.
func (g *Generator) coreType(parent *species.ParticleType) *species.ParticleType {
	if parent.BaryonNumber > 0 {
		if parent.Charge > 0 {
			return g.db.MustFind(species.Proton)
		}
		return g.db.MustFind(species.Neutron)
	}
	if parent.BaryonNumber < 0 {
		if parent.Charge < 0 {
			return g.db.MustFind(-species.Proton)
		}
		return g.db.MustFind(-species.Neutron)
	}
	switch {
	case parent.Charge > 0:
		return g.db.MustFind(species.PionPlus)
	case parent.Charge < 0:
		return g.db.MustFind(species.PionMinus)
	default:
		return g.db.MustFind(species.PionZero)
	}
}

// fragmentCluster splits an excited cluster with the given parent type into
// hadrons conserving the parent's charge and baryon number.
func (g *Generator) fragmentCluster(
	p kinematics.FourVector, parent *species.ParticleType,
) ([]gohadron.Particle, bool) {
	core := g.coreType(parent)
	return g.fragment(p, []*species.ParticleType{core},
		parent.Charge, parent.BaryonNumber)
}

// fragmentPair fragments a system formed from two parents at once.
func (g *Generator) fragmentPair(
	p kinematics.FourVector, parentA, parentB *species.ParticleType,
) ([]gohadron.Particle, bool) {
	coreA := g.coreType(parentA)
	coreB := g.coreType(parentB)
	return g.fragment(p, []*species.ParticleType{coreA, coreB},
		parentA.Charge+parentB.Charge,
		parentA.BaryonNumber+parentB.BaryonNumber)
}

// fragment turns a system of four-momentum p into the core hadrons plus as
// many pions as the invariant mass accommodates, with pion charges chosen
// to conserve the total charge exactly. The kinematics come from a chain of
// exact two-body splits.
func (g *Generator) fragment(
	p kinematics.FourVector, cores []*species.ParticleType,
	charge, baryon int,
) ([]gohadron.Particle, bool) {
	mass := p.Abs()
	coreMass := 0.0
	coreCharge := 0
	for _, c := range cores {
		coreMass += c.Mass
		coreCharge += c.Charge
	}

	need := charge - coreCharge
	abs := need
	if abs < 0 {
		abs = -abs
	}
	// Fill the mass budget with pions, at least enough to balance the
	// charge, leaving some room for kinetic energy.
	nPions := int((mass - coreMass) / (2 * pionMass))
	if nPions < abs {
		nPions = abs
	}
	if len(cores)+nPions < 2 {
		nPions = 2 - len(cores)
	}

	types := make([]*species.ParticleType, 0, len(cores)+nPions)
	types = append(types, cores...)
	sign := species.PionPlus
	if need < 0 {
		sign = species.PionMinus
	}
	for i := 0; i < nPions; i++ {
		if i < abs {
			types = append(types, g.db.MustFind(sign))
		} else {
			types = append(types, g.db.MustFind(species.PionZero))
		}
	}

	masses := make([]float64, len(types))
	sum := 0.0
	for i, t := range types {
		masses[i] = t.Mass
		sum += masses[i]
	}
	if sum >= mass {
		return nil, false
	}

	momenta := g.splitSystem(p, masses)
	out := make([]gohadron.Particle, len(types))
	for i := range types {
		out[i] = g.formed(types[i], momenta[i])
	}
	return out, true
}

// splitSystem distributes the four-momentum p over fragments with the
// given masses via sequential two-body splits; each split conserves
// four-momentum exactly. The masses must sum to less than the invariant
// mass of p.
func (g *Generator) splitSystem(
	p kinematics.FourVector, masses []float64,
) []kinematics.FourVector {
	if len(masses) == 1 {
		return []kinematics.FourVector{p}
	}
	m := p.Abs()
	restMin := 0.0
	for _, x := range masses[1:] {
		restMin += x
	}
	mRest := restMin
	if len(masses) > 2 {
		mRest = g.rng.Uniform(restMin, m-masses[0])
	}

	q := kinematics.PCM(m, masses[0], mRest)
	dir := kinematics.Direction(
		g.rng.Uniform(-1, 1), g.rng.Uniform(0, gohadron.TwoPi)).Scale(q)
	first := kinematics.FourVector{
		math.Sqrt(masses[0]*masses[0] + q*q), dir[0], dir[1], dir[2]}
	rest := kinematics.FourVector{
		math.Sqrt(mRest*mRest + q*q), -dir[0], -dir[1], -dir[2]}

	// The split was done in the rest frame of p; boost into p's frame.
	v := p.Velocity().Neg()
	first = first.LorentzBoost(v)
	rest = rest.LorentzBoost(v)

	out := []kinematics.FourVector{first}
	return append(out, g.splitSystem(rest, masses[1:])...)
}

// assignFormation stamps formation times and leading-hadron scaling
// factors on the event's fragments: the two fragments leading in |pz| keep
// a suppressed cross section, the rest start at zero.
func (g *Generator) assignFormation() {
	lead1, lead2 := -1, -1
	var pz1, pz2 float64
	for i := range g.final {
		pz := math.Abs(g.final[i].Momentum[3])
		switch {
		case lead1 == -1 || pz > pz1:
			lead2, pz2 = lead1, pz1
			lead1, pz1 = i, pz
		case lead2 == -1 || pz > pz2:
			lead2, pz2 = i, pz
		}
	}
	for i := range g.final {
		f := &g.final[i]
		gamma := f.Momentum[0] / math.Max(f.EffectiveMass(), pionMass)
		f.FormationTime = g.time + g.tau*gamma*g.gammaCM
		if i == lead1 || i == lead2 {
			f.ScalingFactor = leadingFactor
		} else {
			f.ScalingFactor = 0
		}
	}
}

// HardEvent produces a hard non-diffractive final state. It seeds its own
// stream from cfg.Seed and retries internally until the sampled
// multiplicity fits the mass budget; hard sampling always converges, so no
// bound is imposed.
func (g *Generator) HardEvent(cfg scatter.HardConfig) []scatter.Hadron {
	r := rand.New(rand.NewSource(int64(cfg.Seed * (1 << 30))))
	src := &seededSource{r}

	byCode := make(map[int]*species.ParticleType, len(cfg.Types))
	for _, t := range cfg.Types {
		byCode[t.Code] = t
	}
	ta, tb := byCode[cfg.CodeA], byCode[cfg.CodeB]
	if ta == nil || tb == nil {
		return nil
	}

	hard := &Generator{db: g.db, rng: src, tau: g.tau}
	system := kinematics.FourVector{cfg.SqrtS, 0, 0, 0}
	for {
		types := hard.hardProducts(ta, tb, cfg.SqrtS)
		masses := make([]float64, len(types))
		sum := 0.0
		codes := make([]int, len(types))
		for i, t := range types {
			masses[i] = t.Mass
			sum += t.Mass
			codes[i] = t.Code
		}
		if sum >= cfg.SqrtS {
			continue
		}
		momenta := hard.splitSystem(system, masses)
		out := make([]scatter.Hadron, len(types))
		for i := range types {
			out[i] = scatter.Hadron{Code: codes[i], Momentum: momenta[i]}
		}
		return out
	}
}

// hardProducts picks the hadron content of a hard event: the cores, a
// higher pion multiplicity than the soft channels, and occasionally a
// neutral-kaon pair reported in the generator-native K_S/K_L basis.
func (g *Generator) hardProducts(
	ta, tb *species.ParticleType, sqrtS float64,
) []*species.ParticleType {
	coreA, coreB := g.coreType(ta), g.coreType(tb)
	charge := ta.Charge + tb.Charge
	coreCharge := coreA.Charge + coreB.Charge
	need := charge - coreCharge
	abs := need
	if abs < 0 {
		abs = -abs
	}

	mean := 2 + 1.5*math.Log(sqrtS*sqrtS/4)
	n := int(mean + 2*(g.rng.Canonical()-0.5)*math.Sqrt(mean))
	// Leave room for kinetic energy in the mass budget.
	maxN := int((sqrtS-coreA.Mass-coreB.Mass)/pionMass) - 1
	if n > maxN {
		n = maxN
	}
	if n < abs {
		n = abs
	}
	if n < 0 {
		n = 0
	}

	types := []*species.ParticleType{coreA, coreB}
	budget := sqrtS - coreA.Mass - coreB.Mass
	sign := species.PionPlus
	if need < 0 {
		sign = species.PionMinus
	}
	for i := 0; i < n; i++ {
		if i < abs {
			types = append(types, g.db.MustFind(sign))
		} else {
			types = append(types, g.db.MustFind(species.PionZero))
		}
		budget -= pionMass
	}
	// Strangeness production: a K_S/K_L pair in about a tenth of events,
	// when the budget can take it.
	k0 := g.db.MustFind(species.KZero)
	if budget > 2*k0.Mass+2*pionMass && g.rng.Canonical() < 0.1 {
		kShort := *k0
		kShort.Code = species.KShort
		kLong := kShort
		kLong.Code = species.KLong
		types = append(types, &kShort, &kLong)
	}
	return types
}

// seededSource adapts a rand.Rand to the scatter.Source interface for the
// per-event hard stream.
type seededSource struct {
	r *rand.Rand
}

func (s *seededSource) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

func (s *seededSource) Canonical() float64 { return s.r.Float64() }
