package scatter

import (
	"math"

	gohadron "github.com/hadronlab/gohadron"
	"github.com/hadronlab/gohadron/kinematics"
	"github.com/hadronlab/gohadron/species"
	"github.com/hadronlab/gohadron/xsec"
)

// Config selects which channel families a scatter action considers.
type Config struct {
	// ElasticParameter is a constant elastic cross section in mb. A
	// negative value means "use the parametrization".
	ElasticParameter float64
	// Elastic, TwoToOne and TwoToTwo switch the respective channel
	// families.
	Elastic  bool
	TwoToOne bool
	TwoToTwo bool
	// Strings enables string excitation for nucleon-nucleon and
	// pion-nucleon pairs above the mixed-regime window.
	Strings bool
	// NNbarResonances enables the annihilation channel through
	// h1(1170)+rho0 and its detailed-balance reverse. Only meaningful in
	// box setups where detailed balance must hold.
	NNbarResonances bool
	// LowSNNCut rejects elastic nucleon-nucleon scattering below this
	// sqrt(s) in GeV when both particles carry the same antiparticle
	// sign.
	LowSNNCut float64
}

// Mixed scattering regime windows: below the window two particles scatter
// through the resonance channels, above it through string fragmentation,
// and inside it the string branch is drawn with a probability rising
// smoothly from 0 to 1 (GiBUU prescription, Phys. Rep. 512 (2012) 33).
const (
	mixRegimeEnergyNN  = 4.5
	mixRegimeWidthNN   = 0.5
	mixRegimeEnergyPiN = 2.05
	mixRegimeWidthPiN  = 0.15
)

// nnDeltaMatrixElement normalizes the NN -> NDelta excitation cross
// section, in mb GeV^3.
const nnDeltaMatrixElement = 40.0

// ScatterAction is one candidate binary collision. It is mutated through
// the phases cross-section accumulation -> channel selection -> final-state
// generation and discarded afterwards.
type ScatterAction struct {
	incoming        [2]gohadron.Particle
	timeOfExecution float64
	isotropic       bool
	// stringFormationTime is the proper formation time tau assigned to
	// string fragments, in fm.
	stringFormationTime float64

	channels    channelList
	outgoing    []gohadron.Particle
	processType ProcessType
	partialXS   float64

	db     *species.Database
	rng    Source
	log    Logger
	filter ChannelFilter

	stringGen StringGenerator
	hardGen   HardGenerator

	// stringSubXS is the cumulative sum over the five string
	// sub-channels: single-diffractive AX, single-diffractive XB,
	// double-diffractive, soft non-diffractive, hard non-diffractive.
	// stringSubXS[0] is 0 and stringSubXS[5] the aggregate string cross
	// section.
	stringSubXS [6]float64
}

// NewScatterAction creates an action for the incoming pair at the given
// collision time. isotropic selects isotropic elastic angular sampling;
// stringFormationTime is the proper formation time of string fragments in
// fm.
func NewScatterAction(
	a, b gohadron.Particle, time float64, isotropic bool,
	stringFormationTime float64, db *species.Database, rng Source,
) *ScatterAction {
	return &ScatterAction{
		incoming:            [2]gohadron.Particle{a, b},
		timeOfExecution:     time,
		isotropic:           isotropic,
		stringFormationTime: stringFormationTime,
		db:                  db,
		rng:                 rng,
		log:                 NoOpLogger{},
	}
}

// SetLogger routes debug records into the given sink.
func (a *ScatterAction) SetLogger(log Logger) { a.log = log }

// SetChannelFilter installs a potential-based channel filter applied right
// before selection.
func (a *ScatterAction) SetChannelFilter(f ChannelFilter) { a.filter = f }

// SetStringGenerator hands the action the soft string-fragmentation
// sub-system. Required before string channels can be enumerated.
func (a *ScatterAction) SetStringGenerator(g StringGenerator) { a.stringGen = g }

// SetHardGenerator hands the action the hard-process generator.
func (a *ScatterAction) SetHardGenerator(g HardGenerator) { a.hardGen = g }

func (a *ScatterAction) IncomingParticles() [2]gohadron.Particle {
	return a.incoming
}

// OutgoingParticles is empty until GenerateFinalState has completed.
func (a *ScatterAction) OutgoingParticles() []gohadron.Particle {
	return a.outgoing
}

// Process reports the chosen process type, ProcessNone before selection.
func (a *ScatterAction) Process() ProcessType { return a.processType }

// TotalCrossSection is the running sum of all accumulated channel weights
// in mb.
func (a *ScatterAction) TotalCrossSection() float64 { return a.channels.total }

// PartialCrossSection is the weight of the chosen channel in mb.
func (a *ScatterAction) PartialCrossSection() float64 { return a.partialXS }

// TotalMomentum is the summed incoming four-momentum.
func (a *ScatterAction) TotalMomentum() kinematics.FourVector {
	return a.incoming[0].Momentum.Add(a.incoming[1].Momentum)
}

// BetaCM is the velocity of the center-of-momentum frame.
func (a *ScatterAction) BetaCM() kinematics.ThreeVector {
	return a.TotalMomentum().Velocity()
}

// GammaCM is the Lorentz factor of the center-of-momentum frame.
func (a *ScatterAction) GammaCM() float64 {
	return kinematics.Gamma(a.BetaCM())
}

// MandelstamS is the squared invariant mass of the incoming pair.
func (a *ScatterAction) MandelstamS() float64 { return a.TotalMomentum().Sqr() }

// SqrtS is the center-of-mass collision energy.
func (a *ScatterAction) SqrtS() float64 {
	return math.Sqrt(math.Max(0, a.MandelstamS()))
}

// CMMomentum is the momentum of either incoming particle in the CM frame.
func (a *ScatterAction) CMMomentum() float64 {
	return kinematics.PCM(a.SqrtS(),
		a.incoming[0].EffectiveMass(), a.incoming[1].EffectiveMass())
}

// CMMomentumSqr is the squared momentum of either incoming particle in the
// CM frame.
func (a *ScatterAction) CMMomentumSqr() float64 {
	return kinematics.PCMSqr(a.SqrtS(),
		a.incoming[0].EffectiveMass(), a.incoming[1].EffectiveMass())
}

// TransverseDistanceSqr evaluates the UrQMD collision criterion for the
// incoming pair in their CM frame.
func (a *ScatterAction) TransverseDistanceSqr() float64 {
	pa, pb := a.incoming[0], a.incoming[1]
	beta := a.BetaCM()
	pa.Boost(beta)
	pb.Boost(beta)
	dr := pa.Position.ThreeVec().Sub(pb.Position.ThreeVec())
	dp := pa.Momentum.ThreeVec().Sub(pb.Momentum.ThreeVec())
	return kinematics.TransverseDistanceSqr(dr, dp)
}

// interactionPoint is the production point stamped on non-elastic outgoing
// particles: the midpoint of the incoming positions.
func (a *ScatterAction) interactionPoint() kinematics.FourVector {
	p := a.incoming[0].Position.Add(a.incoming[1].Position)
	return kinematics.FourVector{p[0] / 2, p[1] / 2, p[2] / 2, p[3] / 2}
}

// AddAllProcesses enumerates every channel family enabled by cfg for the
// incoming pair, including the resonance/string regime decision, and
// accumulates the branches. Returns an error if string channels are needed
// but no generator is configured.
func (a *ScatterAction) AddAllProcesses(cfg Config) error {
	t1, t2 := a.incoming[0].Type, a.incoming[1].Type
	bothNucleons := t1.IsNucleon() && t2.IsNucleon()
	srts := a.SqrtS()

	// Pick the mixed-regime window for the pair; only nucleon-nucleon and
	// pion-nucleon pairs have a string pathway.
	hasStrings := false
	var mixEnergy, mixWidth float64
	if bothNucleons {
		mixEnergy, mixWidth = mixRegimeEnergyNN, mixRegimeWidthNN
		hasStrings = true
	} else if (t1.IsPion() && t2.IsNucleon()) ||
		(t1.IsNucleon() && t2.IsPion()) {
		mixEnergy, mixWidth = mixRegimeEnergyPiN, mixRegimeWidthPiN
		hasStrings = true
	}

	isString := false
	if cfg.Strings && hasStrings {
		if srts > mixEnergy+mixWidth {
			isString = true
		} else if srts > mixEnergy-mixWidth {
			prob := 0.5 + 0.5*math.Sin(0.5*math.Pi*(srts-mixEnergy)/mixWidth)
			if prob > a.rng.Uniform(0, 1) {
				isString = true
			}
		}
	}

	// Elastic nucleon-nucleon collisions below the cutoff cannot happen.
	rejectElastic := bothNucleons &&
		t1.AntiparticleSign() == t2.AntiparticleSign() &&
		srts < cfg.LowSNNCut
	if cfg.Elastic && !rejectElastic {
		a.channels.add(a.elasticCrossSection(cfg.ElasticParameter))
	}

	if isString {
		branches, err := a.stringExcitationCrossSections()
		if err != nil {
			return err
		}
		a.channels.addAll(branches)
	} else {
		if cfg.TwoToOne {
			a.channels.addAll(a.resonanceCrossSections())
		}
		if cfg.TwoToTwo {
			a.channels.addAll(a.twoToTwoCrossSections())
		}
	}

	// NNbar annihilation through NNbar -> rho0 h1(1170); combined with the
	// downstream decays rho -> pipi and h1 -> pirho this ends in 5 pions.
	if cfg.NNbarResonances {
		if t1.IsNucleon() && t2.Code == t1.AntiparticleCode() {
			b, err := a.nnbarAnnihilation()
			if err != nil {
				return err
			}
			a.channels.add(b)
		}
		if (t1.Code == species.RhoZero && t2.Code == species.H1) ||
			(t1.Code == species.H1 && t2.Code == species.RhoZero) {
			branches, err := a.nnbarCreation()
			if err != nil {
				return err
			}
			a.channels.addAll(branches)
		}
	}
	return nil
}

// elasticCrossSection builds the elastic branch: the configured constant if
// non-negative, the parametrization otherwise.
func (a *ScatterAction) elasticCrossSection(elastPar float64) *CollisionBranch {
	var elasticXS float64
	if elastPar >= 0 {
		elasticXS = elastPar
	} else {
		elasticXS = xsec.Elastic(
			a.incoming[0].Type, a.incoming[1].Type, a.MandelstamS())
	}
	return &CollisionBranch{
		Types:   []*species.ParticleType{a.incoming[0].Type, a.incoming[1].Type},
		Weight:  elasticXS,
		Process: ProcessElastic,
	}
}

// twoToOneFormation returns the cross section for forming the given
// resonance from the incoming pair, using the Breit-Wigner spectral
// function as the probability amplitude (Buss et al., Phys. Rep. 512
// (2012), Eq. 176). Zero when charge or baryon number do not match.
func (a *ScatterAction) twoToOneFormation(
	res *species.ParticleType, srts, cmMomentumSqr float64,
) float64 {
	ta, tb := a.incoming[0].Type, a.incoming[1].Type
	if res.Charge != ta.Charge+tb.Charge {
		return 0
	}
	if res.BaryonNumber != ta.BaryonNumber+tb.BaryonNumber {
		return 0
	}

	partialWidth := res.PartialInWidth(srts, ta, tb)
	if partialWidth <= 0 {
		return 0
	}

	spinFactor := float64(res.Spin+1) / float64((ta.Spin+1)*(tb.Spin+1))
	symFactor := 1.0
	if ta.Code == tb.Code {
		symFactor = 2.0
	}
	return spinFactor * symFactor * 2 * math.Pi * math.Pi / cmMomentumSqr *
		res.SpectralFunction(srts) * partialWidth *
		gohadron.HBarC * gohadron.HBarC / gohadron.Fm2Mb
}

// resonanceCrossSections enumerates all 2->1 resonance-formation branches.
func (a *ScatterAction) resonanceCrossSections() []*CollisionBranch {
	ta, tb := a.incoming[0].Type, a.incoming[1].Type
	srts := a.SqrtS()
	pCMSqr := a.CMMomentumSqr()

	var list []*CollisionBranch
	for _, res := range a.db.ListAll() {
		if res.Stable {
			continue
		}
		// Same resonance as an unstable incoming particle: ignore.
		if (!ta.Stable && res.Code == ta.Code) ||
			(!tb.Stable && res.Code == tb.Code) {
			continue
		}

		resXS := a.twoToOneFormation(res, srts, pCMSqr)
		if resXS > gohadron.ReallySmall {
			list = append(list, &CollisionBranch{
				Types:   []*species.ParticleType{res},
				Weight:  resXS,
				Process: ProcessTwoToOne,
			})
			a.log.Debugf("%s %s -> %s at sqrt(s) = %g GeV with xs = %g mb",
				ta.Name, tb.Name, res.Name, srts, resXS)
		}
	}
	return list
}

// twoToTwoCrossSections enumerates the NN -> NDelta excitation branches.
// The unstable product's mass distribution enters through an integration of
// its spectral function over the kinematically allowed range.
func (a *ScatterAction) twoToTwoCrossSections() []*CollisionBranch {
	ta, tb := a.incoming[0].Type, a.incoming[1].Type
	if !ta.IsNucleon() || !tb.IsNucleon() ||
		ta.AntiparticleSign() != tb.AntiparticleSign() {
		return nil
	}
	sign := ta.AntiparticleSign()
	srts := a.SqrtS()
	s := a.MandelstamS()
	pcmIn := a.CMMomentum()
	if pcmIn <= 0 {
		return nil
	}

	nucleons := []int{species.Proton, species.Neutron}
	deltas := []int{
		species.DeltaPlusPlus, species.DeltaPlus,
		species.DeltaZero, species.DeltaMinus,
	}

	var list []*CollisionBranch
	for _, nc := range nucleons {
		for _, dc := range deltas {
			codeN, codeD := nc, dc
			if sign < 0 {
				codeN, codeD = -codeN, -codeD
			}
			n, err := a.db.Find(codeN)
			if err != nil {
				continue
			}
			d, err := a.db.Find(codeD)
			if err != nil {
				continue
			}
			if n.Charge+d.Charge != ta.Charge+tb.Charge {
				continue
			}
			if srts <= n.Mass+d.MinMass() {
				continue
			}

			spinFactor := float64(d.Spin+1) /
				float64((ta.Spin+1)*(tb.Spin+1))
			integral := spectralMomentumIntegral(d, srts, n.Mass)
			w := nnDeltaMatrixElement * spinFactor * integral / (s * pcmIn)
			if w > gohadron.ReallySmall {
				list = append(list, &CollisionBranch{
					Types:   []*species.ParticleType{n, d},
					Weight:  w,
					Process: ProcessTwoToTwo,
				})
			}
		}
	}
	return list
}

// spectralMomentumIntegral evaluates
//
//	I = integral dm A(m) p_cm(srts, mStable, m)
//
// over the allowed mass range of the unstable product, by Simpson's rule.
func spectralMomentumIntegral(
	res *species.ParticleType, srts, mStable float64,
) float64 {
	lo := res.MinMass()
	hi := srts - mStable
	if hi <= lo {
		return 0
	}
	const n = 50 // intervals, even
	h := (hi - lo) / n
	sum := 0.0
	for i := 0; i <= n; i++ {
		m := lo + float64(i)*h
		f := res.SpectralFunction(m) * kinematics.PCM(srts, mStable, m)
		switch {
		case i == 0 || i == n:
			sum += f
		case i%2 == 1:
			sum += 4 * f
		default:
			sum += 2 * f
		}
	}
	return sum * h / 3
}

// nnbarAnnihilation builds the NNbar annihilation branch: the parametrized
// total minus everything already present, into h1(1170)+rho0.
func (a *ScatterAction) nnbarAnnihilation() (*CollisionBranch, error) {
	h1, err := a.db.Find(species.H1)
	if err != nil {
		return nil, err
	}
	rho0, err := a.db.Find(species.RhoZero)
	if err != nil {
		return nil, err
	}
	nnbarXS := math.Max(0,
		xsec.Total(a.incoming[0].Type, a.incoming[1].Type, a.MandelstamS())-
			a.channels.total)
	a.log.Debugf("NNbar annihilation cross section: %g mb", nnbarXS)
	return &CollisionBranch{
		Types:   []*species.ParticleType{h1, rho0},
		Weight:  nnbarXS,
		Process: ProcessTwoToTwo,
	}, nil
}

// nnbarCreation builds the reverse of the annihilation channel via detailed
// balance. Empty below the 2m_N threshold.
func (a *ScatterAction) nnbarCreation() ([]*CollisionBranch, error) {
	s := a.MandelstamS()
	srts := a.SqrtS()
	pcm := a.CMMomentum()

	proton, err := a.db.Find(species.Proton)
	if err != nil {
		return nil, err
	}
	antiproton, err := a.db.Find(-species.Proton)
	if err != nil {
		return nil, err
	}
	neutron, err := a.db.Find(species.Neutron)
	if err != nil {
		return nil, err
	}
	antineutron, err := a.db.Find(-species.Neutron)
	if err != nil {
		return nil, err
	}

	if srts < 2*proton.Mass {
		return nil, nil
	}

	w := xsec.DetailedBalanceFactorRR(srts, pcm,
		a.incoming[0].Type, a.incoming[1].Type, proton, antiproton) *
		math.Max(0, xsec.PPbarTotal(s)-xsec.PPbarElastic(s))
	a.log.Debugf("NNbar creation cross section: %g mb", w)
	return []*CollisionBranch{
		{Types: []*species.ParticleType{proton, antiproton},
			Weight: w, Process: ProcessTwoToTwo},
		{Types: []*species.ParticleType{neutron, antineutron},
			Weight: w, Process: ProcessTwoToTwo},
	}, nil
}

// diffractiveBeamCode maps an incoming hadron to the beam species the
// diffractive parametrizations are given for: (anti)protons stand in for
// (anti)baryons and the pion for mesons.
func diffractiveBeamCode(t *species.ParticleType) int {
	switch {
	case t.BaryonNumber > 0:
		return species.Proton
	case t.BaryonNumber < 0:
		return -species.Proton
	default:
		return species.PionPlus
	}
}

// stringExcitationCrossSections computes the aggregate string cross
// section, splits it over the five sub-channels, fills the cumulative
// sub-channel array and emits the StringSoft/StringHard branches.
//
// The parametrized aggregate and the generator's diffractive cross sections
// do not necessarily add up. The reconciliation reinforces or drains the
// non-diffractive part first, then the double-diffractive part, then the
// two single-diffractive parts in equal proportion, so that the five
// sub-cross sections always sum to the aggregate.
func (a *ScatterAction) stringExcitationCrossSections() ([]*CollisionBranch, error) {
	ta, tb := a.incoming[0].Type, a.incoming[1].Type
	s := a.MandelstamS()
	srts := a.SqrtS()

	sigStringAll := math.Max(0, xsec.HighEnergy(ta, tb, s)-xsec.Elastic(ta, tb, s))
	if sigStringAll <= 0 {
		return nil, nil
	}
	if a.stringGen == nil {
		return nil, ErrNoStringGenerator
	}

	xs := a.stringGen.DiffractiveCrossSections(
		diffractiveBeamCode(ta), diffractiveBeamCode(tb), srts)
	singleDiffrAX, singleDiffrXB, doubleDiffr := xs[0], xs[1], xs[2]
	singleDiffr := singleDiffrAX + singleDiffrXB
	diffractive := singleDiffr + doubleDiffr

	nondiffractiveAll := math.Max(0, sigStringAll-diffractive)
	diffractive = sigStringAll - nondiffractiveAll
	doubleDiffr = math.Max(0, diffractive-singleDiffr)
	if singleDiffr > 0 {
		rescale := (diffractive - doubleDiffr) / singleDiffr
		singleDiffrAX *= rescale
		singleDiffrXB *= rescale
	} else {
		singleDiffrAX, singleDiffrXB = 0, 0
	}

	// Hard string process via the perturbative cross section in the
	// multiparton-interaction picture (Sjostrand, 1987).
	hardXS := xsec.StringHard(ta, tb, s)
	nondiffractiveSoft := 0.0
	if nondiffractiveAll > 0 {
		nondiffractiveSoft =
			nondiffractiveAll * math.Exp(-hardXS/nondiffractiveAll)
	}
	nondiffractiveHard := nondiffractiveAll - nondiffractiveSoft
	sigStringSoft := sigStringAll - nondiffractiveHard

	a.log.Debugf("string cross sections [mb]: SD-AX %g, SD-XB %g, DD %g, "+
		"soft-ND %g, hard-ND %g", singleDiffrAX, singleDiffrXB, doubleDiffr,
		nondiffractiveSoft, nondiffractiveHard)

	subs := [5]float64{
		singleDiffrAX, singleDiffrXB, doubleDiffr,
		nondiffractiveSoft, nondiffractiveHard,
	}
	a.stringSubXS[0] = 0
	for i := 0; i < 5; i++ {
		a.stringSubXS[i+1] = a.stringSubXS[i] + subs[i]
	}

	var list []*CollisionBranch
	if sigStringSoft > 0 {
		list = append(list, &CollisionBranch{
			Weight: sigStringSoft, Process: ProcessStringSoft})
	}
	if nondiffractiveHard > 0 {
		list = append(list, &CollisionBranch{
			Weight: nondiffractiveHard, Process: ProcessStringHard})
	}
	return list, nil
}

// StringSubCrossSections exposes the cumulative sub-channel array filled by
// the last string-excitation enumeration. StringSubCrossSections()[5] is
// the aggregate string cross section.
func (a *ScatterAction) StringSubCrossSections() [6]float64 {
	return a.stringSubXS
}
