package scatter

import (
	"math"
	"testing"

	gohadron "github.com/hadronlab/gohadron"
	"github.com/hadronlab/gohadron/kinematics"
	"github.com/hadronlab/gohadron/species"
	"github.com/hadronlab/gohadron/xsec"
)

// headOn builds an incoming pair colliding head-on along z at the given CM
// energy, so the computational frame coincides with the CM frame.
func headOn(
	db *species.Database, codeA, codeB int, srts float64,
) (gohadron.Particle, gohadron.Particle) {
	ta, tb := db.MustFind(codeA), db.MustFind(codeB)
	pcm := kinematics.PCM(srts, ta.Mass, tb.Mass)
	a := gohadron.NewParticle(ta)
	a.Momentum = kinematics.FourVector{
		math.Sqrt(ta.Mass*ta.Mass + pcm*pcm), 0, 0, pcm}
	b := gohadron.NewParticle(tb)
	b.Momentum = kinematics.FourVector{
		math.Sqrt(tb.Mass*tb.Mass + pcm*pcm), 0, 0, -pcm}
	return a, b
}

type fakeStringGen struct {
	xs     [3]float64
	fail   bool
	finals []gohadron.Particle
}

func (f *fakeStringGen) Init(a, b *gohadron.Particle, time, gammaCM float64) {}
func (f *fakeStringGen) NextSDiff(aSide bool) bool                          { return !f.fail }
func (f *fakeStringGen) NextDDiff() bool                                    { return !f.fail }
func (f *fakeStringGen) NextNDiffSoft() bool                                { return !f.fail }

func (f *fakeStringGen) FinalState() []gohadron.Particle {
	out := make([]gohadron.Particle, len(f.finals))
	copy(out, f.finals)
	return out
}

func (f *fakeStringGen) DiffractiveCrossSections(
	codeA, codeB int, sqrtS float64,
) [3]float64 {
	return f.xs
}

type fakeHardGen struct {
	hadrons []Hadron
}

func (f *fakeHardGen) HardEvent(cfg HardConfig) []Hadron { return f.hadrons }

func TestKinematicAccessors(t *testing.T) {
	db := species.Builtin()
	a, b := headOn(db, species.Proton, species.Proton, 3.0)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))

	if math.Abs(act.SqrtS()-3.0) > 1e-12 {
		t.Errorf("SqrtS = %g, want 3", act.SqrtS())
	}
	beta := act.BetaCM()
	if beta.Abs() > 1e-12 {
		t.Errorf("head-on equal-mass pair should have beta_CM = 0, got %v", beta)
	}
	wantPCM := kinematics.PCM(3.0, a.EffectiveMass(), b.EffectiveMass())
	if math.Abs(act.CMMomentum()-wantPCM) > 1e-12 {
		t.Errorf("CMMomentum = %g, want %g", act.CMMomentum(), wantPCM)
	}
}

func TestElasticConstantParameter(t *testing.T) {
	db := species.Builtin()
	a, b := headOn(db, species.Proton, species.Proton, 2.2)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	if err := act.AddAllProcesses(Config{ElasticParameter: 10, Elastic: true}); err != nil {
		t.Fatal(err)
	}
	if math.Abs(act.TotalCrossSection()-10) > 1e-12 {
		t.Errorf("total = %g, want 10", act.TotalCrossSection())
	}
	if len(act.channels.branches) != 1 ||
		act.channels.branches[0].Process != ProcessElastic {
		t.Error("expected exactly the elastic branch")
	}
}

func TestElasticParametrization(t *testing.T) {
	db := species.Builtin()
	a, b := headOn(db, species.Proton, species.Proton, 2.2)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	if err := act.AddAllProcesses(Config{ElasticParameter: -1, Elastic: true}); err != nil {
		t.Fatal(err)
	}
	want := xsec.Elastic(a.Type, b.Type, act.MandelstamS())
	if math.Abs(act.TotalCrossSection()-want) > 1e-12 {
		t.Errorf("total = %g, want parametrized %g", act.TotalCrossSection(), want)
	}
}

func TestLowSNNCut(t *testing.T) {
	db := species.Builtin()
	cfg := Config{ElasticParameter: 10, Elastic: true, LowSNNCut: 2.5}

	a, b := headOn(db, species.Proton, species.Proton, 2.2)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	if err := act.AddAllProcesses(cfg); err != nil {
		t.Fatal(err)
	}
	if act.TotalCrossSection() != 0 {
		t.Errorf("pp below the cut should have no elastic channel, total = %g",
			act.TotalCrossSection())
	}

	// The cut only applies to nucleon pairs on the same side of the
	// conjugation, so ppbar passes.
	a, b = headOn(db, species.Proton, -species.Proton, 2.2)
	act = NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	if err := act.AddAllProcesses(cfg); err != nil {
		t.Fatal(err)
	}
	if math.Abs(act.TotalCrossSection()-10) > 1e-12 {
		t.Errorf("ppbar total = %g, want 10", act.TotalCrossSection())
	}
}

func TestDeltaFormationCrossSection(t *testing.T) {
	db := species.Builtin()
	srts := 1.232
	a, b := headOn(db, species.PionPlus, species.Proton, srts)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	if err := act.AddAllProcesses(Config{ElasticParameter: -1, TwoToOne: true}); err != nil {
		t.Fatal(err)
	}

	if len(act.channels.branches) != 1 {
		t.Fatalf("pi+ p should open exactly the Delta++ channel, got %d",
			len(act.channels.branches))
	}
	br := act.channels.branches[0]
	if br.Process != ProcessTwoToOne || br.Types[0].Code != species.DeltaPlusPlus {
		t.Fatalf("unexpected branch %v -> %s", br.Process, br.Types[0].Name)
	}

	delta := db.MustFind(species.DeltaPlusPlus)
	pcmSqr := act.CMMomentumSqr()
	spinFactor := float64(delta.Spin+1) /
		float64((a.Type.Spin+1)*(b.Type.Spin+1))
	want := spinFactor * 2 * math.Pi * math.Pi / pcmSqr *
		delta.SpectralFunction(srts) *
		delta.PartialInWidth(srts, a.Type, b.Type) *
		gohadron.HBarC * gohadron.HBarC / gohadron.Fm2Mb
	if math.Abs(br.Weight-want) > 1e-9*want {
		t.Errorf("Delta++ formation xs = %g, want %g", br.Weight, want)
	}
}

func TestResonanceChargeAndBaryonMatch(t *testing.T) {
	db := species.Builtin()
	a, b := headOn(db, species.PionMinus, species.Proton, 1.25)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	if err := act.AddAllProcesses(Config{ElasticParameter: -1, TwoToOne: true}); err != nil {
		t.Fatal(err)
	}
	if len(act.channels.branches) == 0 {
		t.Fatal("pi- p should open the Delta0 channel")
	}
	for _, br := range act.channels.branches {
		res := br.Types[0]
		if res.Charge != 0 || res.BaryonNumber != 1 {
			t.Errorf("resonance %s violates charge/baryon conservation", res.Name)
		}
	}
}

func TestNNDeltaExcitation(t *testing.T) {
	db := species.Builtin()
	a, b := headOn(db, species.Proton, species.Proton, 2.5)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	if err := act.AddAllProcesses(Config{ElasticParameter: -1, TwoToTwo: true}); err != nil {
		t.Fatal(err)
	}

	// pp can excite to p Delta+ and n Delta++.
	if len(act.channels.branches) != 2 {
		t.Fatalf("expected 2 NDelta branches, got %d", len(act.channels.branches))
	}
	for _, br := range act.channels.branches {
		if br.Process != ProcessTwoToTwo || len(br.Types) != 2 {
			t.Fatalf("unexpected branch %v with %d types", br.Process, len(br.Types))
		}
		charge := br.Types[0].Charge + br.Types[1].Charge
		baryon := br.Types[0].BaryonNumber + br.Types[1].BaryonNumber
		if charge != 2 || baryon != 2 {
			t.Errorf("branch %s %s violates conservation",
				br.Types[0].Name, br.Types[1].Name)
		}
		if br.Weight <= 0 {
			t.Errorf("branch %s %s has non-positive weight %g",
				br.Types[0].Name, br.Types[1].Name, br.Weight)
		}
	}
}

func TestNNDeltaExcitationAntinucleons(t *testing.T) {
	db := species.Builtin()
	a, b := headOn(db, -species.Proton, -species.Proton, 2.5)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	if err := act.AddAllProcesses(Config{ElasticParameter: -1, TwoToTwo: true}); err != nil {
		t.Fatal(err)
	}
	if len(act.channels.branches) != 2 {
		t.Fatalf("expected 2 mirrored branches, got %d", len(act.channels.branches))
	}
	for _, br := range act.channels.branches {
		charge := br.Types[0].Charge + br.Types[1].Charge
		baryon := br.Types[0].BaryonNumber + br.Types[1].BaryonNumber
		if charge != -2 || baryon != -2 {
			t.Errorf("branch %s %s violates conservation",
				br.Types[0].Name, br.Types[1].Name)
		}
	}
}

func TestNNbarAnnihilationChannel(t *testing.T) {
	db := species.Builtin()
	a, b := headOn(db, species.Proton, -species.Proton, 2.4)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	if err := act.AddAllProcesses(Config{NNbarResonances: true}); err != nil {
		t.Fatal(err)
	}

	if len(act.channels.branches) != 1 {
		t.Fatalf("expected the annihilation branch only, got %d",
			len(act.channels.branches))
	}
	br := act.channels.branches[0]
	if br.Types[0].Code != species.H1 || br.Types[1].Code != species.RhoZero {
		t.Errorf("annihilation products %s %s, want h1 rho0",
			br.Types[0].Name, br.Types[1].Name)
	}
	// With no other channel present the full parametrized total goes into
	// the annihilation branch.
	want := xsec.PPbarTotal(act.MandelstamS())
	if math.Abs(br.Weight-want) > 1e-12 {
		t.Errorf("annihilation xs = %g, want %g", br.Weight, want)
	}
}

func TestNNbarCreationChannels(t *testing.T) {
	db := species.Builtin()
	a, b := headOn(db, species.RhoZero, species.H1, 2.4)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	if err := act.AddAllProcesses(Config{NNbarResonances: true}); err != nil {
		t.Fatal(err)
	}

	if len(act.channels.branches) != 2 {
		t.Fatalf("expected ppbar and nnbar branches, got %d",
			len(act.channels.branches))
	}
	b0, b1 := act.channels.branches[0], act.channels.branches[1]
	if b0.Weight != b1.Weight {
		t.Error("isospin partners should carry equal weights")
	}
	if b0.Weight <= 0 {
		t.Errorf("creation weight %g should be positive above threshold", b0.Weight)
	}
	if b0.Types[0].Code != species.Proton || b0.Types[1].Code != -species.Proton {
		t.Errorf("first branch is %s %s, want p pbar",
			b0.Types[0].Name, b0.Types[1].Name)
	}

	// Below the 2m_N threshold the channel closes. An on-shell pair is
	// already above it, so put the rho off shell.
	a = gohadron.NewParticle(db.MustFind(species.RhoZero))
	a.Momentum = kinematics.FourVector{0.5, 0, 0, 0}
	b = gohadron.NewParticle(db.MustFind(species.H1))
	b.Momentum = kinematics.FourVector{1.3, 0, 0, 0}
	act = NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	if err := act.AddAllProcesses(Config{NNbarResonances: true}); err != nil {
		t.Fatal(err)
	}
	if len(act.channels.branches) != 0 {
		t.Error("creation channel should close below 2 nucleon masses")
	}
}

func TestStringRegimeAboveWindow(t *testing.T) {
	db := species.Builtin()
	a, b := headOn(db, species.Proton, species.Proton, 6.0)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	act.SetStringGenerator(&fakeStringGen{xs: [3]float64{2, 2, 1}})

	cfg := Config{ElasticParameter: -1, Elastic: true,
		TwoToOne: true, TwoToTwo: true, Strings: true}
	if err := act.AddAllProcesses(cfg); err != nil {
		t.Fatal(err)
	}

	var stringXS float64
	for _, br := range act.channels.branches {
		switch br.Process {
		case ProcessTwoToOne, ProcessTwoToTwo:
			t.Errorf("resonance branch %v above the mixed window", br.Process)
		case ProcessStringSoft, ProcessStringHard:
			stringXS += br.Weight
		}
	}

	s := act.MandelstamS()
	aggregate := xsec.HighEnergy(a.Type, b.Type, s) - xsec.Elastic(a.Type, b.Type, s)
	if math.Abs(stringXS-aggregate) > 1e-9 {
		t.Errorf("string branches sum to %g, want aggregate %g", stringXS, aggregate)
	}

	sub := act.StringSubCrossSections()
	if sub[0] != 0 {
		t.Error("cumulative array must start at 0")
	}
	for i := 0; i < 5; i++ {
		if sub[i+1] < sub[i] {
			t.Fatalf("cumulative array not monotone at %d: %v", i, sub)
		}
	}
	if math.Abs(sub[5]-aggregate) > 1e-9 {
		t.Errorf("cumulative array ends at %g, want aggregate %g", sub[5], aggregate)
	}
}

func TestResonanceRegimeBelowWindow(t *testing.T) {
	db := species.Builtin()
	a, b := headOn(db, species.Proton, species.Proton, 3.9)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	act.SetStringGenerator(&fakeStringGen{xs: [3]float64{2, 2, 1}})

	cfg := Config{ElasticParameter: -1, TwoToTwo: true, Strings: true}
	if err := act.AddAllProcesses(cfg); err != nil {
		t.Fatal(err)
	}
	if len(act.channels.branches) == 0 {
		t.Fatal("expected NDelta branches below the mixed window")
	}
	for _, br := range act.channels.branches {
		if br.Process == ProcessStringSoft || br.Process == ProcessStringHard {
			t.Error("string branch below the mixed window")
		}
	}
}

func TestCatalogIdempotence(t *testing.T) {
	db := species.Builtin()
	cfg := Config{ElasticParameter: -1, Elastic: true,
		TwoToOne: true, TwoToTwo: true}

	// Below the mixed window no random draw enters the enumeration, so two
	// identical actions must produce identical channel weights.
	weights := func(seed int64) []float64 {
		a, b := headOn(db, species.Proton, species.Proton, 2.5)
		act := NewScatterAction(a, b, 0, true, 1, db, NewSource(seed))
		if err := act.AddAllProcesses(cfg); err != nil {
			t.Fatal(err)
		}
		var ws []float64
		for _, br := range act.channels.branches {
			ws = append(ws, br.Weight)
		}
		return ws
	}

	w1, w2 := weights(1), weights(99)
	if len(w1) != len(w2) {
		t.Fatalf("channel counts differ: %d vs %d", len(w1), len(w2))
	}
	for i := range w1 {
		if w1[i] != w2[i] {
			t.Errorf("channel %d weight %g vs %g", i, w1[i], w2[i])
		}
	}
}

func TestStringsRequireGenerator(t *testing.T) {
	db := species.Builtin()
	a, b := headOn(db, species.Proton, species.Proton, 6.0)
	act := NewScatterAction(a, b, 0, true, 1, db, NewSource(1))
	err := act.AddAllProcesses(Config{ElasticParameter: -1, Strings: true})
	if err != ErrNoStringGenerator {
		t.Errorf("got %v, want ErrNoStringGenerator", err)
	}
}
