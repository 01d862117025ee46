package frag

import (
	"math"
	"testing"

	gohadron "github.com/hadronlab/gohadron"
	"github.com/hadronlab/gohadron/kinematics"
	"github.com/hadronlab/gohadron/scatter"
	"github.com/hadronlab/gohadron/species"
)

func headOnPair(
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

func checkFragments(
	t *testing.T, out []gohadron.Particle, srts float64,
	charge, baryon int,
) {
	t.Helper()
	if len(out) < 2 {
		t.Fatalf("final state has %d fragments", len(out))
	}

	var total kinematics.FourVector
	outCharge, outBaryon := 0, 0
	for i := range out {
		total = total.Add(out[i].Momentum)
		outCharge += out[i].Type.Charge
		outBaryon += out[i].Type.BaryonNumber
	}
	want := kinematics.FourVector{srts, 0, 0, 0}
	for i := 0; i < 4; i++ {
		if math.Abs(total[i]-want[i]) > 1e-6 {
			t.Fatalf("momentum not conserved: %v, want %v", total, want)
		}
	}
	if outCharge != charge || outBaryon != baryon {
		t.Fatalf("charge/baryon (%d, %d), want (%d, %d)",
			outCharge, outBaryon, charge, baryon)
	}

	// Exactly the two fragments leading in |pz| keep a suppressed cross
	// section.
	nLeading := 0
	for i := range out {
		switch out[i].ScalingFactor {
		case leadingFactor:
			nLeading++
		case 0:
		default:
			t.Fatalf("fragment %d has scaling factor %g", i, out[i].ScalingFactor)
		}
	}
	if nLeading != 2 {
		t.Errorf("%d leading fragments, want 2", nLeading)
	}
}

func TestDiffractiveCrossSections(t *testing.T) {
	db := species.Builtin()
	g := NewGenerator(db, scatter.NewSource(1), 1)

	xs := g.DiffractiveCrossSections(species.Proton, species.Proton, 6)
	if xs[0] <= 0 || xs[1] <= 0 || xs[2] <= 0 {
		t.Fatalf("pp diffractive cross sections not positive: %v", xs)
	}
	if xs[0] != xs[1] {
		t.Error("single-diffractive sides should be symmetric")
	}

	// Additive quark model: a pion beam suppresses by 2/3.
	pixs := g.DiffractiveCrossSections(species.PionPlus, species.Proton, 6)
	if math.Abs(pixs[0]-2.0/3.0*xs[0]) > 1e-12 {
		t.Errorf("pi p SD = %g, want 2/3 of pp's %g", pixs[0], xs[0])
	}
}

func TestNextNDiffSoft(t *testing.T) {
	db := species.Builtin()
	g := NewGenerator(db, scatter.NewSource(9), 1)
	a, b := headOnPair(db, species.Proton, species.Proton, 6)
	g.Init(&a, &b, 3.0, 1.0)

	ok := false
	for try := 0; try < 100 && !ok; try++ {
		ok = g.NextNDiffSoft()
	}
	if !ok {
		t.Fatal("non-diffractive fragmentation never succeeded")
	}
	out := g.FinalState()
	checkFragments(t, out, 6, 2, 2)

	for i := range out {
		if out[i].FormationTime < 3.0 {
			t.Errorf("fragment %d forms at %g, before the collision",
				i, out[i].FormationTime)
		}
	}

	// FinalState drains.
	if g.FinalState() != nil {
		t.Error("second FinalState call should be empty")
	}
}

func TestNextSDiff(t *testing.T) {
	db := species.Builtin()
	g := NewGenerator(db, scatter.NewSource(4), 1)
	a, b := headOnPair(db, species.Proton, species.Proton, 6)
	g.Init(&a, &b, 0, 1.0)

	ok := false
	for try := 0; try < 100 && !ok; try++ {
		ok = g.NextSDiff(true)
	}
	if !ok {
		t.Fatal("single-diffractive excitation never succeeded")
	}
	out := g.FinalState()
	checkFragments(t, out, 6, 2, 2)

	// The A side survives intact and keeps moving forward.
	if out[0].Type.Code != species.Proton {
		t.Errorf("survivor is %s, want the beam proton", out[0].Type.Name)
	}
	if out[0].Momentum[3] <= 0 {
		t.Errorf("survivor moves backward: pz = %g", out[0].Momentum[3])
	}
}

func TestNextDDiff(t *testing.T) {
	db := species.Builtin()
	g := NewGenerator(db, scatter.NewSource(4), 1)
	a, b := headOnPair(db, species.PionMinus, species.Proton, 5)
	g.Init(&a, &b, 0, 1.0)

	ok := false
	for try := 0; try < 100 && !ok; try++ {
		ok = g.NextDDiff()
	}
	if !ok {
		t.Fatal("double-diffractive excitation never succeeded")
	}
	checkFragments(t, g.FinalState(), 5, 0, 1)
}

func TestNextSDiffBelowThreshold(t *testing.T) {
	db := species.Builtin()
	g := NewGenerator(db, scatter.NewSource(4), 1)
	// Barely above the pair mass: no room for the minimum excitation.
	a, b := headOnPair(db, species.Proton, species.Proton, 1.95)
	g.Init(&a, &b, 0, 1.0)
	if g.NextSDiff(true) {
		t.Error("excitation below threshold should fail")
	}
	if g.NextDDiff() {
		t.Error("double excitation below threshold should fail")
	}
}

func TestHardEvent(t *testing.T) {
	db := species.Builtin()
	g := NewGenerator(db, scatter.NewSource(1), 1)

	for _, seed := range []float64{0.11, 0.42, 0.93} {
		out := g.HardEvent(scatter.HardConfig{
			CodeA: species.Proton,
			CodeB: species.Proton,
			SqrtS: 10,
			Seed:  seed,
			Types: db.ListAll(),
		})
		if len(out) < 2 {
			t.Fatalf("hard event with %d hadrons", len(out))
		}

		var total kinematics.FourVector
		charge, baryon := 0, 0
		for _, h := range out {
			total = total.Add(h.Momentum)
			if h.Code == species.KShort || h.Code == species.KLong {
				continue // neutral, zero baryon number
			}
			tp := db.MustFind(h.Code)
			charge += tp.Charge
			baryon += tp.BaryonNumber
		}
		want := kinematics.FourVector{10, 0, 0, 0}
		for i := 0; i < 4; i++ {
			if math.Abs(total[i]-want[i]) > 1e-6 {
				t.Fatalf("hard event momentum %v, want %v", total, want)
			}
		}
		if charge != 2 || baryon != 2 {
			t.Errorf("hard event charge/baryon (%d, %d), want (2, 2)", charge, baryon)
		}
	}
}

func TestHardEventNearThreshold(t *testing.T) {
	db := species.Builtin()
	g := NewGenerator(db, scatter.NewSource(1), 1)

	// The multiplicity cap must keep the sampler terminating even when the
	// mass budget is tight.
	out := g.HardEvent(scatter.HardConfig{
		CodeA: species.Proton,
		CodeB: species.Proton,
		SqrtS: 2.2,
		Seed:  0.5,
		Types: db.ListAll(),
	})
	if len(out) < 2 {
		t.Fatalf("hard event with %d hadrons", len(out))
	}
	var total kinematics.FourVector
	for _, h := range out {
		total = total.Add(h.Momentum)
	}
	if math.Abs(total[0]-2.2) > 1e-6 {
		t.Errorf("energy not conserved near threshold: %g", total[0])
	}
}
