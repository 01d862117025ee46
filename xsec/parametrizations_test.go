package xsec

import (
	"math"
	"testing"

	"github.com/hadronlab/gohadron/species"
)

func sFromPlab(p float64) float64 {
	elab := math.Sqrt(p*p + nucleonMass*nucleonMass)
	return 2*nucleonMass*nucleonMass + 2*nucleonMass*elab
}

func TestPLabFromS(t *testing.T) {
	for _, p := range []float64{0.5, 2, 10} {
		got := PLabFromS(sFromPlab(p))
		if math.Abs(got-p) > 1e-10 {
			t.Errorf("PLabFromS round trip: got %g, want %g", got, p)
		}
	}
	if PLabFromS(1.0) != 0 {
		t.Error("below threshold PLabFromS should clamp to zero")
	}
}

func TestNucleonParametrizationsPositive(t *testing.T) {
	db := species.Builtin()
	p := db.MustFind(species.Proton)
	n := db.MustFind(species.Neutron)
	pi := db.MustFind(species.PionPlus)

	for srts := 2.0; srts < 30; srts += 0.5 {
		s := srts * srts
		pairs := []struct {
			name string
			a, b *species.ParticleType
		}{
			{"pp", p, p}, {"np", n, p}, {"pip", pi, p},
		}
		for _, pr := range pairs {
			tot := Total(pr.a, pr.b, s)
			el := Elastic(pr.a, pr.b, s)
			if tot <= 0 || el <= 0 {
				t.Fatalf("%s at sqrt(s)=%g: tot=%g el=%g", pr.name, srts, tot, el)
			}
			if el > tot {
				t.Errorf("%s at sqrt(s)=%g: elastic %g exceeds total %g",
					pr.name, srts, el, tot)
			}
		}
	}
}

func TestPPbarTotalSeam(t *testing.T) {
	// The spline hands over to the Regge fit at plab = 5 GeV. The two must
	// agree there to better than a millibarn.
	pSeam := ppbarTotalPlab[len(ppbarTotalPlab)-1]
	below := PPbarTotal(sFromPlab(pSeam * 0.999))
	above := PPbarTotal(sFromPlab(pSeam * 1.001))
	if math.Abs(below-above) > 1.0 {
		t.Errorf("ppbar seam jump: %g vs %g", below, above)
	}
}

func TestPPbarTotalMonotoneAtLowMomentum(t *testing.T) {
	// The measured cross section falls steeply toward threshold, and the
	// spline should preserve that.
	prev := math.Inf(1)
	for p := 0.3; p <= 5.0; p += 0.05 {
		cur := PPbarTotal(sFromPlab(p))
		if cur > prev+1e-9 {
			t.Fatalf("ppbar total not decreasing at plab=%g: %g > %g", p, cur, prev)
		}
		prev = cur
	}
}

func TestPPbarExceedsPP(t *testing.T) {
	db := species.Builtin()
	p := db.MustFind(species.Proton)
	pbar := db.MustFind(-species.Proton)
	for _, srts := range []float64{2.5, 4, 10} {
		s := srts * srts
		if Total(pbar, p, s) <= Total(p, p, s) {
			t.Errorf("ppbar total should exceed pp at sqrt(s)=%g", srts)
		}
	}
}

func TestPiMinusPExceedsPiPlusP(t *testing.T) {
	db := species.Builtin()
	p := db.MustFind(species.Proton)
	piPlus := db.MustFind(species.PionPlus)
	piMinus := db.MustFind(species.PionMinus)

	// The C-odd Regge term raises the pi- p cross section over pi+ p.
	for _, srts := range []float64{2, 4, 8} {
		s := srts * srts
		if Total(piMinus, p, s) <= Total(piPlus, p, s) {
			t.Errorf("pi-p total should exceed pi+p at sqrt(s)=%g", srts)
		}
	}
}

func TestStringHard(t *testing.T) {
	db := species.Builtin()
	p := db.MustFind(species.Proton)
	pi := db.MustFind(species.PionMinus)

	if StringHard(p, p, 3.9) != 0 {
		t.Error("hard cross section below threshold should vanish")
	}
	if StringHard(p, p, 100) <= StringHard(p, p, 25) {
		t.Error("hard cross section should grow with s")
	}
	// Pion beams switch on earlier.
	if StringHard(pi, p, 3.0) <= 0 {
		t.Error("piN hard cross section should be on at s=3")
	}
}

func TestDetailedBalanceFactorRR(t *testing.T) {
	db := species.Builtin()
	p := db.MustFind(species.Proton)
	pbar := db.MustFind(-species.Proton)
	h1 := db.MustFind(species.H1)
	rho := db.MustFind(species.RhoZero)

	srts := 2.5
	pcmIn := 0.4
	f := DetailedBalanceFactorRR(srts, pcmIn, h1, rho, p, pbar)
	if f <= 0 {
		t.Fatalf("factor should be positive above threshold, got %g", f)
	}

	// Check against the explicit formula.
	pOut2 := (srts*srts - (p.Mass+pbar.Mass)*(p.Mass+pbar.Mass)) *
		(srts*srts - (p.Mass-pbar.Mass)*(p.Mass-pbar.Mass)) /
		(4 * srts * srts)
	want := 4.0 / 9.0 * pOut2 / (pcmIn * pcmIn)
	if math.Abs(f-want) > 1e-12 {
		t.Errorf("factor = %g, want %g", f, want)
	}

	if DetailedBalanceFactorRR(srts, 0, h1, rho, p, pbar) != 0 {
		t.Error("vanishing incoming momentum should kill the factor")
	}
	if DetailedBalanceFactorRR(1.5, pcmIn, h1, rho, p, pbar) != 0 {
		t.Error("below the outgoing threshold the factor should vanish")
	}
}
