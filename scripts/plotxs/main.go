/*plotxs scans the proton-proton channel cross sections over sqrt(s) and
plots them. Useful for eyeballing the parametrizations and the
resonance/string transition region.*/
package main

import (
	plt "github.com/phil-mansfield/pyplot"

	"github.com/hadronlab/gohadron/species"
	"github.com/hadronlab/gohadron/xsec"
)

func main() {
	db := species.Builtin()
	p := db.MustFind(species.Proton)

	n := 200
	srts := make([]float64, n)
	total := make([]float64, n)
	elastic := make([]float64, n)
	str := make([]float64, n)
	hard := make([]float64, n)

	lo, hi := 2.0, 20.0
	for i := 0; i < n; i++ {
		x := lo + (hi-lo)*float64(i)/float64(n-1)
		s := x * x
		srts[i] = x
		total[i] = xsec.Total(p, p, s)
		elastic[i] = xsec.Elastic(p, p, s)
		str[i] = total[i] - elastic[i]
		hard[i] = xsec.StringHard(p, p, s)
	}

	plt.Reset()
	plt.Plot(srts, total, "k", plt.LW(2))
	plt.Plot(srts, elastic, "b", plt.LW(2))
	plt.Plot(srts, str, "r", plt.LW(2))
	plt.Plot(srts, hard, "g", plt.LW(2))
	plt.XLabel(`$\sqrt{s}$ [GeV]`, plt.FontSize(16))
	plt.YLabel(`$\sigma$ [mb]`, plt.FontSize(16))
	plt.Title("pp cross sections: total (k), elastic (b), string (r), hard (g)")
	plt.Show()
}
