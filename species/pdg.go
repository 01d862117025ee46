package species

// PDG Monte Carlo particle numbering codes for the hadrons the built-in
// database knows about. Antiparticles are the negated codes.
const (
	PionPlus  = 211
	PionZero  = 111
	PionMinus = -211
	Eta       = 221
	RhoPlus   = 213
	RhoZero   = 113
	RhoMinus  = -213
	Omega     = 223
	H1        = 10223
	KPlus     = 321
	KZero     = 311
	Proton    = 2212
	Neutron   = 2112

	DeltaPlusPlus = 2224
	DeltaPlus     = 2214
	DeltaZero     = 2114
	DeltaMinus    = 1114

	// Event-generator mass eigenstates of the neutral kaon. The transport
	// code only tracks K0 and K0bar, so these get recombined on import.
	KShort = 310
	KLong  = 130
)

var pdgNames = map[int]string{
	PionPlus: "pi+", PionZero: "pi0", PionMinus: "pi-",
	Eta:     "eta",
	RhoPlus: "rho+", RhoZero: "rho0", RhoMinus: "rho-",
	Omega:  "omega",
	H1:     "h1(1170)",
	KPlus:  "K+", KZero: "K0",
	Proton: "p", Neutron: "n",
	DeltaPlusPlus: "Delta++", DeltaPlus: "Delta+",
	DeltaZero: "Delta0", DeltaMinus: "Delta-",
}

// NameOf returns a human-readable name for a PDG code.
func NameOf(code int) string {
	if name, ok := pdgNames[code]; ok {
		return name
	}
	if name, ok := pdgNames[-code]; ok {
		return name + "bar"
	}
	return "unknown"
}

// selfConjugate lists the mesons that are their own antiparticles.
var selfConjugate = map[int]bool{
	PionZero: true, Eta: true, RhoZero: true, Omega: true, H1: true,
}

// HasDistinctAntiparticle reports whether -code names a different species.
func HasDistinctAntiparticle(code int) bool {
	return !selfConjugate[code] && !selfConjugate[-code]
}

// conjugate returns the PDG code of the antiparticle.
func conjugate(code int) int {
	if HasDistinctAntiparticle(code) {
		return -code
	}
	return code
}
