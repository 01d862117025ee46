package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"gopkg.in/gcfg.v1"

	gohadron "github.com/hadronlab/gohadron"
	"github.com/hadronlab/gohadron/frag"
	"github.com/hadronlab/gohadron/kinematics"
	"github.com/hadronlab/gohadron/scatter"
	"github.com/hadronlab/gohadron/species"
)

const ExampleConfigFile = `[Scatter]

# ElasticParameter is a constant elastic cross section in mb. Set it to a
# negative value to use the energy-dependent parametrization instead.
ElasticParameter = -1.0

# Channel families to include.
Elastic  = true
TwoToOne = true
TwoToTwo = true

# Strings enables string fragmentation for nucleon-nucleon and pion-nucleon
# pairs above the mixed-regime window.
Strings = true

# NNbarResonances enables the annihilation channel through h1(1170)+rho0
# and its detailed-balance reverse. Only use this in box setups where
# detailed balance must hold.
NNbarResonances = false

# Elastic nucleon-nucleon collisions below this sqrt(s) (GeV) are rejected.
LowSNNCut = 1.98

# Proper formation time of string fragments, in fm.
StringFormationTime = 1.0

# Isotropic elastic angular sampling. When false, nucleon-nucleon elastic
# scattering is forward-peaked.
Isotropic = false

[Run]

# Catalog is a particle catalog file with the columns
#   pdg  mass[GeV]  width[GeV]  spin(2J)  charge  baryon  stable(0/1)
# Leave it empty to use the built-in light-hadron set.
Catalog =

Seed   = 42
Events = 10000

# Incoming pair (PDG codes) and collision energy (GeV).
PdgA  = 2212
PdgB  = 2212
SqrtS = 3.0`

type Config struct {
	Scatter struct {
		ElasticParameter    float64
		Elastic             bool
		TwoToOne            bool
		TwoToTwo            bool
		Strings             bool
		NNbarResonances     bool
		LowSNNCut           float64
		StringFormationTime float64
		Isotropic           bool
	}
	Run struct {
		Catalog string
		Seed    int64
		Events  int
		PdgA    int
		PdgB    int
		SqrtS   float64
	}
}

func main() {
	var (
		configFile    string
		exampleConfig bool
	)
	flag.StringVar(&configFile, "Config", "",
		"Configuration file. Required unless -ExampleConfig is given.")
	flag.BoolVar(&exampleConfig, "ExampleConfig", false,
		"Print an example configuration file to stdout and exit.")
	flag.Parse()

	if exampleConfig {
		fmt.Println(ExampleConfigFile)
		return
	}
	if configFile == "" {
		log.Fatal("Must supply a -Config file (see -ExampleConfig).")
	}

	con := &Config{}
	if err := gcfg.ReadFileInto(con, configFile); err != nil {
		log.Fatal(err.Error())
	}
	if con.Run.Events <= 0 {
		log.Fatal("Invalid 'Events' value.")
	}

	var db *species.Database
	if con.Run.Catalog == "" {
		db = species.Builtin()
	} else {
		var err error
		db, err = species.LoadCatalog(con.Run.Catalog)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	ta, err := db.Find(con.Run.PdgA)
	if err != nil {
		log.Fatal(err.Error())
	}
	tb, err := db.Find(con.Run.PdgB)
	if err != nil {
		log.Fatal(err.Error())
	}
	if con.Run.SqrtS <= ta.Mass+tb.Mass {
		log.Fatal("'SqrtS' below the pair's mass threshold.")
	}

	rng := scatter.NewSource(con.Run.Seed)
	gen := frag.NewGenerator(db, rng, con.Scatter.StringFormationTime)

	cfg := scatter.Config{
		ElasticParameter: con.Scatter.ElasticParameter,
		Elastic:          con.Scatter.Elastic,
		TwoToOne:         con.Scatter.TwoToOne,
		TwoToTwo:         con.Scatter.TwoToTwo,
		Strings:          con.Scatter.Strings,
		NNbarResonances:  con.Scatter.NNbarResonances,
		LowSNNCut:        con.Scatter.LowSNNCut,
	}

	counts := map[scatter.ProcessType]int{}
	sumTotal, sumMult := 0.0, 0
	for i := 0; i < con.Run.Events; i++ {
		a, b := headOnPair(ta, tb, con.Run.SqrtS)
		act := scatter.NewScatterAction(a, b, 0, con.Scatter.Isotropic,
			con.Scatter.StringFormationTime, db, rng)
		act.SetStringGenerator(gen)
		act.SetHardGenerator(gen)

		if err := act.AddAllProcesses(cfg); err != nil {
			log.Fatal(err.Error())
		}
		if err := act.GenerateFinalState(); err != nil {
			if err == scatter.ErrNoChannels {
				continue
			}
			log.Fatal(err.Error())
		}
		counts[act.Process()]++
		sumTotal += act.TotalCrossSection()
		sumMult += len(act.OutgoingParticles())
	}

	n := float64(con.Run.Events)
	fmt.Printf("%s %s at sqrt(s) = %g GeV, %d events\n",
		ta.Name, tb.Name, con.Run.SqrtS, con.Run.Events)
	fmt.Printf("mean total cross section: %.3f mb\n", sumTotal/n)
	fmt.Printf("mean multiplicity:        %.3f\n", float64(sumMult)/n)
	for _, pt := range []scatter.ProcessType{
		scatter.ProcessElastic, scatter.ProcessTwoToOne,
		scatter.ProcessTwoToTwo, scatter.ProcessStringSoft,
		scatter.ProcessStringHard,
	} {
		fmt.Printf("%-12s %8d  (%.3f)\n",
			pt, counts[pt], float64(counts[pt])/n)
	}
}

// headOnPair builds a formed head-on pair along z with the given CM energy.
func headOnPair(
	ta, tb *species.ParticleType, sqrtS float64,
) (gohadron.Particle, gohadron.Particle) {
	pcm := kinematics.PCM(sqrtS, ta.Mass, tb.Mass)
	a, b := gohadron.NewParticle(ta), gohadron.NewParticle(tb)
	a.Momentum = kinematics.FourVector{
		math.Sqrt(ta.Mass*ta.Mass + pcm*pcm), 0, 0, pcm}
	b.Momentum = kinematics.FourVector{
		math.Sqrt(tb.Mass*tb.Mass + pcm*pcm), 0, 0, -pcm}
	a.Position = kinematics.FourVector{0, 0, 0.5, 0}
	b.Position = kinematics.FourVector{0, 0, -0.5, 0}
	return a, b
}
