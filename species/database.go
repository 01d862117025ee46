package species

import (
	"fmt"
	"log"
)

// Database is the read-only species lookup shared by all scatter actions.
type Database struct {
	types  []*ParticleType
	byCode map[int]*ParticleType
}

// NewDatabase registers the given types, mirrors antiparticle entries for
// every type with a distinct antiparticle, and resolves the default decay
// modes. The input types must use positive PDG codes for particles with
// distinct antiparticles.
func NewDatabase(types []*ParticleType) (*Database, error) {
	db := &Database{byCode: map[int]*ParticleType{}}
	for _, t := range types {
		if _, dup := db.byCode[t.Code]; dup {
			return nil, fmt.Errorf("species: duplicate PDG code %d", t.Code)
		}
		db.types = append(db.types, t)
		db.byCode[t.Code] = t
	}
	db.mirrorAntiparticles()
	if err := db.attachDefaultModes(); err != nil {
		return nil, err
	}
	return db, nil
}

// Find returns the type with the given PDG code.
func (db *Database) Find(code int) (*ParticleType, error) {
	if t, ok := db.byCode[code]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("species: unknown PDG code %d", code)
}

// MustFind is Find for codes that are known to be present.
func (db *Database) MustFind(code int) *ParticleType {
	t, err := db.Find(code)
	if err != nil {
		log.Fatal(err.Error())
	}
	return t
}

// ListAll returns all registered types in insertion order. The returned
// slice must not be modified.
func (db *Database) ListAll() []*ParticleType { return db.types }

func (db *Database) mirrorAntiparticles() {
	for _, t := range db.types {
		anti := conjugate(t.Code)
		if anti == t.Code {
			continue
		}
		if _, ok := db.byCode[anti]; ok {
			continue
		}
		at := &ParticleType{
			Code:         anti,
			Name:         NameOf(anti),
			Mass:         t.Mass,
			Width:        t.Width,
			Spin:         t.Spin,
			Charge:       -t.Charge,
			BaryonNumber: -t.BaryonNumber,
			Stable:       t.Stable,
		}
		db.types = append(db.types, at)
		db.byCode[anti] = at
	}
}

// rawMode is a decay mode before its product codes are resolved against the
// database.
type rawMode struct {
	a, b   int
	l      int
	branch float64
}

// defaultModes lists the two-body decay modes attached to the built-in
// resonances. The omega mode is an effective two-body stand-in for the
// dominant three-pion channel.
var defaultModes = map[int][]rawMode{
	RhoZero: {{PionPlus, PionMinus, 1, 1}},
	RhoPlus: {{PionPlus, PionZero, 1, 1}},
	Omega:   {{PionPlus, PionMinus, 1, 1}},
	H1: {
		{RhoZero, PionZero, 0, 1. / 3},
		{RhoPlus, PionMinus, 0, 1. / 3},
		{RhoMinus, PionPlus, 0, 1. / 3},
	},
	DeltaPlusPlus: {{Proton, PionPlus, 1, 1}},
	DeltaPlus:     {{Proton, PionZero, 1, 2. / 3}, {Neutron, PionPlus, 1, 1. / 3}},
	DeltaZero:     {{Proton, PionMinus, 1, 1. / 3}, {Neutron, PionZero, 1, 2. / 3}},
	DeltaMinus:    {{Neutron, PionMinus, 1, 1}},
}

func (db *Database) attachDefaultModes() error {
	for _, t := range db.types {
		raws, ok := defaultModes[t.Code]
		conj := false
		if !ok {
			raws, ok = defaultModes[conjugate(t.Code)]
			conj = ok && conjugate(t.Code) != t.Code
		}
		if !ok {
			continue
		}
		for _, r := range raws {
			ca, cb := r.a, r.b
			if conj {
				ca, cb = conjugate(ca), conjugate(cb)
			}
			a, err := db.Find(ca)
			if err != nil {
				return err
			}
			b, err := db.Find(cb)
			if err != nil {
				return err
			}
			t.Modes = append(t.Modes, DecayMode{A: a, B: b, L: r.l, Branch: r.branch})
		}
	}
	return nil
}

// Builtin returns a database with the light hadrons the engine is normally
// run with: pions, eta, rho, omega, h1(1170), kaons, nucleons and the
// Delta(1232) quartet, plus all antiparticles.
func Builtin() *Database {
	types := []*ParticleType{
		{Code: PionPlus, Mass: 0.13957, Spin: 0, Charge: 1, Stable: true},
		{Code: PionZero, Mass: 0.13498, Spin: 0, Charge: 0, Stable: true},
		{Code: Eta, Mass: 0.54786, Spin: 0, Charge: 0, Stable: true},
		{Code: RhoPlus, Mass: 0.77526, Width: 0.1491, Spin: 2, Charge: 1},
		{Code: RhoZero, Mass: 0.77526, Width: 0.1491, Spin: 2, Charge: 0},
		{Code: Omega, Mass: 0.78266, Width: 0.00868, Spin: 2, Charge: 0},
		{Code: H1, Mass: 1.166, Width: 0.375, Spin: 2, Charge: 0},
		{Code: KPlus, Mass: 0.49368, Spin: 0, Charge: 1, Stable: true},
		{Code: KZero, Mass: 0.49761, Spin: 0, Charge: 0, Stable: true},
		{Code: Proton, Mass: 0.93827, Spin: 1, Charge: 1, BaryonNumber: 1, Stable: true},
		{Code: Neutron, Mass: 0.93957, Spin: 1, Charge: 0, BaryonNumber: 1, Stable: true},
		{Code: DeltaPlusPlus, Mass: 1.232, Width: 0.117, Spin: 3, Charge: 2, BaryonNumber: 1},
		{Code: DeltaPlus, Mass: 1.232, Width: 0.117, Spin: 3, Charge: 1, BaryonNumber: 1},
		{Code: DeltaZero, Mass: 1.232, Width: 0.117, Spin: 3, Charge: 0, BaryonNumber: 1},
		{Code: DeltaMinus, Mass: 1.232, Width: 0.117, Spin: 3, Charge: -1, BaryonNumber: 1},
	}
	for _, t := range types {
		t.Name = NameOf(t.Code)
	}
	db, err := NewDatabase(types)
	if err != nil {
		log.Fatal(err.Error())
	}
	return db
}
