/*Package gohadron models binary collisions ("scatter actions") in a
relativistic hadronic transport simulation. Given two incoming particles it
enumerates the physically allowed outgoing channels with their cross
sections, draws one channel proportionally to its cross section, and
generates a final state consistent with conservation laws.

The interesting pieces live in the subpackages: kinematics holds the
relativistic vector algebra, species the particle-type database, xsec the
cross-section parametrizations, scatter the channel bookkeeping and
final-state generation, and frag a self-contained string-fragmentation
generator that scatter can delegate to at high energies.*/
package gohadron

import (
	"math"
)

// Physical constants. Energies and masses are in GeV, lengths and times in
// fm, cross sections in mb.
const (
	// HBarC is the GeV <-> fm conversion factor.
	HBarC = 0.197327053
	// Fm2Mb is the mb <-> fm^2 conversion factor.
	Fm2Mb = 0.1
	// ReallySmall is the numerical error tolerance. Channel weights below
	// it are discarded and momentum differences below it are treated as
	// degenerate.
	ReallySmall = 1.0e-6
	// NucleonMass is the nucleon mass in GeV.
	NucleonMass = 0.938

	TwoPi = 2 * math.Pi
)
