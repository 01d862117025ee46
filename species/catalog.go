package species

import (
	"github.com/phil-mansfield/table"
)

// Catalog column layout:
//
//	pdg  mass[GeV]  width[GeV]  spin(2J)  charge  baryon  stable(0/1)
//
// Lines starting with '#' are comments. Only particles are listed;
// antiparticle entries are mirrored automatically, and the default decay
// modes are attached by PDG code.
const (
	catalogPdgCol = iota
	catalogMassCol
	catalogWidthCol
	catalogSpinCol
	catalogChargeCol
	catalogBaryonCol
	catalogStableCol
)

// LoadCatalog reads a particle catalog file and builds a database from it.
func LoadCatalog(file string) (*Database, error) {
	colIdxs := []int{
		catalogPdgCol, catalogMassCol, catalogWidthCol, catalogSpinCol,
		catalogChargeCol, catalogBaryonCol, catalogStableCol,
	}
	cols, err := table.ReadTable(file, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	codes := cols[catalogPdgCol]
	types := make([]*ParticleType, len(codes))
	for i := range codes {
		code := int(codes[i])
		types[i] = &ParticleType{
			Code:         code,
			Name:         NameOf(code),
			Mass:         cols[catalogMassCol][i],
			Width:        cols[catalogWidthCol][i],
			Spin:         int(cols[catalogSpinCol][i]),
			Charge:       int(cols[catalogChargeCol][i]),
			BaryonNumber: int(cols[catalogBaryonCol][i]),
			Stable:       cols[catalogStableCol][i] != 0,
		}
	}
	return NewDatabase(types)
}
