package measurements

import (
	"errors"
	"fmt"
	"strings"

	"bodycomp-notion/internal/ports/store"
)

var (
	ErrInvalidUnit = errors.New("unit must be kg or lb")
)

// Unit define la unidad de masa de la medición.
// @Enum kg, lb
type Unit string

const (
	UnitKilograms Unit = "kg"
	UnitPounds    Unit = "lb"
)

func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case UnitKilograms, UnitPounds:
		return u, nil
	default:
		return "", ErrInvalidUnit
	}
}

func (u Unit) Valid() bool {
	return u == UnitKilograms || u == UnitPounds
}

// DateColumn es la columna título de la database.
const DateColumn = "Date"

// FatMassPercentColumn no lleva unidad (es porcentaje).
const FatMassPercentColumn = "Fat Mass (%)"

// Columns son los nombres de columna para una unidad.
type Columns struct {
	Date           string
	Weight         string
	FatMass        string
	FatMassPercent string
	LeanMass       string
}

// ColumnNames es pura: mismo Unit => mismos nombres.
func ColumnNames(u Unit) Columns {
	return Columns{
		Date:           DateColumn,
		Weight:         fmt.Sprintf("Weight (%s)", u),
		FatMass:        fmt.Sprintf("Fat Mass (%s)", u),
		FatMassPercent: FatMassPercentColumn,
		LeanMass:       fmt.Sprintf("Lean Mass (%s)", u),
	}
}

// Schema es lo que se declara en el store. Cambiar de unidad agrega columnas
// paralelas; las de la unidad anterior quedan (no se migran entradas viejas).
func (c Columns) Schema() store.Schema {
	return store.Schema{
		Title:   c.Date,
		Numbers: []string{c.Weight, c.FatMass, c.FatMassPercent, c.LeanMass},
	}
}
