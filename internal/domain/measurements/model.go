package measurements

import (
	"time"

	"bodycomp-notion/internal/ports/store"
)

// Measurement es una medición de composición corporal ya validada.
// Vive solo durante el request; la persistencia es del store externo.
type Measurement struct {
	Date time.Time
	Unit Unit

	Weight         float64
	FatMass        float64
	FatMassPercent float64
	LeanMass       float64
}

// Entry es la fila a escribir: fecha formateada + valores por columna.
type Entry struct {
	Collection string
	Title      string
	Unit       Unit
	Columns    Columns

	Weight         float64
	FatMass        float64
	FatMassPercent float64
	LeanMass       float64
}

func NewEntry(collection string, m Measurement) Entry {
	return Entry{
		Collection:     collection,
		Title:          FormatStoreDate(m.Date),
		Unit:           m.Unit,
		Columns:        ColumnNames(m.Unit),
		Weight:         m.Weight,
		FatMass:        m.FatMass,
		FatMassPercent: m.FatMassPercent,
		LeanMass:       m.LeanMass,
	}
}

// Properties: nombre de columna => valor numérico.
func (e Entry) Properties() map[string]float64 {
	return map[string]float64{
		e.Columns.Weight:         e.Weight,
		e.Columns.FatMass:        e.FatMass,
		e.Columns.FatMassPercent: e.FatMassPercent,
		e.Columns.LeanMass:       e.LeanMass,
	}
}

func (e Entry) RowInput() store.RowInput {
	return store.RowInput{
		TitleColumn: e.Columns.Date,
		Title:       e.Title,
		Numbers:     e.Properties(),
	}
}
