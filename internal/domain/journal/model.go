package journal

import "time"

type Source string

const (
	SourceHTTP Source = "http"
	SourceMQTT Source = "mqtt"
	SourceCLI  Source = "cli"
)

type Status string

const (
	StatusCreated Status = "created"
	StatusFailed  Status = "failed"
)

// Entry es un intento de ingesta. El store externo sigue siendo la fuente
// de verdad de las mediciones; esto es solo auditoría.
type Entry struct {
	ID         string
	ReceivedAt time.Time

	Source     Source
	Collection string

	Unit           string
	Date           string // ya formateada para el store
	Weight         float64
	FatMass        float64
	FatMassPercent float64
	LeanMass       float64

	Status Status
	PageID string
	Error  string
}
