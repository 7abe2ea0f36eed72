package store

import (
	"context"
	"encoding/json"
)

// Store es el almacén externo de documentos estructurados (Notion).
// Una "collection" es una database de Notion y un "row" es una page.
type Store interface {
	// ListCollections es de solo lectura. Sin paginación: primera página.
	ListCollections(ctx context.Context) (CollectionList, error)

	// UpdateSchema declara columnas (merge): agrega, nunca borra ni renombra.
	// Repetirlo con el mismo schema es no-op del lado del store.
	UpdateSchema(ctx context.Context, collectionID string, schema Schema) (json.RawMessage, error)

	// CreateRow no es idempotente: cada llamada crea una fila nueva.
	CreateRow(ctx context.Context, collectionID string, row RowInput) (Row, error)
}

type Collection struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

type CollectionList struct {
	Results []Collection `json:"results"`
}

// First devuelve la primera collection, si hay.
func (l CollectionList) First() (Collection, bool) {
	if len(l.Results) == 0 {
		return Collection{}, false
	}
	return l.Results[0], true
}

// Schema: una columna título + columnas numéricas.
type Schema struct {
	Title   string
	Numbers []string
}

type RowInput struct {
	TitleColumn string
	Title       string
	Numbers     map[string]float64
}

type Row struct {
	ID  string
	URL string

	// Raw es el objeto tal cual lo devolvió el store.
	Raw json.RawMessage
}
