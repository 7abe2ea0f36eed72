package notion

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"bodycomp-notion/internal/platform/logger"
	"bodycomp-notion/internal/platform/metrics"
	"bodycomp-notion/internal/ports/store"
)

const (
	opList         = "list_collections"
	opUpdateSchema = "update_schema"
	opCreateRow    = "create_row"
)

// Store implementa store.Store sobre la API de Notion.
type Store struct {
	client *Client
	log    logger.Logger
}

var _ store.Store = (*Store)(nil)

func NewStore(client *Client, log logger.Logger) (*Store, error) {
	if client == nil {
		return nil, ErrNotionNotConfigured
	}
	return &Store{
		client: client,
		log:    logger.Scope(log, "NotionStore"),
	}, nil
}

// ListCollections busca todas las databases visibles para la integración.
func (s *Store) ListCollections(ctx context.Context) (store.CollectionList, error) {
	log := s.log.With(map[string]any{"op": opList})
	log.Debug("fetching databases...", nil)

	start := time.Now()
	resp, err := s.client.Search(ctx, &SearchFilter{Value: "database", Property: "object"})
	observe(opList, start, err)
	if err != nil {
		log.Error("error fetching databases", map[string]any{"err": err})
		return store.CollectionList{}, store.Wrap(opList, err)
	}

	out := store.CollectionList{Results: make([]store.Collection, 0, len(resp.Results))}
	for _, r := range resp.Results {
		out.Results = append(out.Results, store.Collection{
			ID:    r.ID,
			Title: plainText(r.Title),
		})
	}

	log.Info("found databases", map[string]any{"count": len(out.Results)})
	return out, nil
}

// UpdateSchema declara la columna título y las numéricas. Notion mergea
// properties, así que cambiar de unidad agrega columnas paralelas.
func (s *Store) UpdateSchema(ctx context.Context, collectionID string, schema store.Schema) (json.RawMessage, error) {
	log := s.log.With(map[string]any{"op": opUpdateSchema, "database": collectionID})
	log.Debug("updating database...", nil)

	start := time.Now()
	raw, err := s.client.UpdateDatabase(ctx, collectionID, schemaProperties(schema))
	observe(opUpdateSchema, start, err)
	if err != nil {
		log.Error("error updating database", map[string]any{"err": err})
		return nil, store.Wrap(opUpdateSchema, err)
	}

	log.Info("updated database", nil)
	return raw, nil
}

// CreateRow crea una page nueva en la database. Sin dedup.
func (s *Store) CreateRow(ctx context.Context, collectionID string, row store.RowInput) (store.Row, error) {
	log := s.log.With(map[string]any{"op": opCreateRow, "database": collectionID})
	log.Debug("creating database entry...", nil)

	start := time.Now()
	page, raw, err := s.client.CreatePage(ctx, collectionID, rowProperties(row))
	observe(opCreateRow, start, err)
	if err != nil {
		log.Error("error creating database entry", map[string]any{"err": err})
		return store.Row{}, store.Wrap(opCreateRow, err)
	}

	log.Info("created database entry", map[string]any{"page": page.ID})
	return store.Row{ID: page.ID, URL: page.URL, Raw: raw}, nil
}

// schemaProperties arma el body de PATCH /databases/{id}.
// La columna título se renombra a schema.Title.
func schemaProperties(schema store.Schema) map[string]any {
	props := make(map[string]any, len(schema.Numbers)+1)
	if schema.Title != "" {
		props[schema.Title] = map[string]any{
			"name":  schema.Title,
			"title": map[string]any{},
		}
	}
	for _, name := range schema.Numbers {
		props[name] = map[string]any{"number": map[string]any{}}
	}
	return props
}

// rowProperties arma el body de POST /pages.
func rowProperties(row store.RowInput) map[string]any {
	props := make(map[string]any, len(row.Numbers)+1)
	props[row.TitleColumn] = map[string]any{
		"title": []RichText{{Text: &Text{Content: row.Title}}},
	}
	for name, v := range row.Numbers {
		props[name] = map[string]any{"number": v}
	}
	return props
}

func plainText(rt []RichText) string {
	var sb strings.Builder
	for _, t := range rt {
		switch {
		case t.PlainText != "":
			sb.WriteString(t.PlainText)
		case t.Text != nil:
			sb.WriteString(t.Text.Content)
		}
	}
	return sb.String()
}

func observe(op string, start time.Time, err error) {
	metrics.StoreCallDurationSeconds.
		WithLabelValues(op, metrics.Outcome(err)).
		Observe(time.Since(start).Seconds())
}
