package measurements

import (
	"context"
	"errors"
	"strings"

	"bodycomp-notion/internal/domain/journal"
	"bodycomp-notion/internal/platform/logger"
	"bodycomp-notion/internal/platform/metrics"
	"bodycomp-notion/internal/ports/store"
)

var (
	ErrNoCollection = errors.New("no accessible database")
)

// Recorder guarda cada intento de ingesta (journal.Service lo implementa).
type Recorder interface {
	Record(ctx context.Context, in journal.RecordInput) (journal.Entry, error)
}

type Service struct {
	store             store.Store
	defaultCollection string
	journal           Recorder
	log               logger.Logger
}

// NewService: defaultCollection vacío => se usa la primera database listada.
// rec puede ser nil.
func NewService(st store.Store, defaultCollection string, rec Recorder, log logger.Logger) *Service {
	return &Service{
		store:             st,
		defaultCollection: strings.TrimSpace(defaultCollection),
		journal:           rec,
		log:               logger.Scope(log, "Measurements"),
	}
}

// ResolveCollection: la configurada tal cual; si no hay, la primera que
// devuelva el store.
func (s *Service) ResolveCollection(ctx context.Context) (string, error) {
	if s.defaultCollection != "" {
		return s.defaultCollection, nil
	}

	list, err := s.store.ListCollections(ctx)
	if err != nil {
		return "", err
	}
	first, ok := list.First()
	if !ok || strings.TrimSpace(first.ID) == "" {
		return "", ErrNoCollection
	}
	return first.ID, nil
}

// Ingest: resolver database -> declarar columnas -> crear fila.
// Secuencial, sin reintentos. Si CreateRow falla, el cambio de schema queda.
func (s *Service) Ingest(ctx context.Context, source journal.Source, m Measurement) (store.Row, error) {
	if !m.Unit.Valid() || m.Date.IsZero() {
		return store.Row{}, ErrInvalidInput
	}

	collection, err := s.ResolveCollection(ctx)
	if err != nil {
		s.finish(ctx, source, NewEntry("", m), store.Row{}, err)
		return store.Row{}, err
	}

	entry := NewEntry(collection, m)

	if _, err := s.store.UpdateSchema(ctx, collection, entry.Columns.Schema()); err != nil {
		s.finish(ctx, source, entry, store.Row{}, err)
		return store.Row{}, err
	}

	row, err := s.store.CreateRow(ctx, collection, entry.RowInput())
	s.finish(ctx, source, entry, row, err)
	if err != nil {
		return store.Row{}, err
	}
	return row, nil
}

// DeclareSchema expone solo el paso de columnas (CLI).
func (s *Service) DeclareSchema(ctx context.Context, collection string, u Unit) error {
	if !u.Valid() {
		return ErrInvalidUnit
	}
	if strings.TrimSpace(collection) == "" {
		var err error
		if collection, err = s.ResolveCollection(ctx); err != nil {
			return err
		}
	}
	_, err := s.store.UpdateSchema(ctx, collection, ColumnNames(u).Schema())
	return err
}

func (s *Service) ListCollections(ctx context.Context) (store.CollectionList, error) {
	return s.store.ListCollections(ctx)
}

func (s *Service) finish(ctx context.Context, source journal.Source, e Entry, row store.Row, err error) {
	outcome := "created"
	if err != nil {
		outcome = "failed"
		s.log.Error("ingestion failed", map[string]any{
			"source":   string(source),
			"database": e.Collection,
			"err":      err,
		})
	}
	metrics.IngestionsTotal.WithLabelValues(string(source), outcome).Inc()

	if s.journal == nil {
		return
	}

	// best-effort: el journal nunca hace fallar la ingesta
	_, jerr := s.journal.Record(context.WithoutCancel(ctx), journal.RecordInput{
		Source:         source,
		Collection:     e.Collection,
		Unit:           string(e.Unit),
		Date:           e.Title,
		Weight:         e.Weight,
		FatMass:        e.FatMass,
		FatMassPercent: e.FatMassPercent,
		LeanMass:       e.LeanMass,
		PageID:         row.ID,
		Err:            err,
	})
	if jerr != nil {
		s.log.Warn("journal record failed", map[string]any{"err": jerr})
	}
}
