package journal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RecordInput struct {
	Source     Source
	Collection string

	Unit           string
	Date           string
	Weight         float64
	FatMass        float64
	FatMassPercent float64
	LeanMass       float64

	PageID string
	Err    error
}

// Record guarda el intento. Status se deriva de Err.
func (s *Service) Record(ctx context.Context, in RecordInput) (Entry, error) {
	if in.Source == "" {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		ID:             uuid.NewString(),
		ReceivedAt:     s.now().UTC(),
		Source:         in.Source,
		Collection:     strings.TrimSpace(in.Collection),
		Unit:           in.Unit,
		Date:           in.Date,
		Weight:         in.Weight,
		FatMass:        in.FatMass,
		FatMassPercent: in.FatMassPercent,
		LeanMass:       in.LeanMass,
		Status:         StatusCreated,
		PageID:         in.PageID,
	}
	if in.Err != nil {
		e.Status = StatusFailed
		e.Error = in.Err.Error()
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	return s.repo.ListRecent(ctx, clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
