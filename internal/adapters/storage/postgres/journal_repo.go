package postgres

import (
	"context"
	"database/sql"

	"bodycomp-notion/internal/domain/journal"
)

type JournalRepo struct {
	db *sql.DB
}

func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

func (r *JournalRepo) Create(ctx context.Context, e journal.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_journal (
			id, received_at,
			source, collection,
			unit, entry_date,
			weight, fat_mass, fat_mass_percent, lean_mass,
			status, page_id, error
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		e.ID,
		e.ReceivedAt,
		string(e.Source),
		e.Collection,
		e.Unit,
		e.Date,
		e.Weight,
		e.FatMass,
		e.FatMassPercent,
		e.LeanMass,
		string(e.Status),
		e.PageID,
		e.Error,
	)
	return err
}

func (r *JournalRepo) ListRecent(ctx context.Context, limit int) ([]journal.Entry, error) {
	if limit <= 0 {
		limit = journal.DefaultLimit
	}
	if limit > journal.MaxLimit {
		limit = journal.MaxLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, received_at,
			source, collection,
			unit, entry_date,
			weight, fat_mass, fat_mass_percent, lean_mass,
			status, page_id, error
		FROM ingestion_journal
		ORDER BY received_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]journal.Entry, 0)
	for rows.Next() {
		var e journal.Entry
		var source, status string

		if err := rows.Scan(
			&e.ID,
			&e.ReceivedAt,
			&source,
			&e.Collection,
			&e.Unit,
			&e.Date,
			&e.Weight,
			&e.FatMass,
			&e.FatMassPercent,
			&e.LeanMass,
			&status,
			&e.PageID,
			&e.Error,
		); err != nil {
			return nil, err
		}

		e.Source = journal.Source(source)
		e.Status = journal.Status(status)
		out = append(out, e)
	}

	return out, rows.Err()
}
