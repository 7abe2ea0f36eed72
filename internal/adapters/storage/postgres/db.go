package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// el journal escribe una fila por ingesta; pool chico alcanza
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ingestion_journal (
			id               UUID PRIMARY KEY,
			received_at      TIMESTAMPTZ NOT NULL,
			source           TEXT NOT NULL,
			collection       TEXT NOT NULL DEFAULT '',
			unit             TEXT NOT NULL DEFAULT '',
			entry_date       TEXT NOT NULL DEFAULT '',
			weight           DOUBLE PRECISION NOT NULL DEFAULT 0,
			fat_mass         DOUBLE PRECISION NOT NULL DEFAULT 0,
			fat_mass_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
			lean_mass        DOUBLE PRECISION NOT NULL DEFAULT 0,
			status           TEXT NOT NULL,
			page_id          TEXT NOT NULL DEFAULT '',
			error            TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_ingestion_journal_received_at
			ON ingestion_journal (received_at DESC);
	`)
	return err
}
