package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// AuditEntry is one entity event as journaled by the worker.
type AuditEntry struct {
	ID         int64
	EventType  string
	Entity     string
	EntityID   string
	Payload    []byte
	OccurredAt time.Time
	RecordedAt time.Time
}

type AuditRepository interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, entry *AuditEntry) error
	Recent(ctx context.Context, limit int) ([]AuditEntry, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type PGAuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *PGAuditRepository {
	return &PGAuditRepository{db: db}
}

// OpenPostgres opens a pool through the pgx database/sql driver and pings it.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

const createAuditTable = `CREATE TABLE IF NOT EXISTS audit_events (
	id          BIGSERIAL PRIMARY KEY,
	event_type  TEXT NOT NULL,
	entity      TEXT NOT NULL,
	entity_id   TEXT NOT NULL,
	payload     JSONB,
	occurred_at TIMESTAMPTZ NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (r *PGAuditRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAuditTable); err != nil {
		return fmt.Errorf("create audit_events: %w", err)
	}
	return nil
}

func (r *PGAuditRepository) Append(ctx context.Context, entry *AuditEntry) error {
	var payload any
	if len(entry.Payload) > 0 {
		payload = entry.Payload
	}
	row := r.db.QueryRowContext(ctx, `INSERT INTO audit_events (event_type, entity, entity_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, recorded_at`, entry.EventType, entry.Entity, entry.EntityID, payload, entry.OccurredAt)
	if err := row.Scan(&entry.ID, &entry.RecordedAt); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (r *PGAuditRepository) Recent(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, event_type, entity, entity_id, payload, occurred_at, recorded_at
		FROM audit_events ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.EventType, &e.Entity, &e.EntityID, &e.Payload, &e.OccurredAt, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PurgeBefore deletes entries recorded before cutoff and reports how many went.
func (r *PGAuditRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM audit_events WHERE recorded_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge audit events: %w", err)
	}
	return res.RowsAffected()
}

var _ AuditRepository = (*PGAuditRepository)(nil)
