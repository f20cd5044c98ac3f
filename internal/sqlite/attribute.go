package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/latticehq/lattice/internal/domain/attribute"
	"github.com/latticehq/lattice/internal/repository"
)

// capturedAtFormat is a fixed-width UTC layout so stored timestamps order
// correctly under SQLite's text comparison.
const capturedAtFormat = "2006-01-02T15:04:05.000000000Z"

func formatCapturedAt(t time.Time) string {
	return t.UTC().Format(capturedAtFormat)
}

func parseCapturedAt(s string) (time.Time, error) {
	return time.Parse(capturedAtFormat, s)
}

// AttributeRepository implements attribute.Repository for SQLite
type AttributeRepository struct {
	db *DB
}

// NewAttributeRepository creates a new AttributeRepository
func NewAttributeRepository(db *DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

func appendAttribute(ctx context.Context, ex execer, rec *attribute.Record) error {
	query := `
		INSERT INTO entity_attributes (entity_id, attr_slug, value, source, confidence, captured_at, snapshot_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := ex.ExecContext(ctx, query,
		rec.EntityID,
		rec.Slug,
		rec.Value,
		rec.Source,
		rec.Confidence,
		formatCapturedAt(rec.CapturedAt),
		rec.SnapshotID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return err
	}
	if id, err := result.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// Append inserts one ledger row.
func (r *AttributeRepository) Append(ctx context.Context, rec *attribute.Record) error {
	if err := appendAttribute(ctx, r.db, rec); err != nil {
		if err == repository.ErrForeignKeyViolation {
			return err
		}
		return fmt.Errorf("failed to append attribute: %w", err)
	}
	return nil
}

// AppendMany inserts ledger rows in one transaction.
func (r *AttributeRepository) AppendMany(ctx context.Context, recs []*attribute.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range recs {
		if err := appendAttribute(ctx, tx, rec); err != nil {
			if err == repository.ErrForeignKeyViolation {
				return err
			}
			return fmt.Errorf("failed to append attribute %s: %w", rec.Slug, err)
		}
	}

	return tx.Commit()
}

// resolvedQuery picks, per slug, the newest qualifying row; insertion order
// (id) breaks captured_at ties.
const resolvedQuery = `
	SELECT attr_slug, value, source, confidence, captured_at FROM (
		SELECT attr_slug, value, source, confidence, captured_at,
			ROW_NUMBER() OVER (
				PARTITION BY attr_slug
				ORDER BY captured_at DESC, id DESC
			) AS rn
		FROM entity_attributes
		WHERE entity_id = ?%s
	) WHERE rn = 1
`

// Current returns the latest value per slug.
func (r *AttributeRepository) Current(ctx context.Context, entityID string) (map[string]attribute.CurrentValue, error) {
	return r.resolve(ctx, fmt.Sprintf(resolvedQuery, ""), entityID)
}

// At returns the latest value per slug among rows captured at or before ts.
func (r *AttributeRepository) At(ctx context.Context, entityID string, ts time.Time) (map[string]attribute.CurrentValue, error) {
	return r.resolve(ctx, fmt.Sprintf(resolvedQuery, " AND captured_at <= ?"), entityID, formatCapturedAt(ts))
}

func (r *AttributeRepository) resolve(ctx context.Context, query string, args ...any) (map[string]attribute.CurrentValue, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve attributes: %w", err)
	}
	defer rows.Close()

	values := make(map[string]attribute.CurrentValue)
	for rows.Next() {
		var (
			slug       string
			cv         attribute.CurrentValue
			capturedAt string
		)
		if err := rows.Scan(&slug, &cv.Value, &cv.Source, &cv.Confidence, &capturedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attribute value: %w", err)
		}
		if cv.CapturedAt, err = parseCapturedAt(capturedAt); err != nil {
			return nil, fmt.Errorf("failed to parse captured_at: %w", err)
		}
		values[slug] = cv
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attribute rows: %w", err)
	}
	return values, nil
}

// History returns one slug's records, newest first.
func (r *AttributeRepository) History(ctx context.Context, entityID, slug string, limit int) ([]attribute.Record, error) {
	query := `
		SELECT id, entity_id, attr_slug, value, source, confidence, captured_at, snapshot_id
		FROM entity_attributes
		WHERE entity_id = ? AND attr_slug = ?
		ORDER BY captured_at DESC, id DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, entityID, slug, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load attribute history: %w", err)
	}
	defer rows.Close()

	var recs []attribute.Record
	for rows.Next() {
		var (
			rec        attribute.Record
			capturedAt string
		)
		err := rows.Scan(
			&rec.ID,
			&rec.EntityID,
			&rec.Slug,
			&rec.Value,
			&rec.Source,
			&rec.Confidence,
			&capturedAt,
			&rec.SnapshotID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attribute record: %w", err)
		}
		if rec.CapturedAt, err = parseCapturedAt(capturedAt); err != nil {
			return nil, fmt.Errorf("failed to parse captured_at: %w", err)
		}
		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}
	return recs, nil
}
