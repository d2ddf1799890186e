package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"runemind/internal/domain/game"
)

// Append writes the batch in one transaction so a cycle's records land
// together or not at all.
func (s *Store) Append(ctx context.Context, records []game.MemoryRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO memory_records (record_id, occurred_at_ms, kind, content, valence, tags, details)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare append: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		tags, err := json.Marshal(rec.Tags)
		if err != nil {
			return fmt.Errorf("marshal tags: %w", err)
		}
		details, err := json.Marshal(rec.Details)
		if err != nil {
			return fmt.Errorf("marshal details: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			rec.ID,
			toMillis(rec.OccurredAt),
			string(rec.Kind),
			rec.Content,
			string(rec.Valence),
			string(tags),
			string(details),
		); err != nil {
			return fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]game.MemoryRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT record_id, occurred_at_ms, kind, content, valence, tags, details
FROM memory_records
ORDER BY seq DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *Store) ListByKind(ctx context.Context, kind game.MemoryKind, limit int) ([]game.MemoryRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT record_id, occurred_at_ms, kind, content, valence, tags, details
FROM memory_records
WHERE kind = ?
ORDER BY seq DESC
LIMIT ?`, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("list by kind: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]game.MemoryRecord, error) {
	out := []game.MemoryRecord{}
	for rows.Next() {
		var (
			rec        game.MemoryRecord
			occurredAt int64
			kind       string
			valence    string
			tagsRaw    string
			detailsRaw string
		)
		if err := rows.Scan(&rec.ID, &occurredAt, &kind, &rec.Content, &valence, &tagsRaw, &detailsRaw); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.OccurredAt = fromMillis(occurredAt)
		rec.Kind = game.MemoryKind(kind)
		rec.Valence = game.Valence(valence)
		if err := json.Unmarshal([]byte(tagsRaw), &rec.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
		if err := json.Unmarshal([]byte(detailsRaw), &rec.Details); err != nil {
			return nil, fmt.Errorf("unmarshal details: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
