package gormrepo

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"runemind/internal/domain/game"
)

type JournalRepo struct {
	db *gorm.DB
}

func NewJournalRepo(db *gorm.DB) JournalRepo {
	return JournalRepo{db: db}
}

func (r JournalRepo) Append(ctx context.Context, records []game.MemoryRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]memoryRecordRow, 0, len(records))
	for _, rec := range records {
		tags, _ := json.Marshal(rec.Tags)
		details, _ := json.Marshal(rec.Details)
		rows = append(rows, memoryRecordRow{
			RecordID:   rec.ID,
			OccurredAt: rec.OccurredAt,
			Kind:       string(rec.Kind),
			Content:    rec.Content,
			Valence:    string(rec.Valence),
			Tags:       tags,
			Details:    details,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r JournalRepo) ListRecent(ctx context.Context, limit int) ([]game.MemoryRecord, error) {
	return r.list(ctx, getDBFromCtx(ctx, r.db), limit)
}

func (r JournalRepo) ListByKind(ctx context.Context, kind game.MemoryKind, limit int) ([]game.MemoryRecord, error) {
	query := getDBFromCtx(ctx, r.db).Where(&memoryRecordRow{Kind: string(kind)})
	return r.list(ctx, query, limit)
}

func (r JournalRepo) list(_ context.Context, query *gorm.DB, limit int) ([]game.MemoryRecord, error) {
	rows := []memoryRecordRow{}
	query = query.Clauses(clause.OrderBy{
		Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "seq"}, Desc: true}},
	})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]game.MemoryRecord, 0, len(rows))
	for _, row := range rows {
		rec := game.MemoryRecord{
			ID:         row.RecordID,
			OccurredAt: row.OccurredAt,
			Kind:       game.MemoryKind(row.Kind),
			Content:    row.Content,
			Valence:    game.Valence(row.Valence),
		}
		if len(row.Tags) > 0 {
			_ = json.Unmarshal(row.Tags, &rec.Tags)
		}
		if len(row.Details) > 0 {
			_ = json.Unmarshal(row.Details, &rec.Details)
		}
		out = append(out, rec)
	}
	return out, nil
}
