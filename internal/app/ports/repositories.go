package ports

import (
	"context"

	"runemind/internal/domain/game"
)

// StateStore persists the single player aggregate between cycles.
// Load returns ErrNotFound when nothing has been persisted yet.
type StateStore interface {
	Load(ctx context.Context) (game.PlayerState, error)
	Save(ctx context.Context, state game.PlayerState) error
}

// ProgressStore persists the tutorial cursor alongside the player state.
type ProgressStore interface {
	Load(ctx context.Context) (game.TutorialProgress, error)
	Save(ctx context.Context, progress game.TutorialProgress) error
}

// MemoryJournal is the append-only reflective log. Listings return
// newest records first.
type MemoryJournal interface {
	Append(ctx context.Context, records []game.MemoryRecord) error
	ListRecent(ctx context.Context, limit int) ([]game.MemoryRecord, error)
	ListByKind(ctx context.Context, kind game.MemoryKind, limit int) ([]game.MemoryRecord, error)
}

// SkillsStore tracks per-skill experience. AddXP reports levels gained.
type SkillsStore interface {
	Snapshot(ctx context.Context) (game.SkillSet, error)
	AddXP(ctx context.Context, skill string, xp int) (int, error)
}

// InventoryStore tracks held items. Remove returns ErrConflict when the
// held quantity is insufficient.
type InventoryStore interface {
	Items(ctx context.Context) (map[string]int, error)
	Count(ctx context.Context, item string) (int, error)
	Add(ctx context.Context, item string, qty int) error
	Remove(ctx context.Context, item string, qty int) error
}
