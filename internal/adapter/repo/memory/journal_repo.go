package memory

import (
	"context"

	"runemind/internal/domain/game"
)

type JournalRepo struct {
	store *Store
}

func NewJournalRepo(store *Store) JournalRepo {
	return JournalRepo{store: store}
}

func (r JournalRepo) Append(_ context.Context, records []game.MemoryRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.records = append(r.store.records, records...)
	return nil
}

func (r JournalRepo) ListRecent(_ context.Context, limit int) ([]game.MemoryRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.newestFirst(func(game.MemoryRecord) bool { return true }, limit), nil
}

func (r JournalRepo) ListByKind(_ context.Context, kind game.MemoryKind, limit int) ([]game.MemoryRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.newestFirst(func(rec game.MemoryRecord) bool { return rec.Kind == kind }, limit), nil
}

// newestFirst walks the append-ordered log backwards. Callers hold the
// store lock.
func (r JournalRepo) newestFirst(keep func(game.MemoryRecord) bool, limit int) []game.MemoryRecord {
	out := make([]game.MemoryRecord, 0, limit)
	for i := len(r.store.records) - 1; i >= 0 && len(out) < limit; i-- {
		if keep(r.store.records[i]) {
			out = append(out, r.store.records[i])
		}
	}
	return out
}
