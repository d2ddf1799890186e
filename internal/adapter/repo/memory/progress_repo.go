package memory

import (
	"context"

	"runemind/internal/app/ports"
	"runemind/internal/domain/game"
)

type ProgressRepo struct {
	store *Store
}

func NewProgressRepo(store *Store) ProgressRepo {
	return ProgressRepo{store: store}
}

func (r ProgressRepo) Load(_ context.Context) (game.TutorialProgress, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.progress == nil {
		return game.TutorialProgress{}, ports.ErrNotFound
	}
	out := *r.store.progress
	out.CompletedSteps = append([]string(nil), r.store.progress.CompletedSteps...)
	return out, nil
}

func (r ProgressRepo) Save(_ context.Context, progress game.TutorialProgress) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := progress
	clone.CompletedSteps = append([]string(nil), progress.CompletedSteps...)
	r.store.progress = &clone
	return nil
}
