package memory

import (
	"context"

	"runemind/internal/app/ports"
	"runemind/internal/domain/game"
)

type StateRepo struct {
	store *Store
}

func NewStateRepo(store *Store) StateRepo {
	return StateRepo{store: store}
}

func (r StateRepo) Load(_ context.Context) (game.PlayerState, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.state == nil {
		return game.PlayerState{}, ports.ErrNotFound
	}
	return r.store.state.Clone(), nil
}

func (r StateRepo) Save(_ context.Context, state game.PlayerState) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := state.Clone()
	r.store.state = &clone
	return nil
}
