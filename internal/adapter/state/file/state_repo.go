package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"runemind/internal/domain/game"
)

// StateRepo stores the player aggregate in <dir>/state.json.
type StateRepo struct {
	mu   sync.Mutex
	path string
}

func NewStateRepo(dir string) (*StateRepo, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("state dir: %w", err)
	}
	return &StateRepo{path: filepath.Join(dir, stateFileName)}, nil
}

func (r *StateRepo) Load(_ context.Context) (game.PlayerState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var state game.PlayerState
	if err := readDocument(r.path, &state); err != nil {
		return game.PlayerState{}, err
	}
	return state, nil
}

func (r *StateRepo) Save(_ context.Context, state game.PlayerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return writeDocument(r.path, state)
}
