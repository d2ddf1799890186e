// Package memory holds process-local implementations of the persistence
// ports, used in tests and in sandbox runs that keep nothing on disk.
package memory

import (
	"sync"

	"runemind/internal/domain/game"
)

type Store struct {
	mu       sync.Mutex
	state    *game.PlayerState
	progress *game.TutorialProgress
	records  []game.MemoryRecord
}

func NewStore() *Store {
	return &Store{}
}

// SeedState pre-loads an aggregate so boot skips the fresh-account path.
func (s *Store) SeedState(state game.PlayerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := state.Clone()
	s.state = &clone
}

// SeedProgress pre-loads a tutorial cursor.
func (s *Store) SeedProgress(progress game.TutorialProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := progress
	clone.CompletedSteps = append([]string(nil), progress.CompletedSteps...)
	s.progress = &clone
}
