// Package memory is the in-process skills store. Levels derive from the
// domain XP curve; only the derived totals outlive the process, inside
// the persisted player state.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"runemind/internal/app/ports"
	"runemind/internal/domain/game"
)

type Store struct {
	mu     sync.Mutex
	skills game.SkillSet
}

func NewStore() *Store {
	return &Store{skills: game.NewSkillSet()}
}

// Seed replaces the whole set, for wiring that restores a snapshot.
func (s *Store) Seed(set game.SkillSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skills = set.Clone()
}

func (s *Store) Snapshot(_ context.Context) (game.SkillSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skills.Clone(), nil
}

func (s *Store) AddXP(_ context.Context, skill string, xp int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := strings.ToLower(skill)
	if _, ok := s.skills[name]; !ok {
		return 0, fmt.Errorf("%w: skill %q", ports.ErrNotFound, skill)
	}
	return s.skills.AddXP(name, xp), nil
}
