// Package memory is the in-process inventory: stacking item counts, one
// stack per slot, capped at the classic 28 slots.
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
	mu    sync.Mutex
	items map[string]int
	slots int
}

func NewStore() *Store {
	return &Store{items: make(map[string]int), slots: game.InventorySlots}
}

// Seed replaces held items, for wiring that restores a snapshot.
func (s *Store) Seed(items map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]int, len(items))
	for item, qty := range items {
		if qty > 0 {
			s.items[normalize(item)] = qty
		}
	}
}

func (s *Store) Items(_ context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.items))
	for item, qty := range s.items {
		out[item] = qty
	}
	return out, nil
}

func (s *Store) Count(_ context.Context, item string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[normalize(item)], nil
}

func (s *Store) Add(_ context.Context, item string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("add %s: quantity must be positive", item)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalize(item)
	if _, held := s.items[key]; !held && len(s.items) >= s.slots {
		return fmt.Errorf("%w: inventory full", ports.ErrConflict)
	}
	s.items[key] += qty
	return nil
}

func (s *Store) Remove(_ context.Context, item string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("remove %s: quantity must be positive", item)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalize(item)
	held := s.items[key]
	if held < qty {
		return fmt.Errorf("%w: have %dx %s, need %d", ports.ErrConflict, held, key, qty)
	}
	if held == qty {
		delete(s.items, key)
		return nil
	}
	s.items[key] = held - qty
	return nil
}

func normalize(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}
