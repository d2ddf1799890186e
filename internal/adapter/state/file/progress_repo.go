package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"runemind/internal/domain/game"
)

// ProgressRepo stores the tutorial cursor in <dir>/tutorial.json, beside
// the player state so both survive a restart together.
type ProgressRepo struct {
	mu   sync.Mutex
	path string
}

func NewProgressRepo(dir string) (*ProgressRepo, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("progress dir: %w", err)
	}
	return &ProgressRepo{path: filepath.Join(dir, progressFileName)}, nil
}

func (r *ProgressRepo) Load(_ context.Context) (game.TutorialProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var progress game.TutorialProgress
	if err := readDocument(r.path, &progress); err != nil {
		return game.TutorialProgress{}, err
	}
	return progress, nil
}

func (r *ProgressRepo) Save(_ context.Context, progress game.TutorialProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return writeDocument(r.path, progress)
}
