package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"runemind/internal/app/ports"
	"runemind/internal/domain/game"
)

var (
	_ ports.StateStore    = (*StateRepo)(nil)
	_ ports.ProgressStore = (*ProgressRepo)(nil)
)

func TestStateRepo_LoadMissingReturnsNotFound(t *testing.T) {
	repo, err := NewStateRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewStateRepo: %v", err)
	}
	_, err = repo.Load(context.Background())
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Load on empty dir = %v, want ports.ErrNotFound", err)
	}
}

func TestStateRepo_RoundTrip(t *testing.T) {
	repo, err := NewStateRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewStateRepo: %v", err)
	}

	death := time.Date(2024, 2, 28, 9, 30, 0, 0, time.UTC)
	want := game.NewDefaultState()
	want.Location = "Varrock"
	want.QuestPoints = 4
	want.TotalLevel = 120
	want.CombatLevel = 17
	want.Wealth = game.Wealth{Currency: 250_000, ItemsValue: 31_000}
	want.Achievements = append(want.Achievements, "Completed Tutorial Island")
	want.ActiveQuests = append(want.ActiveQuests, "Vampire Slayer")
	want.CompletedQuests = append(want.CompletedQuests, "Cook's Assistant")
	want.UnlockedAreas = append(want.UnlockedAreas, "Varrock")
	want.ActiveGrinds = append(want.ActiveGrinds, "rune scimitar")
	want.DeathCount = 2
	want.LastDeath = &death
	want.MembershipDaysRemaining = 13.5
	want.IsMember = true

	ctx := context.Background()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStateRepo_SaveReplacesSnapshot(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewStateRepo(dir)
	if err != nil {
		t.Fatalf("NewStateRepo: %v", err)
	}

	ctx := context.Background()
	first := game.NewDefaultState()
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	second := game.NewDefaultState()
	second.Location = "Falador"
	second.QuestPoints = 1
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Location != "Falador" || got.QuestPoints != 1 {
		t.Fatalf("Load = %q qp=%d, want latest snapshot", got.Location, got.QuestPoints)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != stateFileName {
		t.Fatalf("dir entries = %v, want only %s (no temp files left)", entries, stateFileName)
	}
}

func TestStateRepo_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewStateRepo(dir)
	if err != nil {
		t.Fatalf("NewStateRepo: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err = repo.Load(context.Background())
	if err == nil {
		t.Fatal("Load of corrupt file succeeded")
	}
	if errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Load = %v, corrupt file must not read as missing", err)
	}
}

func TestProgressRepo_RoundTrip(t *testing.T) {
	repo, err := NewProgressRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewProgressRepo: %v", err)
	}

	ctx := context.Background()
	if _, err := repo.Load(ctx); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Load on empty dir = %v, want ports.ErrNotFound", err)
	}

	want := game.TutorialProgress{
		CurrentStep:    "quest_guide",
		ObjectiveIndex: 2,
		CompletedSteps: []string{"survival_expert_intro", "master_chef"},
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReposShareDataDir(t *testing.T) {
	dir := t.TempDir()
	states, err := NewStateRepo(dir)
	if err != nil {
		t.Fatalf("NewStateRepo: %v", err)
	}
	progress, err := NewProgressRepo(dir)
	if err != nil {
		t.Fatalf("NewProgressRepo: %v", err)
	}

	ctx := context.Background()
	if err := states.Save(ctx, game.NewDefaultState()); err != nil {
		t.Fatalf("Save state: %v", err)
	}
	if err := progress.Save(ctx, game.NewTutorialProgress()); err != nil {
		t.Fatalf("Save progress: %v", err)
	}

	for _, name := range []string{stateFileName, progressFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
}
