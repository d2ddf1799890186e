package engine

import (
	"context"
	"errors"
	"testing"

	"runemind/internal/domain/game"
)

func TestNew_MissingCollaborator(t *testing.T) {
	_, err := New(context.Background(), Params{})
	if !errors.Is(err, ErrMissingCollaborator) {
		t.Fatalf("New() error = %v, want ErrMissingCollaborator", err)
	}
}

func TestNew_FreshAccountDefaults(t *testing.T) {
	h := newHarness(t, nil)

	state := h.engine.State()
	if state.Location != "Lumbridge" {
		t.Fatalf("Location = %q, want Lumbridge", state.Location)
	}
	if len(state.UnlockedAreas) != 3 {
		t.Fatalf("UnlockedAreas = %v, want the three starting areas", state.UnlockedAreas)
	}
	progress := h.engine.TutorialProgress()
	if progress.CurrentStep != game.FirstTutorialStep {
		t.Fatalf("CurrentStep = %q, want %q", progress.CurrentStep, game.FirstTutorialStep)
	}
	if progress.Complete {
		t.Fatal("fresh tutorial reported complete")
	}
	want := game.ExploreLocationWeight * (3.0 / 20.0)
	if got := h.engine.ExplorationScore(); got != want {
		t.Fatalf("ExplorationScore = %v, want %v", got, want)
	}
}

func TestNew_RestoresPersistedState(t *testing.T) {
	h := newStubs(nil).seedCompletedTutorial()
	seeded := game.NewDefaultState()
	seeded.Location = "Varrock"
	seeded.QuestPoints = 3
	seeded.UnlockArea("Varrock")
	h.states.state = &seeded
	h.boot(t)

	state := h.engine.State()
	if state.Location != "Varrock" {
		t.Fatalf("Location = %q, want Varrock", state.Location)
	}
	if state.QuestPoints != 3 {
		t.Fatalf("QuestPoints = %d, want 3", state.QuestPoints)
	}
	if !h.engine.TutorialProgress().Complete {
		t.Fatal("restored tutorial progress lost completion")
	}
}

func TestCycle_PersistsEveryCycle(t *testing.T) {
	h := newHarness(t, nil)

	res, err := h.engine.Cycle(context.Background(), Snapshot{})
	if err != nil {
		t.Fatalf("Cycle() error = %v", err)
	}
	if !res.Persisted {
		t.Fatal("cycle did not persist")
	}
	if h.states.saves != 1 {
		t.Fatalf("state saves = %d, want 1", h.states.saves)
	}
	if h.progress.saves != 1 {
		t.Fatalf("progress saves = %d, want 1", h.progress.saves)
	}
	if res.Suggestion != "Talk to the Survival Expert" {
		t.Fatalf("Suggestion = %q, want the first tutorial objective", res.Suggestion)
	}
}

func TestCycle_PersistFailureIsNotFatal(t *testing.T) {
	h := newHarness(t, nil)
	h.states.failSave = true

	res, err := h.engine.Cycle(context.Background(), Snapshot{})
	if err != nil {
		t.Fatalf("Cycle() error = %v, persistence failures must not abort", err)
	}
	if res.Persisted {
		t.Fatal("result claims persisted despite save failure")
	}
	if res.PersistErr == "" {
		t.Fatal("PersistErr not surfaced")
	}
	if h.metrics.persistFailures != 1 {
		t.Fatalf("persist failure metric = %d, want 1", h.metrics.persistFailures)
	}
	if res.Suggestion == "" {
		t.Fatal("cycle output lost on persistence failure")
	}
}

func TestCycle_DecideErrorAborts(t *testing.T) {
	h := newStubs(nil).seedCompletedTutorial().boot(t)
	h.skills.fail = true

	_, err := h.engine.Cycle(context.Background(), Snapshot{})
	if err == nil {
		t.Fatal("Cycle() expected error when the skills store is down")
	}
}

func TestCycle_RefreshesTotalsBeforePersist(t *testing.T) {
	h := newStubs(nil).seedCompletedTutorial().boot(t)
	h.skills.set.AddXP("attack", game.XPForLevel(2))

	if _, err := h.engine.Cycle(context.Background(), Snapshot{}); err != nil {
		t.Fatalf("Cycle() error = %v", err)
	}
	if h.states.state == nil {
		t.Fatal("no state persisted")
	}
	if h.states.state.TotalLevel != 33 {
		t.Fatalf("TotalLevel = %d, want 33 after attack reaches 2", h.states.state.TotalLevel)
	}
}

func TestClose_FlushesState(t *testing.T) {
	h := newHarness(t, nil)

	if err := h.engine.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if h.states.saves != 1 {
		t.Fatalf("state saves = %d, want 1 on close", h.states.saves)
	}
	if h.progress.saves != 1 {
		t.Fatalf("progress saves = %d, want 1 on close", h.progress.saves)
	}
}

func TestClose_ReportsPersistError(t *testing.T) {
	h := newHarness(t, nil)
	h.states.failSave = true

	if err := h.engine.Close(context.Background()); err == nil {
		t.Fatal("Close() expected error when the flush fails")
	}
}
