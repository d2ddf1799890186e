package engine

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"runemind/internal/app/ports"
	"runemind/internal/domain/game"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

type stubStates struct {
	state    *game.PlayerState
	saves    int
	failSave bool
}

var _ ports.StateStore = (*stubStates)(nil)

func (s *stubStates) Load(_ context.Context) (game.PlayerState, error) {
	if s.state == nil {
		return game.PlayerState{}, ports.ErrNotFound
	}
	return s.state.Clone(), nil
}

func (s *stubStates) Save(_ context.Context, state game.PlayerState) error {
	if s.failSave {
		return errors.New("disk full")
	}
	c := state.Clone()
	s.state = &c
	s.saves++
	return nil
}

type stubProgress struct {
	progress *game.TutorialProgress
	saves    int
}

var _ ports.ProgressStore = (*stubProgress)(nil)

func (s *stubProgress) Load(_ context.Context) (game.TutorialProgress, error) {
	if s.progress == nil {
		return game.TutorialProgress{}, ports.ErrNotFound
	}
	return *s.progress, nil
}

func (s *stubProgress) Save(_ context.Context, progress game.TutorialProgress) error {
	s.progress = &progress
	s.saves++
	return nil
}

type stubJournal struct {
	records []game.MemoryRecord
	fail    bool
}

var _ ports.MemoryJournal = (*stubJournal)(nil)

func (s *stubJournal) Append(_ context.Context, records []game.MemoryRecord) error {
	if s.fail {
		return errors.New("journal unavailable")
	}
	s.records = append(s.records, records...)
	return nil
}

func (s *stubJournal) ListRecent(_ context.Context, limit int) ([]game.MemoryRecord, error) {
	out := make([]game.MemoryRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

func (s *stubJournal) ListByKind(_ context.Context, kind game.MemoryKind, limit int) ([]game.MemoryRecord, error) {
	out := make([]game.MemoryRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		if s.records[i].Kind == kind {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

func (s *stubJournal) byKind(kind game.MemoryKind) []game.MemoryRecord {
	var out []game.MemoryRecord
	for _, r := range s.records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

type stubSkills struct {
	set  game.SkillSet
	fail bool
}

var _ ports.SkillsStore = (*stubSkills)(nil)

func newStubSkills() *stubSkills {
	return &stubSkills{set: game.NewSkillSet()}
}

func (s *stubSkills) Snapshot(_ context.Context) (game.SkillSet, error) {
	if s.fail {
		return nil, errors.New("skills unavailable")
	}
	return s.set.Clone(), nil
}

func (s *stubSkills) AddXP(_ context.Context, skill string, xp int) (int, error) {
	if s.fail {
		return 0, errors.New("skills unavailable")
	}
	return s.set.AddXP(skill, xp), nil
}

type stubInventory struct {
	items  map[string]int
	addErr error
}

var _ ports.InventoryStore = (*stubInventory)(nil)

func newStubInventory() *stubInventory {
	return &stubInventory{items: map[string]int{}}
}

func (s *stubInventory) Items(_ context.Context) (map[string]int, error) {
	out := make(map[string]int, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out, nil
}

func (s *stubInventory) Count(_ context.Context, item string) (int, error) {
	return s.items[item], nil
}

func (s *stubInventory) Add(_ context.Context, item string, qty int) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.items[item] += qty
	return nil
}

func (s *stubInventory) Remove(_ context.Context, item string, qty int) error {
	if s.items[item] < qty {
		return ports.ErrConflict
	}
	s.items[item] -= qty
	return nil
}

type stubKnowledge struct {
	quests  []ports.QuestInfo
	methods map[string][]ports.TrainingMethod
	bars    map[string]game.SkillBar
	hits    []ports.KnowledgeHit
	queries []string
}

var _ ports.KnowledgeBase = (*stubKnowledge)(nil)

func (s *stubKnowledge) Query(_ context.Context, text string, limit int) ([]ports.KnowledgeHit, error) {
	s.queries = append(s.queries, text)
	if len(s.hits) > limit {
		return s.hits[:limit], nil
	}
	return s.hits, nil
}

func (s *stubKnowledge) DangerBar(_ context.Context, location string) (game.SkillBar, bool, error) {
	bar, ok := s.bars[location]
	return bar, ok, nil
}

func (s *stubKnowledge) TrainingMethods(_ context.Context, skill string, _ int) ([]ports.TrainingMethod, error) {
	return s.methods[skill], nil
}

func (s *stubKnowledge) OpenQuests(_ context.Context) ([]ports.QuestInfo, error) {
	return s.quests, nil
}

type stubMetrics struct {
	cycles          map[game.ActionCategory]int
	failures        int
	idles           int
	deaths          int
	persistFailures int
}

var _ ports.CycleMetrics = (*stubMetrics)(nil)

func newStubMetrics() *stubMetrics {
	return &stubMetrics{cycles: map[game.ActionCategory]int{}}
}

func (s *stubMetrics) RecordCycle(category game.ActionCategory, success bool) {
	s.cycles[category]++
	if !success {
		s.failures++
	}
}

func (s *stubMetrics) RecordIdle() { s.idles++ }

func (s *stubMetrics) RecordDeath() { s.deaths++ }

func (s *stubMetrics) RecordPersistFailure() { s.persistFailures++ }

type passTx struct{}

var _ ports.TxManager = passTx{}

func (passTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// harness bundles an engine with its stubs for assertions.
type harness struct {
	engine    *Engine
	states    *stubStates
	progress  *stubProgress
	journal   *stubJournal
	skills    *stubSkills
	inventory *stubInventory
	knowledge *stubKnowledge
	metrics   *stubMetrics
}

// newStubs builds the collaborator set without booting an engine, so
// tests can pre-seed persisted state first.
func newStubs(kb *stubKnowledge) *harness {
	h := &harness{
		states:    &stubStates{},
		progress:  &stubProgress{},
		journal:   &stubJournal{},
		skills:    newStubSkills(),
		inventory: newStubInventory(),
		knowledge: kb,
		metrics:   newStubMetrics(),
	}
	if h.knowledge == nil {
		h.knowledge = &stubKnowledge{}
	}
	return h
}

func (h *harness) boot(t testingT) *harness {
	t.Helper()
	eng, err := New(context.Background(), Params{
		States:    h.states,
		Progress:  h.progress,
		Journal:   h.journal,
		Skills:    h.skills,
		Inventory: h.inventory,
		Knowledge: h.knowledge,
		Metrics:   h.metrics,
		Tx:        passTx{},
		Log:       zap.NewNop(),
		Now:       fixedNow,
		Rand:      rand.New(rand.NewSource(42)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.engine = eng
	return h
}

func newHarness(t testingT, kb *stubKnowledge) *harness {
	t.Helper()
	return newStubs(kb).boot(t)
}

type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

// seedCompletedTutorial persists a finished tutorial cursor so the next
// boot goes straight to the open world.
func (h *harness) seedCompletedTutorial() *harness {
	done := game.TutorialProgress{
		CurrentStep:    "final_gate",
		CompletedSteps: tutorialStepNames(),
		Complete:       true,
	}
	h.progress.progress = &done
	return h
}

func tutorialStepNames() []string {
	names := make([]string, 0, len(game.TutorialSteps))
	for _, s := range game.TutorialSteps {
		names = append(names, s.Name)
	}
	return names
}
