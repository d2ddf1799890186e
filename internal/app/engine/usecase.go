package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"runemind/internal/app/catalog"
	"runemind/internal/app/grind"
	"runemind/internal/app/ports"
	"runemind/internal/app/resilience"
	"runemind/internal/app/tutorial"
	"runemind/internal/domain/game"
	"runemind/internal/domain/world"
)

var ErrMissingCollaborator = errors.New("engine: missing collaborator")

// Params wires an Engine. States, Progress, Journal, Skills, Inventory,
// Knowledge and Tx are required; Log defaults to zap.NewNop, Now to
// time.Now, Rand to a time-seeded source. A nil Metrics disables
// counters. Resilience and Grinds accept pre-tuned policies; left nil,
// default-tuned ones are built.
type Params struct {
	States     ports.StateStore
	Progress   ports.ProgressStore
	Journal    ports.MemoryJournal
	Skills     ports.SkillsStore
	Inventory  ports.InventoryStore
	Knowledge  ports.KnowledgeBase
	Metrics    ports.CycleMetrics
	Tx         ports.TxManager
	Resilience *resilience.Policy
	Grinds     *grind.Model
	Log        *zap.Logger
	Now        func() time.Time
	Rand       *rand.Rand
}

// Engine runs the perceive/decide/act/reflect/persist loop. It is the
// only owner of the player aggregate: constructed once at process start,
// flushed with Close at shutdown, and every mutation happens inside a
// Cycle call. Cycles are serialized by the internal mutex.
type Engine struct {
	mu sync.Mutex

	states    ports.StateStore
	progress  ports.ProgressStore
	journal   ports.MemoryJournal
	skills    ports.SkillsStore
	inventory ports.InventoryStore
	knowledge ports.KnowledgeBase
	metrics   ports.CycleMetrics
	tx        ports.TxManager
	log       *zap.Logger
	now       func() time.Time

	catalog    catalog.UseCase
	tutorial   *tutorial.Machine
	grinds     *grind.Model
	resilience *resilience.Policy
	handlers   map[game.ActionCategory]categoryHandler

	state      game.PlayerState
	seenItems  map[string]struct{}
	seenSkills map[string]struct{}
	score      float64
}

// New loads the persisted aggregate (or starts a fresh account) and
// assembles the collaborator graph.
func New(ctx context.Context, p Params) (*Engine, error) {
	if p.States == nil || p.Progress == nil || p.Journal == nil || p.Skills == nil ||
		p.Inventory == nil || p.Knowledge == nil || p.Tx == nil {
		return nil, ErrMissingCollaborator
	}
	if p.Log == nil {
		p.Log = zap.NewNop()
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.Resilience == nil {
		p.Resilience = resilience.NewPolicy(p.Knowledge)
	}
	if p.Grinds == nil {
		p.Grinds = grind.NewModel(p.Rand)
	}

	state, err := p.States.Load(ctx)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		state = game.NewDefaultState()
	case err != nil:
		return nil, fmt.Errorf("engine: load state: %w", err)
	}
	state.Normalize()

	var machine *tutorial.Machine
	progress, err := p.Progress.Load(ctx)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		machine = tutorial.NewMachine()
	case err != nil:
		return nil, fmt.Errorf("engine: load tutorial progress: %w", err)
	default:
		machine = tutorial.Restore(progress)
	}

	e := &Engine{
		states:     p.States,
		progress:   p.Progress,
		journal:    p.Journal,
		skills:     p.Skills,
		inventory:  p.Inventory,
		knowledge:  p.Knowledge,
		metrics:    p.Metrics,
		tx:         p.Tx,
		log:        p.Log,
		now:        p.Now,
		tutorial:   machine,
		grinds:     p.Grinds,
		resilience: p.Resilience,
		handlers:   handlerRegistry(),
		state:      state,
		seenItems:  make(map[string]struct{}),
		seenSkills: make(map[string]struct{}),
	}
	e.catalog = catalog.UseCase{
		Knowledge:  p.Knowledge,
		Skills:     p.Skills,
		Inventory:  p.Inventory,
		Resilience: e.resilience,
		Now:        e.now,
	}
	e.recomputeScore()
	return e, nil
}

type cycleContext struct {
	NowAt      time.Time
	Snap       Snapshot
	Perception Perception
	Suggestion string
	Decision   catalog.Decision
	Result     *game.Result
	Milestones []milestone
	Persisted  bool
	PersistErr error
}

type milestone struct {
	Kind    game.MemoryKind
	Content string
	Valence game.Valence
	Tags    []string
	Details map[string]any
}

// Cycle runs one full pass over a snapshot. Infrastructure read errors
// abort the cycle; execution and persistence failures do not.
func (e *Engine) Cycle(ctx context.Context, snap Snapshot) (CycleResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cyc := cycleContext{NowAt: e.now(), Snap: snap}
	e.perceive(ctx, &cyc)
	if cyc.Perception.Died {
		// A death snapshot ends the pass at the respawn point; the
		// next snapshot decides what to do about it.
		cyc.Suggestion = fmt.Sprintf("Respawned in %s. Be more careful out there.", e.state.Location)
	} else {
		if err := e.decide(ctx, &cyc); err != nil {
			return CycleResult{}, err
		}
		e.act(ctx, &cyc)
	}
	e.reflect(ctx, &cyc)
	e.persist(ctx, &cyc)
	return e.buildResult(&cyc), nil
}

// Close flushes the aggregate one last time. The engine must not be
// cycled after Close.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cyc := cycleContext{NowAt: e.now()}
	e.persist(ctx, &cyc)
	return cyc.PersistErr
}

func (e *Engine) decide(ctx context.Context, cyc *cycleContext) error {
	if !e.tutorial.Complete() {
		e.decideTutorial(ctx, cyc)
		return nil
	}
	d, err := e.catalog.Decide(ctx, e.state)
	if err != nil {
		return err
	}
	cyc.Decision = d
	if d.Chosen != nil {
		cyc.Suggestion = d.Chosen.Description
	}
	return nil
}

// decideTutorial drives the scripted island sequence. Objective matching
// already ran during perceive; here a fully satisfied step is closed out,
// its rewards granted, and the next instruction becomes the suggestion.
func (e *Engine) decideTutorial(ctx context.Context, cyc *cycleContext) {
	if e.tutorial.StepReady() && e.holdsStepItems(ctx) {
		step, err := e.tutorial.CompleteCurrentStep()
		if err == nil {
			e.grantStepRewards(ctx, cyc, step)
		}
	}
	if e.tutorial.Complete() {
		e.leaveTutorialIsland(cyc)
		return
	}
	if step, ok := e.tutorial.CurrentStep(); ok && step.Location != "" {
		e.state.Location = step.Location
	}
	cyc.Suggestion = e.tutorial.NextAction()
}

// holdsStepItems verifies the current step's required items are in the
// inventory. The natural flow always satisfies this: each step's rewards
// include what the next sections need.
func (e *Engine) holdsStepItems(ctx context.Context) bool {
	step, ok := e.tutorial.CurrentStep()
	if !ok {
		return false
	}
	for _, item := range step.RequiredItems {
		n, err := e.inventory.Count(ctx, item)
		if err != nil || n <= 0 {
			return false
		}
	}
	return true
}

// grantStepRewards applies a completed step's payouts. Two reward names
// are not skills: quest_points credits the aggregate counter and coins
// credit the coin purse.
func (e *Engine) grantStepRewards(ctx context.Context, cyc *cycleContext, step game.TutorialStep) {
	for skill, xp := range step.XPRewards {
		if skill == "quest_points" {
			e.state.QuestPoints += xp
			continue
		}
		if _, err := e.skills.AddXP(ctx, skill, xp); err != nil {
			e.log.Warn("tutorial xp reward failed", zap.String("skill", skill), zap.Error(err))
		}
	}
	for item, qty := range step.ItemRewards {
		if item == "coins" {
			e.state.Wealth.Currency += int64(qty)
			continue
		}
		if err := e.inventory.Add(ctx, item, qty); err != nil {
			e.log.Warn("tutorial item reward failed", zap.String("item", item), zap.Error(err))
		}
	}
	cyc.Milestones = append(cyc.Milestones, milestone{
		Kind:    game.MemoryMilestone,
		Content: fmt.Sprintf("Completed tutorial section with %s", step.Instructor),
		Valence: game.ValenceSatisfaction,
		Tags:    []string{"tutorial", step.Name},
	})
}

func (e *Engine) leaveTutorialIsland(cyc *cycleContext) {
	if e.state.AddAchievement("Completed Tutorial Island") {
		e.state.Location = world.Respawn
		e.state.UnlockArea(world.Respawn)
		cyc.Suggestion = "Congratulations! You have completed the Tutorial Island!"
		cyc.Milestones = append(cyc.Milestones, milestone{
			Kind:    game.MemoryMilestone,
			Content: "Completed Tutorial Island and arrived in Lumbridge",
			Valence: game.ValenceSatisfaction,
			Tags:    []string{"tutorial"},
		})
	}
}

func (e *Engine) act(ctx context.Context, cyc *cycleContext) {
	chosen := cyc.Decision.Chosen
	if chosen == nil {
		if e.tutorial.Complete() && e.metrics != nil {
			e.metrics.RecordIdle()
		}
		return
	}
	handler, ok := e.handlers[chosen.Category]
	if !ok {
		cyc.Result = &game.Result{Success: false, Message: fmt.Sprintf("no handler for category %q", chosen.Category)}
		return
	}
	res := handler.Execute(ctx, e, cyc)
	cyc.Result = &res
}

func (e *Engine) buildResult(cyc *cycleContext) CycleResult {
	return CycleResult{
		Suggestion:       cyc.Suggestion,
		Perception:       cyc.Perception,
		Action:           cyc.Decision.Chosen,
		Result:           cyc.Result,
		Rejected:         cyc.Decision.Rejected,
		ExplorationScore: e.score,
		TutorialComplete: e.tutorial.Complete(),
		Persisted:        cyc.Persisted,
		PersistErr:       errString(cyc.PersistErr),
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// State returns a copy of the player aggregate for read-side callers.
func (e *Engine) State() game.PlayerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// TutorialProgress returns a copy of the tutorial cursor.
func (e *Engine) TutorialProgress() game.TutorialProgress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tutorial.Progress()
}

// ExplorationScore reports the current discovery heuristic in [0,1].
func (e *Engine) ExplorationScore() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// ActiveGrinds lists tracked drop grinds sorted by target.
func (e *Engine) ActiveGrinds() []game.Grind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grinds.Active()
}

// ResilienceRecords snapshots the per-location failure history.
func (e *Engine) ResilienceRecords() map[string]game.ResilienceRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resilience.Records()
}
