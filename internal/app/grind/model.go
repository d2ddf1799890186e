// Package grind tracks repeated low-probability drop hunts and decides
// when continuing one stops being worth it.
package grind

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"runemind/internal/domain/game"
)

// ErrUnknownGrind reports an update against a target never started.
var ErrUnknownGrind = errors.New("grind: unknown grind")

// Model owns every active Grind entry, keyed by target name. Drop
// simulation draws from the injected source, so a fixed seed replays
// identical outcomes.
type Model struct {
	// Patience overrides the default abandonment multiplier when
	// positive.
	Patience float64

	rng    *rand.Rand
	grinds map[string]*game.Grind
}

// NewModel builds an empty model. A nil source falls back to a
// time-seeded one.
func NewModel(rng *rand.Rand) *Model {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Model{
		rng:    rng,
		grinds: map[string]*game.Grind{},
	}
}

// Start registers a new grind. It reports false when the target is
// already tracked or the rate falls outside (0, 1].
func (m *Model) Start(target, location string, rate float64) bool {
	if target == "" || rate <= 0 || rate > 1 {
		return false
	}
	if _, exists := m.grinds[target]; exists {
		return false
	}
	m.grinds[target] = &game.Grind{
		Target:   target,
		Location: location,
		Rate:     rate,
	}
	return true
}

// Update accumulates attempt and obtained counts for a started grind.
func (m *Model) Update(target string, attemptsDelta, obtainedDelta int) (game.Grind, error) {
	g, ok := m.grinds[target]
	if !ok {
		return game.Grind{}, ErrUnknownGrind
	}
	g.Attempts += attemptsDelta
	if g.Attempts < 0 {
		g.Attempts = 0
	}
	g.Obtained += obtainedDelta
	if g.Obtained < 0 {
		g.Obtained = 0
	}
	return *g, nil
}

// Get returns a copy of the tracked grind, if any.
func (m *Model) Get(target string) (game.Grind, bool) {
	g, ok := m.grinds[target]
	if !ok {
		return game.Grind{}, false
	}
	return *g, true
}

// ShouldContinue reports whether the grind is still worth pursuing:
// nothing obtained yet and attempts below the patience ceiling of
// k/rate expected tries. Unknown targets are not worth continuing.
func (m *Model) ShouldContinue(target string) bool {
	g, ok := m.grinds[target]
	if !ok {
		return false
	}
	if g.Obtained > 0 {
		return false
	}
	return float64(g.Attempts) < m.patience()/g.Rate
}

func (m *Model) patience() float64 {
	if m.Patience > 0 {
		return m.Patience
	}
	return game.GrindPatienceMultiplier
}

// SimulateDrop draws the given number of independent Bernoulli trials
// at the given chance and reports whether at least one succeeded. Pure
// apart from consuming randomness.
func (m *Model) SimulateDrop(chance float64, attempts int) bool {
	if chance <= 0 {
		return false
	}
	for i := 0; i < attempts; i++ {
		if m.rng.Float64() < chance {
			return true
		}
	}
	return false
}

// Remove drops the target from tracking, reporting whether it existed.
func (m *Model) Remove(target string) bool {
	if _, ok := m.grinds[target]; !ok {
		return false
	}
	delete(m.grinds, target)
	return true
}

// Active lists tracked grinds sorted by target name.
func (m *Model) Active() []game.Grind {
	out := make([]game.Grind, 0, len(m.grinds))
	for _, g := range m.grinds {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}

// Luck returns attempts relative to the expected count for the target,
// 0 when unknown.
func (m *Model) Luck(target string) float64 {
	g, ok := m.grinds[target]
	if !ok {
		return 0
	}
	return game.LuckFactor(g.Rate, g.Attempts)
}
