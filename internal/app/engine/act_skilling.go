package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"runemind/internal/domain/game"
)

type skillingHandler struct{}

// Execute applies the action's XP and item effects through the
// collaborator stores, then runs one drop attempt when the action grinds
// for a rare item.
func (skillingHandler) Execute(ctx context.Context, e *Engine, cyc *cycleContext) game.Result {
	action := cyc.Decision.Chosen
	updates := map[string]any{}

	for item, qty := range action.ItemCost {
		if err := e.inventory.Remove(ctx, item, qty); err != nil {
			return game.Result{Success: false, Message: fmt.Sprintf("missing %dx %s", qty, item)}
		}
	}

	var gains []string
	for _, skill := range sortedKeys(action.XPGain) {
		xp := action.XPGain[skill]
		levels, err := e.skills.AddXP(ctx, skill, xp)
		if err != nil {
			return game.Result{Success: false, Message: fmt.Sprintf("training %s failed: %v", skill, err)}
		}
		gains = append(gains, fmt.Sprintf("+%d %s xp", xp, skill))
		if levels > 0 {
			e.recordLevelUp(ctx, cyc, skill)
		}
	}

	for item, qty := range action.ItemGain {
		if err := e.inventory.Add(ctx, item, qty); err != nil {
			return game.Result{Success: false, Message: fmt.Sprintf("could not keep %dx %s: %v", qty, item, err)}
		}
		updates[item] = qty
	}

	if action.Location != "" {
		e.state.Location = action.Location
	}

	message := action.Description
	if len(gains) > 0 {
		message = fmt.Sprintf("%s (%s)", action.Description, strings.Join(gains, ", "))
	}

	if action.Drop != nil {
		message = fmt.Sprintf("%s. %s", message, e.rollDrop(ctx, cyc, action))
	}

	return game.Result{Success: true, Message: message, StateUpdates: updates}
}

// rollDrop runs one Bernoulli attempt against the action's drop target
// and keeps the grind bookkeeping consistent: counters advance every
// attempt, a hit banks the item, and a fruitless grind past the patience
// ceiling is abandoned.
func (e *Engine) rollDrop(ctx context.Context, cyc *cycleContext, action *game.Action) string {
	target := action.Drop.Item
	if _, ok := e.grinds.Get(target); !ok {
		if !e.grinds.Start(target, action.Location, action.Drop.Rate) {
			return fmt.Sprintf("cannot track drops for %s", target)
		}
		e.state.AddGrind(target)
	}

	if e.grinds.SimulateDrop(action.Drop.Rate, 1) {
		g, _ := e.grinds.Update(target, 1, 1)
		if err := e.inventory.Add(ctx, target, 1); err != nil {
			e.log.Warn("drop not banked", zap.String("item", target), zap.Error(err))
		}
		e.state.RemoveGrind(target)
		e.grinds.Remove(target)
		cyc.Perception.DropObtained = target
		cyc.Milestones = append(cyc.Milestones, milestone{
			Kind:    game.MemoryMilestone,
			Content: fmt.Sprintf("Finally obtained %s after %d attempts", target, g.Attempts),
			Valence: game.ValenceSatisfaction,
			Tags:    []string{"drop", target},
			Details: map[string]any{"attempts": g.Attempts, "rate": action.Drop.Rate},
		})
		return fmt.Sprintf("Obtained %s", target)
	}

	g, _ := e.grinds.Update(target, 1, 0)
	if !e.grinds.ShouldContinue(target) {
		e.grinds.Remove(target)
		e.state.RemoveGrind(target)
		cyc.Milestones = append(cyc.Milestones, milestone{
			Kind:    game.MemoryDecision,
			Content: fmt.Sprintf("Abandoned the grind for %s after %d dry attempts", target, g.Attempts),
			Valence: game.ValenceDisappointment,
			Tags:    []string{"drop", target},
			Details: map[string]any{"attempts": g.Attempts, "rate": action.Drop.Rate},
		})
		return fmt.Sprintf("No %s after %d attempts, moving on", target, g.Attempts)
	}
	return fmt.Sprintf("No %s yet (%d attempts)", target, g.Attempts)
}

func (e *Engine) recordLevelUp(ctx context.Context, cyc *cycleContext, skill string) {
	level := 0
	if snap, err := e.skills.Snapshot(ctx); err == nil {
		level = snap.Level(skill)
	}
	content := fmt.Sprintf("Levelled up %s", skill)
	if level > 0 {
		content = fmt.Sprintf("Reached %s level %d", skill, level)
	}
	cyc.Milestones = append(cyc.Milestones, milestone{
		Kind:    game.MemoryMilestone,
		Content: content,
		Valence: game.ValenceSatisfaction,
		Tags:    []string{"level", skill},
	})
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
