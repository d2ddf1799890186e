package engine

import (
	"context"
	"fmt"

	"runemind/internal/domain/game"
)

type explorationHandler struct{}

// Execute moves the player to the action's destination, unlocking it on
// first visit.
func (explorationHandler) Execute(_ context.Context, e *Engine, cyc *cycleContext) game.Result {
	action := cyc.Decision.Chosen
	if action.Location == "" {
		return game.Result{Success: false, Message: "exploration action has no destination"}
	}
	unlocked := e.state.UnlockArea(action.Location)
	e.state.Location = action.Location
	e.recomputeScore()
	if unlocked {
		cyc.Milestones = append(cyc.Milestones, milestone{
			Kind:    game.MemoryMilestone,
			Content: "Discovered " + action.Location,
			Valence: game.ValenceSatisfaction,
			Tags:    []string{"exploration", action.Location},
		})
		return game.Result{
			Success:      true,
			Message:      fmt.Sprintf("Travelled to %s for the first time", action.Location),
			StateUpdates: map[string]any{"location": action.Location, "unlocked": true},
		}
	}
	return game.Result{
		Success:      true,
		Message:      fmt.Sprintf("Travelled to %s", action.Location),
		StateUpdates: map[string]any{"location": action.Location},
	}
}
