package engine

import (
	"context"
	"fmt"

	"runemind/internal/domain/game"
)

type questingHandler struct{}

// Execute starts the action's quest and moves the player to its start
// point. Completion is observation-driven and happens during perceive.
func (questingHandler) Execute(_ context.Context, e *Engine, cyc *cycleContext) game.Result {
	action := cyc.Decision.Chosen
	if action.Quest == "" {
		return game.Result{Success: true, Message: action.Description}
	}
	if !e.state.StartQuest(action.Quest) {
		return game.Result{Success: false, Message: fmt.Sprintf("quest %q already started or completed", action.Quest)}
	}
	if action.Location != "" {
		e.state.Location = action.Location
	}
	return game.Result{
		Success:      true,
		Message:      fmt.Sprintf("Started quest %s", action.Quest),
		StateUpdates: map[string]any{"quest": action.Quest, "active_quests": len(e.state.ActiveQuests)},
	}
}
