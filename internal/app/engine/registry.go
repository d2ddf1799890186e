package engine

import (
	"context"

	"runemind/internal/domain/game"
)

// categoryHandler executes one chosen action. Handlers report failure
// through Result.Success, never by aborting the cycle.
type categoryHandler interface {
	Execute(ctx context.Context, e *Engine, cyc *cycleContext) game.Result
}

// handlerRegistry is the closed dispatch table over the action category
// enum. game.ParseCategory guarantees no candidate carries a category
// outside this table.
func handlerRegistry() map[game.ActionCategory]categoryHandler {
	return map[game.ActionCategory]categoryHandler{
		game.CategoryExploration: explorationHandler{},
		game.CategoryQuesting:    questingHandler{},
		game.CategorySkilling:    skillingHandler{},
		game.CategoryMembership:  membershipHandler{},
	}
}
