package catalog

import (
	"context"
	"fmt"

	"runemind/internal/domain/game"
)

// Decide generates candidates, filters them against requirements and
// the resilience policy, and keeps the highest priority*confidence
// score. The scan uses a strict greater-than, so equal scores resolve
// to whichever candidate was generated first; with the fixed category
// order that means exploration beats questing beats skilling beats
// membership on ties. A nil Chosen means idle, not failure.
func (u UseCase) Decide(ctx context.Context, state game.PlayerState) (Decision, error) {
	skills, items, err := u.loadCollateral(ctx)
	if err != nil {
		return Decision{}, err
	}
	candidates := u.generate(ctx, state, skills, items)

	decision := Decision{Candidates: candidates}
	var best *game.Action
	bestScore := 0.0
	for i := range candidates {
		action := candidates[i]
		if reason, ok := u.admissible(ctx, state, action, skills, items); !ok {
			decision.Rejected = append(decision.Rejected, RejectedCandidate{
				Action: action,
				Reason: reason,
			})
			continue
		}
		if score := action.Score(); best == nil || score > bestScore {
			best = &candidates[i]
			bestScore = score
		}
	}
	decision.Chosen = best
	return decision, nil
}

// admissible applies the decide-time filters: declared requirements
// against current skills, inventory and gold, then the resilience
// policy for anything bound to a location.
func (u UseCase) admissible(ctx context.Context, state game.PlayerState, action game.Action, skills game.SkillSet, items map[string]int) (string, bool) {
	if !meetsSkills(skills, action.RequiredSkills) {
		return "required skills not met", false
	}
	if !holdsAll(items, action.RequiredItems) {
		return "required items not held", false
	}
	if req := action.Requirements; req != nil {
		if !meetsSkills(skills, req.Skills) {
			return "required skills not met", false
		}
		for item, count := range req.Items {
			if items[item] < count {
				return fmt.Sprintf("need %dx %s", count, item), false
			}
		}
		if state.Wealth.Currency < req.Coins {
			return fmt.Sprintf("need %d coins", req.Coins), false
		}
	}
	if action.Location != "" && u.Resilience != nil {
		if ok, reason := u.Resilience.CanRetry(ctx, action.Location, skills, u.now()); !ok {
			return reason, false
		}
	}
	return "", true
}
