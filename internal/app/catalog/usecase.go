// Package catalog generates candidate actions from the current player
// state and picks the one worth doing next.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"runemind/internal/app/ports"
	"runemind/internal/app/resilience"
	"runemind/internal/domain/game"
	"runemind/internal/domain/world"
)

type UseCase struct {
	Knowledge  ports.KnowledgeBase
	Skills     ports.SkillsStore
	Inventory  ports.InventoryStore
	Resilience *resilience.Policy
	Now        func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// GetAvailableActions generates candidates in a fixed category order:
// exploration, then questing, then skilling, then membership. The
// order matters because score ties keep the earliest candidate.
func (u UseCase) GetAvailableActions(ctx context.Context, state game.PlayerState) ([]game.Action, error) {
	skills, items, err := u.loadCollateral(ctx)
	if err != nil {
		return nil, err
	}
	return u.generate(ctx, state, skills, items), nil
}

func (u UseCase) loadCollateral(ctx context.Context) (game.SkillSet, map[string]int, error) {
	skills, err := u.Skills.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: snapshot skills: %w", err)
	}
	items, err := u.Inventory.Items(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: snapshot inventory: %w", err)
	}
	return skills, items, nil
}

func (u UseCase) generate(ctx context.Context, state game.PlayerState, skills game.SkillSet, items map[string]int) []game.Action {
	var actions []game.Action
	actions = append(actions, u.explorationActions(ctx, state, skills)...)
	actions = append(actions, u.questActions(ctx, state, skills, items)...)
	actions = append(actions, u.skillActions(ctx, state, skills, items)...)
	actions = append(actions, u.membershipActions(ctx, state)...)
	return actions
}

// explorationActions proposes one travel action per undiscovered
// neighboring area the resilience policy does not veto.
func (u UseCase) explorationActions(ctx context.Context, state game.PlayerState, skills game.SkillSet) []game.Action {
	var out []game.Action
	for _, area := range world.Neighbors(state.Location) {
		if state.HasUnlockedArea(area) {
			continue
		}
		if u.Resilience != nil {
			if ok, _ := u.Resilience.CanRetry(ctx, area, skills, u.now()); !ok {
				continue
			}
		}
		out = append(out, game.Action{
			Name:            actionName("explore", area),
			Description:     fmt.Sprintf("Travel to %s to discover new content", area),
			Category:        game.CategoryExploration,
			Location:        area,
			ExpectedRewards: map[string]string{"discovery": area},
			Risks:           []string{"getting lost"},
			Reasoning:       fmt.Sprintf("I should explore %s to unlock new content", area),
			Priority:        game.PriorityExploration,
			Confidence:      game.ConfidenceExploration,
		})
	}
	return out
}

// questActions proposes starting each knowledge-base quest whose
// prerequisites are already met and which is neither active nor done.
func (u UseCase) questActions(ctx context.Context, state game.PlayerState, skills game.SkillSet, items map[string]int) []game.Action {
	if u.Knowledge == nil {
		return nil
	}
	quests, err := u.Knowledge.OpenQuests(ctx)
	if err != nil {
		return nil
	}
	var out []game.Action
	for _, q := range quests {
		if containsString(state.CompletedQuests, q.Name) || containsString(state.ActiveQuests, q.Name) {
			continue
		}
		if !meetsSkills(skills, q.RequiredSkills) || !holdsAll(items, q.RequiredItems) {
			continue
		}
		out = append(out, game.Action{
			Name:            actionName("start_quest", q.Name),
			Description:     fmt.Sprintf("Start the %s quest", q.Name),
			Category:        game.CategoryQuesting,
			Location:        q.Location,
			RequiredItems:   q.RequiredItems,
			RequiredSkills:  q.RequiredSkills,
			ExpectedRewards: map[string]string{"quest_points": fmt.Sprintf("%d", q.QuestPoints)},
			Reasoning:       fmt.Sprintf("I should start the %s quest to earn quest points", q.Name),
			Priority:        game.PriorityQuesting,
			Confidence:      game.ConfidenceQuesting,
			Quest:           q.Name,
		})
	}
	return out
}

// skillActions proposes one training action per trainable skill, using
// the first knowledge-base method for the current level band whose
// item requirements the agent already satisfies.
func (u UseCase) skillActions(ctx context.Context, state game.PlayerState, skills game.SkillSet, items map[string]int) []game.Action {
	if u.Knowledge == nil {
		return nil
	}
	var out []game.Action
	for _, skill := range game.SkillNames {
		level := skills.Level(skill)
		if level >= game.MaxTrainableLevel {
			continue
		}
		methods, err := u.Knowledge.TrainingMethods(ctx, skill, level)
		if err != nil {
			continue
		}
		for _, method := range methods {
			if method.MinLevel > level || !holdsAll(items, method.RequiredItems) {
				continue
			}
			out = append(out, game.Action{
				Name:            actionName("train", skill),
				Description:     fmt.Sprintf("Train %s using %s", skill, method.Method),
				Category:        game.CategorySkilling,
				Location:        method.Location,
				RequiredItems:   method.RequiredItems,
				RequiredSkills:  map[string]int{skill: method.MinLevel},
				ExpectedRewards: map[string]string{skill: "experience"},
				Reasoning:       fmt.Sprintf("I should train %s to improve my abilities", skill),
				Priority:        game.PrioritySkilling,
				Confidence:      game.ConfidenceSkilling,
				XPGain:          map[string]int{skill: method.XPPer},
				Drop:            method.Drop,
			})
			break
		}
	}
	return out
}

// membershipActions proposes the economy moves: a status check once
// the account has any membership history, buying a bond gated by the
// economy rules, and redeeming gated on a held bond.
func (u UseCase) membershipActions(ctx context.Context, state game.PlayerState) []game.Action {
	var out []game.Action
	if state.IsMember || state.MembershipDaysRemaining > 0 || state.LastMembershipCheck != nil {
		out = append(out, game.Action{
			Name:        "check_membership",
			Description: "Check membership status",
			Category:    game.CategoryMembership,
			Reasoning:   "I should check my membership status",
			Priority:    game.PriorityCheckMember,
			Confidence:  game.ConfidenceCheckMember,
		})
	}

	if state.CanBuyBond(u.now()) {
		out = append(out, game.Action{
			Name:        "buy_bond",
			Description: "Buy a bond from the Grand Exchange",
			Category:    game.CategoryMembership,
			Location:    world.GrandExchange,
			Requirements: &game.ActionRequirements{
				Coins: game.BondCostCoins,
			},
			Reasoning:  "I need to buy a bond to become a member",
			Priority:   game.PriorityBuyBond,
			Confidence: game.ConfidenceBuyBond,
		})
	}

	if held, err := u.Inventory.Count(ctx, game.BondItemName); err == nil && held > 0 {
		out = append(out, game.Action{
			Name:          "redeem_bond",
			Description:   "Redeem a bond for membership",
			Category:      game.CategoryMembership,
			RequiredItems: []string{game.BondItemName},
			Reasoning:     "I can redeem my bond to extend membership",
			Priority:      game.PriorityRedeemBond,
			Confidence:    game.ConfidenceRedeemBond,
		})
	}
	return out
}

func actionName(prefix, subject string) string {
	cleaned := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(subject)), " ", "_")
	cleaned = strings.ReplaceAll(cleaned, "'", "")
	return prefix + "_" + cleaned
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func meetsSkills(skills game.SkillSet, required map[string]int) bool {
	for skill, level := range required {
		if skills.Level(skill) < level {
			return false
		}
	}
	return true
}

func holdsAll(items map[string]int, required []string) bool {
	for _, item := range required {
		if items[item] <= 0 {
			return false
		}
	}
	return true
}
