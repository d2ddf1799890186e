package engine

import (
	"context"
	"fmt"

	"runemind/internal/domain/game"
	"runemind/internal/domain/world"
)

type membershipHandler struct{}

// Execute runs the bond economy actions. The bond item lives in the
// inventory store; the coin balance and timers live on the aggregate.
func (membershipHandler) Execute(ctx context.Context, e *Engine, cyc *cycleContext) game.Result {
	action := cyc.Decision.Chosen
	switch action.Name {
	case "check_membership":
		return e.checkMembership(cyc)
	case "buy_bond":
		return e.buyBond(ctx, cyc)
	case "redeem_bond":
		return e.redeemBond(ctx, cyc)
	}
	return game.Result{Success: false, Message: fmt.Sprintf("unknown membership action %q", action.Name)}
}

func (e *Engine) checkMembership(cyc *cycleContext) game.Result {
	changed := e.state.CheckMembership(cyc.NowAt)
	status := "free to play"
	if e.state.IsMember {
		status = fmt.Sprintf("member, %.1f days remaining", e.state.MembershipDaysRemaining)
	}
	if !changed {
		return game.Result{Success: true, Message: fmt.Sprintf("Membership checked recently: %s", status)}
	}
	return game.Result{
		Success:      true,
		Message:      fmt.Sprintf("Membership status: %s", status),
		StateUpdates: map[string]any{"is_member": e.state.IsMember, "days_remaining": e.state.MembershipDaysRemaining},
	}
}

func (e *Engine) buyBond(ctx context.Context, cyc *cycleContext) game.Result {
	if !e.state.CanBuyBond(cyc.NowAt) {
		return game.Result{Success: false, Message: "cannot buy a bond right now"}
	}
	// Bank the bond before any coins move: a failed add leaves the
	// purse and the purchase cooldown untouched.
	if err := e.inventory.Add(ctx, game.BondItemName, 1); err != nil {
		return game.Result{Success: false, Message: fmt.Sprintf("bond purchase not banked: %v", err)}
	}
	e.state.ApplyBondPurchase(cyc.NowAt)
	e.state.Location = world.GrandExchange
	cyc.Milestones = append(cyc.Milestones, milestone{
		Kind:    game.MemoryMilestone,
		Content: fmt.Sprintf("Bought a bond for %d coins", game.BondCostCoins),
		Valence: game.ValenceSatisfaction,
		Tags:    []string{"economy", "bond"},
	})
	return game.Result{
		Success:      true,
		Message:      fmt.Sprintf("Bought a bond for %d coins", game.BondCostCoins),
		StateUpdates: map[string]any{"coins": e.state.Wealth.Currency},
	}
}

func (e *Engine) redeemBond(ctx context.Context, cyc *cycleContext) game.Result {
	if err := e.inventory.Remove(ctx, game.BondItemName, 1); err != nil {
		return game.Result{Success: false, Message: "no bond to redeem"}
	}
	e.state.ApplyBondRedemption()
	cyc.Milestones = append(cyc.Milestones, milestone{
		Kind:    game.MemoryMilestone,
		Content: fmt.Sprintf("Redeemed a bond for %.0f days of membership", game.BondMembershipDays),
		Valence: game.ValenceSatisfaction,
		Tags:    []string{"economy", "bond"},
	})
	return game.Result{
		Success:      true,
		Message:      fmt.Sprintf("Redeemed a bond, %.1f membership days remaining", e.state.MembershipDaysRemaining),
		StateUpdates: map[string]any{"is_member": e.state.IsMember, "days_remaining": e.state.MembershipDaysRemaining},
	}
}
