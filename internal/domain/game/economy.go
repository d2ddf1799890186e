package game

import "time"

// CheckMembership applies real-time decay to the membership counter:
// elapsed hours since the last check, converted to days, subtracted and
// floored at zero. Re-checks inside MembershipCheckMinGap are no-ops. The
// return reports whether anything changed.
func (s *PlayerState) CheckMembership(now time.Time) bool {
	if s.LastMembershipCheck == nil {
		t := now
		s.LastMembershipCheck = &t
		s.IsMember = s.MembershipDaysRemaining > 0
		return true
	}
	elapsed := now.Sub(*s.LastMembershipCheck)
	if elapsed < MembershipCheckMinGap {
		return false
	}
	days := elapsed.Hours() / 24
	s.MembershipDaysRemaining -= days
	if s.MembershipDaysRemaining < 0 {
		s.MembershipDaysRemaining = 0
	}
	s.IsMember = s.MembershipDaysRemaining > 0
	t := now
	s.LastMembershipCheck = &t
	return true
}

// CanBuyBond gates the purchase: free-to-play only, funds on hand, and the
// purchase cooldown elapsed.
func (s *PlayerState) CanBuyBond(now time.Time) bool {
	if s.IsMember {
		return false
	}
	if s.Wealth.Currency < BondCostCoins {
		return false
	}
	if s.LastBondPurchase != nil && now.Sub(*s.LastBondPurchase) < BondCooldown {
		return false
	}
	return true
}

// ApplyBondPurchase debits the bond cost and stamps the cooldown. The bond
// item itself goes to the inventory collaborator; callers must have checked
// CanBuyBond and add the item on success.
func (s *PlayerState) ApplyBondPurchase(now time.Time) bool {
	if !s.CanBuyBond(now) {
		return false
	}
	s.Wealth.Currency -= BondCostCoins
	t := now
	s.LastBondPurchase = &t
	s.LastGeTransaction = &t
	return true
}

// ApplyBondRedemption converts a held bond into membership time. Item
// removal is the caller's job (inventory is a collaborator store).
func (s *PlayerState) ApplyBondRedemption() {
	s.MembershipDaysRemaining += BondMembershipDays
	s.IsMember = s.MembershipDaysRemaining > 0
}

// MembershipLapseAt estimates when membership runs out at the real-time
// decay rate, measured from the last check (or now when never checked).
// Nil for non-members.
func (s *PlayerState) MembershipLapseAt(now time.Time) *time.Time {
	if !s.IsMember || s.MembershipDaysRemaining <= 0 {
		return nil
	}
	base := now
	if s.LastMembershipCheck != nil {
		base = *s.LastMembershipCheck
	}
	lapse := base.Add(time.Duration(s.MembershipDaysRemaining * 24 * float64(time.Hour)))
	return &lapse
}
