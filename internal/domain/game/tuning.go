package game

import "time"

const (
	BondCostCoins      int64 = 5_000_000
	BondMembershipDays       = 28.0
	BondCooldown             = 24 * time.Hour

	MembershipCheckMinGap = time.Hour

	GrindPatienceMultiplier = 3.0

	ResilienceFailureThreshold = 3
	ResilienceWindow           = 30 * time.Minute

	MaxTrainableLevel = 99

	// Exploration score weights and normalization caps. The score is a
	// coarse progress heuristic in [0,1], not a precise metric.
	ExploreLocationWeight = 0.4
	ExploreItemWeight     = 0.3
	ExploreSkillWeight    = 0.3
	ExploreLocationCap    = 20
	ExploreItemCap        = 100
	ExploreSkillCap       = 23

	PriorityExploration = 5
	PriorityQuesting    = 7
	PrioritySkilling    = 6
	PriorityCheckMember = 2
	PriorityBuyBond     = 8
	PriorityRedeemBond  = 8

	ConfidenceExploration = 0.7
	ConfidenceQuesting    = 0.9
	ConfidenceSkilling    = 0.8
	ConfidenceCheckMember = 0.9
	ConfidenceBuyBond     = 0.9
	ConfidenceRedeemBond  = 0.9

	InventorySlots = 28

	BondItemName = "Bond"

	DeathChatTrigger = "Oh dear, you are dead!"
)
