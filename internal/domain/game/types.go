package game

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownMemoryKind = errors.New("unknown memory kind")

type Wealth struct {
	Currency   int64 `json:"currency"`
	ItemsValue int64 `json:"items_value"`
}

// PlayerState is the single persisted aggregate owned by the progression
// engine. The JSON encoding of this struct is the on-disk state file, so
// fields are not added or renamed casually.
type PlayerState struct {
	Location                string     `json:"location"`
	QuestPoints             int        `json:"quest_points"`
	TotalLevel              int        `json:"total_level"`
	CombatLevel             int        `json:"combat_level"`
	Wealth                  Wealth     `json:"wealth"`
	Achievements            []string   `json:"achievements"`
	ActiveQuests            []string   `json:"active_quests"`
	CompletedQuests         []string   `json:"completed_quests"`
	UnlockedAreas           []string   `json:"unlocked_areas"`
	DeathCount              int        `json:"death_count"`
	LastDeath               *time.Time `json:"last_death,omitempty"`
	MembershipDaysRemaining float64    `json:"membership_days_remaining"`
	IsMember                bool       `json:"is_member"`
	LastMembershipCheck     *time.Time `json:"last_membership_check,omitempty"`
	LastBondPurchase        *time.Time `json:"last_bond_purchase,omitempty"`
	LastGeTransaction       *time.Time `json:"last_ge_transaction,omitempty"`
	ActiveGrinds            []string   `json:"active_grinds"`
}

// Grind tracks one rare-drop target being farmed. Rate is a probability in
// (0,1]; Obtained counts successes, not a boolean, so over-completion is
// visible.
type Grind struct {
	Target   string  `json:"target"`
	Location string  `json:"location"`
	Rate     float64 `json:"rate"`
	Attempts int     `json:"attempts"`
	Obtained int     `json:"obtained"`
}

// ResilienceRecord is the per-location failure history behind the retry
// policy. Entries are never pruned here; staleness is judged at read time.
type ResilienceRecord struct {
	RecentFailures int       `json:"recent_failures"`
	LastFailure    time.Time `json:"last_failure"`
}

// SkillBar is a knowledge-base requirement that unlocks retrying a
// location once the named skill reaches the given level.
type SkillBar struct {
	Skill string `json:"skill"`
	Level int    `json:"level"`
}

type MemoryKind string

const (
	MemoryDecision  MemoryKind = "decision"
	MemoryDeath     MemoryKind = "death"
	MemoryMilestone MemoryKind = "milestone"
)

// ParseMemoryKind rejects anything outside the closed kind set.
func ParseMemoryKind(s string) (MemoryKind, error) {
	switch k := MemoryKind(s); k {
	case MemoryDecision, MemoryDeath, MemoryMilestone:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMemoryKind, s)
}

type Valence string

const (
	ValenceSatisfaction   Valence = "satisfaction"
	ValenceDisappointment Valence = "disappointment"
)

// MemoryRecord is one reflective journal entry appended after a cycle.
type MemoryRecord struct {
	ID         string         `json:"id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Kind       MemoryKind     `json:"kind"`
	Content    string         `json:"content"`
	Valence    Valence        `json:"valence,omitempty"`
	Tags       []string       `json:"tags,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}
