package game

import (
	"errors"
	"fmt"
)

type ActionCategory string

const (
	CategoryExploration ActionCategory = "exploration"
	CategorySkilling    ActionCategory = "skilling"
	CategoryQuesting    ActionCategory = "questing"
	CategoryMembership  ActionCategory = "membership"
)

var ErrUnknownCategory = errors.New("unknown action category")

// ParseCategory rejects anything outside the closed category set so that
// malformed candidates can never reach execution dispatch.
func ParseCategory(s string) (ActionCategory, error) {
	switch c := ActionCategory(s); c {
	case CategoryExploration, CategorySkilling, CategoryQuesting, CategoryMembership:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// ActionRequirements are checked at decide time; actions whose requirements
// are not met are filtered from the candidate set rather than erroring.
type ActionRequirements struct {
	Skills map[string]int `json:"skills,omitempty"`
	Items  map[string]int `json:"items,omitempty"`
	Coins  int64          `json:"coins,omitempty"`
}

// DropTarget links an action to the grind model: each execution is one
// Bernoulli attempt at Rate for Item.
type DropTarget struct {
	Item string  `json:"item"`
	Rate float64 `json:"rate"`
}

// Action is a candidate produced fresh each decision cycle. It is a value
// object: never persisted, never shared across cycles.
type Action struct {
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Category        ActionCategory      `json:"category"`
	Location        string              `json:"location,omitempty"`
	RequiredItems   []string            `json:"required_items,omitempty"`
	RequiredSkills  map[string]int      `json:"required_skills,omitempty"`
	ExpectedRewards map[string]string   `json:"expected_rewards,omitempty"`
	Risks           []string            `json:"risks,omitempty"`
	Reasoning       string              `json:"reasoning,omitempty"`
	Priority        int                 `json:"priority"`
	Confidence      float64             `json:"confidence"`
	Requirements    *ActionRequirements `json:"requirements,omitempty"`
	XPGain          map[string]int      `json:"xp_gain,omitempty"`
	ItemGain        map[string]int      `json:"item_gain,omitempty"`
	ItemCost        map[string]int      `json:"item_cost,omitempty"`
	Drop            *DropTarget         `json:"drop,omitempty"`
	Quest           string              `json:"quest,omitempty"`
}

// Score is the decide-time ranking value. Ties are broken by generation
// order, which the catalog fixes as exploration, questing, skilling,
// membership.
func (a Action) Score() float64 {
	return float64(a.Priority) * a.Confidence
}

// Result reports what executing an action did. Success=false is an
// expected outcome, not an error: the cycle continues and the failure is
// reflected into memory.
type Result struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message"`
	StateUpdates map[string]any `json:"state_updates,omitempty"`
}
