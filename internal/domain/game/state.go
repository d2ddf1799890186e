package game

import "time"

// NewDefaultState is the fresh-account aggregate: a level-3 player standing
// in Lumbridge with the starting areas unlocked and no membership.
func NewDefaultState() PlayerState {
	return PlayerState{
		Location:        "Lumbridge",
		TotalLevel:      32,
		CombatLevel:     3,
		Achievements:    []string{},
		ActiveQuests:    []string{},
		CompletedQuests: []string{},
		UnlockedAreas:   []string{"Lumbridge", "Lumbridge Swamp", "Draynor Village"},
		ActiveGrinds:    []string{},
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func (s PlayerState) HasUnlockedArea(area string) bool {
	return containsString(s.UnlockedAreas, area)
}

// UnlockArea appends once; unlocked areas are append-only.
func (s *PlayerState) UnlockArea(area string) bool {
	if area == "" || containsString(s.UnlockedAreas, area) {
		return false
	}
	s.UnlockedAreas = append(s.UnlockedAreas, area)
	return true
}

func (s *PlayerState) AddAchievement(name string) bool {
	if name == "" || containsString(s.Achievements, name) {
		return false
	}
	s.Achievements = append(s.Achievements, name)
	return true
}

func (s *PlayerState) StartQuest(name string) bool {
	if name == "" || containsString(s.ActiveQuests, name) || containsString(s.CompletedQuests, name) {
		return false
	}
	s.ActiveQuests = append(s.ActiveQuests, name)
	return true
}

func (s *PlayerState) CompleteQuest(name string, questPoints int) bool {
	if name == "" || containsString(s.CompletedQuests, name) {
		return false
	}
	s.ActiveQuests = removeString(s.ActiveQuests, name)
	s.CompletedQuests = append(s.CompletedQuests, name)
	if questPoints > 0 {
		s.QuestPoints += questPoints
	}
	return true
}

func (s PlayerState) HasGrind(target string) bool {
	return containsString(s.ActiveGrinds, target)
}

func (s *PlayerState) AddGrind(target string) bool {
	if target == "" || containsString(s.ActiveGrinds, target) {
		return false
	}
	s.ActiveGrinds = append(s.ActiveGrinds, target)
	return true
}

// RemoveGrind is the one set removal the aggregate allows: a grind leaves
// the active set when the drop is obtained or the target is abandoned.
func (s *PlayerState) RemoveGrind(target string) bool {
	if !containsString(s.ActiveGrinds, target) {
		return false
	}
	s.ActiveGrinds = removeString(s.ActiveGrinds, target)
	return true
}

// RecordDeath applies the death snapshot consequences: counter, timestamp,
// and relocation to the respawn point.
func (s *PlayerState) RecordDeath(now time.Time, respawn string) {
	s.DeathCount++
	t := now
	s.LastDeath = &t
	if respawn != "" {
		s.Location = respawn
	}
}

// Clone returns a deep copy. Callers that hand state snapshots across an
// API boundary use this so the aggregate's slices stay unshared.
func (s PlayerState) Clone() PlayerState {
	out := s
	out.Achievements = append([]string(nil), s.Achievements...)
	out.ActiveQuests = append([]string(nil), s.ActiveQuests...)
	out.CompletedQuests = append([]string(nil), s.CompletedQuests...)
	out.UnlockedAreas = append([]string(nil), s.UnlockedAreas...)
	out.ActiveGrinds = append([]string(nil), s.ActiveGrinds...)
	if s.LastDeath != nil {
		t := *s.LastDeath
		out.LastDeath = &t
	}
	if s.LastMembershipCheck != nil {
		t := *s.LastMembershipCheck
		out.LastMembershipCheck = &t
	}
	if s.LastBondPurchase != nil {
		t := *s.LastBondPurchase
		out.LastBondPurchase = &t
	}
	if s.LastGeTransaction != nil {
		t := *s.LastGeTransaction
		out.LastGeTransaction = &t
	}
	return out
}

// Normalize repairs nil slices after a JSON load so that set mutators and
// re-encoding behave identically to a freshly built state.
func (s *PlayerState) Normalize() {
	if s.Achievements == nil {
		s.Achievements = []string{}
	}
	if s.ActiveQuests == nil {
		s.ActiveQuests = []string{}
	}
	if s.CompletedQuests == nil {
		s.CompletedQuests = []string{}
	}
	if s.UnlockedAreas == nil {
		s.UnlockedAreas = []string{}
	}
	if s.ActiveGrinds == nil {
		s.ActiveGrinds = []string{}
	}
	if s.MembershipDaysRemaining < 0 {
		s.MembershipDaysRemaining = 0
	}
	s.IsMember = s.MembershipDaysRemaining > 0
}
