package game

import (
	"math"
	"strings"
)

// SkillNames lists every trainable skill in display order.
var SkillNames = []string{
	"attack",
	"strength",
	"defence",
	"ranged",
	"prayer",
	"magic",
	"runecrafting",
	"construction",
	"hitpoints",
	"agility",
	"herblore",
	"thieving",
	"crafting",
	"fletching",
	"slayer",
	"hunter",
	"mining",
	"smithing",
	"fishing",
	"cooking",
	"firemaking",
	"woodcutting",
	"farming",
}

// Skill holds the progress of a single trainable skill.
type Skill struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
}

// SkillSet maps skill name to progress for all 23 skills.
type SkillSet map[string]Skill

// NewSkillSet returns a fresh level-1 skill set. Hitpoints starts at
// level 10 with the matching experience already banked.
func NewSkillSet() SkillSet {
	s := make(SkillSet, len(SkillNames))
	for _, name := range SkillNames {
		s[name] = Skill{Level: 1, XP: 0}
	}
	s["hitpoints"] = Skill{Level: 10, XP: XPForLevel(10)}
	return s
}

// Level returns the current level of the named skill, or 0 when the
// skill is unknown.
func (s SkillSet) Level(name string) int {
	return s[strings.ToLower(name)].Level
}

// XP returns the current experience of the named skill, or 0 when the
// skill is unknown.
func (s SkillSet) XP(name string) int {
	return s[strings.ToLower(name)].XP
}

// AddXP adds experience to the named skill and recomputes its level.
// Unknown skills are ignored. It reports the level gained, 0 when the
// level did not change.
func (s SkillSet) AddXP(name string, xp int) int {
	name = strings.ToLower(name)
	sk, ok := s[name]
	if !ok || xp <= 0 {
		return 0
	}
	before := sk.Level
	sk.XP += xp
	sk.Level = LevelForXP(sk.XP)
	s[name] = sk
	return sk.Level - before
}

// TotalLevel sums the levels of every skill.
func (s SkillSet) TotalLevel() int {
	total := 0
	for _, sk := range s {
		total += sk.Level
	}
	return total
}

// Clone returns an independent copy of the skill set.
func (s SkillSet) Clone() SkillSet {
	out := make(SkillSet, len(s))
	for name, sk := range s {
		out[name] = sk
	}
	return out
}

// XPForLevel returns the experience required to reach the given level.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if level > MaxTrainableLevel {
		level = MaxTrainableLevel
	}
	points := 0
	for i := 1; i < level; i++ {
		points += int(float64(i) + 300*math.Pow(2, float64(i)/7.0))
	}
	return points / 4
}

// LevelForXP returns the level reached with the given experience,
// capped at the trainable maximum.
func LevelForXP(xp int) int {
	level := 1
	for i := 1; i <= MaxTrainableLevel; i++ {
		if xp < XPForLevel(i) {
			break
		}
		level = i
	}
	return level
}

// CombatLevel derives the combat level from the combat skills.
func (s SkillSet) CombatLevel() int {
	base := 0.25 * float64(s.Level("defence")+s.Level("hitpoints")+s.Level("prayer")/2)
	melee := 0.325 * float64(s.Level("attack")+s.Level("strength"))
	ranged := 0.325 * float64(3*s.Level("ranged")/2)
	magic := 0.325 * float64(3*s.Level("magic")/2)
	best := melee
	if ranged > best {
		best = ranged
	}
	if magic > best {
		best = magic
	}
	return int(base + best)
}
