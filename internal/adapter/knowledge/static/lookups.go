package staticknowledge

import (
	"context"
	"strings"

	"runemind/internal/app/ports"
	"runemind/internal/domain/game"
)

// DangerBar reports the recommended skill bar for a location, ok=false
// when the base has no opinion on it.
func (b *Base) DangerBar(_ context.Context, location string) (game.SkillBar, bool, error) {
	bar, ok := b.current().bars[strings.ToLower(strings.TrimSpace(location))]
	return bar, ok, nil
}

// TrainingMethods lists the ways to train a skill that are unlocked at
// the given level, most advanced first.
func (b *Base) TrainingMethods(_ context.Context, skill string, level int) ([]ports.TrainingMethod, error) {
	all := b.current().methods[strings.ToLower(strings.TrimSpace(skill))]
	var out []ports.TrainingMethod
	for _, m := range all {
		if m.MinLevel > level {
			continue
		}
		out = append(out, cloneMethod(m))
	}
	return out, nil
}

// OpenQuests lists every quest the base knows about.
func (b *Base) OpenQuests(_ context.Context) ([]ports.QuestInfo, error) {
	snap := b.current()
	out := make([]ports.QuestInfo, 0, len(snap.quests))
	for _, q := range snap.quests {
		out = append(out, cloneQuest(q))
	}
	return out, nil
}

// Lookups hand out detached copies so callers cannot reach back into a
// live snapshot.

func cloneMethod(m ports.TrainingMethod) ports.TrainingMethod {
	out := m
	out.RequiredItems = append([]string(nil), m.RequiredItems...)
	if m.Drop != nil {
		drop := *m.Drop
		out.Drop = &drop
	}
	return out
}

func cloneQuest(q ports.QuestInfo) ports.QuestInfo {
	out := q
	out.RequiredItems = append([]string(nil), q.RequiredItems...)
	if q.RequiredSkills != nil {
		out.RequiredSkills = make(map[string]int, len(q.RequiredSkills))
		for k, v := range q.RequiredSkills {
			out.RequiredSkills[k] = v
		}
	}
	return out
}
