package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"runemind/internal/domain/game"
	"runemind/internal/domain/world"
)

const knowledgeFallbackLimit = 3

// perceive turns a raw snapshot into a Perception and applies the state
// transitions observation alone can cause (death, drop pickups, quest
// completion, area discovery). It never fails; garbage input is simply
// an empty perception.
func (e *Engine) perceive(ctx context.Context, cyc *cycleContext) {
	text := cyc.Snap.Text()
	lowered := strings.ToLower(text)
	p := &cyc.Perception

	if strings.Contains(text, game.DeathChatTrigger) {
		p.Died = true
		e.state.RecordDeath(cyc.NowAt, world.Respawn)
		if e.metrics != nil {
			e.metrics.RecordDeath()
		}
		e.recomputeScore()
		return
	}

	if strings.Contains(lowered, "obtained") {
		e.completeFirstGrind(ctx, cyc)
	}
	if strings.Contains(lowered, "quest complete") {
		e.completeFirstQuest(ctx, cyc)
	}

	if !e.tutorial.Complete() && text != "" {
		e.tutorial.AdvanceObjective(text)
	}

	if loc, ok := world.ExtractLocation(text); ok {
		p.Location = loc
		e.state.Location = loc
		if e.state.UnlockArea(loc) {
			p.NewAreas = append(p.NewAreas, loc)
		}
	}

	for _, name := range game.SkillNames {
		if strings.Contains(lowered, name) {
			p.Skills = append(p.Skills, name)
			e.seenSkills[name] = struct{}{}
		}
	}

	for _, item := range cyc.Snap.Inventory {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		if _, ok := e.seenItems[item]; !ok {
			p.Items = append(p.Items, item)
			e.seenItems[item] = struct{}{}
		}
	}

	if text != "" && p.Location == "" && len(p.Skills) == 0 {
		if hits, err := e.knowledge.Query(ctx, text, knowledgeFallbackLimit); err == nil {
			p.KnowledgeHits = hits
		}
	}

	e.recomputeScore()
}

// completeFirstGrind closes out the oldest active grind when the client
// reports a drop. The matched target leaves the active set and lands in
// the inventory.
func (e *Engine) completeFirstGrind(ctx context.Context, cyc *cycleContext) {
	for _, target := range e.state.ActiveGrinds {
		g, ok := e.grinds.Get(target)
		if !ok {
			continue
		}
		if _, err := e.grinds.Update(target, 1, 1); err != nil {
			continue
		}
		if err := e.inventory.Add(ctx, target, 1); err != nil {
			e.log.Warn("drop pickup not recorded", zap.String("item", target), zap.Error(err))
		}
		e.state.RemoveGrind(target)
		e.grinds.Remove(target)
		cyc.Perception.DropObtained = target
		cyc.Milestones = append(cyc.Milestones, milestone{
			Kind:    game.MemoryMilestone,
			Content: "Finally obtained " + target,
			Valence: game.ValenceSatisfaction,
			Tags:    []string{"drop", target},
			Details: map[string]any{"attempts": g.Attempts + 1},
		})
		return
	}
}

// completeFirstQuest resolves the oldest active quest when the client
// reports completion, crediting quest points from the knowledge base (a
// single point when the quest is unknown there).
func (e *Engine) completeFirstQuest(ctx context.Context, cyc *cycleContext) {
	if len(e.state.ActiveQuests) == 0 {
		return
	}
	quest := e.state.ActiveQuests[0]
	points := 1
	if quests, err := e.knowledge.OpenQuests(ctx); err == nil {
		for _, q := range quests {
			if q.Name == quest {
				points = q.QuestPoints
				break
			}
		}
	}
	if e.state.CompleteQuest(quest, points) {
		cyc.Perception.QuestCompleted = quest
		cyc.Milestones = append(cyc.Milestones, milestone{
			Kind:    game.MemoryMilestone,
			Content: "Completed quest " + quest,
			Valence: game.ValenceSatisfaction,
			Tags:    []string{"quest", quest},
			Details: map[string]any{"quest_points": points},
		})
	}
}

func (e *Engine) recomputeScore() {
	e.score = explorationScore(len(e.state.UnlockedAreas), len(e.seenItems), len(e.seenSkills))
}

// explorationScore is the coarse discovery heuristic: weighted coverage
// of known locations, items and skills, clamped to [0,1].
func explorationScore(locations, items, skills int) float64 {
	score := game.ExploreLocationWeight*coverage(locations, game.ExploreLocationCap) +
		game.ExploreItemWeight*coverage(items, game.ExploreItemCap) +
		game.ExploreSkillWeight*coverage(skills, game.ExploreSkillCap)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func coverage(n, limit int) float64 {
	if limit <= 0 || n <= 0 {
		return 0
	}
	if n >= limit {
		return 1
	}
	return float64(n) / float64(limit)
}
