package ports

import (
	"context"

	"runemind/internal/domain/game"
)

// KnowledgeHit is one ranked passage returned by a free-text lookup.
type KnowledgeHit struct {
	Title  string  `json:"title"`
	Source string  `json:"source"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
}

// TrainingMethod describes one way to train a skill, optionally with a
// rare drop attached to the activity.
type TrainingMethod struct {
	Skill         string
	Method        string
	Location      string
	MinLevel      int
	XPPer         int
	RequiredItems []string
	Drop          *game.DropTarget
}

// QuestInfo is knowledge-base metadata for a startable quest.
type QuestInfo struct {
	Name           string
	Location       string
	QuestPoints    int
	RequiredSkills map[string]int
	RequiredItems  []string
}

// KnowledgeBase answers free-text lookups and the typed queries the
// decision layer depends on. Typed lookups report ok=false instead of
// an error when the base simply has no entry.
type KnowledgeBase interface {
	Query(ctx context.Context, text string, limit int) ([]KnowledgeHit, error)
	DangerBar(ctx context.Context, location string) (game.SkillBar, bool, error)
	TrainingMethods(ctx context.Context, skill string, level int) ([]TrainingMethod, error)
	OpenQuests(ctx context.Context) ([]QuestInfo, error)
}
