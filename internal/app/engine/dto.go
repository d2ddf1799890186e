package engine

import (
	"strings"

	"runemind/internal/app/catalog"
	"runemind/internal/app/ports"
	"runemind/internal/domain/game"
)

// Snapshot is one observation of the game client. Every field is
// optional; the plugin sends whatever widgets are on screen.
type Snapshot struct {
	ChatText     string   `json:"chat_text,omitempty"`
	TutorialText string   `json:"tutorial_text,omitempty"`
	FreeText     string   `json:"free_text,omitempty"`
	Inventory    []string `json:"inventory,omitempty"`
	PlayerX      int      `json:"player_x,omitempty"`
	PlayerY      int      `json:"player_y,omitempty"`
}

// Text joins the free-text fields for keyword scanning.
func (s Snapshot) Text() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.ChatText, s.TutorialText, s.FreeText} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n")
}

// Perception is what a snapshot was understood to contain. Unrecognized
// input yields the zero Perception, never an error.
type Perception struct {
	Location       string              `json:"location,omitempty"`
	NewAreas       []string            `json:"new_areas,omitempty"`
	Skills         []string            `json:"skills,omitempty"`
	Items          []string            `json:"items,omitempty"`
	Died           bool                `json:"died,omitempty"`
	QuestCompleted string              `json:"quest_completed,omitempty"`
	DropObtained   string              `json:"drop_obtained,omitempty"`
	KnowledgeHits  []ports.KnowledgeHit `json:"knowledge_hits,omitempty"`
}

// CycleResult reports one full perceive/decide/act/reflect/persist pass.
// An empty Suggestion means the overlay should hide.
type CycleResult struct {
	Suggestion       string                      `json:"suggestion"`
	Perception       Perception                  `json:"perception"`
	Action           *game.Action                `json:"action,omitempty"`
	Result           *game.Result                `json:"result,omitempty"`
	Rejected         []catalog.RejectedCandidate `json:"rejected,omitempty"`
	ExplorationScore float64                     `json:"exploration_score"`
	TutorialComplete bool                        `json:"tutorial_complete"`
	Persisted        bool                        `json:"persisted"`
	PersistErr       string                      `json:"persist_error,omitempty"`
}
