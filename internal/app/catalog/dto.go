package catalog

import "runemind/internal/domain/game"

// RejectedCandidate pairs an excluded action with the reason, so the
// decision trail stays observable.
type RejectedCandidate struct {
	Action game.Action `json:"action"`
	Reason string      `json:"reason"`
}

// Decision is the outcome of one selection pass. Chosen is nil when
// every candidate was filtered out, which signals an idle cycle rather
// than an error.
type Decision struct {
	Chosen     *game.Action        `json:"chosen,omitempty"`
	Candidates []game.Action       `json:"candidates"`
	Rejected   []RejectedCandidate `json:"rejected,omitempty"`
}
