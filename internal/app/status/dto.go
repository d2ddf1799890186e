package status

import (
	"time"

	"runemind/internal/domain/game"
)

type TutorialSummary struct {
	Complete       bool   `json:"complete"`
	CurrentStep    string `json:"current_step,omitempty"`
	Instructor     string `json:"instructor,omitempty"`
	CompletedSteps int    `json:"completed_steps"`
	TotalSteps     int    `json:"total_steps"`
	NextAction     string `json:"next_action,omitempty"`
}

type GrindStatus struct {
	Target           string  `json:"target"`
	Location         string  `json:"location"`
	Rate             float64 `json:"rate"`
	Attempts         int     `json:"attempts"`
	ExpectedAttempts int     `json:"expected_attempts"`
	Luck             float64 `json:"luck"`
}

// TroubleSpot is a location with recorded failures. Avoided means the
// retry policy is currently steering away from it.
type TroubleSpot struct {
	Location       string    `json:"location"`
	RecentFailures int       `json:"recent_failures"`
	LastFailure    time.Time `json:"last_failure"`
	Avoided        bool      `json:"avoided"`
}

type Response struct {
	State             game.PlayerState `json:"state"`
	ExplorationScore  float64          `json:"exploration_score"`
	Tutorial          TutorialSummary  `json:"tutorial"`
	MembershipLapseAt *time.Time       `json:"membership_lapse_at,omitempty"`
	Grinds            []GrindStatus    `json:"grinds,omitempty"`
	TroubleSpots      []TroubleSpot    `json:"trouble_spots,omitempty"`
}
