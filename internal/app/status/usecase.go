package status

import (
	"context"
	"sort"
	"time"

	"runemind/internal/app/tutorial"
	"runemind/internal/domain/game"
)

// EngineView is the read surface the running engine exposes. Everything
// here returns copies, so the view never races a cycle.
type EngineView interface {
	State() game.PlayerState
	TutorialProgress() game.TutorialProgress
	ExplorationScore() float64
	ActiveGrinds() []game.Grind
	ResilienceRecords() map[string]game.ResilienceRecord
}

type UseCase struct {
	Engine EngineView
	Now    func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// Execute assembles the full agent status view.
func (u UseCase) Execute(_ context.Context) Response {
	now := u.now()
	state := u.Engine.State()
	return Response{
		State:             state,
		ExplorationScore:  u.Engine.ExplorationScore(),
		Tutorial:          summarizeTutorial(u.Engine.TutorialProgress()),
		MembershipLapseAt: state.MembershipLapseAt(now),
		Grinds:            grindStatuses(u.Engine.ActiveGrinds()),
		TroubleSpots:      troubleSpots(u.Engine.ResilienceRecords(), now),
	}
}

func summarizeTutorial(progress game.TutorialProgress) TutorialSummary {
	summary := TutorialSummary{
		Complete:       progress.Complete,
		CompletedSteps: len(progress.CompletedSteps),
		TotalSteps:     len(game.TutorialSteps),
	}
	if progress.Complete {
		return summary
	}
	summary.CurrentStep = progress.CurrentStep
	if step, ok := game.TutorialStepByName(progress.CurrentStep); ok {
		summary.Instructor = step.Instructor
	}
	summary.NextAction = tutorial.Restore(progress).NextAction()
	return summary
}

func grindStatuses(grinds []game.Grind) []GrindStatus {
	out := make([]GrindStatus, 0, len(grinds))
	for _, g := range grinds {
		out = append(out, GrindStatus{
			Target:           g.Target,
			Location:         g.Location,
			Rate:             g.Rate,
			Attempts:         g.Attempts,
			ExpectedAttempts: game.ExpectedAttempts(g.Rate),
			Luck:             game.LuckFactor(g.Rate, g.Attempts),
		})
	}
	return out
}

func troubleSpots(records map[string]game.ResilienceRecord, now time.Time) []TroubleSpot {
	out := make([]TroubleSpot, 0, len(records))
	for location, rec := range records {
		if rec.RecentFailures <= 0 {
			continue
		}
		avoided := rec.RecentFailures >= game.ResilienceFailureThreshold &&
			now.Sub(rec.LastFailure) <= game.ResilienceWindow
		out = append(out, TroubleSpot{
			Location:       location,
			RecentFailures: rec.RecentFailures,
			LastFailure:    rec.LastFailure,
			Avoided:        avoided,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}
