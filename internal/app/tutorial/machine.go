// Package tutorial drives the fixed Tutorial Island onboarding chain.
package tutorial

import (
	"errors"
	"fmt"
	"strings"

	"runemind/internal/domain/game"
)

// ErrStepIncomplete reports a completion request while objectives
// remain on the current step.
var ErrStepIncomplete = errors.New("tutorial: step objectives incomplete")

// Machine holds the mutable cursor over the immutable step table. Text
// that matches nothing is ignored, never an error.
type Machine struct {
	progress game.TutorialProgress
}

// NewMachine starts at the canonical first step.
func NewMachine() *Machine {
	return &Machine{progress: game.NewTutorialProgress()}
}

// Restore resumes from a persisted cursor. A cursor pointing at an
// unknown step (rewritten table, corrupt file) restarts from the first
// step rather than wedging the chain.
func Restore(progress game.TutorialProgress) *Machine {
	if !progress.Complete {
		if _, ok := game.TutorialStepByName(progress.CurrentStep); !ok {
			return NewMachine()
		}
	}
	if progress.CompletedSteps == nil {
		progress.CompletedSteps = []string{}
	}
	return &Machine{progress: progress}
}

// Progress returns the persistable cursor.
func (m *Machine) Progress() game.TutorialProgress {
	p := m.progress
	p.CompletedSteps = append([]string(nil), m.progress.CompletedSteps...)
	return p
}

// Complete reports whether the terminal step has been finished.
func (m *Machine) Complete() bool { return m.progress.Complete }

// CurrentStep returns the step under the cursor; ok is false once the
// tutorial is complete.
func (m *Machine) CurrentStep() (game.TutorialStep, bool) {
	if m.progress.Complete {
		return game.TutorialStep{}, false
	}
	return game.TutorialStepByName(m.progress.CurrentStep)
}

// CurrentObjective returns the objective awaiting completion; ok is
// false when every objective on the step is done or the tutorial is
// over.
func (m *Machine) CurrentObjective() (string, bool) {
	step, ok := m.CurrentStep()
	if !ok || m.progress.ObjectiveIndex >= len(step.Objectives) {
		return "", false
	}
	return step.Objectives[m.progress.ObjectiveIndex], true
}

// StepReady reports whether every objective on the current step is
// done and the step awaits CompleteCurrentStep.
func (m *Machine) StepReady() bool {
	step, ok := m.CurrentStep()
	return ok && m.progress.ObjectiveIndex >= len(step.Objectives)
}

// AdvanceObjective moves the cursor one objective forward when the
// text mentions the expected objective or one of the step's completion
// triggers, case-insensitively. Unrelated text is a no-op.
func (m *Machine) AdvanceObjective(text string) bool {
	step, ok := m.CurrentStep()
	if !ok || m.progress.ObjectiveIndex >= len(step.Objectives) {
		return false
	}
	lowered := strings.ToLower(text)
	objective := step.Objectives[m.progress.ObjectiveIndex]
	matched := strings.Contains(lowered, strings.ToLower(objective))
	if !matched {
		for _, trigger := range step.CompletionTriggers {
			if strings.Contains(lowered, strings.ToLower(trigger)) {
				matched = true
				break
			}
		}
	}
	if !matched {
		return false
	}
	m.progress.ObjectiveIndex++
	return true
}

// CompleteCurrentStep closes out a fully-objectived step: records it,
// resets the cursor, and moves to the successor. Completing the
// terminal step flips the tutorial-complete flag. The completed step is
// returned so callers can grant its rewards.
func (m *Machine) CompleteCurrentStep() (game.TutorialStep, error) {
	step, ok := m.CurrentStep()
	if !ok {
		return game.TutorialStep{}, ErrStepIncomplete
	}
	if m.progress.ObjectiveIndex < len(step.Objectives) {
		return game.TutorialStep{}, ErrStepIncomplete
	}
	if !m.progress.HasCompletedStep(step.Name) {
		m.progress.CompletedSteps = append(m.progress.CompletedSteps, step.Name)
	}
	m.progress.ObjectiveIndex = 0
	if step.Terminal() {
		m.progress.Complete = true
	} else {
		m.progress.CurrentStep = step.NextStep
	}
	return step, nil
}

// NextAction is the suggestion surfaced to the player: the pending
// objective, a completion nudge, or empty once the tutorial is over.
func (m *Machine) NextAction() string {
	if objective, ok := m.CurrentObjective(); ok {
		return objective
	}
	if step, ok := m.CurrentStep(); ok {
		return fmt.Sprintf("Complete %s", step.Name)
	}
	return ""
}
