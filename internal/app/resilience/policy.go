// Package resilience decides whether a location that has recently
// killed or stalled the agent may be retried yet.
package resilience

import (
	"context"
	"fmt"
	"time"

	"runemind/internal/app/ports"
	"runemind/internal/domain/game"
)

// Policy tracks per-location failure history. Failures older than the
// trailing window stop counting against a location; the window is
// judged at read time so records never need background pruning.
type Policy struct {
	Knowledge ports.KnowledgeBase

	// Threshold and Window override the default tuning when non-zero.
	Threshold int
	Window    time.Duration

	records map[string]game.ResilienceRecord
}

func NewPolicy(knowledge ports.KnowledgeBase) *Policy {
	return &Policy{
		Knowledge: knowledge,
		records:   map[string]game.ResilienceRecord{},
	}
}

// CanRetry reports whether a location-bound action is allowed, with a
// human-readable reason either way. Unknown locations are treated as
// never-failed. A location over the failure threshold inside the
// trailing window is denied unless the knowledge base publishes a
// skill bar for it and the agent's skills clear that bar.
func (p *Policy) CanRetry(ctx context.Context, location string, skills game.SkillSet, now time.Time) (bool, string) {
	rec, ok := p.records[location]
	if !ok || rec.RecentFailures < p.threshold() {
		return true, "Location not in avoid list"
	}
	if now.Sub(rec.LastFailure) > p.window() {
		return true, "Location not in avoid list"
	}
	if p.Knowledge != nil {
		bar, found, err := p.Knowledge.DangerBar(ctx, location)
		if err == nil && found {
			if skills.Level(bar.Skill) >= bar.Level {
				return true, "Requirements met"
			}
			return false, fmt.Sprintf("Need %s >= %d", bar.Skill, bar.Level)
		}
	}
	return false, fmt.Sprintf("Avoiding %s after %d recent failures", location, rec.RecentFailures)
}

// RecordFailure bumps the location's failure count. A failure landing
// after the window expired starts a fresh count instead of stacking
// onto stale history.
func (p *Policy) RecordFailure(location string, now time.Time) {
	rec := p.records[location]
	if !rec.LastFailure.IsZero() && now.Sub(rec.LastFailure) > p.window() {
		rec.RecentFailures = 0
	}
	rec.RecentFailures++
	rec.LastFailure = now
	p.records[location] = rec
}

func (p *Policy) threshold() int {
	if p.Threshold > 0 {
		return p.Threshold
	}
	return game.ResilienceFailureThreshold
}

func (p *Policy) window() time.Duration {
	if p.Window > 0 {
		return p.Window
	}
	return game.ResilienceWindow
}

// RecordSuccess clears the failure count but keeps the record, so the
// status view can still show where trouble happened.
func (p *Policy) RecordSuccess(location string) {
	rec, ok := p.records[location]
	if !ok {
		return
	}
	rec.RecentFailures = 0
	p.records[location] = rec
}

// Records returns a copy of the tracked history for read-only views.
func (p *Policy) Records() map[string]game.ResilienceRecord {
	out := make(map[string]game.ResilienceRecord, len(p.records))
	for loc, rec := range p.records {
		out[loc] = rec
	}
	return out
}

// Restore seeds history from a previously captured copy, replacing
// anything tracked so far.
func (p *Policy) Restore(records map[string]game.ResilienceRecord) {
	p.records = make(map[string]game.ResilienceRecord, len(records))
	for loc, rec := range records {
		p.records[loc] = rec
	}
}
