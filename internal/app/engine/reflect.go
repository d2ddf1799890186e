package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"runemind/internal/domain/game"
)

// reflect turns the cycle's outcome into journal entries, resilience
// bookkeeping and metrics. Journal writes are best effort: a failed
// append is logged and the cycle still completes.
func (e *Engine) reflect(ctx context.Context, cyc *cycleContext) {
	records := make([]game.MemoryRecord, 0, len(cyc.Milestones)+2)

	if cyc.Perception.Died {
		records = append(records, e.newRecord(cyc, game.MemoryDeath,
			fmt.Sprintf("Died and respawned in %s", e.state.Location),
			game.ValenceDisappointment,
			[]string{"death"},
			map[string]any{"death_count": e.state.DeathCount},
		))
	}

	if chosen := cyc.Decision.Chosen; chosen != nil && cyc.Result != nil {
		valence := game.ValenceSatisfaction
		if !cyc.Result.Success {
			valence = game.ValenceDisappointment
			if chosen.Location != "" {
				e.resilience.RecordFailure(chosen.Location, cyc.NowAt)
			}
		} else if chosen.Location != "" {
			e.resilience.RecordSuccess(chosen.Location)
		}
		if e.metrics != nil {
			e.metrics.RecordCycle(chosen.Category, cyc.Result.Success)
		}
		records = append(records, e.newRecord(cyc, game.MemoryDecision,
			fmt.Sprintf("%s: %s", chosen.Name, cyc.Result.Message),
			valence,
			[]string{string(chosen.Category)},
			map[string]any{"score": chosen.Score(), "location": chosen.Location},
		))
	}

	for _, m := range cyc.Milestones {
		records = append(records, e.newRecord(cyc, m.Kind, m.Content, m.Valence, m.Tags, m.Details))
	}

	if len(records) == 0 {
		return
	}
	err := e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return e.journal.Append(txCtx, records)
	})
	if err != nil {
		e.log.Warn("journal append failed", zap.Int("records", len(records)), zap.Error(err))
	}
}

func (e *Engine) newRecord(cyc *cycleContext, kind game.MemoryKind, content string, valence game.Valence, tags []string, details map[string]any) game.MemoryRecord {
	return game.MemoryRecord{
		ID:         uuid.NewString(),
		OccurredAt: cyc.NowAt,
		Kind:       kind,
		Content:    content,
		Valence:    valence,
		Tags:       tags,
		Details:    details,
	}
}

// persist refreshes derived totals and writes the aggregate and tutorial
// cursor. A failed write is logged and surfaced on the result, never
// fatal: the next cycle retries with current in-memory state.
func (e *Engine) persist(ctx context.Context, cyc *cycleContext) {
	if snap, err := e.skills.Snapshot(ctx); err == nil {
		e.state.TotalLevel = snap.TotalLevel()
		e.state.CombatLevel = snap.CombatLevel()
	} else {
		e.log.Warn("skill totals not refreshed", zap.Error(err))
	}

	err := e.states.Save(ctx, e.state)
	if err == nil {
		err = e.progress.Save(ctx, e.tutorial.Progress())
	}
	if err != nil {
		cyc.PersistErr = err
		e.log.Error("state persistence failed", zap.Error(err))
		if e.metrics != nil {
			e.metrics.RecordPersistFailure()
		}
		return
	}
	cyc.Persisted = true
}
