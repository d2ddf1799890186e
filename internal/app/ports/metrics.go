package ports

import "runemind/internal/domain/game"

type CycleMetrics interface {
	RecordCycle(category game.ActionCategory, success bool)
	RecordIdle()
	RecordDeath()
	RecordPersistFailure()
}
