package inmemory

import (
	"sync"

	"runemind/internal/domain/game"
)

type Snapshot struct {
	CycleTotal      uint64            `json:"cycle_total"`
	CycleSuccess    uint64            `json:"cycle_success"`
	CycleFailure    uint64            `json:"cycle_failure"`
	IdleCycles      uint64            `json:"idle_cycles"`
	Deaths          uint64            `json:"deaths"`
	PersistFailures uint64            `json:"persist_failures"`
	ByCategory      map[string]uint64 `json:"by_category"`
}

type Recorder struct {
	mu              sync.Mutex
	success         uint64
	failure         uint64
	idle            uint64
	deaths          uint64
	persistFailures uint64
	byCategory      map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byCategory: map[string]uint64{},
	}
}

func (r *Recorder) RecordCycle(category game.ActionCategory, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if success {
		r.success++
	} else {
		r.failure++
	}
	r.byCategory[string(category)]++
}

func (r *Recorder) RecordIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idle++
}

func (r *Recorder) RecordDeath() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deaths++
}

func (r *Recorder) RecordPersistFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persistFailures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		CycleSuccess:    r.success,
		CycleFailure:    r.failure,
		CycleTotal:      r.success + r.failure,
		IdleCycles:      r.idle,
		Deaths:          r.deaths,
		PersistFailures: r.persistFailures,
		ByCategory:      make(map[string]uint64, len(r.byCategory)),
	}
	for k, v := range r.byCategory {
		out.ByCategory[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
