package catalog

import (
	"context"
	"errors"

	"runemind/internal/app/ports"
	"runemind/internal/domain/game"
)

type stubKnowledge struct {
	quests  []ports.QuestInfo
	methods map[string][]ports.TrainingMethod
	bars    map[string]game.SkillBar
}

var _ ports.KnowledgeBase = stubKnowledge{}

func (s stubKnowledge) Query(_ context.Context, text string, limit int) ([]ports.KnowledgeHit, error) {
	return nil, nil
}

func (s stubKnowledge) DangerBar(_ context.Context, location string) (game.SkillBar, bool, error) {
	bar, ok := s.bars[location]
	return bar, ok, nil
}

func (s stubKnowledge) TrainingMethods(_ context.Context, skill string, level int) ([]ports.TrainingMethod, error) {
	return s.methods[skill], nil
}

func (s stubKnowledge) OpenQuests(_ context.Context) ([]ports.QuestInfo, error) {
	return s.quests, nil
}

type stubSkills struct {
	set game.SkillSet
}

var _ ports.SkillsStore = (*stubSkills)(nil)

func newStubSkills() *stubSkills {
	return &stubSkills{set: game.NewSkillSet()}
}

func (s *stubSkills) Snapshot(_ context.Context) (game.SkillSet, error) {
	return s.set.Clone(), nil
}

func (s *stubSkills) AddXP(_ context.Context, skill string, xp int) (int, error) {
	return s.set.AddXP(skill, xp), nil
}

type stubInventory struct {
	items map[string]int
}

var _ ports.InventoryStore = (*stubInventory)(nil)

func newStubInventory() *stubInventory {
	return &stubInventory{items: map[string]int{}}
}

func (s *stubInventory) Items(_ context.Context) (map[string]int, error) {
	out := make(map[string]int, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out, nil
}

func (s *stubInventory) Count(_ context.Context, item string) (int, error) {
	return s.items[item], nil
}

func (s *stubInventory) Add(_ context.Context, item string, qty int) error {
	s.items[item] += qty
	return nil
}

func (s *stubInventory) Remove(_ context.Context, item string, qty int) error {
	if s.items[item] < qty {
		return ports.ErrConflict
	}
	s.items[item] -= qty
	return nil
}

type errorSkills struct{}

func (errorSkills) Snapshot(_ context.Context) (game.SkillSet, error) {
	return nil, errors.New("skills unavailable")
}

func (errorSkills) AddXP(_ context.Context, _ string, _ int) (int, error) {
	return 0, errors.New("skills unavailable")
}
