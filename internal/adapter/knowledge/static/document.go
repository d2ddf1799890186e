package staticknowledge

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"runemind/internal/app/ports"
	"runemind/internal/domain/game"
)

// document is the on-disk shape of a knowledge base file.
type document struct {
	Entries         []entryDoc  `yaml:"entries"`
	DangerBars      []dangerDoc `yaml:"danger_bars"`
	Quests          []questDoc  `yaml:"quests"`
	TrainingMethods []methodDoc `yaml:"training_methods"`
}

type entryDoc struct {
	Title    string   `yaml:"title"`
	Source   string   `yaml:"source"`
	Keywords []string `yaml:"keywords"`
	Text     string   `yaml:"text"`
}

type dangerDoc struct {
	Location string `yaml:"location"`
	Skill    string `yaml:"skill"`
	Level    int    `yaml:"level"`
}

type questDoc struct {
	Name           string         `yaml:"name"`
	Location       string         `yaml:"location"`
	QuestPoints    int            `yaml:"quest_points"`
	RequiredSkills map[string]int `yaml:"required_skills"`
	RequiredItems  []string       `yaml:"required_items"`
}

type methodDoc struct {
	Skill         string   `yaml:"skill"`
	Method        string   `yaml:"method"`
	Location      string   `yaml:"location"`
	MinLevel      int      `yaml:"min_level"`
	XPPer         int      `yaml:"xp_per"`
	RequiredItems []string `yaml:"required_items"`
	Drop          *dropDoc `yaml:"drop"`
}

// dropDoc keeps the rate in its authored form ("1/128", "2%", "0.25")
// and leaves parsing to game.ParseDropRate.
type dropDoc struct {
	Item string `yaml:"item"`
	Rate string `yaml:"rate"`
}

// snapshot is a parsed document rearranged for lookup. A snapshot is
// never mutated after parse; reloads swap in a fresh one.
type snapshot struct {
	entries []indexedEntry
	bars    map[string]game.SkillBar
	quests  []ports.QuestInfo
	methods map[string][]ports.TrainingMethod
}

// indexedEntry is one passage with its search index precomputed.
type indexedEntry struct {
	title      string
	source     string
	text       string
	keywords   map[string]struct{}
	titleTerms map[string]struct{}
	textCount  map[string]int
}

func parse(raw []byte) (*snapshot, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}

	snap := &snapshot{
		bars:    make(map[string]game.SkillBar, len(doc.DangerBars)),
		methods: make(map[string][]ports.TrainingMethod, len(doc.TrainingMethods)),
	}

	for i, e := range doc.Entries {
		if strings.TrimSpace(e.Title) == "" {
			return nil, fmt.Errorf("entry %d: missing title", i)
		}
		ie := indexedEntry{
			title:      e.Title,
			source:     e.Source,
			text:       e.Text,
			keywords:   make(map[string]struct{}, len(e.Keywords)),
			titleTerms: termSet(e.Title),
			textCount:  termCount(e.Text),
		}
		for _, kw := range e.Keywords {
			ie.keywords[strings.ToLower(strings.TrimSpace(kw))] = struct{}{}
		}
		snap.entries = append(snap.entries, ie)
	}

	for i, d := range doc.DangerBars {
		loc := strings.ToLower(strings.TrimSpace(d.Location))
		if loc == "" || strings.TrimSpace(d.Skill) == "" {
			return nil, fmt.Errorf("danger bar %d: missing location or skill", i)
		}
		snap.bars[loc] = game.SkillBar{
			Skill: strings.ToLower(strings.TrimSpace(d.Skill)),
			Level: d.Level,
		}
	}

	for i, q := range doc.Quests {
		if strings.TrimSpace(q.Name) == "" {
			return nil, fmt.Errorf("quest %d: missing name", i)
		}
		snap.quests = append(snap.quests, ports.QuestInfo{
			Name:           q.Name,
			Location:       q.Location,
			QuestPoints:    q.QuestPoints,
			RequiredSkills: lowerKeys(q.RequiredSkills),
			RequiredItems:  lowerAll(q.RequiredItems),
		})
	}

	for i, m := range doc.TrainingMethods {
		skill := strings.ToLower(strings.TrimSpace(m.Skill))
		if skill == "" || strings.TrimSpace(m.Method) == "" {
			return nil, fmt.Errorf("training method %d: missing skill or method", i)
		}
		if m.XPPer <= 0 {
			return nil, fmt.Errorf("training method %d (%s): xp_per must be positive", i, m.Method)
		}
		tm := ports.TrainingMethod{
			Skill:         skill,
			Method:        m.Method,
			Location:      m.Location,
			MinLevel:      m.MinLevel,
			XPPer:         m.XPPer,
			RequiredItems: lowerAll(m.RequiredItems),
		}
		if m.Drop != nil {
			if strings.TrimSpace(m.Drop.Item) == "" {
				return nil, fmt.Errorf("training method %d (%s): drop missing item", i, m.Method)
			}
			rate, err := game.ParseDropRate(m.Drop.Rate)
			if err != nil {
				return nil, fmt.Errorf("training method %d (%s): %w", i, m.Method, err)
			}
			tm.Drop = &game.DropTarget{
				Item: strings.ToLower(strings.TrimSpace(m.Drop.Item)),
				Rate: rate,
			}
		}
		snap.methods[skill] = append(snap.methods[skill], tm)
	}

	// Most advanced method first, so the first unlocked method a caller
	// sees is the best one for its level.
	for _, list := range snap.methods {
		sort.SliceStable(list, func(a, b int) bool {
			return list[a].MinLevel > list[b].MinLevel
		})
	}

	return snap, nil
}

// terms splits free text into lowercase search terms.
func terms(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func termSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range terms(s) {
		set[t] = struct{}{}
	}
	return set
}

func termCount(s string) map[string]int {
	counts := make(map[string]int)
	for _, t := range terms(s) {
		counts[t]++
	}
	return counts
}

func lowerAll(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

func lowerKeys(m map[string]int) map[string]int {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
