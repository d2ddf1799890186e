package staticknowledge

import (
	"context"
	"sort"

	"runemind/internal/app/ports"
)

// Field weights: an author-tagged keyword beats a title word, which
// beats a passing mention in the text.
const (
	keywordWeight = 2.0
	titleWeight   = 1.5
	textWeight    = 0.5
)

// Query ranks passages against free text, best first. Ties keep
// document order. A positive limit caps the result count.
func (b *Base) Query(_ context.Context, text string, limit int) ([]ports.KnowledgeHit, error) {
	queryTerms := terms(text)
	if len(queryTerms) == 0 {
		return nil, nil
	}

	snap := b.current()
	var hits []ports.KnowledgeHit
	for _, e := range snap.entries {
		score := e.score(queryTerms)
		if score <= 0 {
			continue
		}
		hits = append(hits, ports.KnowledgeHit{
			Title:  e.title,
			Source: e.source,
			Text:   e.text,
			Score:  score,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (e indexedEntry) score(queryTerms []string) float64 {
	var score float64
	for _, t := range queryTerms {
		if _, ok := e.keywords[t]; ok {
			score += keywordWeight
		}
		if _, ok := e.titleTerms[t]; ok {
			score += titleWeight
		}
		score += textWeight * float64(e.textCount[t])
	}
	return score
}
