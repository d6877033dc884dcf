package network

import (
	"castnet/pkg/common"
)

// UniqueEntities returns the set of qualifying entity names in a sentence.
// A mention qualifies when its label is in the accepted set. Entities are
// deduplicated by exact surface string; no case or whitespace normalization
// is applied, so two forms that differ by a single character are distinct.
func UniqueEntities(sentence common.Sentence, acceptedLabels map[string]bool) map[string]bool {
	entities := make(map[string]bool)
	for _, mention := range sentence.Mentions {
		if !acceptedLabels[mention.Label] {
			continue
		}
		entities[mention.Text] = true
	}
	return entities
}
