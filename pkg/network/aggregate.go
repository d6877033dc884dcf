package network

import "sort"

// Pair is a canonical unordered entity pair: A is always lexicographically
// smaller than B. Always construct pairs through NewPair so the same two
// entities map to the same key regardless of order.
type Pair struct {
	A string
	B string
}

// NewPair returns the canonical pair for two entity names.
func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// CountMentions counts, per entity, the number of sentences the entity
// appears in at least once. Counts only ever grow as sentences are added.
func CountMentions(entitySets []map[string]bool) map[string]int {
	counts := make(map[string]int)
	for _, set := range entitySets {
		for entity := range set {
			counts[entity]++
		}
	}
	return counts
}

// MajorEntities returns the entities whose mention count reaches the
// inclusive minMentions threshold.
func MajorEntities(counts map[string]int, minMentions int) map[string]bool {
	major := make(map[string]bool)
	for entity, count := range counts {
		if count >= minMentions {
			major[entity] = true
		}
	}
	return major
}

// Aggregator accumulates co-occurrence statistics over the sentences of one
// analysis run. It must be created after the major-entity set is known,
// because pair bookkeeping depends on the major/minor split. An Aggregator
// is single-run state and is not safe for concurrent use.
type Aggregator struct {
	major        map[string]bool
	useSentiment bool

	fullConnections map[string]int
	pairCounts      map[Pair]int
	pairSentiments  map[Pair][]float64
}

// NewAggregator creates an aggregator for one run over the given
// major-entity set.
func NewAggregator(major map[string]bool, useSentiment bool) *Aggregator {
	return &Aggregator{
		major:        major,
		useSentiment: useSentiment,

		fullConnections: make(map[string]int),
		pairCounts:      make(map[Pair]int),
		pairSentiments:  make(map[Pair][]float64),
	}
}

// AddSentence folds one sentence's unique entity set into the aggregates.
// Every unordered pair of entities in the sentence increments both members'
// full-connection counts, whether or not the partner is major. Pairs where
// both members are major additionally increment the pair's co-occurrence
// count and, when sentiment is enabled, record the sentence's score. A
// sentence with fewer than two entities contributes nothing; there are no
// self-loops.
func (a *Aggregator) AddSentence(entities map[string]bool, sentimentScore float64) {
	if len(entities) < 2 {
		return
	}

	names := make([]string, 0, len(entities))
	for entity := range entities {
		names = append(names, entity)
	}
	sort.Strings(names)

	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			entity1, entity2 := names[i], names[j]

			a.fullConnections[entity1]++
			a.fullConnections[entity2]++

			if a.major[entity1] && a.major[entity2] {
				pair := NewPair(entity1, entity2)
				a.pairCounts[pair]++
				if a.useSentiment {
					a.pairSentiments[pair] = append(a.pairSentiments[pair], sentimentScore)
				}
			}
		}
	}
}

// FullConnections returns the per-entity count of pair participations,
// minor partners included.
func (a *Aggregator) FullConnections() map[string]int {
	return a.fullConnections
}

// PairCounts returns the co-occurrence count per major-major pair.
func (a *Aggregator) PairCounts() map[Pair]int {
	return a.pairCounts
}

// PairSentiments returns the per-pair sentiment samples in the order the
// sentences were added.
func (a *Aggregator) PairSentiments() map[Pair][]float64 {
	return a.pairSentiments
}
