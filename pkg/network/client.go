package network

import (
	"context"
	"errors"
	"strings"

	"castnet/pkg/common"
	"castnet/pkg/logger"
)

// DefaultMinMentions is the inclusive mention threshold separating major
// entities from minor ones when the caller does not override it.
const DefaultMinMentions = 3

// NetworkClient builds co-occurrence networks from annotated sentences. A
// client is cheap and reusable across runs; all per-run state lives in the
// aggregates created inside BuildNetwork.
type NetworkClient struct {
	minMentions    int
	useSentiment   bool
	acceptedLabels map[string]bool

	scorer *SentenceScorer
}

// NewNetworkClientParams contains configuration options for creating a new NetworkClient.
type NewNetworkClientParams struct {
	// MinMentions is the inclusive sentence-count threshold for an entity
	// to become a node. Defaults to DefaultMinMentions.
	MinMentions int

	// UseSentiment enables per-relationship sentiment averaging. Requires
	// a Classifier.
	UseSentiment bool

	// EntityLabels is the set of accepted entity labels. Defaults to PERSON.
	EntityLabels []string

	// Classifier scores sentence sentiment. Only consulted when
	// UseSentiment is set.
	Classifier Classifier
}

// NewNetworkClient creates a network builder with the given configuration.
func NewNetworkClient(params NewNetworkClientParams) (*NetworkClient, error) {
	if params.MinMentions <= 0 {
		params.MinMentions = DefaultMinMentions
	}
	if len(params.EntityLabels) == 0 {
		params.EntityLabels = []string{"PERSON"}
	}
	if params.UseSentiment && params.Classifier == nil {
		return nil, errors.New("sentiment tracking requires a classifier")
	}

	accepted := make(map[string]bool, len(params.EntityLabels))
	for _, label := range params.EntityLabels {
		label = strings.ToUpper(strings.TrimSpace(label))
		if label != "" {
			accepted[label] = true
		}
	}

	client := &NetworkClient{
		minMentions:    params.MinMentions,
		useSentiment:   params.UseSentiment,
		acceptedLabels: accepted,
	}
	if params.UseSentiment {
		client.scorer = NewSentenceScorer(params.Classifier)
	}

	return client, nil
}

// Result is the complete output of one analysis run: the materialized
// graph plus the mention counts and major-entity set behind it, for
// reporting.
type Result struct {
	Graph         *common.Graph   `json:"graph"`
	MentionCounts map[string]int  `json:"mention_counts"`
	Major         map[string]bool `json:"major_entities"`
	SentenceCount int             `json:"sentence_count"`
}

// BuildNetwork runs the two-phase aggregation over annotated sentences and
// materializes the graph. Phase 1 counts mentions and fixes the
// major-entity set; phase 2 accumulates pairwise co-occurrences and,
// when enabled, per-sentence sentiment, scoring each qualifying sentence
// exactly once. Empty input yields a valid empty graph.
func (c *NetworkClient) BuildNetwork(
	ctx context.Context,
	sentences []common.Sentence,
) (*Result, error) {
	entitySets := make([]map[string]bool, len(sentences))
	for i, sentence := range sentences {
		entitySets[i] = UniqueEntities(sentence, c.acceptedLabels)
	}

	mentionCounts := CountMentions(entitySets)
	major := MajorEntities(mentionCounts, c.minMentions)

	logger.Debug("major entities fixed",
		"entities", len(mentionCounts),
		"major", len(major),
		"min_mentions", c.minMentions,
	)

	aggregator := NewAggregator(major, c.useSentiment)

	for i, set := range entitySets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(set) < 2 {
			continue
		}

		score := 0.0
		if c.useSentiment {
			score = c.scorer.Score(ctx, sentences[i].Text)
		}

		aggregator.AddSentence(set, score)
	}

	graph := Materialize(MaterializeParams{
		Major:           major,
		FullConnections: aggregator.FullConnections(),
		PairCounts:      aggregator.PairCounts(),
		PairSentiments:  aggregator.PairSentiments(),
		UseSentiment:    c.useSentiment,
	})

	return &Result{
		Graph:         graph,
		MentionCounts: mentionCounts,
		Major:         major,
		SentenceCount: len(sentences),
	}, nil
}
