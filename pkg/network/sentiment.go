package network

import (
	"context"
	"strings"

	"castnet/pkg/common"
	"castnet/pkg/logger"
)

// Classifier is the external sentiment classifier contract. Implementations
// return a label and a confidence in [0, 1] for a single sentence.
type Classifier interface {
	Classify(ctx context.Context, text string) (common.Classification, error)
}

var positiveLabels = []string{
	"positive", "joy", "love", "optimism", "admiration", "approval", "caring",
}

var negativeLabels = []string{
	"negative", "anger", "sadness", "fear", "disgust", "disapproval", "annoyance",
}

// LabelScore maps a classifier label and confidence to a signed sentiment
// score in [-1, 1]. Labels are matched case-insensitively by substring
// against the positive and negative vocabularies; anything else, including
// explicit neutral labels, scores 0.0.
func LabelScore(label string, confidence float64) float64 {
	l := strings.ToLower(label)

	for _, p := range positiveLabels {
		if strings.Contains(l, p) {
			return confidence
		}
	}
	for _, n := range negativeLabels {
		if strings.Contains(l, n) {
			return -confidence
		}
	}

	return 0.0
}

// SentenceScorer turns a sentence into a signed sentiment score using an
// external classifier. Classifier failures degrade to a neutral 0.0 score
// instead of aborting the run; sentiment is an enrichment, not a
// correctness-critical signal.
type SentenceScorer struct {
	classifier Classifier
}

// NewSentenceScorer creates a scorer backed by the given classifier.
func NewSentenceScorer(classifier Classifier) *SentenceScorer {
	return &SentenceScorer{classifier: classifier}
}

// Score classifies the sentence and maps the result to [-1, 1]. On
// classifier failure it logs a warning and returns 0.0.
func (s *SentenceScorer) Score(ctx context.Context, text string) float64 {
	classification, err := s.classifier.Classify(ctx, text)
	if err != nil {
		logger.Warn("sentiment classification failed, scoring neutral", "err", err)
		return 0.0
	}

	return LabelScore(classification.Label, classification.Confidence)
}
