package nlp

import (
	"context"

	"castnet/internal/util"
	"castnet/pkg/ai"
	"castnet/pkg/common"

	"github.com/pkoukk/tiktoken-go"
)

// AIClassifier classifies the sentiment of single sentences using an AI
// client's structured output.
type AIClassifier struct {
	client ai.TextAIClient

	maxTokens  int
	maxRetries int
}

// NewAIClassifierParams contains configuration options for creating a new AIClassifier.
type NewAIClassifierParams struct {
	Client ai.TextAIClient

	MaxTokens  int
	MaxRetries int
}

// NewAIClassifier creates a new AI-backed sentiment classifier.
func NewAIClassifier(params NewAIClassifierParams) *AIClassifier {
	if params.MaxTokens <= 0 {
		params.MaxTokens = 512
	}
	if params.MaxRetries <= 0 {
		params.MaxRetries = 3
	}

	return &AIClassifier{
		client:     params.Client,
		maxTokens:  params.MaxTokens,
		maxRetries: params.MaxRetries,
	}
}

// Classify returns the sentiment label and confidence for a single sentence.
// Sentences longer than the token budget are truncated before
// classification. Confidence is clamped to [0, 1].
func (c *AIClassifier) Classify(ctx context.Context, text string) (common.Classification, error) {
	truncated, err := c.truncate(text)
	if err != nil {
		return common.Classification{}, err
	}

	prompt := ai.SentimentPrompt + "\nSentence:\n" + truncated

	out, err := util.RetryWithContext(
		ctx,
		c.maxRetries,
		func(ctx context.Context) (common.Classification, error) {
			var out common.Classification
			err := c.client.GenerateCompletionWithFormat(
				ctx,
				"sentiment",
				"Sentiment label with confidence",
				prompt,
				&out,
			)
			return out, err
		},
	)
	if err != nil {
		return common.Classification{}, err
	}

	if out.Confidence < 0 {
		out.Confidence = 0
	}
	if out.Confidence > 1 {
		out.Confidence = 1
	}

	return out, nil
}

func (c *AIClassifier) truncate(text string) (string, error) {
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return "", err
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= c.maxTokens {
		return text, nil
	}

	return enc.Decode(tokens[:c.maxTokens]), nil
}
