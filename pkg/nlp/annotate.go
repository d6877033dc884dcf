package nlp

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"castnet/internal/util"
	"castnet/pkg/ai"
	"castnet/pkg/common"
	"castnet/pkg/logger"

	"github.com/pkoukk/tiktoken-go"
	"golang.org/x/sync/errgroup"
)

// Annotator attaches entity mentions to sentences.
type Annotator interface {
	Annotate(ctx context.Context, sentences []common.Sentence) ([]common.Sentence, error)
}

// AIAnnotator implements Annotator using an AI client's structured-output
// entity tagging. Sentences are grouped into token-budgeted windows and
// tagged in parallel.
type AIAnnotator struct {
	client ai.TextAIClient
	labels []string

	windowTokens int
	maxParallel  int
	maxRetries   int
}

// NewAIAnnotatorParams contains configuration options for creating a new AIAnnotator.
type NewAIAnnotatorParams struct {
	Client       ai.TextAIClient
	EntityLabels []string

	WindowTokens        int
	MaxParallelRequests int
	MaxRetries          int
}

// NewAIAnnotator creates a new AI-backed annotator. EntityLabels defaults to
// PERSON when empty.
func NewAIAnnotator(params NewAIAnnotatorParams) *AIAnnotator {
	if len(params.EntityLabels) == 0 {
		params.EntityLabels = []string{"PERSON"}
	}
	if params.WindowTokens <= 0 {
		params.WindowTokens = 2000
	}
	if params.MaxParallelRequests <= 0 {
		params.MaxParallelRequests = 4
	}
	if params.MaxRetries <= 0 {
		params.MaxRetries = 3
	}

	labels := make([]string, 0, len(params.EntityLabels))
	for _, l := range params.EntityLabels {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l != "" {
			labels = append(labels, l)
		}
	}

	return &AIAnnotator{
		client:       params.Client,
		labels:       labels,
		windowTokens: params.WindowTokens,
		maxParallel:  params.MaxParallelRequests,
		maxRetries:   params.MaxRetries,
	}
}

type taggedMention struct {
	Sentence int    `json:"sentence" jsonschema_description:"1-based sentence number as given in the input"`
	Text     string `json:"text" jsonschema_description:"Mention text exactly as it appears in the sentence"`
	Label    string `json:"label" jsonschema_description:"Entity label of the mention"`
}

type mentionResponse struct {
	Mentions []taggedMention `json:"mentions"`
}

// Annotate tags entity mentions in every sentence and returns a copy of the
// input with Mentions filled in. Sentence order and indices are preserved.
func (a *AIAnnotator) Annotate(
	ctx context.Context,
	sentences []common.Sentence,
) ([]common.Sentence, error) {
	result := make([]common.Sentence, len(sentences))
	copy(result, sentences)

	if len(sentences) == 0 {
		return result, nil
	}

	windows, err := a.buildWindows(sentences)
	if err != nil {
		return nil, err
	}

	labelList := strings.Join(a.labels, ", ")

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxParallel)

	for _, window := range windows {
		g.Go(func() error {
			prompt := a.buildPrompt(labelList, window)

			resp, err := util.RetryWithContext(
				gCtx,
				a.maxRetries,
				func(ctx context.Context) (mentionResponse, error) {
					var out mentionResponse
					err := a.client.GenerateCompletionWithFormat(
						ctx,
						"mentions",
						"Entity mentions tagged per sentence",
						prompt,
						&out,
					)
					return out, err
				},
			)
			if err != nil {
				return fmt.Errorf("failed to tag sentences %d-%d: %w",
					window[0].Index, window[len(window)-1].Index, err)
			}

			mu.Lock()
			a.applyMentions(result, window, resp.Mentions)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// buildWindows groups consecutive sentences so each group stays under the
// token budget. A single oversized sentence still gets its own window.
func (a *AIAnnotator) buildWindows(sentences []common.Sentence) ([][]common.Sentence, error) {
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return nil, err
	}

	var windows [][]common.Sentence
	var current []common.Sentence
	currentTokens := 0

	for _, sentence := range sentences {
		tokens := len(enc.Encode(sentence.Text, nil, nil))

		if len(current) > 0 && currentTokens+tokens > a.windowTokens {
			windows = append(windows, current)
			current = nil
			currentTokens = 0
		}

		current = append(current, sentence)
		currentTokens += tokens
	}

	if len(current) > 0 {
		windows = append(windows, current)
	}

	return windows, nil
}

func (a *AIAnnotator) buildPrompt(labelList string, window []common.Sentence) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(ai.MentionPrompt, labelList, labelList))
	sb.WriteString("\nSentences:\n")
	for _, sentence := range window {
		sb.WriteString(fmt.Sprintf("%d. %s\n", sentence.Index+1, sentence.Text))
	}
	return sb.String()
}

// applyMentions validates tagged mentions against the window and attaches
// them to the matching sentences. Mentions pointing outside the window,
// carrying an unknown label, or naming text absent from the sentence are
// dropped with a warning.
func (a *AIAnnotator) applyMentions(
	result []common.Sentence,
	window []common.Sentence,
	mentions []taggedMention,
) {
	lo := window[0].Index
	hi := window[len(window)-1].Index

	allowed := make(map[string]bool, len(a.labels))
	for _, l := range a.labels {
		allowed[l] = true
	}

	seen := make(map[string]bool)

	for _, m := range mentions {
		idx := m.Sentence - 1
		if idx < lo || idx > hi {
			logger.Warn("dropping mention outside window", "sentence", m.Sentence, "text", m.Text)
			continue
		}

		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}

		label := strings.ToUpper(strings.TrimSpace(m.Label))
		if !allowed[label] {
			logger.Warn("dropping mention with unknown label", "label", m.Label, "text", text)
			continue
		}

		if !strings.Contains(result[idx].Text, text) {
			logger.Warn("dropping mention not found in sentence", "sentence", m.Sentence, "text", text)
			continue
		}

		key := fmt.Sprintf("%d|%s|%s", idx, text, label)
		if seen[key] {
			continue
		}
		seen[key] = true

		result[idx].Mentions = append(result[idx].Mentions, common.EntityMention{
			Text:  text,
			Label: label,
		})
	}
}
