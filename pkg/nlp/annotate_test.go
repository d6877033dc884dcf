package nlp

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"

	"castnet/pkg/ai"
	"castnet/pkg/common"
)

type mockAIClient struct {
	completionFn func(ctx context.Context, prompt string) (string, error)
	formatFn     func(ctx context.Context, prompt string, out any) error

	formatCalls int
}

func (m *mockAIClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	if m.completionFn == nil {
		return "", nil
	}
	return m.completionFn(ctx, prompt)
}

func (m *mockAIClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	m.formatCalls++
	if m.formatFn == nil {
		return nil
	}
	return m.formatFn(ctx, prompt, out)
}

func (m *mockAIClient) LoadModel(ctx context.Context, opts ...ai.GenerateOption) error {
	return nil
}

func (m *mockAIClient) ResetMetrics() {}

func (m *mockAIClient) GetMetrics() ai.ModelMetrics {
	return ai.ModelMetrics{}
}

var sentenceNumberRe = regexp.MustCompile(`(?m)^(\d+)\. `)

// windowIndices extracts the 1-based sentence numbers present in a prompt.
func windowIndices(prompt string) []int {
	var out []int
	for _, m := range sentenceNumberRe.FindAllStringSubmatch(prompt, -1) {
		n, _ := strconv.Atoi(m[1])
		out = append(out, n)
	}
	return out
}

func TestAIAnnotatorAnnotate(t *testing.T) {
	sentences := []common.Sentence{
		{Index: 0, Text: "Alice met Bob."},
		{Index: 1, Text: "Carol slept."},
	}

	client := &mockAIClient{
		formatFn: func(ctx context.Context, prompt string, out any) error {
			resp := out.(*mentionResponse)
			resp.Mentions = []taggedMention{
				{Sentence: 1, Text: "Alice", Label: "PERSON"},
				{Sentence: 1, Text: "Bob", Label: "person"},
				{Sentence: 2, Text: "Carol", Label: "PERSON"},
			}
			return nil
		},
	}

	annotator := NewAIAnnotator(NewAIAnnotatorParams{Client: client})

	got, err := annotator.Annotate(context.Background(), sentences)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Annotate() returned %d sentences, want 2", len(got))
	}
	if len(got[0].Mentions) != 2 {
		t.Fatalf("sentence 0 has %d mentions, want 2", len(got[0].Mentions))
	}
	if got[0].Mentions[0] != (common.EntityMention{Text: "Alice", Label: "PERSON"}) {
		t.Errorf("mention = %+v, want Alice/PERSON", got[0].Mentions[0])
	}
	// lowercase label from the model is normalized
	if got[0].Mentions[1] != (common.EntityMention{Text: "Bob", Label: "PERSON"}) {
		t.Errorf("mention = %+v, want Bob/PERSON", got[0].Mentions[1])
	}
	if len(got[1].Mentions) != 1 || got[1].Mentions[0].Text != "Carol" {
		t.Errorf("sentence 1 mentions = %+v, want Carol", got[1].Mentions)
	}
}

func TestAIAnnotatorDropsInvalidMentions(t *testing.T) {
	sentences := []common.Sentence{
		{Index: 0, Text: "Alice met Bob."},
	}

	client := &mockAIClient{
		formatFn: func(ctx context.Context, prompt string, out any) error {
			resp := out.(*mentionResponse)
			resp.Mentions = []taggedMention{
				{Sentence: 1, Text: "Alice", Label: "PERSON"},
				{Sentence: 1, Text: "Alice", Label: "PERSON"}, // duplicate
				{Sentence: 5, Text: "Bob", Label: "PERSON"},   // out of range
				{Sentence: 1, Text: "Zeus", Label: "PERSON"},  // not in sentence
				{Sentence: 1, Text: "Bob", Label: "CITY"},     // unknown label
				{Sentence: 1, Text: "  ", Label: "PERSON"},    // empty text
			}
			return nil
		},
	}

	annotator := NewAIAnnotator(NewAIAnnotatorParams{Client: client})

	got, err := annotator.Annotate(context.Background(), sentences)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	if len(got[0].Mentions) != 1 {
		t.Fatalf("sentence 0 has %d mentions, want 1: %+v", len(got[0].Mentions), got[0].Mentions)
	}
	if got[0].Mentions[0].Text != "Alice" {
		t.Errorf("surviving mention = %+v, want Alice", got[0].Mentions[0])
	}
}

func TestAIAnnotatorWindowing(t *testing.T) {
	sentences := []common.Sentence{
		{Index: 0, Text: "Alice met Bob at the harbor and they argued for a long while."},
		{Index: 1, Text: "Carol slept through the whole commotion in the next room."},
		{Index: 2, Text: "Dave wrote everything down."},
	}

	client := &mockAIClient{
		formatFn: func(ctx context.Context, prompt string, out any) error {
			indices := windowIndices(prompt)
			if len(indices) == 0 {
				t.Errorf("prompt contains no numbered sentences:\n%s", prompt)
			}
			return nil
		},
	}

	// force one sentence per window, sequential so formatCalls stays exact
	annotator := NewAIAnnotator(NewAIAnnotatorParams{
		Client:              client,
		WindowTokens:        1,
		MaxParallelRequests: 1,
	})

	if _, err := annotator.Annotate(context.Background(), sentences); err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	if client.formatCalls != 3 {
		t.Errorf("formatCalls = %d, want 3 (one window per sentence)", client.formatCalls)
	}
}

func TestAIAnnotatorRetriesThenFails(t *testing.T) {
	sentences := []common.Sentence{
		{Index: 0, Text: "Alice met Bob."},
	}

	wantErr := errors.New("model unavailable")
	client := &mockAIClient{
		formatFn: func(ctx context.Context, prompt string, out any) error {
			return wantErr
		},
	}

	annotator := NewAIAnnotator(NewAIAnnotatorParams{
		Client:     client,
		MaxRetries: 2,
	})

	if _, err := annotator.Annotate(context.Background(), sentences); !errors.Is(err, wantErr) {
		t.Errorf("Annotate() error = %v, want %v", err, wantErr)
	}
	if client.formatCalls != 2 {
		t.Errorf("formatCalls = %d, want 2", client.formatCalls)
	}
}

func TestAIAnnotatorEmptyInput(t *testing.T) {
	client := &mockAIClient{}
	annotator := NewAIAnnotator(NewAIAnnotatorParams{Client: client})

	got, err := annotator.Annotate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Annotate() = %+v, want empty", got)
	}
	if client.formatCalls != 0 {
		t.Errorf("formatCalls = %d, want 0", client.formatCalls)
	}
}
