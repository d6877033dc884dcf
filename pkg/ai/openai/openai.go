package openai

import (
	"sync"

	"castnet/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// TextOpenAIClient is a client for OpenAI-compatible chat endpoints. It uses
// the tagging model for schema-constrained structured output and the
// completion model for plain text generation.
//
// A TextOpenAIClient should be created using NewTextOpenAIClient.
type TextOpenAIClient struct {
	taggingModel    string
	completionModel string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewTextOpenAIClientParams defines the configuration parameters for creating
// a new TextOpenAIClient.
//
// TaggingModel specifies the model used for structured tagging output.
// CompletionModel specifies the model used for plain completions.
// ChatURL and ChatKey configure the chat/completion API endpoint; an empty
// ChatURL means the official OpenAI endpoint.
type NewTextOpenAIClientParams struct {
	TaggingModel    string
	CompletionModel string

	ChatURL string
	ChatKey string
}

// NewTextOpenAIClient creates and returns a new TextOpenAIClient configured
// with the provided parameters.
//
// Example:
//
//	params := openai.NewTextOpenAIClientParams{
//		TaggingModel:    "gpt-4o-mini",
//		CompletionModel: "gpt-4o-mini",
//		ChatKey:         os.Getenv("OPENAI_API_KEY"),
//	}
//	client := openai.NewTextOpenAIClient(params)
func NewTextOpenAIClient(
	params NewTextOpenAIClientParams,
) *TextOpenAIClient {
	chatClient := newOpenaiClient(params.ChatURL, params.ChatKey)

	return &TextOpenAIClient{
		taggingModel:    params.TaggingModel,
		completionModel: params.CompletionModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics: ai.ModelMetrics{
			InputTokens:  0,
			OutputTokens: 0,
			TotalTokens:  0,
			DurationMs:   0,
		},

		ChatClient: chatClient,
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
