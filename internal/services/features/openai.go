package features

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const hookTitlePrompt = `You write short hook titles for vertical video clips.
Reply with a single title of at most ten words. No quotes, no hashtags, no explanation.`

// ChatCompleter is the subset of the OpenAI client used by model-backed stages
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// HookTitleStage asks a chat model for a hook title for the clip
type HookTitleStage struct {
	client ChatCompleter
	model  string
}

var _ Stage = (*HookTitleStage)(nil)

// NewOpenAIClient builds a client for apiKey, optionally against a custom base URL
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// NewHookTitleStage creates a stage backed by client. An empty model uses GPT-3.5 Turbo.
func NewHookTitleStage(client ChatCompleter, model string) *HookTitleStage {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &HookTitleStage{client: client, model: model}
}

// Apply requests a title and reports it with the descriptor's baseline confidence
func (s *HookTitleStage) Apply(ctx context.Context, desc Descriptor, in Input) (Outcome, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: hookTitlePrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: hookTitleRequest(in),
			},
		},
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("hook title request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Outcome{}, errors.New("hook title request: empty response")
	}

	title := strings.TrimSpace(resp.Choices[len(resp.Choices)-1].Message.Content)
	title = strings.Trim(title, `"`)
	if title == "" {
		return Outcome{}, errors.New("hook title request: blank title")
	}

	return Outcome{
		Description: fmt.Sprintf("Generated hook title: %s", title),
		Confidence:  desc.Confidence,
	}, nil
}

func hookTitleRequest(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Video title: %s\n", in.Metadata.Title)
	if in.Metadata.Uploader != "" {
		fmt.Fprintf(&b, "Channel: %s\n", in.Metadata.Uploader)
	}
	if in.EndTime != nil {
		fmt.Fprintf(&b, "Clip window: %.0fs to %.0fs\n", in.StartTime, *in.EndTime)
	} else {
		fmt.Fprintf(&b, "Clip window: from %.0fs to the end\n", in.StartTime)
	}
	if in.Metadata.Description != "" {
		fmt.Fprintf(&b, "\n%s", in.Metadata.Description)
	}
	return b.String()
}
