package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/de-tools/data-brief/pkg/models/domain"
	openai "github.com/sashabaranov/go-openai"
)

const narratePrompt = `You are a sharp business analyst. Given a user question and a data series,
reply with JSON: {"summary": "<2-3 sentence insight>", "suggestions": ["<follow-up question>", ...]}.
Keep suggestions short and at most three.`

const reportPrompt = `You compile executive briefings from an analysis session transcript.
Reply with JSON: {"title": "...", "key_findings": ["..."], "suggestions": ["..."]}.
Findings are concrete observations; suggestions are strategic next moves.`

// OpenAINarrative generates summaries, follow-ups and session reports
// with a chat model in JSON mode.
type OpenAINarrative struct {
	client *openai.Client
	model  string
}

func NewOpenAINarrative(apiKey, model string) *OpenAINarrative {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAINarrative{client: openai.NewClient(apiKey), model: model}
}

func (n *OpenAINarrative) Narrate(ctx context.Context, query string, points []domain.SeriesPoint, unit string) (string, []string, error) {
	payload, err := json.Marshal(map[string]any{
		"question": query,
		"unit":     unit,
		"data":     points,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode narrate payload: %w", err)
	}

	content, err := n.complete(ctx, narratePrompt, string(payload))
	if err != nil {
		return "", nil, err
	}

	var parsed struct {
		Summary     string   `json:"summary"`
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return "", nil, fmt.Errorf("model returned malformed narrate JSON: %w", err)
	}
	return parsed.Summary, parsed.Suggestions, nil
}

func (n *OpenAINarrative) Report(ctx context.Context, transcript string) (domain.SessionReport, error) {
	content, err := n.complete(ctx, reportPrompt, transcript)
	if err != nil {
		return domain.SessionReport{}, err
	}

	var parsed struct {
		Title       string   `json:"title"`
		KeyFindings []string `json:"key_findings"`
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return domain.SessionReport{}, fmt.Errorf("model returned malformed report JSON: %w", err)
	}
	return domain.SessionReport{
		Title:       parsed.Title,
		KeyFindings: parsed.KeyFindings,
		Suggestions: parsed.Suggestions,
	}, nil
}

func (n *OpenAINarrative) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
