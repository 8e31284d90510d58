// Package scenario generates game content with a chat-completion model:
// financial dilemmas, job offers, and the retirement retrospective.
package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"finlife/internal/game"
)

const DefaultModel = openai.GPT4oMini

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *Client) MCQ(ctx context.Context, sc game.ScenarioContext) (game.Event, error) {
	raw, err := c.complete(ctx, mcqPrompt(sc))
	if err != nil {
		return game.Event{}, err
	}
	return decodeEvent(raw, game.EventMCQ)
}

func (c *Client) JobOffer(ctx context.Context, sc game.ScenarioContext) (game.Event, error) {
	raw, err := c.complete(ctx, jobOfferPrompt(sc))
	if err != nil {
		return game.Event{}, err
	}
	return decodeEvent(raw, game.EventJob)
}

func (c *Client) FinalSummary(ctx context.Context, sc game.SummaryContext) (game.Summary, error) {
	raw, err := c.complete(ctx, finalSummaryPrompt(sc))
	if err != nil {
		return game.Summary{}, err
	}
	var summary game.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return game.Summary{}, fmt.Errorf("decode final summary: %w", err)
	}
	if summary.PersonaTitle == "" || summary.Summary == "" {
		return game.Summary{}, fmt.Errorf("final summary is missing persona_title or summary")
	}
	return summary, nil
}

func (c *Client) complete(ctx context.Context, prompt string) ([]byte, error) {
	completion, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}
	return []byte(stripFences(completion.Choices[0].Message.Content)), nil
}

// stripFences removes markdown code fences some models wrap around JSON even
// in JSON mode.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// decodeEvent parses a generated event, tags its kind exactly once, and
// rejects shapes the game cannot apply.
func decodeEvent(raw []byte, kind game.EventKind) (game.Event, error) {
	var event game.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return game.Event{}, fmt.Errorf("decode %s event: %w", kind, err)
	}
	event.Kind = kind
	event.Err = ""
	if len(event.Choices) == 0 {
		return game.Event{}, fmt.Errorf("%s event has no choices", kind)
	}
	for i, choice := range event.Choices {
		isJob := choice.Impact.Kind == game.ImpactIncome
		if kind == game.EventJob && !isJob {
			return game.Event{}, fmt.Errorf("job event choice %d is missing an income impact", i)
		}
		if kind == game.EventMCQ && isJob {
			return game.Event{}, fmt.Errorf("mcq event choice %d carries an income impact", i)
		}
		if choice.Impact.Kind == "" {
			return game.Event{}, fmt.Errorf("%s event choice %d is missing a financial impact", kind, i)
		}
	}
	return event, nil
}
