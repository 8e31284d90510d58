package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"finlife/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

type StartResponse struct {
	GameID      string           `json:"gameId"`
	Message     string           `json:"message"`
	PlayerState game.PlayerState `json:"playerState"`
}

type StateResponse struct {
	PlayerState game.PlayerState `json:"playerState"`
}

type AdvanceResponse struct {
	GameOver     bool             `json:"gameOver"`
	Message      string           `json:"message"`
	PlayerState  game.PlayerState `json:"playerState"`
	NextEvent    *game.Event      `json:"nextEvent"`
	FinalSummary *game.Summary    `json:"finalSummary"`
}

type DecisionResponse struct {
	Message     string           `json:"message"`
	PlayerState game.PlayerState `json:"playerState"`
}

type HistoryResponse struct {
	History []game.Transaction `json:"transaction_history"`
}

func (c *Client) StartGame(ctx context.Context, firstName, lastName string) (StartResponse, error) {
	var out StartResponse
	err := c.jsonRequest(ctx, "/game/start", map[string]any{
		"firstName": firstName,
		"lastName":  lastName,
	}, &out)
	return out, err
}

func (c *Client) State(ctx context.Context, gameID string) (StateResponse, error) {
	var out StateResponse
	err := c.jsonRequest(ctx, "/game/state", map[string]any{"gameId": gameID}, &out)
	return out, err
}

func (c *Client) AdvanceYear(ctx context.Context, gameID string) (AdvanceResponse, error) {
	var out AdvanceResponse
	err := c.jsonRequest(ctx, "/game/advance-year", map[string]any{"gameId": gameID}, &out)
	return out, err
}

func (c *Client) FastForward(ctx context.Context, gameID string, targetAge int) (AdvanceResponse, error) {
	var out AdvanceResponse
	err := c.jsonRequest(ctx, "/game/fast-forward", map[string]any{
		"gameId":    gameID,
		"targetAge": targetAge,
	}, &out)
	return out, err
}

func (c *Client) DecideMCQ(ctx context.Context, gameID string, choice game.Choice) (DecisionResponse, error) {
	var out DecisionResponse
	err := c.jsonRequest(ctx, "/decision/mcq", map[string]any{
		"gameId": gameID,
		"choice": choice,
	}, &out)
	return out, err
}

func (c *Client) DecideJob(ctx context.Context, gameID string, choice game.Choice) (DecisionResponse, error) {
	var out DecisionResponse
	err := c.jsonRequest(ctx, "/decision/job", map[string]any{
		"gameId": gameID,
		"choice": choice,
	}, &out)
	return out, err
}

func (c *Client) PayLoan(ctx context.Context, gameID string, amount int64) (DecisionResponse, error) {
	var out DecisionResponse
	err := c.jsonRequest(ctx, "/loan/pay", map[string]any{
		"gameId": gameID,
		"amount": amount,
	}, &out)
	return out, err
}

func (c *Client) History(ctx context.Context, gameID string) ([]game.Transaction, error) {
	var out HistoryResponse
	err := c.jsonRequest(ctx, "/game/history", map[string]any{"gameId": gameID}, &out)
	return out.History, err
}

func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("api status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) jsonRequest(ctx context.Context, path string, in any, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var wire struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &wire) == nil && wire.Error != "" {
			return fmt.Errorf("api status %d: %s", resp.StatusCode, wire.Error)
		}
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
