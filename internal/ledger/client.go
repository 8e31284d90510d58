// Package ledger talks to the external bank API that owns every balance,
// loan, and transaction in the game. Requests authenticate with an api key
// query parameter, Nessie style.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"finlife/internal/game"
)

const dateLayout = "2006-01-02"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type objectCreated struct {
	ObjectCreated struct {
		ID string `json:"_id"`
	} `json:"objectCreated"`
}

func (c *Client) CreateCustomer(ctx context.Context, firstName, lastName string) (string, error) {
	payload := map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
		"address": map[string]string{
			"street_number": "2920",
			"street_name":   "Broadway",
			"city":          "New York",
			"state":         "NY",
			"zip":           "10027",
		},
	}
	var out objectCreated
	if err := c.postJSON(ctx, "/customers", payload, &out); err != nil {
		return "", err
	}
	return out.ObjectCreated.ID, nil
}

func (c *Client) CreateAccount(ctx context.Context, customerID string, balance int64) (string, error) {
	payload := map[string]any{
		"type":     "Checking",
		"nickname": "checking",
		"balance":  balance,
		"rewards":  0,
	}
	var out objectCreated
	if err := c.postJSON(ctx, "/customers/"+url.PathEscape(customerID)+"/accounts", payload, &out); err != nil {
		return "", err
	}
	return out.ObjectCreated.ID, nil
}

func (c *Client) Deposit(ctx context.Context, accountID string, date time.Time, amount int64, description string) error {
	payload := map[string]any{
		"medium":           "balance",
		"transaction_date": date.Format(dateLayout),
		"amount":           amount,
		"description":      description,
	}
	return c.postJSON(ctx, "/accounts/"+url.PathEscape(accountID)+"/deposits", payload, nil)
}

func (c *Client) Withdraw(ctx context.Context, accountID string, date time.Time, amount int64, description string) error {
	payload := map[string]any{
		"medium":           "balance",
		"transaction_date": date.Format(dateLayout),
		"amount":           amount,
		"description":      description,
	}
	return c.postJSON(ctx, "/accounts/"+url.PathEscape(accountID)+"/withdrawals", payload, nil)
}

func (c *Client) CreateLoan(ctx context.Context, accountID string, date time.Time, amount int64, description string) (string, error) {
	payload := map[string]any{
		"type":          "personal",
		"creation_date": date.Format(dateLayout),
		"amount":        amount,
		"description":   description,
	}
	var out objectCreated
	if err := c.postJSON(ctx, "/accounts/"+url.PathEscape(accountID)+"/loans", payload, &out); err != nil {
		return "", err
	}
	return out.ObjectCreated.ID, nil
}

func (c *Client) PayLoan(ctx context.Context, loanID, accountID string, date time.Time, amount int64) error {
	payload := map[string]any{
		"payer_id":         accountID,
		"transaction_date": date.Format(dateLayout),
		"amount":           amount,
	}
	return c.postJSON(ctx, "/loans/"+url.PathEscape(loanID)+"/payments", payload, nil)
}

func (c *Client) Balance(ctx context.Context, accountID string) (float64, error) {
	var out struct {
		Balance float64 `json:"balance"`
	}
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(accountID), &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

type loanWire struct {
	ID              string   `json:"_id"`
	Description     string   `json:"description"`
	Amount          float64  `json:"amount"`
	RemainingAmount *float64 `json:"remaining_amount"`
}

func (c *Client) Loans(ctx context.Context, accountID string) ([]game.Loan, error) {
	var wire []loanWire
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(accountID)+"/loans", &wire); err != nil {
		return nil, err
	}
	loans := make([]game.Loan, 0, len(wire))
	for _, l := range wire {
		remaining := l.Amount
		if l.RemainingAmount != nil {
			remaining = *l.RemainingAmount
		}
		loans = append(loans, game.Loan{
			ID:              l.ID,
			Description:     l.Description,
			RemainingAmount: remaining,
		})
	}
	return loans, nil
}

type transactionWire struct {
	ID              string  `json:"_id"`
	TransactionDate string  `json:"transaction_date"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
}

// Transactions merges the account's deposits and withdrawals into one list
// sorted newest-first. Entries without a transaction date are dropped.
func (c *Client) Transactions(ctx context.Context, accountID string) ([]game.Transaction, error) {
	var deposits, withdrawals []transactionWire
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(accountID)+"/deposits", &deposits); err != nil {
		return nil, err
	}
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(accountID)+"/withdrawals", &withdrawals); err != nil {
		return nil, err
	}

	all := make([]game.Transaction, 0, len(deposits)+len(withdrawals))
	appendTyped := func(entries []transactionWire, txType string) {
		for _, t := range entries {
			if t.TransactionDate == "" {
				continue
			}
			all = append(all, game.Transaction{
				ID:              t.ID,
				Type:            txType,
				TransactionDate: t.TransactionDate,
				Amount:          t.Amount,
				Description:     t.Description,
			})
		}
	}
	appendTyped(deposits, "deposit")
	appendTyped(withdrawals, "withdrawal")

	// ISO dates order lexicographically.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].TransactionDate > all[j].TransactionDate
	})
	return all, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path + "?key=" + url.QueryEscape(c.apiKey)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ledger status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ledger response: %w", err)
	}
	return nil
}
