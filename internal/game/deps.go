package game

import (
	"context"
	"time"
)

// Ledger is the remote bank boundary. It is the sole source of truth for
// balances, loans, and transactions; the game only requests effects and reads
// the result back.
type Ledger interface {
	CreateCustomer(ctx context.Context, firstName, lastName string) (string, error)
	CreateAccount(ctx context.Context, customerID string, balance int64) (string, error)
	Deposit(ctx context.Context, accountID string, date time.Time, amount int64, description string) error
	Withdraw(ctx context.Context, accountID string, date time.Time, amount int64, description string) error
	CreateLoan(ctx context.Context, accountID string, date time.Time, amount int64, description string) (string, error)
	PayLoan(ctx context.Context, loanID, accountID string, date time.Time, amount int64) error
	Balance(ctx context.Context, accountID string) (float64, error)
	Loans(ctx context.Context, accountID string) ([]Loan, error)
	Transactions(ctx context.Context, accountID string) ([]Transaction, error)
}

// ScenarioContext is the player situation handed to the generator.
type ScenarioContext struct {
	Name       string
	Age        int
	Date       string
	Balance    float64
	Income     int64
	JobTitle   string
	Loans      []Loan
	LifeEvents []string
	Specifier  string
}

// SummaryContext feeds the retirement retrospective.
type SummaryContext struct {
	Name    string
	Balance float64
	Income  int64
	Loans   []Loan
	History []Transaction
}

// ScenarioSource produces game content. Implementations may fail; the game
// folds those failures into degraded events instead of failing the turn.
type ScenarioSource interface {
	MCQ(ctx context.Context, sc ScenarioContext) (Event, error)
	JobOffer(ctx context.Context, sc ScenarioContext) (Event, error)
	FinalSummary(ctx context.Context, sc SummaryContext) (Summary, error)
}

// SessionStore owns the session-id mapping. Get must return a private copy
// and Put must store one, so callers can mutate freely and abandon a copy on
// a failed transition. A missing id is ErrSessionNotFound.
type SessionStore interface {
	Put(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
