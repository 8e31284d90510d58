package game

import "time"

const (
	StartAge      = 16
	RetirementAge = 67

	StartBalance = int64(10_000)

	DefaultJobTitle = "Unemployed"

	// Simulated years are a fixed 365 days, leap years are not modeled.
	YearLength = 365 * 24 * time.Hour
)

// Session is one player's in-progress game run. Balance and Loans are cached
// reads of the ledger taken right after the last mutating ledger call; the
// ledger stays the source of truth.
type Session struct {
	ID          string
	Name        string
	CustomerID  string
	AccountID   string
	Age         int
	CurrentDate time.Time
	Balance     float64
	Income      int64
	JobTitle    string
	Loans       []Loan
	LifeEvents  []string
	Started     bool
}

// Loan mirrors the ledger's loan record.
type Loan struct {
	ID              string  `json:"id"`
	Description     string  `json:"description"`
	RemainingAmount float64 `json:"remaining_amount"`
}

// Transaction mirrors the ledger's transaction record. Type is "deposit" or
// "withdrawal".
type Transaction struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	TransactionDate string  `json:"transaction_date"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
}

// PlayerState is the API view of a session.
type PlayerState struct {
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	CurrentDate string   `json:"currentDate"`
	Balance     float64  `json:"balance"`
	Income      int64    `json:"income"`
	JobTitle    string   `json:"jobTitle"`
	Loans       []Loan   `json:"loans"`
	LifeEvents  []string `json:"life_events"`
}

// State snapshots the session for API responses. The slices are copied so the
// snapshot stays stable after the session mutates.
func (s *Session) State() PlayerState {
	loans := make([]Loan, len(s.Loans))
	copy(loans, s.Loans)
	events := make([]string, len(s.LifeEvents))
	copy(events, s.LifeEvents)
	return PlayerState{
		Name:        s.Name,
		Age:         s.Age,
		CurrentDate: s.CurrentDate.Format("2006-01-02"),
		Balance:     s.Balance,
		Income:      s.Income,
		JobTitle:    s.JobTitle,
		Loans:       loans,
		LifeEvents:  events,
	}
}
