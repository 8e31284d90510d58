package game

import (
	"encoding/json"
	"fmt"
)

type EventKind string

const (
	EventMCQ EventKind = "mcq"
	EventJob EventKind = "job"
)

type ImpactKind string

const (
	ImpactDeposit    ImpactKind = "DEPOSIT"
	ImpactWithdrawal ImpactKind = "WITHDRAWAL"
	ImpactCreateLoan ImpactKind = "CREATE_LOAN"
	ImpactIncome     ImpactKind = "INCOME"
)

// FinancialImpact is the effect a chosen option has on the player. Kind is
// decided exactly once, when the generated JSON is decoded; downstream code
// switches on it and never re-infers the variant from field shape.
//
// The wire format matches the generator's output: deposit, withdrawal, and
// loan impacts carry action/amount/description, job impacts carry
// income/title.
type FinancialImpact struct {
	Kind        ImpactKind
	Amount      int64
	Description string
	Income      int64
	Title       string
}

type impactWire struct {
	Action      string `json:"action,omitempty"`
	Amount      *int64 `json:"amount,omitempty"`
	Description string `json:"description,omitempty"`
	Income      *int64 `json:"income,omitempty"`
	Title       string `json:"title,omitempty"`
}

func (fi *FinancialImpact) UnmarshalJSON(data []byte) error {
	var wire impactWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Income != nil {
		*fi = FinancialImpact{
			Kind:   ImpactIncome,
			Income: *wire.Income,
			Title:  wire.Title,
		}
		return nil
	}
	switch ImpactKind(wire.Action) {
	case ImpactDeposit, ImpactWithdrawal, ImpactCreateLoan:
	default:
		return fmt.Errorf("financial impact: unknown action %q", wire.Action)
	}
	var amount int64
	if wire.Amount != nil {
		amount = *wire.Amount
	}
	*fi = FinancialImpact{
		Kind:        ImpactKind(wire.Action),
		Amount:      amount,
		Description: wire.Description,
	}
	return nil
}

func (fi FinancialImpact) MarshalJSON() ([]byte, error) {
	if fi.Kind == ImpactIncome {
		return json.Marshal(impactWire{
			Income: &fi.Income,
			Title:  fi.Title,
		})
	}
	return json.Marshal(impactWire{
		Action:      string(fi.Kind),
		Amount:      &fi.Amount,
		Description: fi.Description,
	})
}

// Choice is one selectable option within an event.
type Choice struct {
	Description string          `json:"description"`
	Impact      FinancialImpact `json:"financial_impact"`
}

// Event is a generated decision point: a financial dilemma (mcq) or a job
// offer (job). A degraded event keeps its kind but carries only Err, so a
// generation failure never kills the session.
type Event struct {
	Kind        EventKind `json:"event_type,omitempty"`
	Title       string    `json:"scenario_title,omitempty"`
	Description string    `json:"scenario_description,omitempty"`
	Choices     []Choice  `json:"choices,omitempty"`
	Err         string    `json:"error,omitempty"`
}

// DegradedEvent marks a failed generation while preserving the event slot in
// the response.
func DegradedEvent(kind EventKind, err error) Event {
	return Event{
		Kind: kind,
		Err:  fmt.Sprintf("failed to generate scenario: %v", err),
	}
}

// Summary is the retrospective produced at retirement.
type Summary struct {
	PersonaTitle  string   `json:"persona_title,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	BestDecision  []string `json:"best_decision,omitempty"`
	WorstDecision []string `json:"worst_decision,omitempty"`
	Err           string   `json:"error,omitempty"`
}

// DegradedSummary is the retirement counterpart of DegradedEvent.
func DegradedSummary(err error) Summary {
	return Summary{Err: fmt.Sprintf("failed to generate final summary: %v", err)}
}
