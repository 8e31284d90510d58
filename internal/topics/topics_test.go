package topics

import (
	"reflect"
	"testing"

	"finlife/internal/game"
)

func TestClassifyJobEventsAreEarning(t *testing.T) {
	byKind := game.Event{Kind: game.EventJob, Title: "A New Opportunity"}
	if got := Classify(byKind); !reflect.DeepEqual(got, []string{"Earning"}) {
		t.Errorf("job kind: got %v", got)
	}

	byImpact := game.Event{
		Title: "Untyped offer",
		Choices: []game.Choice{
			{Impact: game.FinancialImpact{Kind: game.ImpactIncome, Income: 50_000, Title: "Chef"}},
		},
	}
	if got := Classify(byImpact); !reflect.DeepEqual(got, []string{"Earning"}) {
		t.Errorf("income impact: got %v", got)
	}
}

func TestClassifyMatchesKeywordsInTaxonomyOrder(t *testing.T) {
	event := game.Event{
		Kind:        game.EventMCQ,
		Title:       "Invest or Insure?",
		Description: "You could invest in a volatile stock or take out an insurance policy.",
		Choices: []game.Choice{
			{Description: "Take out a loan to invest", Impact: game.FinancialImpact{Kind: game.ImpactCreateLoan, Amount: 5000, Description: "Margin loan"}},
		},
	}
	got := Classify(event)
	want := []string{"Borrowing", "Investing", "Insuring", "Comprehending risk"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	event := game.Event{Kind: game.EventMCQ, Title: "Nothing happens", Description: "A quiet, uneventful period."}
	if got := Classify(event); len(got) != 0 {
		t.Errorf("got %v, want no topics", got)
	}
}

func TestCountAndCoverage(t *testing.T) {
	events := []game.Event{
		{Kind: game.EventMCQ, Description: "save into an emergency fund"},
		{Kind: game.EventMCQ, Description: "save more, then invest the rest"},
		{Kind: game.EventJob},
		{Kind: game.EventMCQ, Description: "a quiet year"},
	}
	counts := Count(events)
	if counts.Total != 4 {
		t.Fatalf("total = %d", counts.Total)
	}
	if counts.PerTopic["Saving"] != 2 {
		t.Errorf("Saving = %d, want 2", counts.PerTopic["Saving"])
	}
	if counts.PerTopic["Investing"] != 1 {
		t.Errorf("Investing = %d, want 1", counts.PerTopic["Investing"])
	}
	if counts.PerTopic["Earning"] != 1 {
		t.Errorf("Earning = %d, want 1", counts.PerTopic["Earning"])
	}
	if got := counts.Coverage("Saving"); got != 50 {
		t.Errorf("Saving coverage = %v, want 50", got)
	}
	if got := (Counts{}).Coverage("Saving"); got != 0 {
		t.Errorf("empty coverage = %v, want 0", got)
	}
}
