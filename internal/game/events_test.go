package game

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestFinancialImpactUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want FinancialImpact
	}{
		{
			name: "withdrawal",
			in:   `{"action":"WITHDRAWAL","amount":5000,"description":"Bought a used car"}`,
			want: FinancialImpact{Kind: ImpactWithdrawal, Amount: 5000, Description: "Bought a used car"},
		},
		{
			name: "deposit",
			in:   `{"action":"DEPOSIT","amount":1200,"description":"Sold old furniture"}`,
			want: FinancialImpact{Kind: ImpactDeposit, Amount: 1200, Description: "Sold old furniture"},
		},
		{
			name: "loan",
			in:   `{"action":"CREATE_LOAN","amount":40000,"description":"Student loan"}`,
			want: FinancialImpact{Kind: ImpactCreateLoan, Amount: 40000, Description: "Student loan"},
		},
		{
			name: "job offer",
			in:   `{"income":85000,"title":"Data Analyst"}`,
			want: FinancialImpact{Kind: ImpactIncome, Income: 85000, Title: "Data Analyst"},
		},
		{
			name: "income presence wins over action",
			in:   `{"action":"DEPOSIT","income":60000,"title":"Teacher"}`,
			want: FinancialImpact{Kind: ImpactIncome, Income: 60000, Title: "Teacher"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got FinancialImpact
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestFinancialImpactUnmarshalUnknownAction(t *testing.T) {
	var got FinancialImpact
	err := json.Unmarshal([]byte(`{"action":"TRANSFER","amount":10}`), &got)
	if err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Fatalf("expected unknown action error, got %v", err)
	}
}

func TestFinancialImpactMarshalRoundTrip(t *testing.T) {
	impacts := []FinancialImpact{
		{Kind: ImpactWithdrawal, Amount: 300, Description: "Concert tickets"},
		{Kind: ImpactIncome, Income: 52000, Title: "Barista Manager"},
	}
	for _, want := range impacts {
		raw, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got FinancialImpact
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got != want {
			t.Errorf("round trip %+v -> %s -> %+v", want, raw, got)
		}
	}
}

func TestDegradedEventKeepsKind(t *testing.T) {
	ev := DegradedEvent(EventJob, errors.New("model unavailable"))
	if ev.Kind != EventJob {
		t.Errorf("kind = %q, want %q", ev.Kind, EventJob)
	}
	if !strings.Contains(ev.Err, "model unavailable") {
		t.Errorf("err = %q, want it to mention the cause", ev.Err)
	}
	if len(ev.Choices) != 0 {
		t.Errorf("degraded event should carry no choices, got %d", len(ev.Choices))
	}
}
