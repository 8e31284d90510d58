package game

import "testing"

func TestSelectEvent(t *testing.T) {
	cases := []struct {
		age       int
		kind      EventKind
		specifier string
	}{
		{16, EventJob, SpecifierNone},
		{17, EventMCQ, SpecifierNone},
		{18, EventMCQ, SpecifierCollege},
		{20, EventJob, SpecifierNone},
		{21, EventMCQ, SpecifierCar},
		{22, EventJob, SpecifierNone},
		{23, EventMCQ, SpecifierNone},
		{30, EventJob, SpecifierNone},
		{32, EventMCQ, SpecifierNone},
		{35, EventJob, SpecifierNone},
		{38, EventMCQ, SpecifierHouse},
		{40, EventJob, SpecifierNone},
		{41, EventMCQ, SpecifierNone},
		{66, EventMCQ, SpecifierNone},
	}
	for _, tc := range cases {
		kind, specifier := SelectEvent(tc.age)
		if kind != tc.kind || specifier != tc.specifier {
			t.Errorf("SelectEvent(%d) = (%q, %q), want (%q, %q)", tc.age, kind, specifier, tc.kind, tc.specifier)
		}
	}
}

func TestProgressiveExpenses(t *testing.T) {
	p := ProgressiveExpenses{}
	cases := []struct {
		age  int
		want int64
	}{
		{16, 0},
		{17, 0},
		{18, 27_420},
		{25, 41_875},
		{44, 58_880},
		{45, 58_875},
		{66, 37_980},
	}
	for _, tc := range cases {
		if got := p.AnnualExpense(tc.age); got != tc.want {
			t.Errorf("AnnualExpense(%d) = %d, want %d", tc.age, got, tc.want)
		}
	}
}

func TestFlatExpenses(t *testing.T) {
	f := FlatExpenses{Amount: 25_000}
	if got := f.AnnualExpense(21); got != 0 {
		t.Errorf("AnnualExpense(21) = %d, want 0", got)
	}
	if got := f.AnnualExpense(22); got != 25_000 {
		t.Errorf("AnnualExpense(22) = %d, want 25000", got)
	}
	if got := f.AnnualExpense(66); got != 25_000 {
		t.Errorf("AnnualExpense(66) = %d, want 25000", got)
	}
}
