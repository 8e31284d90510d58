package game

// Topic specifiers pinned to milestone ages.
const (
	SpecifierNone    = "N/A"
	SpecifierCollege = "paying for all four years of university"
	SpecifierCar     = "paying for a car"
	SpecifierHouse   = "paying for a house"
)

// SelectEvent decides which event a given age produces. It is deterministic:
// milestone ages get a themed dilemma, even ages through 30 and every fifth
// age after that get a job offer, everything else gets an open dilemma.
func SelectEvent(age int) (EventKind, string) {
	switch age {
	case 18:
		return EventMCQ, SpecifierCollege
	case 21:
		return EventMCQ, SpecifierCar
	case 38:
		return EventMCQ, SpecifierHouse
	}
	if (age <= 30 && age%2 == 0) || (age > 30 && age%5 == 0) {
		return EventJob, SpecifierNone
	}
	return EventMCQ, SpecifierNone
}

// ExpensePolicy computes the annual living-expense withdrawal for an age.
// A zero or negative result means no withdrawal happens that year.
type ExpensePolicy interface {
	AnnualExpense(age int) int64
}

// ProgressiveExpenses scales living costs with age: a parabola that rises
// through the family years and eases off toward retirement. Inactive before
// adulthood.
type ProgressiveExpenses struct{}

func (ProgressiveExpenses) AnnualExpense(age int) int64 {
	if age < 18 {
		return 0
	}
	a := int64(age)
	return -45*a*a + 4000*a - 30000
}

// FlatExpenses charges a fixed amount every year from age 22.
type FlatExpenses struct {
	Amount int64
}

func (f FlatExpenses) AnnualExpense(age int) int64 {
	if age < 22 {
		return 0
	}
	return f.Amount
}
