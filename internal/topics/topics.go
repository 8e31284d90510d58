// Package topics classifies generated events into the eight financial
// literacy topics used by the offline analysis harness.
package topics

import (
	"strings"

	"finlife/internal/game"
)

// Taxonomy order is fixed; classification results preserve it.
var Taxonomy = []string{
	"Borrowing",
	"Saving",
	"Consuming",
	"Earning",
	"Go-to info sources",
	"Investing",
	"Insuring",
	"Comprehending risk",
}

var keywords = map[string][]string{
	"Borrowing": {
		"loan", "borrow", "mortgage", "finance", "apr", "debt", "credit card", "credit line",
	},
	"Saving": {
		"save", "savings", "emergency fund", "set aside", "rainy day", "high-yield", "deposit $",
	},
	"Consuming": {
		"buy", "purchase", "spend", "shopping", "vacation", "car", "appliance", "rent", "lease",
	},
	"Earning": {
		"salary", "income", "job", "wage", "promotion", "offer", "side hustle", "overtime",
	},
	"Go-to info sources": {
		"research", "compare", "reviews", "advisor", "consult", "learn more", "read", "source",
	},
	"Investing": {
		"invest", "investment", "stock", "bond", "etf", "ira", "401k", "portfolio", "diversify",
	},
	"Insuring": {
		"insurance", "insured", "premium", "deductible", "coverage", "policy",
	},
	"Comprehending risk": {
		"risk", "risky", "volatile", "uncertain", "probability", "tolerance",
	},
}

// Classify returns the topics an event touches, in taxonomy order without
// duplicates. Job events are earning events by definition; dilemmas are
// matched by keyword against their combined text.
func Classify(event game.Event) []string {
	if event.Kind == game.EventJob {
		return []string{"Earning"}
	}
	for _, choice := range event.Choices {
		if choice.Impact.Kind == game.ImpactIncome {
			return []string{"Earning"}
		}
	}

	text := eventText(event)
	var matched []string
	for _, topic := range Taxonomy {
		for _, kw := range keywords[topic] {
			if strings.Contains(text, kw) {
				matched = append(matched, topic)
				break
			}
		}
	}
	return matched
}

func eventText(event game.Event) string {
	var parts []string
	add := func(s string) {
		if s != "" {
			parts = append(parts, strings.ToLower(s))
		}
	}
	add(event.Title)
	add(event.Description)
	for _, choice := range event.Choices {
		add(choice.Description)
		add(choice.Impact.Description)
		add(choice.Impact.Title)
	}
	return strings.Join(parts, "\n")
}

// Counts aggregates classification over many events.
type Counts struct {
	Total    int
	PerTopic map[string]int
}

func Count(events []game.Event) Counts {
	counts := Counts{
		Total:    len(events),
		PerTopic: map[string]int{},
	}
	for _, topic := range Taxonomy {
		counts.PerTopic[topic] = 0
	}
	for _, event := range events {
		for _, topic := range Classify(event) {
			counts.PerTopic[topic]++
		}
	}
	return counts
}

// Coverage reports the percentage of events matching a topic.
func (c Counts) Coverage(topic string) float64 {
	if c.Total == 0 {
		return 0
	}
	return 100 * float64(c.PerTopic[topic]) / float64(c.Total)
}
