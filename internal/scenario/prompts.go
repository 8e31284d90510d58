package scenario

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"finlife/internal/game"
)

var englishPrinter = message.NewPrinter(language.English)

func money(amount float64) string {
	return englishPrinter.Sprintf("$%.2f", amount)
}

func formatLoans(loans []game.Loan) string {
	if len(loans) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(loans))
	for _, loan := range loans {
		parts = append(parts, fmt.Sprintf("'%s' with %s remaining", loan.Description, money(loan.RemainingAmount)))
	}
	return strings.Join(parts, ", ")
}

func formatLifeEvents(events []string) string {
	if len(events) == 0 {
		return "None"
	}
	return strings.Join(events, "; ")
}

func mcqPrompt(sc game.ScenarioContext) string {
	var b strings.Builder
	b.WriteString("You are a creative writer for a life simulation game called \"FinLife\".\n")
	fmt.Fprintf(&b, "The current date in the simulation is %s.\n\n", sc.Date)
	b.WriteString("Your goal is to generate a single, nuanced financial dilemma based on the player's current situation.\n")
	if sc.Specifier != game.SpecifierNone {
		fmt.Fprintf(&b, "The dilemma must focus on %s.\n", sc.Specifier)
	}
	b.WriteString("The choices should focus on one-time financial events, investments, or unique opportunities, NOT steady sources of income.\n")
	b.WriteString("The dilemma must be relevant to the player's context.\n\n")

	b.WriteString("--- Player Context ---\n")
	fmt.Fprintf(&b, "Age: %d\n", sc.Age)
	fmt.Fprintf(&b, "Current Checking Balance: %s\n", money(sc.Balance))
	fmt.Fprintf(&b, "Yearly Income: %s\n", money(float64(sc.Income)))
	fmt.Fprintf(&b, "Active Loans: %s\n", formatLoans(sc.Loans))
	fmt.Fprintf(&b, "Notable Past Life Events: %s\n", formatLifeEvents(sc.LifeEvents))
	b.WriteString("--------------------\n\n")

	b.WriteString(`The scenario must have three distinct choices. For each choice, you must provide:
1. A "description" of the choice. This description MUST end with a parenthesized summary of the financial impact.
   - For DEPOSIT, use (+$<amount>).
   - For WITHDRAWAL, use (-$<amount>).
   - For CREATE_LOAN, use (Loan: $<amount>).
2. A "financial_impact" JSON object. This object MUST contain a string "action", an integer "amount", and a string "description".
   The action must be one of: ["DEPOSIT", "WITHDRAWAL", "CREATE_LOAN"].

Example Output Format (for a player who previously started a side-hustle):
{
  "scenario_title": "An Old Hobby's New Potential",
  "scenario_description": "Looking at your past decision to start a photography side-hustle, a local gallery in New York offers you a spot in an upcoming show. This could be big, but it requires an investment.",
  "choices": [
    {
      "description": "Go all in: rent professional lighting and print your best work on high-quality canvas. (-$2,500.00)",
      "financial_impact": { "action": "WITHDRAWAL", "amount": 2500, "description": "Gallery Show Investment" }
    },
    {
      "description": "Play it safe: use your existing equipment and print on more affordable photo paper. (-$500.00)",
      "financial_impact": { "action": "WITHDRAWAL", "amount": 500, "description": "Basic Gallery Show Prep" }
    },
    {
      "description": "Decline the offer and save your money for now. (+$0.00)",
      "financial_impact": { "action": "DEPOSIT", "amount": 0, "description": "Declined Opportunity" }
    }
  ]
}

Now, based on the provided Player Context, generate a new, unique scenario. Your response must be only the valid JSON object, with no other text or markdown formatting.`)
	return b.String()
}

func jobOfferPrompt(sc game.ScenarioContext) string {
	var b strings.Builder
	b.WriteString("You are a creative writer for a life simulation game called \"FinLife\".\n")
	b.WriteString("Your goal is to generate a realistic job offer or promotion opportunity for a player based on their current situation.\n")
	b.WriteString("The offer should be logically connected to their past life events.\n\n")

	b.WriteString("--- Player Context ---\n")
	fmt.Fprintf(&b, "Age: %d\n", sc.Age)
	fmt.Fprintf(&b, "Current Annual Income: %s\n", money(float64(sc.Income)))
	fmt.Fprintf(&b, "Current Job Title: %s\n", sc.JobTitle)
	fmt.Fprintf(&b, "Notable Past Life Events: %s\n", formatLifeEvents(sc.LifeEvents))
	b.WriteString("--------------------\n\n")

	fmt.Fprintf(&b, `The scenario must provide two choices: accept the offer or decline it.
For each choice, you must provide:
1. A "description" of the choice. This description MUST end with the resulting annual income in parentheses, formatted like (Income: $<amount>).
2. A "financial_impact" JSON object. This object MUST contain an integer "income" and a string "title".
The income for the "decline" option must be exactly %s.

Example Output Format (for a player who completed a coding bootcamp):
{
  "scenario_title": "A New Opportunity",
  "scenario_description": "Thanks to the skills you gained from the coding bootcamp, a tech startup has offered you a position as a Junior Developer.",
  "choices": [
    {
      "description": "Accept the Junior Developer position. (Income: $75,000.00)",
      "financial_impact": { "income": 75000, "title": "Junior Developer" }
    },
    {
      "description": "Decline the offer and continue as a %s. (Income: %s)",
      "financial_impact": { "income": %d, "title": "%s" }
    }
  ]
}

Now, based on the provided Player Context, generate a new, unique job scenario. Your response must be only the valid JSON object, with no other text or markdown formatting.`,
		money(float64(sc.Income)), sc.JobTitle, money(float64(sc.Income)), sc.Income, sc.JobTitle)
	return b.String()
}

func finalSummaryPrompt(sc game.SummaryContext) string {
	history := make([]string, 0, len(sc.History))
	for _, t := range sc.History {
		history = append(history, fmt.Sprintf("Date: %s, Type: %s, Amount: %s, Desc: %s",
			t.TransactionDate, t.Type, money(t.Amount), t.Description))
	}
	historyJSON, _ := jsonIndent(history)

	var b strings.Builder
	b.WriteString("You are a friendly and insightful financial advisor summarizing a person's simulated financial life from the game \"FinLife\".\n\n")

	b.WriteString("--- Final Player Stats ---\n")
	fmt.Fprintf(&b, "Final Balance: %s\n", money(sc.Balance))
	fmt.Fprintf(&b, "Final Annual Income: %s\n", money(float64(sc.Income)))
	fmt.Fprintf(&b, "Outstanding Loans: %s\n", formatLoans(sc.Loans))
	b.WriteString("--------------------------\n\n")

	b.WriteString("--- Complete Transaction History ---\n")
	b.WriteString(historyJSON)
	b.WriteString("\n------------------------------------\n\n")

	b.WriteString(`Based on all of the data provided, please perform the following analysis:
1. **Financial Persona:** Give the player a descriptive persona title (e.g., "The Cautious Saver", "The Ambitious Investor", "The High-Risk Entrepreneur").
2. **Summary:** Write a short, encouraging paragraph summarizing their final balance, annual income, outstanding loans, and financial journey, explaining their persona.
3. **Best Decisions:** Identify their three best financial decisions from the transaction history and explain briefly why each was a smart move.
4. **Worst Decisions:** Identify their three worst financial decisions from the transaction history and explain briefly why each was a poor move.

Your response must be only a valid JSON object with the keys: "persona_title" (string), "summary" (string), "best_decision" (array of three strings), and "worst_decision" (array of three strings).`)
	return b.String()
}

func jsonIndent(v any) (string, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]", err
	}
	return string(raw), nil
}
