package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"finlife/internal/game"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptChoiceIndex(label string, count int) (int, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > count {
			printWarn(fmt.Sprintf("Enter a number between 1 and %d.", count))
			continue
		}
		return n - 1, nil
	}
}

func renderPlayerState(state game.PlayerState) {
	accent.Printf("\n== %s, AGE %d ==\n", strings.ToUpper(state.Name), state.Age)
	fmt.Printf("Date:     %s\n", state.CurrentDate)
	fmt.Printf("Balance:  %s\n", money(state.Balance))
	fmt.Printf("Income:   %s / year\n", money(float64(state.Income)))
	fmt.Printf("Job:      %s\n", state.JobTitle)
	if len(state.Loans) > 0 {
		fmt.Println("Loans:")
		for _, loan := range state.Loans {
			fmt.Printf("  - %s (%s remaining)\n", loan.Description, money(loan.RemainingAmount))
		}
	}
	if len(state.LifeEvents) > 0 {
		fmt.Println("Life so far:")
		for _, ev := range state.LifeEvents {
			fmt.Printf("  - %s\n", ev)
		}
	}
	fmt.Println()
}

func renderEvent(event game.Event) {
	if event.Err != "" {
		printWarn("The year passed without a decision: " + event.Err)
		return
	}
	accent.Printf("== %s ==\n", event.Title)
	fmt.Println(event.Description)
	fmt.Println()
	for i, choice := range event.Choices {
		fmt.Printf("  [%d] %s\n", i+1, choice.Description)
		fmt.Printf("      %s\n", describeImpact(choice.Impact))
	}
	fmt.Println()
}

func renderSummary(summary game.Summary) {
	if summary.Err != "" {
		printWarn(summary.Err)
		return
	}
	accent.Printf("\n== %s ==\n", strings.ToUpper(summary.PersonaTitle))
	fmt.Println(summary.Summary)
	if len(summary.BestDecision) > 0 {
		fmt.Println()
		success.Println("Best decisions:")
		for _, d := range summary.BestDecision {
			fmt.Printf("  - %s\n", d)
		}
	}
	if len(summary.WorstDecision) > 0 {
		fmt.Println()
		danger.Println("Worst decisions:")
		for _, d := range summary.WorstDecision {
			fmt.Printf("  - %s\n", d)
		}
	}
	fmt.Println()
}

func renderHistory(history []game.Transaction) {
	accent.Println("\n== TRANSACTION HISTORY ==")
	if len(history) == 0 {
		printInfo("No transactions yet.")
		return
	}
	fmt.Printf("%-12s %-12s %12s  %s\n", "DATE", "TYPE", "AMOUNT", "DESCRIPTION")
	for _, tx := range history {
		amount := money(tx.Amount)
		if tx.Type == "withdrawal" {
			amount = danger.Sprint("-" + amount)
		} else {
			amount = success.Sprint("+" + amount)
		}
		fmt.Printf("%-12s %-12s %12s  %s\n", tx.TransactionDate, tx.Type, amount, tx.Description)
	}
	fmt.Println()
}

func describeImpact(impact game.FinancialImpact) string {
	switch impact.Kind {
	case game.ImpactDeposit:
		return fmt.Sprintf("gain %s", money(float64(impact.Amount)))
	case game.ImpactWithdrawal:
		return fmt.Sprintf("spend %s", money(float64(impact.Amount)))
	case game.ImpactCreateLoan:
		return fmt.Sprintf("take a %s loan", money(float64(impact.Amount)))
	case game.ImpactIncome:
		return fmt.Sprintf("%s, %s / year", impact.Title, money(float64(impact.Income)))
	default:
		return "no financial effect"
	}
}

func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := int64(v)
	frac := int64((v-float64(whole))*100 + 0.5)
	if frac >= 100 {
		whole++
		frac -= 100
	}
	return fmt.Sprintf("%s$%s.%02d", sign, comma(whole), frac)
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		b.WriteByte(',')
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
