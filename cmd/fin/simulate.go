package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"finlife/internal/game"
	"finlife/internal/scenario"
	"finlife/internal/topics"
)

// newSimulateCmd runs the generator offline and reports how the produced
// dilemmas spread across the financial literacy topics. It talks to the
// model directly, not through the API.
func newSimulateCmd() *cobra.Command {
	var runs int
	var model string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Sample generated dilemmas and report topic coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			apiKey := os.Getenv("OPENAI_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is required")
			}
			gen := scenario.NewClient(apiKey, model)
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))

			events := make([]game.Event, 0, runs)
			for i := 0; i < runs; i++ {
				sc := randomScenarioContext(rng)
				ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
				event, err := gen.MCQ(ctx, sc)
				cancel()
				if err != nil {
					printWarn(fmt.Sprintf("run %d failed: %v", i+1, err))
					continue
				}
				events = append(events, event)
				printInfo(fmt.Sprintf("run %d: age %d, %q -> %v", i+1, sc.Age, event.Title, topics.Classify(event)))
			}

			counts := topics.Count(events)
			accent.Printf("\n== TOPIC COVERAGE (%d dilemmas) ==\n", counts.Total)
			fmt.Printf("%-22s %8s %10s\n", "TOPIC", "HITS", "COVERAGE")
			for _, topic := range topics.Taxonomy {
				fmt.Printf("%-22s %8d %9.1f%%\n", topic, counts.PerTopic[topic], counts.Coverage(topic))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 20, "number of dilemmas to generate")
	cmd.Flags().StringVar(&model, "model", "", "override the chat model")
	return cmd
}

func randomScenarioContext(rng *rand.Rand) game.ScenarioContext {
	age := 17 + rng.Intn(49)
	income := int64(0)
	jobTitle := game.DefaultJobTitle
	if age >= 22 {
		income = int64(30_000 + rng.Intn(120_000))
		jobTitle = "Software Engineer"
	}
	return game.ScenarioContext{
		Name:      "Sim Player",
		Age:       age,
		Date:      fmt.Sprintf("%d-01-01", 2026+age-game.StartAge),
		Balance:   float64(rng.Intn(200_000)),
		Income:    income,
		JobTitle:  jobTitle,
		Specifier: game.SpecifierNone,
	}
}
