package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cl "finlife/internal/cli"
	"finlife/internal/config"
	"finlife/internal/game"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "fin",
		Short:        "Finlife CLI game client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "API base URL")

	root.AddCommand(
		newNewCmd(&apiBase),
		newStateCmd(&apiBase),
		newAdvanceCmd(&apiBase),
		newFastForwardCmd(&apiBase),
		newPayLoanCmd(&apiBase),
		newHistoryCmd(&apiBase),
		newEndCmd(),
		newPlayCmd(&apiBase),
		newSimulateCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimSpace(*apiBase))
}

func requireSession() (cl.Session, error) {
	sess, err := cl.LoadSession()
	if err != nil {
		return cl.Session{}, fmt.Errorf("no saved game, run `fin new` first: %w", err)
	}
	return sess, nil
}

func newNewCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new financial life",
		RunE: func(cmd *cobra.Command, args []string) error {
			firstName, err := promptRequired("First name")
			if err != nil {
				return err
			}
			lastName, err := promptRequired("Last name")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
			defer cancel()
			out, err := newClient(apiBase).StartGame(ctx, firstName, lastName)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{
				GameID: out.GameID,
				Name:   out.PlayerState.Name,
				Age:    out.PlayerState.Age,
			}); err != nil {
				return err
			}
			printSuccess(out.Message)
			renderPlayerState(out.PlayerState)
			return nil
		},
	}
}

func newStateCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the current player state",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
			defer cancel()
			out, err := newClient(apiBase).State(ctx, sess.GameID)
			if err != nil {
				return err
			}
			renderPlayerState(out.PlayerState)
			return nil
		},
	}
}

func newAdvanceCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Advance one year and resolve the event",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}
			client := newClient(apiBase)
			ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
			defer cancel()

			out, err := client.AdvanceYear(ctx, sess.GameID)
			if err != nil {
				return err
			}
			return resolveAdvance(ctx, client, sess, out)
		},
	}
}

func newFastForwardCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ff <age>",
		Short: "Fast-forward to a target age",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetAge, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("target age must be a number: %q", args[0])
			}
			sess, err := requireSession()
			if err != nil {
				return err
			}
			client := newClient(apiBase)
			ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
			defer cancel()

			out, err := client.FastForward(ctx, sess.GameID, targetAge)
			if err != nil {
				return err
			}
			return resolveAdvance(ctx, client, sess, out)
		},
	}
}

// resolveAdvance renders the year's outcome and, when the event offers
// choices, prompts for one and submits it.
func resolveAdvance(ctx context.Context, client *cl.Client, sess cl.Session, out cl.AdvanceResponse) error {
	printInfo(out.Message)
	renderPlayerState(out.PlayerState)

	if out.GameOver {
		if out.FinalSummary != nil {
			renderSummary(*out.FinalSummary)
		}
		return cl.ClearSession()
	}

	sess.Age = out.PlayerState.Age
	if err := cl.SaveSession(sess); err != nil {
		return err
	}
	if out.NextEvent == nil {
		return nil
	}
	event := *out.NextEvent
	renderEvent(event)
	if len(event.Choices) == 0 {
		return nil
	}

	idx, err := promptChoiceIndex("Your choice", len(event.Choices))
	if err != nil {
		return err
	}
	choice := event.Choices[idx]

	var decision cl.DecisionResponse
	if event.Kind == game.EventJob {
		decision, err = client.DecideJob(ctx, sess.GameID, choice)
	} else {
		decision, err = client.DecideMCQ(ctx, sess.GameID, choice)
	}
	if err != nil {
		return err
	}
	printSuccess(decision.Message)
	renderPlayerState(decision.PlayerState)
	return nil
}

func newPayLoanCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "payloan <amount>",
		Short: "Pay down your oldest loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("amount must be a whole number: %q", args[0])
			}
			sess, err := requireSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
			defer cancel()
			out, err := newClient(apiBase).PayLoan(ctx, sess.GameID, amount)
			if err != nil {
				return err
			}
			printSuccess(out.Message)
			renderPlayerState(out.PlayerState)
			return nil
		},
	}
}

func newHistoryCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the full bank transaction history",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
			defer cancel()
			history, err := newClient(apiBase).History(ctx, sess.GameID)
			if err != nil {
				return err
			}
			renderHistory(history)
			return nil
		},
	}
}

func newEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "Forget the saved game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Saved game cleared.")
			return nil
		},
	}
}
