package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	cl "finlife/internal/cli"
	"finlife/internal/game"
)

func newPlayCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			model := newPlayModel(newClient(apiBase))
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

const (
	phaseName = iota
	phaseLoading
	phaseIdle
	phaseEvent
	phaseDone
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type playModel struct {
	client *cl.Client

	phase   int
	input   textinput.Model
	spin    spinner.Model
	session cl.Session
	state   game.PlayerState
	event   *game.Event
	summary *game.Summary
	message string
	cursor  int
	err     error
}

type startedMsg cl.StartResponse
type resumedMsg cl.StateResponse
type advancedMsg cl.AdvanceResponse
type decidedMsg cl.DecisionResponse
type playErrMsg struct{ err error }

func newPlayModel(client *cl.Client) playModel {
	input := textinput.New()
	input.Placeholder = "First Last"
	input.Focus()
	input.CharLimit = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := playModel{
		client: client,
		phase:  phaseName,
		input:  input,
		spin:   spin,
	}
	if sess, err := cl.LoadSession(); err == nil {
		m.session = sess
		m.phase = phaseLoading
		m.message = "Resuming saved game..."
	}
	return m
}

func (m playModel) Init() tea.Cmd {
	if m.phase == phaseLoading {
		return tea.Batch(m.spin.Tick, m.resumeCmd())
	}
	return textinput.Blink
}

func (m playModel) resumeCmd() tea.Cmd {
	gameID := m.session.GameID
	return func() tea.Msg {
		out, err := m.client.State(context.Background(), gameID)
		if err != nil {
			return playErrMsg{err}
		}
		return resumedMsg(out)
	}
}

func (m playModel) startCmd(firstName, lastName string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.client.StartGame(context.Background(), firstName, lastName)
		if err != nil {
			return playErrMsg{err}
		}
		return startedMsg(out)
	}
}

func (m playModel) advanceCmd() tea.Cmd {
	gameID := m.session.GameID
	return func() tea.Msg {
		out, err := m.client.AdvanceYear(context.Background(), gameID)
		if err != nil {
			return playErrMsg{err}
		}
		return advancedMsg(out)
	}
}

func (m playModel) decideCmd(event game.Event, choice game.Choice) tea.Cmd {
	gameID := m.session.GameID
	return func() tea.Msg {
		var out cl.DecisionResponse
		var err error
		if event.Kind == game.EventJob {
			out, err = m.client.DecideJob(context.Background(), gameID, choice)
		} else {
			out, err = m.client.DecideMCQ(context.Background(), gameID, choice)
		}
		if err != nil {
			return playErrMsg{err}
		}
		return decidedMsg(out)
	}
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case startedMsg:
		m.session = cl.Session{GameID: msg.GameID, Name: msg.PlayerState.Name, Age: msg.PlayerState.Age}
		_ = cl.SaveSession(m.session)
		m.state = msg.PlayerState
		m.message = msg.Message
		m.phase = phaseIdle
		m.err = nil
		return m, nil

	case resumedMsg:
		m.state = msg.PlayerState
		m.message = fmt.Sprintf("Welcome back, %s.", msg.PlayerState.Name)
		m.phase = phaseIdle
		m.err = nil
		return m, nil

	case advancedMsg:
		m.state = msg.PlayerState
		m.message = msg.Message
		m.err = nil
		if msg.GameOver {
			m.summary = msg.FinalSummary
			m.phase = phaseDone
			_ = cl.ClearSession()
			return m, nil
		}
		m.session.Age = msg.PlayerState.Age
		_ = cl.SaveSession(m.session)
		m.event = msg.NextEvent
		m.cursor = 0
		if m.event != nil && len(m.event.Choices) > 0 {
			m.phase = phaseEvent
		} else {
			m.phase = phaseIdle
		}
		return m, nil

	case decidedMsg:
		m.state = msg.PlayerState
		m.message = msg.Message
		m.event = nil
		m.phase = phaseIdle
		m.err = nil
		return m, nil

	case playErrMsg:
		m.err = msg.err
		if m.phase == phaseLoading {
			m.phase = phaseIdle
		}
		return m, nil
	}
	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.phase != phaseName || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.phase {
	case phaseName:
		switch msg.String() {
		case "enter":
			parts := strings.Fields(m.input.Value())
			if len(parts) < 2 {
				m.err = fmt.Errorf("enter a first and last name")
				return m, nil
			}
			m.phase = phaseLoading
			m.err = nil
			return m, tea.Batch(m.spin.Tick, m.startCmd(parts[0], strings.Join(parts[1:], " ")))
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case phaseIdle:
		if msg.String() == "enter" || msg.String() == "a" {
			m.phase = phaseLoading
			return m, tea.Batch(m.spin.Tick, m.advanceCmd())
		}

	case phaseEvent:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.event != nil && m.cursor < len(m.event.Choices)-1 {
				m.cursor++
			}
		case "enter":
			if m.event != nil && m.cursor < len(m.event.Choices) {
				event := *m.event
				choice := event.Choices[m.cursor]
				m.phase = phaseLoading
				return m, tea.Batch(m.spin.Tick, m.decideCmd(event, choice))
			}
		}

	case phaseDone:
		if msg.String() == "enter" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("FINLIFE") + "\n\n")

	if m.phase == phaseName {
		b.WriteString("Who are you?\n\n")
		b.WriteString(m.input.View() + "\n\n")
		b.WriteString(hintStyle.Render("enter to start, ctrl+c to quit"))
		if m.err != nil {
			b.WriteString("\n" + errorStyle.Render(m.err.Error()))
		}
		return b.String()
	}

	b.WriteString(panelStyle.Render(m.statusLine()) + "\n\n")
	if m.message != "" {
		b.WriteString(statusStyle.Render(m.message) + "\n\n")
	}

	switch m.phase {
	case phaseLoading:
		b.WriteString(m.spin.View() + " thinking...\n")

	case phaseIdle:
		b.WriteString(hintStyle.Render("enter to live the next year, q to quit"))

	case phaseEvent:
		if m.event != nil {
			b.WriteString(titleStyle.Render(m.event.Title) + "\n")
			b.WriteString(m.event.Description + "\n\n")
			for i, choice := range m.event.Choices {
				line := fmt.Sprintf("  %s (%s)", choice.Description, describeImpact(choice.Impact))
				if i == m.cursor {
					line = selectedStyle.Render("> " + strings.TrimSpace(line))
				}
				b.WriteString(line + "\n")
			}
			b.WriteString("\n" + hintStyle.Render("up/down to choose, enter to commit"))
		}

	case phaseDone:
		if m.summary != nil {
			if m.summary.Err != "" {
				b.WriteString(errorStyle.Render(m.summary.Err) + "\n")
			} else {
				b.WriteString(titleStyle.Render(m.summary.PersonaTitle) + "\n")
				b.WriteString(m.summary.Summary + "\n")
			}
		}
		b.WriteString("\n" + hintStyle.Render("enter to exit"))
	}

	if m.err != nil {
		b.WriteString("\n\n" + errorStyle.Render(m.err.Error()))
	}
	return b.String()
}

func (m playModel) statusLine() string {
	if m.state.Name == "" {
		return "starting..."
	}
	return fmt.Sprintf("%s | age %d | %s | income %s | %s",
		m.state.Name, m.state.Age, money(m.state.Balance),
		money(float64(m.state.Income)), m.state.JobTitle)
}
