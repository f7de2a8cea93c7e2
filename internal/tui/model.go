// Package tui is a keyboard front end for a local game.
//
// Left/right picks an item from the pool, up/down picks a target, enter
// places, backspace returns the target's item, s submits.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DoyleJ11/fracmatch/internal/engine"
)

type advanceMsg struct{ gen int }

type clearFeedbackMsg struct{ seq int }

type Model struct {
	game  *engine.Game
	state engine.State

	sourceIdx int
	slotIdx   int
	notice    string

	successDelay  time.Duration
	feedbackDelay time.Duration
	styles        Styles
	quitting      bool
}

func New(game *engine.Game, successDelay, feedbackDelay time.Duration) Model {
	return Model{
		game:          game,
		state:         game.State(),
		successDelay:  successDelay,
		feedbackDelay: feedbackDelay,
		styles:        DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd { return nil }

// State is the last state the model rendered.
func (m Model) State() engine.State { return m.state }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case advanceMsg:
		return m.apply(engine.Command{Type: engine.CmdAdvanceLevel, Gen: msg.gen})
	case clearFeedbackMsg:
		return m.apply(engine.Command{Type: engine.CmdClearFeedback, Seq: msg.seq})
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "left", "h":
		m.sourceIdx = wrap(m.sourceIdx-1, len(m.state.Round.Source))
	case "right", "l":
		m.sourceIdx = wrap(m.sourceIdx+1, len(m.state.Round.Source))
	case "up", "k":
		m.slotIdx = wrap(m.slotIdx-1, len(m.state.Round.Problems))
	case "down", "j":
		m.slotIdx = wrap(m.slotIdx+1, len(m.state.Round.Problems))

	case "enter", " ":
		item, ok := m.selectedSource()
		target, hasTarget := m.selectedTarget()
		if !ok || !hasTarget {
			return m, nil
		}
		return m.apply(engine.Command{Type: engine.CmdPlace, TargetID: target, ItemID: item.ID})

	case "backspace", "x":
		target, ok := m.selectedTarget()
		if !ok {
			return m, nil
		}
		occupant, placed := m.state.Round.Occupant(target)
		if !placed {
			return m, nil
		}
		return m.apply(engine.Command{Type: engine.CmdReturn, ItemID: occupant.ID})

	case "s":
		return m.apply(engine.Command{Type: engine.CmdSubmit})
	case "r":
		return m.apply(engine.Command{Type: engine.CmdReset})
	case "1":
		return m.apply(engine.Command{Type: engine.CmdSetDifficulty, Tier: engine.TierEasy})
	case "2":
		return m.apply(engine.Command{Type: engine.CmdSetDifficulty, Tier: engine.TierMedium})
	case "3":
		return m.apply(engine.Command{Type: engine.CmdSetDifficulty, Tier: engine.TierHard})
	}
	return m, nil
}

// apply runs cmd against the game and schedules any follow-up timer.
func (m Model) apply(cmd engine.Command) (Model, tea.Cmd) {
	events, err := m.game.Apply(cmd)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrRoundIncomplete):
			m.notice = "Fill every target before checking."
		case errors.Is(err, engine.ErrAdvancePending):
			m.notice = "Already solved, next level coming up."
		default:
			m.notice = err.Error()
		}
		return m, nil
	}
	m.state = m.game.State()
	m.sourceIdx = clampIdx(m.sourceIdx, len(m.state.Round.Source))
	m.slotIdx = clampIdx(m.slotIdx, len(m.state.Round.Problems))

	var next tea.Cmd
	for _, evt := range events {
		switch evt.Type {
		case engine.EvtRoundSolved:
			gen := evt.Gen
			next = tea.Tick(m.successDelay, func(time.Time) tea.Msg { return advanceMsg{gen: gen} })
		case engine.EvtRoundFailed:
			seq := evt.Seq
			next = tea.Tick(m.feedbackDelay, func(time.Time) tea.Msg { return clearFeedbackMsg{seq: seq} })
		}
	}
	return m, next
}

func (m Model) selectedSource() (engine.Item, bool) {
	if m.sourceIdx < 0 || m.sourceIdx >= len(m.state.Round.Source) {
		return engine.Item{}, false
	}
	return m.state.Round.Source[m.sourceIdx], true
}

func (m Model) selectedTarget() (string, bool) {
	if m.slotIdx < 0 || m.slotIdx >= len(m.state.Round.Problems) {
		return "", false
	}
	return m.state.Round.Problems[m.slotIdx].Numeric.ID, true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.styles
	s := m.state

	var b strings.Builder
	b.WriteString(st.Header.Render(fmt.Sprintf("Level %d", s.Level)))
	b.WriteString("   ")
	b.WriteString(st.Label.Render(fmt.Sprintf("Score %d", s.Score)))
	b.WriteString("   ")
	b.WriteString(st.Muted.Render(fmt.Sprintf("Difficulty: %s", s.Tier())))
	b.WriteString("\n\n")

	for i, p := range s.Round.Problems {
		cursor := "  "
		if i == m.slotIdx {
			cursor = st.Cursor.Render("> ")
		}
		slot := st.Muted.Render("[ drop here ]")
		if occupant, ok := s.Round.Occupant(p.Numeric.ID); ok && occupant.Visual != nil {
			slot = glyphs(*occupant.Visual)
		}
		fmt.Fprintf(&b, "%s%5s  =  %s\n", cursor, p.Numeric.Fraction, slot)
	}

	b.WriteString("\n")
	b.WriteString(st.Label.Render("Available fractions"))
	b.WriteString("\n")
	if len(s.Round.Source) == 0 {
		b.WriteString(st.Muted.Render("Every item has been placed!"))
	}
	for i, it := range s.Round.Source {
		if it.Visual == nil {
			continue
		}
		if i == m.sourceIdx {
			b.WriteString(st.Cursor.Render("›"))
		} else {
			b.WriteString(" ")
		}
		b.WriteString(glyphs(*it.Visual))
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	if s.Feedback != nil {
		style := st.Error
		if s.Feedback.Kind == engine.FeedbackSuccess {
			style = st.Success
		}
		b.WriteString(style.Render(s.Feedback.Message))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(st.Muted.Render(m.notice))
		b.WriteString("\n")
	}

	check := st.Disabled.Render("[s] check answers")
	if s.CanSubmit() {
		check = st.Label.Render("[s] check answers")
	}
	b.WriteString(check)
	b.WriteString("\n")
	b.WriteString(st.Muted.Render("←/→ pick  ↑/↓ target  enter place  ⌫ return  1/2/3 difficulty  r reset  q quit"))
	b.WriteString("\n")
	return b.String()
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func clampIdx(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Run starts an interactive program on the terminal.
func Run(game *engine.Game, successDelay, feedbackDelay time.Duration) error {
	_, err := tea.NewProgram(New(game, successDelay, feedbackDelay), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
