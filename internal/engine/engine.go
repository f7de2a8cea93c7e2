package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

var ErrUnsupportedCommand = errors.New("unsupported command")
var ErrRoundIncomplete = errors.New("round has empty slots")
var ErrAdvancePending = errors.New("round already solved")
var ErrUnknownTier = errors.New("unknown difficulty tier")

type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

type Feedback struct {
	Message string       `json:"message"`
	Kind    FeedbackKind `json:"kind"`
	Seq     int          `json:"seq"`
}

// State is everything a view needs to draw the game.
type State struct {
	Level     int       `json:"level"`
	Score     int       `json:"score"`
	Round     Round     `json:"round"`
	Feedback  *Feedback `json:"feedback,omitempty"`
	Gen       int       `json:"gen"`
	Advancing bool      `json:"advancing"`
}

func (s State) Tier() Tier { return TierForLevel(s.Level) }

// CanSubmit mirrors the enabled state of the submit button.
func (s State) CanSubmit() bool {
	return !s.Advancing && s.Round.IsComplete()
}

type CommandType string

const (
	CmdStartDrag     CommandType = "StartDrag"
	CmdPlace         CommandType = "Place"
	CmdReturn        CommandType = "Return"
	CmdSubmit        CommandType = "Submit"
	CmdSetDifficulty CommandType = "SetDifficulty"
	CmdReset         CommandType = "Reset"
	CmdAdvanceLevel  CommandType = "AdvanceLevel"
	CmdClearFeedback CommandType = "ClearFeedback"
)

/*
	CmdPlace          -> EvtItemPlaced (+ EvtItemReturned for a displaced occupant)
	CmdReturn         -> EvtItemReturned
	CmdSubmit         -> EvtRoundSolved | EvtRoundFailed
	CmdSetDifficulty  -> EvtDifficultyChanged -> EvtRoundStarted
	CmdReset          -> EvtRoundStarted
	CmdAdvanceLevel   -> EvtLevelAdvanced -> EvtRoundStarted   (armed by EvtRoundSolved)
	CmdClearFeedback  -> EvtFeedbackCleared                    (armed by EvtRoundFailed)
*/

type Command struct {
	Type     CommandType
	TargetID string
	ItemID   string
	Tier     Tier
	// Gen and Seq tie timer commands to the round or feedback that armed them.
	Gen int
	Seq int
}

type EventType string

const (
	EvtItemPlaced        EventType = "ItemPlaced"
	EvtItemReturned      EventType = "ItemReturned"
	EvtRoundSolved       EventType = "RoundSolved"
	EvtRoundFailed       EventType = "RoundFailed"
	EvtLevelAdvanced     EventType = "LevelAdvanced"
	EvtDifficultyChanged EventType = "DifficultyChanged"
	EvtRoundStarted      EventType = "RoundStarted"
	EvtFeedbackCleared   EventType = "FeedbackCleared"
)

type Event struct {
	Type     EventType
	TargetID string
	ItemID   string
	Level    int
	Correct  int
	Total    int
	Points   int
	Gen      int
	Seq      int
}

// Game owns a State and the random source used to build its rounds.
type Game struct {
	state State
	rng   *rand.Rand
	seq   int
}

func NewGame(level int, rng *rand.Rand) *Game {
	g := &Game{rng: rng}
	g.startRound(clampLevel(level))
	return g
}

// State returns a deep copy that is safe to hand to another goroutine.
func (g *Game) State() State {
	s := g.state
	s.Round = g.state.Round.Clone()
	if g.state.Feedback != nil {
		f := *g.state.Feedback
		s.Feedback = &f
	}
	return s
}

// Apply runs one command. An empty event list means nothing changed.
func (g *Game) Apply(cmd Command) ([]Event, error) {
	switch cmd.Type {
	case CmdStartDrag:
		return nil, nil

	case CmdPlace:
		displaced, moved := g.state.Round.Place(cmd.TargetID, cmd.ItemID)
		if !moved {
			return nil, nil
		}
		events := []Event{{Type: EvtItemPlaced, TargetID: cmd.TargetID, ItemID: cmd.ItemID}}
		if displaced != nil {
			events = append(events, Event{Type: EvtItemReturned, TargetID: cmd.TargetID, ItemID: displaced.ID})
		}
		return events, nil

	case CmdReturn:
		target, ok := g.state.Round.ReturnToSource(cmd.ItemID)
		if !ok {
			return nil, nil
		}
		return []Event{{Type: EvtItemReturned, TargetID: target, ItemID: cmd.ItemID}}, nil

	case CmdSubmit:
		return g.submit()

	case CmdSetDifficulty:
		if _, ok := ParseTier(string(cmd.Tier)); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTier, cmd.Tier)
		}
		level := cmd.Tier.EntryLevel()
		g.state.Score = 0
		g.startRound(level)
		return []Event{
			{Type: EvtDifficultyChanged, Level: level},
			{Type: EvtRoundStarted, Level: level, Gen: g.state.Gen},
		}, nil

	case CmdReset:
		g.startRound(g.state.Level)
		return []Event{{Type: EvtRoundStarted, Level: g.state.Level, Gen: g.state.Gen}}, nil

	case CmdAdvanceLevel:
		// A newer round supersedes the solved one; the timer is stale.
		if !g.state.Advancing || cmd.Gen != g.state.Gen {
			return nil, nil
		}
		level := g.state.Level + 1
		g.startRound(level)
		return []Event{
			{Type: EvtLevelAdvanced, Level: level},
			{Type: EvtRoundStarted, Level: level, Gen: g.state.Gen},
		}, nil

	case CmdClearFeedback:
		if g.state.Feedback == nil || g.state.Feedback.Seq != cmd.Seq {
			return nil, nil
		}
		g.state.Feedback = nil
		return []Event{{Type: EvtFeedbackCleared, Seq: cmd.Seq}}, nil

	default:
		return nil, ErrUnsupportedCommand
	}
}

func (g *Game) submit() ([]Event, error) {
	if g.state.Advancing {
		return nil, ErrAdvancePending
	}
	if !g.state.Round.IsComplete() {
		return nil, ErrRoundIncomplete
	}

	correct, total := g.state.Round.Check()
	g.seq++

	if correct == total {
		points := g.state.Level * 10
		g.state.Score += points
		g.state.Advancing = true
		g.state.Feedback = &Feedback{
			Message: "Correct! Well done! Moving on to the next level.",
			Kind:    FeedbackSuccess,
			Seq:     g.seq,
		}
		return []Event{{
			Type:    EvtRoundSolved,
			Level:   g.state.Level,
			Correct: correct,
			Total:   total,
			Points:  points,
			Gen:     g.state.Gen,
			Seq:     g.seq,
		}}, nil
	}

	g.state.Feedback = &Feedback{
		Message: fmt.Sprintf("Almost there! You got %d of %d. Try again.", correct, total),
		Kind:    FeedbackError,
		Seq:     g.seq,
	}
	return []Event{{
		Type:    EvtRoundFailed,
		Level:   g.state.Level,
		Correct: correct,
		Total:   total,
		Gen:     g.state.Gen,
		Seq:     g.seq,
	}}, nil
}

// startRound replaces the round wholesale. Pending timers for the old round
// become stale because Gen moves on.
func (g *Game) startRound(level int) {
	g.state.Level = level
	g.state.Round = *NewRound(Generate(level, g.rng), g.rng)
	g.state.Feedback = nil
	g.state.Advancing = false
	g.state.Gen++
}

// NewGameWithProblems starts a game on a fixed set of problems. Later rounds
// are generated as usual.
func NewGameWithProblems(level int, problems []Problem, rng *rand.Rand) *Game {
	g := &Game{rng: rng}
	g.state.Level = clampLevel(level)
	g.state.Round = *NewRound(problems, rng)
	g.state.Gen = 1
	return g
}
