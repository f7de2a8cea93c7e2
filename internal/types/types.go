// Package types holds the JSON messages exchanged over the websocket.
//
// Client -> Server
//
//	StartDrag:     item_id
//	Place:         target_id, item_id
//	Return:        item_id
//	Submit:        {}
//	SetDifficulty: tier ("easy" | "medium" | "hard")
//	Reset:         {}
//
// Server -> Client
//
//	StateSnapshot: version, state
//	Error:         error
package types

import "github.com/DoyleJ11/fracmatch/internal/engine"

type ClientMessage struct {
	Type     string `json:"type"`
	ItemID   string `json:"item_id,omitempty"`
	TargetID string `json:"target_id,omitempty"`
	Tier     string `json:"tier,omitempty"`
}

type ServerMessage struct {
	Type    string     `json:"type"` // "StateSnapshot" | "Error"
	Version int        `json:"version"`
	State   *StateView `json:"state,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// ProblemView is a target as the learner sees it: the numeric fraction only.
type ProblemView struct {
	ID       string      `json:"id"`
	TargetID string      `json:"target_id"`
	Numeric  engine.Item `json:"numeric"`
}

type StateView struct {
	Code      string                  `json:"code"`
	Level     int                     `json:"level"`
	Tier      engine.Tier             `json:"tier"`
	Score     int                     `json:"score"`
	Problems  []ProblemView           `json:"problems"`
	Source    []engine.Item           `json:"source"`
	Slots     map[string]*engine.Item `json:"slots"`
	Feedback  *engine.Feedback        `json:"feedback,omitempty"`
	CanSubmit bool                    `json:"can_submit"`
}

func NewStateView(code string, s engine.State) StateView {
	problems := make([]ProblemView, 0, len(s.Round.Problems))
	for _, p := range s.Round.Problems {
		problems = append(problems, ProblemView{ID: p.ID, TargetID: p.Numeric.ID, Numeric: p.Numeric})
	}
	return StateView{
		Code:      code,
		Level:     s.Level,
		Tier:      s.Tier(),
		Score:     s.Score,
		Problems:  problems,
		Source:    s.Round.Source,
		Slots:     s.Round.Slots,
		Feedback:  s.Feedback,
		CanSubmit: s.CanSubmit(),
	}
}

func Snapshot(code string, version int, s engine.State) ServerMessage {
	view := NewStateView(code, s)
	return ServerMessage{Type: "StateSnapshot", Version: version, State: &view}
}

func Error(err error) ServerMessage {
	return ServerMessage{Type: "Error", Error: err.Error()}
}
