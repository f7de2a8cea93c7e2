package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/fracmatch/internal/engine"
	"github.com/DoyleJ11/fracmatch/internal/store"
)

type Msg interface{ isSessionMsg() }

// FromClient carries a command from one connection. Errors go back to that
// connection only.
type FromClient struct {
	ClientID string
	Cmd      engine.Command
}

func (FromClient) isSessionMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

// timerFired is posted by the advance and feedback timers.
type timerFired struct {
	Cmd engine.Command
}

func (timerFired) isSessionMsg() {}

// idleFired is posted when the session has had no clients for IdleTimeout.
type idleFired struct{ gen int }

func (idleFired) isSessionMsg() {}

// Snapshot is either a new state or, with Err set, a rejected command.
type Snapshot struct {
	Version int
	State   engine.State
	Err     error
}

type View struct {
	Code       string
	Version    int
	NumClients int
	State      engine.State
}

type Options struct {
	Code  string
	Level int
	Seed  int64
	// Game overrides Level and Seed when set.
	Game          *engine.Game
	SuccessDelay  time.Duration
	FeedbackDelay time.Duration
	Store         store.Store
	Logger        *zap.Logger
	// IdleTimeout stops a session that has had no clients for this long.
	// Zero keeps it alive until shutdown.
	IdleTimeout time.Duration
	// OnIdle runs on the loop goroutine just before an idle session stops.
	OnIdle func(code string)
}

type Session struct {
	inbox   chan Msg
	game    *engine.Game
	version int
	clients map[string]chan Snapshot
	opts    Options
	log     *zap.Logger

	advanceTimer  *time.Timer
	feedbackTimer *time.Timer
	idleTimer     *time.Timer
	idleGen       int

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func New(parent context.Context, opts Options) *Session {
	ctx, cancel := context.WithCancel(parent)

	game := opts.Game
	if game == nil {
		game = engine.NewGame(opts.Level, engine.NewRand(opts.Seed))
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		inbox:   make(chan Msg, 64), // Small buffer
		game:    game,
		clients: make(map[string]chan Snapshot),
		opts:    opts,
		log:     log.With(zap.String("session", opts.Code)),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	s.armIdle()
	go s.loop()
	return s
}

func (s *Session) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				stopTimer(&s.idleTimer)
				s.idleGen++
				s.clients[msg.ClientID] = msg.Outbox
				s.send(msg.ClientID, msg.Outbox, Snapshot{Version: s.version, State: s.game.State()})
				s.log.Debug("client joined", zap.String("client", msg.ClientID))

			case Leave:
				if ch, ok := s.clients[msg.ClientID]; ok {
					close(ch) // Writer ranging over it can exit
					delete(s.clients, msg.ClientID)
					s.log.Debug("client left", zap.String("client", msg.ClientID))
					s.armIdle()
				}

			case FromClient:
				s.apply(msg.ClientID, msg.Cmd)

			case timerFired:
				s.apply("", msg.Cmd)

			case idleFired:
				// A client may have joined after the timer fired.
				if msg.gen != s.idleGen || len(s.clients) > 0 {
					break
				}
				s.log.Info("session idle, stopping")
				if s.opts.OnIdle != nil {
					s.opts.OnIdle(s.opts.Code)
				}
				s.shutdown()
				return

			case GetState:
				msg.Reply <- View{
					Code:       s.opts.Code,
					Version:    s.version,
					NumClients: len(s.clients),
					State:      s.game.State(),
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) apply(clientID string, cmd engine.Command) {
	events, err := s.game.Apply(cmd)
	if err != nil {
		s.log.Debug("command rejected", zap.String("client", clientID), zap.String("cmd", string(cmd.Type)), zap.Error(err))
		if ch, ok := s.clients[clientID]; ok {
			s.send(clientID, ch, Snapshot{Version: s.version, Err: err})
		}
		return
	}
	// No-op commands (stale drops, stale timers) change nothing.
	if len(events) == 0 {
		return
	}

	for _, evt := range events {
		switch evt.Type {
		case engine.EvtRoundStarted:
			stopTimer(&s.advanceTimer)
			stopTimer(&s.feedbackTimer)
			s.log.Info("round started", zap.Int("level", evt.Level))

		case engine.EvtRoundSolved:
			s.arm(&s.advanceTimer, s.opts.SuccessDelay, timerFired{Cmd: engine.Command{Type: engine.CmdAdvanceLevel, Gen: evt.Gen}})
			s.record(evt)

		case engine.EvtRoundFailed:
			s.arm(&s.feedbackTimer, s.opts.FeedbackDelay, timerFired{Cmd: engine.Command{Type: engine.CmdClearFeedback, Seq: evt.Seq}})
			s.record(evt)
		}
	}

	s.version++
	s.broadcast(Snapshot{Version: s.version, State: s.game.State()})
}

// arm replaces any pending timer of the same kind. The callback posts back
// into the inbox so the game is only touched from the loop goroutine.
func (s *Session) arm(t **time.Timer, d time.Duration, m Msg) {
	stopTimer(t)
	*t = time.AfterFunc(d, func() {
		select {
		case s.inbox <- m:
		case <-s.ctx.Done():
		}
	})
}

func (s *Session) armIdle() {
	if s.opts.IdleTimeout <= 0 || len(s.clients) > 0 {
		return
	}
	s.idleGen++
	s.arm(&s.idleTimer, s.opts.IdleTimeout, idleFired{gen: s.idleGen})
}

func stopTimer(t **time.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

func (s *Session) record(evt engine.Event) {
	if s.opts.Store == nil {
		return
	}
	a := store.Attempt{
		SessionCode: s.opts.Code,
		Level:       evt.Level,
		Correct:     evt.Correct,
		Total:       evt.Total,
		Solved:      evt.Type == engine.EvtRoundSolved,
		Points:      evt.Points,
		CreatedAt:   time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.opts.Store.RecordAttempt(ctx, a); err != nil {
			s.log.Warn("record attempt", zap.Error(err))
		}
	}()
}

func (s *Session) shutdown() {
	stopTimer(&s.advanceTimer)
	stopTimer(&s.feedbackTimer)
	stopTimer(&s.idleTimer)
	for id, ch := range s.clients {
		close(ch) // Tell client no more snapshots
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		s.send(id, ch, snap)
	}
}

func (s *Session) send(id string, ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		//ok
	default:
		// Client is slow/full - drop them.
		close(ch)
		delete(s.clients, id)
		s.log.Info("dropped slow client", zap.String("client", id))
		s.armIdle()
	}
}

// Expose the inbox so tests or WS layer can send messages.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

func (s *Session) Code() string { return s.opts.Code }

// Done is closed once the loop has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// Post delivers m unless the session has already stopped.
func (s *Session) Post(m Msg) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.inbox <- m:
		return true
	case <-s.done:
		return false
	}
}

var ErrStopped = errors.New("session stopped")

// View asks the loop for the current state.
func (s *Session) View(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if !s.Post(GetState{Reply: reply}) {
		return View{}, ErrStopped
	}
	select {
	case v := <-reply:
		return v, nil
	case <-s.done:
		return View{}, ErrStopped
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}
