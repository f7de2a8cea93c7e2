package hub

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/fracmatch/internal/random"
	"github.com/DoyleJ11/fracmatch/internal/session"
)

type HubMsg interface{ isHubMsg() }

// CreateSession replies nil when Code is already taken.
type CreateSession struct {
	Code  string
	Level int
	Reply chan *session.Session
}

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type RemoveSession struct {
	Code string
}

type CountSessions struct {
	Reply chan int
}

type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	defaults session.Options
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (RemoveSession) isHubMsg() {}
func (CountSessions) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// NewHub starts the hub loop. defaults is copied into every new session; its
// Code, Level and Game fields are ignored.
func NewHub(parent context.Context, defaults session.Options) *Hub {
	ctx, cancel := context.WithCancel(parent)
	log := defaults.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		defaults: defaults,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				if h.sessions[msg.Code] != nil {
					msg.Reply <- nil
					break
				}
				s := session.New(h.ctx, h.options(msg.Code, msg.Level))
				h.sessions[msg.Code] = s
				h.log.Info("session created", zap.String("code", msg.Code), zap.Int("level", msg.Level))
				msg.Reply <- s

			case GetSession:
				msg.Reply <- h.sessions[msg.Code] // May be nil

			case RemoveSession:
				if s := h.sessions[msg.Code]; s != nil {
					s.Post(session.Shutdown{})
					delete(h.sessions, msg.Code)
				}

			case CountSessions:
				msg.Reply <- len(h.sessions)

			case ShutdownHub:
				for _, s := range h.sessions {
					s.Post(session.Shutdown{})
				}
				clear(h.sessions)
				h.cancel()
				return
			}
		}
	}
}

func (h *Hub) options(code string, level int) session.Options {
	opts := h.defaults
	opts.Code = code
	opts.Level = level
	opts.Game = nil

	seed, err := random.SeedOr(h.defaults.Seed)
	if err != nil {
		h.log.Warn("falling back to clock seed", zap.Error(err))
		seed = time.Now().UnixNano()
	}
	opts.Seed = seed
	opts.OnIdle = h.removeIdle
	return opts
}

// removeIdle is called from a session's own loop, so it must not wait on the
// hub loop, which may itself be posting to that session.
func (h *Hub) removeIdle(code string) {
	go func() {
		select {
		case h.inbox <- RemoveSession{Code: code}:
		case <-h.ctx.Done():
		}
	}()
}

// Create asks the loop for a new session; nil means the code is taken or the
// hub has stopped.
func (h *Hub) Create(code string, level int) *session.Session {
	reply := make(chan *session.Session, 1)
	return h.ask(CreateSession{Code: code, Level: level, Reply: reply}, reply)
}

func (h *Hub) Get(code string) *session.Session {
	reply := make(chan *session.Session, 1)
	return h.ask(GetSession{Code: code, Reply: reply}, reply)
}

func (h *Hub) ask(m HubMsg, reply <-chan *session.Session) *session.Session {
	select {
	case h.inbox <- m:
	case <-h.ctx.Done():
		return nil
	}
	select {
	case s := <-reply:
		return s
	case <-h.ctx.Done():
		return nil
	}
}
