package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/DoyleJ11/fracmatch/internal/engine"
	"github.com/DoyleJ11/fracmatch/internal/hub"
	"github.com/DoyleJ11/fracmatch/internal/session"
	"github.com/DoyleJ11/fracmatch/internal/types"
)

const (
	writeTimeout = 3 * time.Second
	// Learners can stare at a round for a while before moving anything.
	idleTimeout = 10 * time.Minute
)

func Handler(h *hub.Hub, log *zap.Logger, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		s := h.Get(code)
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			log.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, 8)
		clientID := uuid.NewString()
		log := log.With(zap.String("code", code), zap.String("client", clientID))

		if !s.Post(session.Join{ClientID: clientID, Outbox: out}) {
			conn.Close(websocket.StatusGoingAway, "session closed")
			return
		}
		defer s.Post(session.Leave{ClientID: clientID})
		log.Info("client connected")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		writerDone := make(chan struct{})
		go func() {
			defer close(writerDone)
			for {
				select {
				case snap, ok := <-out:
					if !ok {
						// The session closed our outbox: it stopped, dropped us, or we left.
						conn.Close(websocket.StatusGoingAway, "session closed")
						return
					}
					msg := types.Snapshot(code, snap.Version, snap.State)
					if snap.Err != nil {
						msg = types.Error(snap.Err)
					}
					write(writeCtx, conn, msg)
				case <-writeCtx.Done():
					return
				}
			}
		}()
		// The handler only returns once the writer is gone.
		defer func() {
			writeCancel()
			<-writerDone
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), idleTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					log.Info("client disconnected")
				default:
					log.Debug("read failed", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				write(r.Context(), conn, types.ServerMessage{Type: "Error", Error: "bad json"})
				continue
			}

			cmd, ok := toEngineCommand(cm)
			if !ok {
				write(r.Context(), conn, types.ServerMessage{Type: "Error", Error: "unknown type"})
				continue
			}

			if !s.Post(session.FromClient{ClientID: clientID, Cmd: cmd}) {
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

// toEngineCommand maps the client vocabulary onto engine commands. Timer
// commands are never accepted from clients.
func toEngineCommand(m types.ClientMessage) (engine.Command, bool) {
	switch m.Type {
	case "StartDrag":
		return engine.Command{Type: engine.CmdStartDrag, ItemID: m.ItemID}, true
	case "Place":
		return engine.Command{Type: engine.CmdPlace, TargetID: m.TargetID, ItemID: m.ItemID}, true
	case "Return":
		return engine.Command{Type: engine.CmdReturn, ItemID: m.ItemID}, true
	case "Submit":
		return engine.Command{Type: engine.CmdSubmit}, true
	case "SetDifficulty":
		return engine.Command{Type: engine.CmdSetDifficulty, Tier: engine.Tier(m.Tier)}, true
	case "Reset":
		return engine.Command{Type: engine.CmdReset}, true
	default:
		return engine.Command{}, false
	}
}
