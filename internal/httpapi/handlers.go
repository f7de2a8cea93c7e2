package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/fracmatch/internal/engine"
	"github.com/DoyleJ11/fracmatch/internal/fraction"
	"github.com/DoyleJ11/fracmatch/internal/hub"
	"github.com/DoyleJ11/fracmatch/internal/render"
	"github.com/DoyleJ11/fracmatch/internal/store"
	"github.com/DoyleJ11/fracmatch/internal/types"
)

const (
	maxCodeAttempts = 16
	// Anything larger does not fit in a 100 unit viewBox.
	maxRenderDenominator = 48
	defaultAttemptLimit  = 20
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type createSessionRequest struct {
	Tier string `json:"tier"`
}

func CreateSession(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		tier := engine.TierEasy
		if req.Tier != "" {
			t, ok := engine.ParseTier(req.Tier)
			if !ok {
				http.Error(w, "unknown tier", http.StatusBadRequest)
				return
			}
			tier = t
		}

		for i := 0; i < maxCodeAttempts; i++ {
			code, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			if h.Create(code, tier.EntryLevel()) == nil {
				log.Debug("collision on code, regenerating", zap.String("code", code))
				continue
			}

			writeJSON(w, http.StatusCreated, struct {
				Code string `json:"code"`
			}{Code: code})
			return
		}
		http.Error(w, "failed to create session", http.StatusInternalServerError)
	}
}

func GetSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		s := h.Get(code)
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		v, err := s.View(r.Context())
		if err != nil {
			http.Error(w, "session not available", http.StatusGone)
			return
		}
		writeJSON(w, http.StatusOK, types.Snapshot(v.Code, v.Version, v.State))
	}
}

func ListAttempts(st store.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultAttemptLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				http.Error(w, "bad limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		attempts, err := st.ListAttempts(r.Context(), chi.URLParam(r, "code"), limit)
		if err != nil {
			log.Error("list attempts", zap.Error(err))
			http.Error(w, "failed to list attempts", http.StatusInternalServerError)
			return
		}
		if attempts == nil {
			attempts = []store.Attempt{}
		}
		writeJSON(w, http.StatusOK, attempts)
	}
}

// RenderFraction serves /render/{shape}/{numerator}/{denominator}.svg.
func RenderFraction(w http.ResponseWriter, r *http.Request) {
	shape, ok := fraction.ParseShape(chi.URLParam(r, "shape"))
	if !ok {
		http.Error(w, "unknown shape", http.StatusBadRequest)
		return
	}
	numerator, err := strconv.Atoi(chi.URLParam(r, "numerator"))
	if err != nil || numerator < 0 {
		http.Error(w, "bad numerator", http.StatusBadRequest)
		return
	}
	denominator, err := strconv.Atoi(strings.TrimSuffix(chi.URLParam(r, "denominator"), ".svg"))
	if err != nil || denominator < 0 || denominator > maxRenderDenominator {
		http.Error(w, "bad denominator", http.StatusBadRequest)
		return
	}
	color := r.URL.Query().Get("color")
	if color == "" {
		color = engine.Palette[0]
	}

	d := render.Render(fraction.New(numerator, denominator), shape, color)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_ = d.WriteSVG(w)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
