package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/fracmatch/internal/hub"
	"github.com/DoyleJ11/fracmatch/internal/session"
	"github.com/DoyleJ11/fracmatch/internal/store"
	"github.com/DoyleJ11/fracmatch/internal/types"
)

func newTestRouter(t *testing.T) (http.Handler, *hub.Hub, *store.MemoryStore) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	mem := store.NewMemoryStore()
	h := hub.NewHub(ctx, session.Options{Seed: 5, Store: mem})
	return SetupRoutes(Deps{Hub: h, Store: mem}), h, mem
}

func do(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func createSession(t *testing.T, handler http.Handler, body string) string {
	t.Helper()
	rec := do(t, handler, http.MethodPost, "/sessions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Code, 6)
	return resp.Code
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
}

func TestCreateAndGetSession(t *testing.T) {
	router, _, _ := newTestRouter(t)

	code := createSession(t, router, "")
	rec := do(t, router, http.MethodGet, "/sessions/"+code, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var msg types.ServerMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	require.NotNil(t, msg.State)
	assert.Equal(t, code, msg.State.Code)
	assert.Equal(t, 1, msg.State.Level)
	assert.Equal(t, 0, msg.State.Score)
	assert.Len(t, msg.State.Problems, 2)
	assert.False(t, msg.State.CanSubmit)
}

func TestCreateSessionWithTier(t *testing.T) {
	router, _, _ := newTestRouter(t)

	code := createSession(t, router, `{"tier":"medium"}`)
	rec := do(t, router, http.MethodGet, "/sessions/"+code, "")
	var msg types.ServerMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Equal(t, 3, msg.State.Level)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/sessions", `{"tier":"epic"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/sessions", `{`).Code)
}

func TestGetUnknownSession(t *testing.T) {
	router, _, _ := newTestRouter(t)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/sessions/NOPE00", "").Code)
}

func TestListAttempts(t *testing.T) {
	router, _, mem := newTestRouter(t)
	ctx := context.Background()
	require.NoError(t, mem.RecordAttempt(ctx, store.Attempt{SessionCode: "ABC123", Level: 1, Correct: 1, Total: 2}))
	require.NoError(t, mem.RecordAttempt(ctx, store.Attempt{SessionCode: "ABC123", Level: 1, Correct: 2, Total: 2, Solved: true, Points: 10}))

	rec := do(t, router, http.MethodGet, "/sessions/ABC123/attempts?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var attempts []store.Attempt
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&attempts))
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].Solved)

	rec = do(t, router, http.MethodGet, "/sessions/EMPTY0/attempts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/sessions/ABC123/attempts?limit=zero", "").Code)
}

func TestRenderFraction(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/render/circle/1/4.svg?color=%2360A5FA", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Equal(t, 4, strings.Count(body, "<path"))
	assert.Contains(t, body, `fill="#60A5FA"`)

	rec = do(t, router, http.MethodGet, "/render/bar/2/3.svg", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), "<rect"))

	rec = do(t, router, http.MethodGet, "/render/bar/2/0.svg", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<rect")

	for _, path := range []string{
		"/render/hexagon/1/2.svg",
		"/render/bar/x/2.svg",
		"/render/bar/1/-2.svg",
		"/render/bar/1/500.svg",
	} {
		assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, path, "").Code, path)
	}
}

func TestHealthz(t *testing.T) {
	router, _, _ := newTestRouter(t)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/healthz", "").Code)
}
