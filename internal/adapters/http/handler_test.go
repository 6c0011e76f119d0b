package httpadapter_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/PabloGalante/farum-triage/internal/adapters/http"
	"github.com/PabloGalante/farum-triage/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-triage/internal/app/composer"
	"github.com/PabloGalante/farum-triage/internal/app/conversation"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	svc := conversation.NewService(memory.NewSessionStore(), conversation.Options{Picker: composer.First})
	t.Cleanup(svc.Close)

	return httpadapter.NewServer(svc)
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateSessionAndSendMessage(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := decode(t, w)["id"].(string)
	require.NotEmpty(t, id)

	w = do(t, srv, http.MethodPost, "/sessions/"+id+"/messages", `{"text":"I'm so sad about my breakup"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, id, resp["session_id"])
	assert.Equal(t, "sad", resp["emotion"])
	assert.Equal(t, "none", resp["crisis_tier"])
	assert.Equal(t, true, resp["show_auxiliary_action"])
	assert.NotEmpty(t, resp["reply_text"])

	w = do(t, srv, http.MethodGet, "/sessions/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	turns, _ := decode(t, w)["turns"].([]any)
	assert.Len(t, turns, 2)
}

func TestSendMessage_Crisis(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodPost, "/sessions/abc/messages", `{"text":"I want to kill myself"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "immediate", resp["crisis_tier"])
	assert.Equal(t, "crisis", resp["strategy"])
	assert.Equal(t, false, resp["show_auxiliary_action"])
	assert.NotEmpty(t, resp["resources"])
}

func TestStartCheckIn(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/sessions/abc/checkin", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, "checkin", resp["strategy"])
	progress, _ := resp["checkin"].(map[string]any)
	assert.Equal(t, "mood", progress["step_name"])

	w = do(t, srv, http.MethodPost, "/sessions/abc/messages", `{"text":"pretty good"}`)
	require.Equal(t, http.StatusOK, w.Code)
	progress, _ = decode(t, w)["checkin"].(map[string]any)
	assert.Equal(t, "stress", progress["step_name"])
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{"unknown session", http.MethodGet, "/sessions/missing", "", http.StatusNotFound},
		{"empty text", http.MethodPost, "/sessions/abc/messages", `{"text":"  "}`, http.StatusBadRequest},
		{"invalid json", http.MethodPost, "/sessions/abc/messages", `{`, http.StatusBadRequest},
		{"wrong method", http.MethodGet, "/sessions/abc/messages", "", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/sessions/abc/other", "", http.StatusNotFound},
		{"list sessions", http.MethodGet, "/sessions", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodOptions, "/sessions", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
