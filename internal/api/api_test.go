package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gor-arcade/internal/api"
	"github.com/vovakirdan/gor-arcade/internal/leaderboard"
	"github.com/vovakirdan/gor-arcade/internal/storage"
	"github.com/vovakirdan/gor-arcade/internal/tournament"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "arcade.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mock := clock.NewMock()
	mock.Set(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))

	reg := prometheus.NewRegistry()
	scores := leaderboard.NewService(store, leaderboard.DefaultCatalog(),
		leaderboard.WithClock(mock),
		leaderboard.WithMetrics(leaderboard.NewMetrics(reg)),
	)
	tournaments := tournament.NewService(store, tournament.DefaultFees(), tournament.WithClock(mock))

	return api.NewServer(scores, tournaments, reg, nil).Routes()
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var decoded map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestHealth(t *testing.T) {
	h := setupTestServer(t)
	w, _ := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := setupTestServer(t)
	w, _ := do(t, h, http.MethodOptions, "/api/snake/score", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLeaderboardEmpty(t *testing.T) {
	h := setupTestServer(t)
	w, body := do(t, h, http.MethodGet, "/api/tetris/leaderboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, body["leaderboard"])
}

func TestLeaderboardErrors(t *testing.T) {
	h := setupTestServer(t)

	w, _ := do(t, h, http.MethodGet, "/api/pacman/leaderboard", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, limit := range []string{"0", "abc", "101"} {
		w, body := do(t, h, http.MethodGet, "/api/snake/leaderboard?limit="+limit, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit %s", limit)
		assert.Contains(t, body["error"], "limit")
	}
}

func TestSubmitScore(t *testing.T) {
	h := setupTestServer(t)

	w, body := do(t, h, http.MethodPost, "/api/snake/score", map[string]any{
		"playerName":    "SwiftRunner1",
		"score":         120,
		"walletAddress": "wallet-1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["rank"])
	assert.Equal(t, "New snake champion! You're #1 with 120 points!", body["message"])

	entry := body["entry"].(map[string]any)
	assert.Equal(t, "SwiftRunner1", entry["playerName"])
	assert.Equal(t, float64(120), entry["score"])

	w, body = do(t, h, http.MethodPost, "/api/snake/score", map[string]any{
		"playerName": "SwiftRunner1",
		"score":      80,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, leaderboard.NotBeatenMessage, body["message"])

	_, body = do(t, h, http.MethodGet, "/api/snake/leaderboard", nil)
	board := body["leaderboard"].([]any)
	require.Len(t, board, 1)
	assert.Equal(t, float64(120), board[0].(map[string]any)["score"])
}

func TestSubmitTimeForMinesweeper(t *testing.T) {
	h := setupTestServer(t)

	w, body := do(t, h, http.MethodPost, "/api/minesweeper/score", map[string]any{
		"playerName": "Ann",
		"time":       30,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "New minesweeper champion! You're #1 with a time of 30s!", body["message"])

	// score is not a substitute for time
	w, body = do(t, h, http.MethodPost, "/api/minesweeper/score", map[string]any{
		"playerName": "Bob",
		"score":      30,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid player name or time", body["error"])
}

func TestSubmitScoreErrors(t *testing.T) {
	h := setupTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"unknown game", "/api/pacman/score", map[string]any{"playerName": "a", "score": 1}, http.StatusNotFound},
		{"bad json", "/api/snake/score", "{not json", http.StatusBadRequest},
		{"missing name", "/api/snake/score", map[string]any{"score": 10}, http.StatusBadRequest},
		{"missing score", "/api/tetris/score", map[string]any{"playerName": "a"}, http.StatusBadRequest},
		{"fractional score", "/api/tetris/score", map[string]any{"playerName": "a", "score": 1.5}, http.StatusBadRequest},
		{"zero score", "/api/snake/score", map[string]any{"playerName": "a", "score": 0}, http.StatusBadRequest},
		{"zero time", "/api/minesweeper/score", map[string]any{"playerName": "a", "time": 0}, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, body := do(t, h, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestTournament(t *testing.T) {
	h := setupTestServer(t)

	w, body := do(t, h, http.MethodGet, "/api/tournaments?game=snake", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])

	trn := body["tournament"].(map[string]any)
	assert.Equal(t, "snake", trn["game"])
	assert.Equal(t, "0.008", trn["entryFee"])
	assert.Equal(t, "0", trn["prizePool"])
	assert.Equal(t, float64(0), trn["participants"])
	assert.Equal(t, "3d 0h 0m left", trn["status"])
	assert.Equal(t, "2025-05-04T09:00:00Z", trn["endsAt"])

	_, again := do(t, h, http.MethodGet, "/api/tournaments?game=snake", nil)
	assert.Equal(t, trn["id"], again["tournament"].(map[string]any)["id"])
}

func TestTournamentErrors(t *testing.T) {
	h := setupTestServer(t)

	w, _ := do(t, h, http.MethodGet, "/api/tournaments", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h, http.MethodGet, "/api/tournaments?game=pacman", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, h, http.MethodPost, "/api/tournaments/entry", map[string]any{"game": "snake"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h, http.MethodPost, "/api/tournaments/entry", "nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h, http.MethodPost, "/api/tournaments/entry", map[string]any{"game": "pacman", "playerWallet": "w"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTournamentEntry(t *testing.T) {
	h := setupTestServer(t)

	for i := 0; i < 2; i++ {
		w, body := do(t, h, http.MethodPost, "/api/tournaments/entry", map[string]any{
			"game":         "tetris",
			"playerWallet": "wallet-1",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Entry fee of 0.015 GOR added to prize pool", body["message"])
	}

	_, body := do(t, h, http.MethodGet, "/api/tournaments?game=tetris", nil)
	trn := body["tournament"].(map[string]any)
	assert.Equal(t, "0.03", trn["prizePool"])
	assert.Equal(t, float64(2), trn["participants"])
}

func TestMetricsEndpoint(t *testing.T) {
	h := setupTestServer(t)

	do(t, h, http.MethodPost, "/api/snake/score", map[string]any{"playerName": "a", "score": 10})

	w, _ := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `arcade_score_submissions_total{game="snake",result="recorded"} 1`)
}
