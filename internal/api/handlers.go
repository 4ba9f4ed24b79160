package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/leaderboard"
	"github.com/vovakirdan/gor-arcade/internal/tournament"
)

const maxLeaderboardLimit = leaderboard.RankWindow

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	game := chi.URLParam(r, "game")

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxLeaderboardLimit {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxLeaderboardLimit))
			return
		}
		limit = n
	}

	entries, err := s.scores.Top(r.Context(), game, limit)
	switch {
	case errors.Is(err, leaderboard.ErrUnknownGame):
		writeError(w, http.StatusNotFound, "Unknown game")
		return
	case err != nil:
		s.logger.Error("leaderboard query failed", "game", game, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
}

type scoreRequest struct {
	PlayerName    string `json:"playerName"`
	Score         *int   `json:"score"`
	Time          *int   `json:"time"`
	WalletAddress string `json:"walletAddress"`
}

type scoreResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Rank    int               `json:"rank"`
	Entry   leaderboard.Entry `json:"entry"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	game := chi.URLParam(r, "game")
	order, ok := s.scores.Catalog().Order(game)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown game")
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	// Timed games submit "time", point games "score".
	metric, field := req.Score, "score"
	if order == core.LowerIsBetter {
		metric, field = req.Time, "time"
	}
	if req.PlayerName == "" || metric == nil {
		writeError(w, http.StatusBadRequest, "Invalid player name or "+field)
		return
	}

	out, err := s.scores.Submit(r.Context(), leaderboard.Submission{
		Game:   game,
		Player: req.PlayerName,
		Wallet: req.WalletAddress,
		Metric: *metric,
	})
	switch {
	case errors.Is(err, leaderboard.ErrInvalidScore):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error("score submission failed", "game", game, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit score")
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{
		Success: true,
		Message: out.Message,
		Rank:    out.Rank,
		Entry:   out.Entry,
	})
}

type tournamentView struct {
	ID           string          `json:"id"`
	Game         string          `json:"game"`
	EntryFee     decimal.Decimal `json:"entryFee"`
	PrizePool    decimal.Decimal `json:"prizePool"`
	Participants int             `json:"participants"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	EndsAt       time.Time       `json:"endsAt"`
	Status       string          `json:"status"`
}

func (s *Server) view(t tournament.Tournament) tournamentView {
	return tournamentView{
		ID:           t.ID,
		Game:         t.Game,
		EntryFee:     t.EntryFee,
		PrizePool:    t.PrizePool,
		Participants: t.Participants,
		StartDate:    t.StartsAt,
		EndDate:      t.EndsAt,
		EndsAt:       t.EndsAt,
		Status:       tournament.Status(t, s.tournaments.Now()),
	}
}

func (s *Server) handleTournament(w http.ResponseWriter, r *http.Request) {
	game := r.URL.Query().Get("game")
	if game == "" {
		writeError(w, http.StatusBadRequest, "Game parameter is required")
		return
	}

	t, err := s.tournaments.Current(r.Context(), game)
	switch {
	case errors.Is(err, tournament.ErrNotFound):
		writeError(w, http.StatusNotFound, "Tournament not found")
		return
	case err != nil:
		s.logger.Error("tournament lookup failed", "game", game, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch tournament")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"tournament": s.view(t),
	})
}

type entryRequest struct {
	Game         string `json:"game"`
	PlayerWallet string `json:"playerWallet"`
}

func (s *Server) handleTournamentEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Game == "" || req.PlayerWallet == "" {
		writeError(w, http.StatusBadRequest, "Game and playerWallet are required")
		return
	}

	t, err := s.tournaments.Enter(r.Context(), req.Game, req.PlayerWallet)
	switch {
	case errors.Is(err, tournament.ErrWalletRequired):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, tournament.ErrNotFound):
		writeError(w, http.StatusNotFound, "Tournament not found")
		return
	case err != nil:
		s.logger.Error("tournament entry failed", "game", req.Game, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process tournament entry")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    fmt.Sprintf("Entry fee of %s %s added to prize pool", t.EntryFee, tournament.Currency),
		"tournament": s.view(t),
	})
}
