package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"finlife/internal/game"
)

type Server struct {
	log  *slog.Logger
	game *game.Service
	mux  *chi.Mux
}

func New(logger *slog.Logger, gameSvc *game.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		log:  logger,
		game: gameSvc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Post("/game/start", s.handleStartGame)
	r.Post("/game/state", s.handleGameState)
	r.Post("/game/advance-year", s.handleAdvanceYear)
	r.Post("/game/fast-forward", s.handleFastForward)
	r.Post("/game/history", s.handleHistory)
	r.Post("/decision/mcq", s.handleMCQDecision)
	r.Post("/decision/job", s.handleJobDecision)
	r.Post("/loan/pay", s.handlePayLoan)
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.StartGame(r.Context(), strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"gameId":      out.GameID,
		"message":     out.Message,
		"playerState": out.PlayerState,
	})
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	var in struct {
		GameID string `json:"gameId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.GetState(r.Context(), in.GameID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"playerState": state})
}

func (s *Server) handleAdvanceYear(w http.ResponseWriter, r *http.Request) {
	var in struct {
		GameID string `json:"gameId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.AdvanceYear(r.Context(), in.GameID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeAdvance(w, out)
}

func (s *Server) handleFastForward(w http.ResponseWriter, r *http.Request) {
	var in struct {
		GameID    string `json:"gameId"`
		TargetAge int    `json:"targetAge"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.FastForward(r.Context(), in.GameID, in.TargetAge)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeAdvance(w, out)
}

func (s *Server) handleMCQDecision(w http.ResponseWriter, r *http.Request) {
	s.handleDecision(w, r, s.game.SubmitMCQDecision)
}

func (s *Server) handleJobDecision(w http.ResponseWriter, r *http.Request) {
	s.handleDecision(w, r, s.game.SubmitJobDecision)
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request, submit func(ctx context.Context, gameID string, choice game.Choice) (game.DecisionResult, error)) {
	var in struct {
		GameID string      `json:"gameId"`
		Choice game.Choice `json:"choice"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := submit(r.Context(), in.GameID, in.Choice)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     out.Message,
		"playerState": out.PlayerState,
	})
}

func (s *Server) handlePayLoan(w http.ResponseWriter, r *http.Request) {
	var in struct {
		GameID string `json:"gameId"`
		Amount int64  `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.PayLoan(r.Context(), in.GameID, in.Amount)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     out.Message,
		"playerState": out.PlayerState,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	var in struct {
		GameID string `json:"gameId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	history, err := s.game.History(r.Context(), in.GameID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transaction_history": history})
}

func writeAdvance(w http.ResponseWriter, out game.AdvanceResult) {
	if out.GameOver {
		writeJSON(w, http.StatusOK, map[string]any{
			"gameOver":     true,
			"message":      out.Message,
			"playerState":  out.PlayerState,
			"finalSummary": out.FinalSummary,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     out.Message,
		"playerState": out.PlayerState,
		"nextEvent":   out.NextEvent,
	})
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrNameRequired),
		errors.Is(err, game.ErrInvalidTargetAge),
		errors.Is(err, game.ErrInvalidPayment),
		errors.Is(err, game.ErrInvalidDecision):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("internal error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
