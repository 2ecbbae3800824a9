package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"daily-trivia-service/internal/app"
	"daily-trivia-service/internal/domain"
)

// Handler serves the REST surface of the daily quiz.
type Handler struct {
	service *app.GameService
}

func NewHandler(service *app.GameService) *Handler {
	return &Handler{service: service}
}

// Register mounts the REST routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/questions", h.handleQuestions)
	mux.HandleFunc("/leaderboard", h.handleSubmit)
	mux.HandleFunc("/leaderboard/today", h.handleToday)
	mux.HandleFunc("/leaderboard/reset", h.handleReset)
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type leaderboardResponse struct {
	Date        domain.Day                `json:"date"`
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
}

type submitRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func (h *Handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	questions, err := h.service.TodayQuestions(r.Context())
	if err != nil {
		log.Printf("load today's questions: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load questions"})
		return
	}
	// An empty day is a valid state, not a fault.
	if len(questions) == 0 {
		writeJSON(w, http.StatusOK, messageResponse{Message: "no questions available today"})
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	day, entries, err := h.service.Leaderboard(r.Context())
	if err != nil {
		log.Printf("load leaderboard: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load leaderboard"})
		return
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Date: day, Leaderboard: entries})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	_, err := h.service.SubmitScore(r.Context(), req.Name, req.Score)
	switch {
	case errors.Is(err, domain.ErrEmptyName):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name must not be empty"})
	case errors.Is(err, domain.ErrDuplicateName):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name already on today's leaderboard, pick a different one"})
	case err != nil:
		log.Printf("submit score: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save score"})
	default:
		writeJSON(w, http.StatusOK, messageResponse{Message: "score saved"})
	}
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	if err := h.service.ResetAll(r.Context()); err != nil {
		log.Printf("reset leaderboard: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to reset leaderboard"})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "leaderboard reset"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}
