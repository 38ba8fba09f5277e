package round

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/jumble/internal/puzzle"
	httperrors "github.com/gokatarajesh/jumble/pkg/http/errors"
)

// PlayerHeader identifies the player; it must hold a UUID when present.
const PlayerHeader = "X-Player-ID"

// HTTPHandlers exposes round play over REST.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "round_http").Logger(),
	}
}

// Register mounts the round routes on mux.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/rounds", h.Next)
	mux.HandleFunc("GET /v1/rounds/{id}", h.Get)
	mux.HandleFunc("POST /v1/rounds/check", h.Check)
	mux.HandleFunc("GET /v1/difficulties", h.Difficulties)
}

type difficultyInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Difficulties handles GET /v1/difficulties
func (h *HTTPHandlers) Difficulties(w http.ResponseWriter, r *http.Request) {
	out := make([]difficultyInfo, 0, len(puzzle.Difficulties))
	for _, d := range puzzle.Difficulties {
		out = append(out, difficultyInfo{Name: d.String(), Label: d.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

// Next handles GET /v1/rounds?difficulty=easy&order=random
func (h *HTTPHandlers) Next(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	d, order, ok := h.roundParams(w, r)
	if !ok {
		return
	}

	round, err := h.service.Next(r.Context(), player, d, order)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if round == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

// Get handles GET /v1/rounds/{id}
func (h *HTTPHandlers) Get(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httperrors.RespondField(w, httperrors.ErrCodeInvalidPuzzleID, "puzzle id must be a positive integer", "id")
		return
	}
	d, order, ok := h.roundParams(w, r)
	if !ok {
		return
	}

	round, err := h.service.Get(r.Context(), id, player, d, order)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

// Check handles POST /v1/rounds/check
func (h *HTTPHandlers) Check(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	var g Guess
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		httperrors.Respond(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if g.Token == "" {
		httperrors.RespondField(w, httperrors.ErrCodeMissingField, "token is required", "token")
		return
	}

	verdict, err := h.service.Check(r.Context(), player, g)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

func (h *HTTPHandlers) player(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.Header.Get(PlayerHeader)
	if raw == "" {
		return "", true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperrors.RespondField(w, httperrors.ErrCodeInvalidPlayer, "player id must be a UUID", PlayerHeader)
		return "", false
	}
	return id.String(), true
}

func (h *HTTPHandlers) roundParams(w http.ResponseWriter, r *http.Request) (puzzle.Difficulty, puzzle.SortOrder, bool) {
	q := r.URL.Query()
	d := puzzle.Easy
	if raw := q.Get("difficulty"); raw != "" {
		parsed, err := puzzle.ParseDifficulty(raw)
		if err != nil {
			httperrors.RespondField(w, httperrors.ErrCodeUnknownDifficulty, err.Error(), "difficulty")
			return 0, "", false
		}
		d = parsed
	}
	order, err := puzzle.ParseSortOrder(q.Get("order"))
	if err != nil {
		httperrors.RespondField(w, httperrors.ErrCodeUnknownOrder, err.Error(), "order")
		return 0, "", false
	}
	return d, order, true
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPuzzleNotFound):
		httperrors.Respond(w, httperrors.ErrCodePuzzleNotFound, "puzzle not found")
	case errors.Is(err, ErrExpiredToken):
		httperrors.Respond(w, httperrors.ErrCodeTokenExpired, "round token expired")
	case errors.Is(err, ErrInvalidToken):
		httperrors.Respond(w, httperrors.ErrCodeInvalidToken, "invalid round token")
	case errors.Is(err, ErrNoSuchJumble):
		httperrors.Respond(w, httperrors.ErrCodeValidationFailed, err.Error())
	case errors.Is(err, ErrNoCandidate):
		h.logger.Error().Err(err).Msg("stored puzzle not playable at difficulty")
		httperrors.Respond(w, httperrors.ErrCodeUnplayablePuzzle, "puzzle has no candidates at this difficulty")
	default:
		h.logger.Error().Err(err).Msg("round request failed")
		httperrors.Respond(w, httperrors.ErrCodeInternalError, "failed to serve round")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
