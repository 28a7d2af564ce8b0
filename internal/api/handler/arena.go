package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wordarena/wordarena-go/internal/api/middleware"
	"github.com/wordarena/wordarena-go/internal/api/request"
	"github.com/wordarena/wordarena-go/internal/api/response"
	"github.com/wordarena/wordarena-go/internal/model"
	"github.com/wordarena/wordarena-go/internal/services/arena"
)

// ArenaHandler handles arena-related endpoints
type ArenaHandler struct {
	arenaController arena.ControllerInterface
}

// NewArenaHandler creates a new arena handler
func NewArenaHandler(arenaController arena.ControllerInterface) *ArenaHandler {
	return &ArenaHandler{
		arenaController: arenaController,
	}
}

// Create handles POST /api/v1/arenas
func (h *ArenaHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateArenaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	audience := make([]model.AudienceEntry, len(req.Audience))
	for i, e := range req.Audience {
		audience[i] = model.AudienceEntry{
			Provider: e.Provider,
			UserID:   model.PlayerID(e.UserID),
			Username: e.Username,
		}
	}

	cfg := model.ArenaConfig{
		AudienceSize:     req.AudienceSize,
		Audience:         audience,
		WordCount:        req.WordCount,
		ScheduledStart:   req.ScheduledStart,
		DurationMinutes:  req.DurationMinutes,
		SuddenDeath:      req.SuddenDeath,
		HardModeRequired: req.HardModeRequired,
	}

	a, err := h.arenaController.CreateArena(r.Context(), player.Identity(), cfg)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, h.arenaResponse(a, player.Identity()))
}

// Get handles GET /api/v1/arenas/{id}
func (h *ArenaHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.ArenaID(mux.Vars(r)["id"])

	a, err := h.arenaController.GetArena(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.arenaResponse(a, player.Identity()))
}

// Join handles POST /api/v1/arenas/{id}/join
func (h *ArenaHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.ArenaID(mux.Vars(r)["id"])

	a, err := h.arenaController.Join(r.Context(), id, player.Identity())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.arenaResponse(a, player.Identity()))
}

// Kick handles POST /api/v1/arenas/{id}/kick
func (h *ArenaHandler) Kick(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.ArenaID(mux.Vars(r)["id"])

	var req request.KickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Provider == "" || req.UserID == "" {
		WriteError(w, NewInvalidRequestError("provider and user_id are required"))
		return
	}

	target := model.Identity{
		Provider: req.Provider,
		UserID:   model.PlayerID(req.UserID),
	}

	a, err := h.arenaController.Kick(r.Context(), id, player.Identity(), target)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.arenaResponse(a, player.Identity()))
}

// Standings handles GET /api/v1/arenas/{id}/standings
func (h *ArenaHandler) Standings(w http.ResponseWriter, r *http.Request) {
	id := model.ArenaID(mux.Vars(r)["id"])

	a, standings, err := h.arenaController.Standings(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	rows := make([]response.Standing, len(standings))
	for i, s := range standings {
		rows[i] = response.StandingFromModel(s)
	}

	response.JSON(w, http.StatusOK, response.StandingsResponse{
		ArenaID:      string(a.ID),
		Availability: response.AvailabilityFromModel(h.arenaController.Availability(a)),
		Standings:    rows,
	})
}

// GetWord handles GET /api/v1/arenas/{id}/words/{index}
func (h *ArenaHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.ArenaID(mux.Vars(r)["id"])

	index, err := wordIndex(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.arenaController.PlayWord(r.Context(), id, player.Identity(), index)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// GuessWord handles POST /api/v1/arenas/{id}/words/{index}/guess
func (h *ArenaHandler) GuessWord(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.ArenaID(mux.Vars(r)["id"])

	index, err := wordIndex(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, result, err := h.arenaController.Guess(r.Context(), id, player.Identity(), index, req.Guess)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessResponse{
		Result: string(result),
		Game:   response.GameFromModel(g),
	})
}

func (h *ArenaHandler) arenaResponse(a *model.Arena, user model.Identity) response.Arena {
	return response.ArenaFromModel(a,
		h.arenaController.Availability(a),
		arena.ClassifyMembership(a, user),
	)
}

func wordIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		return 0, NewInvalidRequestError("word index must be a number")
	}
	return index, nil
}
