package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wordarena/wordarena-go/internal/api/middleware"
	"github.com/wordarena/wordarena-go/internal/api/request"
	"github.com/wordarena/wordarena-go/internal/api/response"
	"github.com/wordarena/wordarena-go/internal/model"
	"github.com/wordarena/wordarena-go/internal/services/game"
)

// GameHandler handles daily and custom game endpoints
type GameHandler struct {
	gameController game.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// GetDaily handles GET /api/v1/daily. Creating on first read keeps the
// endpoint idempotent: there is exactly one daily game per player per day.
func (h *GameHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.StartDailyGame(r.Context(), player.Identity())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// GuessDaily handles POST /api/v1/daily/guess
func (h *GameHandler) GuessDaily(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.StartDailyGame(r.Context(), player.Identity())
	if err != nil {
		WriteError(w, err)
		return
	}

	h.guess(w, r, g)
}

// CreateCustom handles POST /api/v1/games/custom
func (h *GameHandler) CreateCustom(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateCustomGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if len(req.Secret) != model.WordLength {
		WriteError(w, NewInvalidRequestError("secret must be exactly 5 letters"))
		return
	}

	key := model.GameKey("custom-" + uuid.NewString())
	origin := model.CustomOrigin{
		AuthorID: player.ID,
		Message:  req.Message,
	}

	g, err := h.gameController.StartCustomGame(r.Context(), player.Identity(), key, req.Secret, origin, req.AllowRedo)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{key}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	key := model.GameKey(mux.Vars(r)["key"])

	g, err := h.gameController.GetGame(r.Context(), player.ID, key)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Guess handles POST /api/v1/games/{key}/guess
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	key := model.GameKey(mux.Vars(r)["key"])

	g, err := h.gameController.GetGame(r.Context(), player.ID, key)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.guess(w, r, g)
}

// Pop handles POST /api/v1/games/{key}/pop
func (h *GameHandler) Pop(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	key := model.GameKey(mux.Vars(r)["key"])

	g, err := h.gameController.GetGame(r.Context(), player.ID, key)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err = h.gameController.PopGuess(r.Context(), g)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Reset handles POST /api/v1/games/{key}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	key := model.GameKey(mux.Vars(r)["key"])

	g, err := h.gameController.GetGame(r.Context(), player.ID, key)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err = h.gameController.ResetGuesses(r.Context(), g)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// guess validates and applies a guess to the given game. Rejected guesses
// are a normal outcome, reported in the response body rather than as an
// HTTP error.
func (h *GameHandler) guess(w http.ResponseWriter, r *http.Request, g *model.Game) {
	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if g.IsOver() {
		WriteError(w, model.ErrGameOver)
		return
	}

	result := h.gameController.ValidateGuess(g, req.Guess)
	if result != model.GuessValid {
		response.JSON(w, http.StatusOK, response.GuessResponse{
			Result: string(result),
			Game:   response.GameFromModel(g),
		})
		return
	}

	g, err := h.gameController.ApplyGuess(r.Context(), g, req.Guess)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessResponse{
		Result: string(model.GuessValid),
		Game:   response.GameFromModel(g),
	})
}
