package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordarena/wordarena-go/internal/api/handler"
	"github.com/wordarena/wordarena-go/internal/api/middleware"
	"github.com/wordarena/wordarena-go/internal/services/arena"
	"github.com/wordarena/wordarena-go/internal/services/auth"
	"github.com/wordarena/wordarena-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	GameController  game.ControllerInterface
	ArenaController arena.ControllerInterface
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	arenaHandler := handler.NewArenaHandler(cfg.ArenaController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Daily game routes (require auth)
	daily := api.PathPrefix("/daily").Subrouter()
	daily.Use(authMiddleware)
	daily.HandleFunc("", gameHandler.GetDaily).Methods(http.MethodGet)
	daily.HandleFunc("/guess", gameHandler.GuessDaily).Methods(http.MethodPost)

	// Game routes (require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("/custom", gameHandler.CreateCustom).Methods(http.MethodPost)
	games.HandleFunc("/{key}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{key}/guess", gameHandler.Guess).Methods(http.MethodPost)
	games.HandleFunc("/{key}/pop", gameHandler.Pop).Methods(http.MethodPost)
	games.HandleFunc("/{key}/reset", gameHandler.Reset).Methods(http.MethodPost)

	// Arena routes (require auth)
	arenas := api.PathPrefix("/arenas").Subrouter()
	arenas.Use(authMiddleware)
	arenas.HandleFunc("", arenaHandler.Create).Methods(http.MethodPost)
	arenas.HandleFunc("/{id}", arenaHandler.Get).Methods(http.MethodGet)
	arenas.HandleFunc("/{id}/join", arenaHandler.Join).Methods(http.MethodPost)
	arenas.HandleFunc("/{id}/kick", arenaHandler.Kick).Methods(http.MethodPost)
	arenas.HandleFunc("/{id}/standings", arenaHandler.Standings).Methods(http.MethodGet)
	arenas.HandleFunc("/{id}/words/{index}", arenaHandler.GetWord).Methods(http.MethodGet)
	arenas.HandleFunc("/{id}/words/{index}/guess", arenaHandler.GuessWord).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
