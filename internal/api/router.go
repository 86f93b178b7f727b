package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dustinkb1983/nyxchat/internal/chat"
	"github.com/dustinkb1983/nyxchat/internal/completion"
	"github.com/dustinkb1983/nyxchat/internal/memory"
	"github.com/dustinkb1983/nyxchat/internal/store"
)

// validate checks request DTO struct tags. Shared across handlers; the
// instance caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(
	db *store.DB,
	ctrl *chat.Controller,
	engine *memory.Engine,
	prompts *store.PromptStore,
	settings *store.SettingsStore,
	client *completion.Client,
	builtIn []string,
	apiKey string,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(db, client)
	chatH := NewChatHandler(ctrl)
	convH := NewConversationHandler(ctrl)
	memoryH := NewMemoryHandler(engine)
	promptH := NewPromptHandler(prompts)
	settingsH := NewSettingsHandler(settings, builtIn)

	// Unauthenticated routes
	r.Get("/health", healthH.Health)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(apiKey))

		r.Route("/chat", func(r chi.Router) {
			r.Post("/send", chatH.Send)
			r.Post("/retry", chatH.Retry)
			r.Post("/new", chatH.New)
			r.Get("/status", chatH.Status)
		})

		r.Route("/conversations", func(r chi.Router) {
			r.Get("/", convH.List)
			r.Get("/{id}", convH.Get)
			r.Delete("/{id}", convH.Delete)
			r.Post("/{id}/activate", convH.Activate)
		})

		r.Route("/memories", func(r chi.Router) {
			r.Get("/", memoryH.List)
			r.Post("/", memoryH.Create)
			r.Delete("/", memoryH.ClearAll)
			r.Get("/relevant", memoryH.Relevant)
			r.Get("/{id}", memoryH.Get)
			r.Patch("/{id}", memoryH.Update)
			r.Delete("/{id}", memoryH.Delete)
			r.Post("/{id}/pin", memoryH.Pin)
			r.Post("/{id}/unpin", memoryH.Unpin)
		})

		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", promptH.List)
			r.Post("/", promptH.Create)
			r.Get("/{id}", promptH.Get)
			r.Patch("/{id}", promptH.Update)
			r.Delete("/{id}", promptH.Delete)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsH.Get)
			r.Put("/", settingsH.Update)
			r.Put("/models", settingsH.UpdateModels)
			r.Put("/profiles", settingsH.UpdateProfiles)
			r.Put("/active-profile", settingsH.SetActiveProfile)
		})
	})

	return r
}
