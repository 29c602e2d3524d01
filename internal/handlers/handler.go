// Package handlers is the JSON HTTP surface over the assembler, the
// narration workflows and the record store.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/cache"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/config"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/content"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/logger"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/services"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/store"
)

type Handler struct {
	Assembler *content.Assembler
	Narration *services.Narration
	Authors   *services.Authors
	DB        *store.DB
	Blobs     *store.Blobs
	Cache     *cache.Cache
	Config    *config.Config
	Log       *logger.Logger
}

func NewHandler(a *content.Assembler, n *services.Narration, authors *services.Authors, db *store.DB, blobs *store.Blobs, c *cache.Cache, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		Assembler: a,
		Narration: n,
		Authors:   authors,
		DB:        db,
		Blobs:     blobs,
		Cache:     c,
		Config:    cfg,
		Log:       log.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(h.WithRole)

		r.Get("/books", h.ListBooks)
		r.Get("/books/suggest", h.SuggestBooks)
		r.Get("/bible/{book}/{chapter}", h.GetChapter)
		r.Get("/search", h.Search)

		r.Get("/preferences", h.GetPreferences)
		r.Put("/preferences", h.PutPreferences)
		r.Delete("/preferences", h.ResetPreferences)

		r.Get("/settings/audio", h.GetAudioSettings)
		r.With(h.RequireAdmin).Put("/settings/audio", h.PutAudioSettings)

		r.Get("/authors", h.ListAuthors)
		r.Get("/authors/{id}", h.GetAuthor)
		r.With(h.RequireAdmin).Post("/authors", h.CreateAuthor)
		r.With(h.RequireAdmin).Put("/authors/{id}", h.UpdateAuthor)
		r.With(h.RequireAdmin).Delete("/authors/{id}", h.DeleteAuthor)

		r.Get("/videos", h.ListVideos)
		r.With(h.RequireAdmin).Post("/videos", h.CreateVideo)
		r.With(h.RequireAdmin).Put("/videos/{id}", h.UpdateVideo)
		r.With(h.RequireAdmin).Delete("/videos/{id}", h.DeleteVideo)

		r.With(h.RequireEditor).Post("/audio", h.UploadAudio)
		r.With(h.RequireEditor).Delete("/audio", h.DeleteAudio)
	})

	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(h.Blobs.Root()))))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Error("failed to encode response", "error", err)
	}
}

// serverError logs the real cause and answers with a generic message so
// store internals never leak to clients.
func (h *Handler) serverError(w http.ResponseWriter, op string, err error) {
	h.Log.Error(op, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
