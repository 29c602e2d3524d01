package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/bible"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/constants"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Assembler.Books(r.Context())
	if err != nil {
		h.contentError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, books)
}

func (h *Handler) SuggestBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	h.writeJSON(w, http.StatusOK, bible.Suggest(query, constants.MaxBookSuggestions))
}

func (h *Handler) GetChapter(w http.ResponseWriter, r *http.Request) {
	book := chi.URLParam(r, "book")
	chapter, err := strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil {
		http.Error(w, "chapter must be a number", http.StatusBadRequest)
		return
	}

	verses, err := h.Assembler.GetChapter(r.Context(), book, chapter, h.preferredAuthor(r))
	if err != nil {
		h.contentError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, verses)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	verses, err := h.Assembler.Search(r.Context(), query, h.preferredAuthor(r))
	if err != nil {
		h.contentError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, verses)
}

// contentError maps corpus unavailability to 503; anything else is a plain
// server error.
func (h *Handler) contentError(w http.ResponseWriter, err error) {
	if errors.Is(err, bible.ErrContentUnavailable) {
		h.Log.Error("corpus unavailable", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":     "bible content unavailable",
			"retryable": true,
		})
		return
	}
	h.serverError(w, "content request failed", err)
}

// preferredAuthor resolves the narrator preference for a request: an
// explicit author query parameter wins, otherwise the stored app settings
// apply. Audio is a best-effort overlay, so failures here mean no
// preference rather than a failed request.
func (h *Handler) preferredAuthor(r *http.Request) string {
	if author := r.URL.Query().Get("author"); author != "" {
		return author
	}
	return h.appSettings().SelectedAuthorID
}

// appSettings loads the stored preference blob, falling back to defaults
// when unset or unreadable.
func (h *Handler) appSettings() domain.AppSettings {
	raw, err := h.DB.GetPreference(constants.AppSettingsKey)
	if err != nil {
		h.Log.Error("failed to read preferences", "error", err)
		return domain.DefaultAppSettings()
	}
	if raw == "" {
		return domain.DefaultAppSettings()
	}
	var settings domain.AppSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		h.Log.Error("stored preferences are corrupt", "error", err)
		return domain.DefaultAppSettings()
	}
	return settings
}
