package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

func (h *Handler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.Authors.List(r.Context())
	if err != nil {
		h.serverError(w, "failed to list authors", err)
		return
	}
	if authors == nil {
		authors = []domain.AudioAuthor{}
	}
	h.writeJSON(w, http.StatusOK, authors)
}

func (h *Handler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	author, err := h.Authors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serverError(w, "failed to load author", err)
		return
	}
	if author == nil {
		http.Error(w, "author not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, author)
}

func (h *Handler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var author domain.AudioAuthor
	if err := json.NewDecoder(r.Body).Decode(&author); err != nil {
		http.Error(w, "invalid author payload", http.StatusBadRequest)
		return
	}
	if author.FirstName == "" && author.LastName == "" {
		http.Error(w, "author needs a name", http.StatusBadRequest)
		return
	}

	if err := h.Authors.Create(r.Context(), &author); err != nil {
		h.serverError(w, "failed to create author", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, author)
}

func (h *Handler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.Authors.Get(r.Context(), id)
	if err != nil {
		h.serverError(w, "failed to load author", err)
		return
	}
	if existing == nil {
		http.Error(w, "author not found", http.StatusNotFound)
		return
	}

	var author domain.AudioAuthor
	if err := json.NewDecoder(r.Body).Decode(&author); err != nil {
		http.Error(w, "invalid author payload", http.StatusBadRequest)
		return
	}
	author.ID = id
	author.CreatedAt = existing.CreatedAt

	if err := h.Authors.Update(r.Context(), &author); err != nil {
		h.serverError(w, "failed to update author", err)
		return
	}
	h.writeJSON(w, http.StatusOK, author)
}

func (h *Handler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	if err := h.Authors.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.serverError(w, "failed to delete author", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
