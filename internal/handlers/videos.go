package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.DB.ListVideos()
	if err != nil {
		h.serverError(w, "failed to list videos", err)
		return
	}
	if videos == nil {
		videos = []domain.Video{}
	}
	h.writeJSON(w, http.StatusOK, videos)
}

func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var video domain.Video
	if err := json.NewDecoder(r.Body).Decode(&video); err != nil {
		http.Error(w, "invalid video payload", http.StatusBadRequest)
		return
	}
	if video.Title == "" || video.URL == "" {
		http.Error(w, "video needs a title and a url", http.StatusBadRequest)
		return
	}

	if err := h.DB.CreateVideo(&video); err != nil {
		h.serverError(w, "failed to create video", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, video)
}

func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.DB.GetVideo(id)
	if err != nil {
		h.serverError(w, "failed to load video", err)
		return
	}
	if existing == nil {
		http.Error(w, "video not found", http.StatusNotFound)
		return
	}

	var video domain.Video
	if err := json.NewDecoder(r.Body).Decode(&video); err != nil {
		http.Error(w, "invalid video payload", http.StatusBadRequest)
		return
	}
	video.ID = id
	video.CreatedAt = existing.CreatedAt

	if err := h.DB.UpdateVideo(&video); err != nil {
		h.serverError(w, "failed to update video", err)
		return
	}
	h.writeJSON(w, http.StatusOK, video)
}

func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.DeleteVideo(chi.URLParam(r, "id")); err != nil {
		h.serverError(w, "failed to delete video", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
