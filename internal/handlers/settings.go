package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

func (h *Handler) GetAudioSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.DB.GetAudioSettings()
	if err != nil {
		h.serverError(w, "failed to load audio settings", err)
		return
	}
	h.writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) PutAudioSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.AudioSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "invalid settings payload", http.StatusBadRequest)
		return
	}
	settings.UpdatedBy = h.Config.AdminUsername

	if err := h.DB.UpdateAudioSettings(&settings); err != nil {
		h.serverError(w, "failed to save audio settings", err)
		return
	}
	h.writeJSON(w, http.StatusOK, settings)
}
