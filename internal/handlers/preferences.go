package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/constants"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

// GetPreferences returns the stored settings blob, or the defaults when
// none has been saved yet.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.appSettings())
}

// PutPreferences replaces the whole settings blob. There is no per-field
// patch: clients send the full bundle.
func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var settings domain.AppSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "invalid preferences payload", http.StatusBadRequest)
		return
	}
	if settings.DisplayMode != domain.DisplayModeBox && settings.DisplayMode != domain.DisplayModeInline {
		http.Error(w, "display_mode must be box or inline", http.StatusBadRequest)
		return
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		h.serverError(w, "failed to encode preferences", err)
		return
	}
	if err := h.DB.SetPreference(constants.AppSettingsKey, string(raw)); err != nil {
		h.serverError(w, "failed to save preferences", err)
		return
	}
	h.writeJSON(w, http.StatusOK, settings)
}

// ResetPreferences drops the stored blob and flushes the in-memory cache,
// forcing the next read to start from defaults and fresh data.
func (h *Handler) ResetPreferences(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.DeletePreference(constants.AppSettingsKey); err != nil {
		h.serverError(w, "failed to reset preferences", err)
		return
	}
	h.Cache.ClearAll()
	h.writeJSON(w, http.StatusOK, domain.DefaultAppSettings())
}
