package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"vortex/config"
	"vortex/services/metadata"
)

type SettingsHandler struct {
	Manager         *config.Manager
	DemoMode        bool
	MetadataService *metadata.Service
}

func NewSettingsHandler(m *config.Manager, demoMode bool) *SettingsHandler {
	return &SettingsHandler{Manager: m, DemoMode: demoMode}
}

// SetMetadataService sets the metadata service for hot reloading API keys.
func (h *SettingsHandler) SetMetadataService(ms *metadata.Service) {
	h.MetadataService = ms
}

// SettingsResponse wraps config.Settings with runtime information.
type SettingsResponse struct {
	config.Settings
	DemoMode        bool `json:"demoMode"`
	MetadataEnabled bool `json:"metadataEnabled"`
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Manager.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := SettingsResponse{Settings: s, DemoMode: h.DemoMode}
	if h.MetadataService != nil {
		resp.MetadataEnabled = h.MetadataService.Enabled()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *SettingsHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	if h.DemoMode {
		http.Error(w, "settings are read-only in demo mode", http.StatusForbidden)
		return
	}

	var s config.Settings
	// Unknown fields are tolerated so older clients keep working.
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Manager.Save(s); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.reloadServices(s)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

func (h *SettingsHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// reloadServices pushes updated credentials into services that cache
// configuration at startup.
func (h *SettingsHandler) reloadServices(s config.Settings) {
	if h.MetadataService != nil {
		h.MetadataService.UpdateAPIKey(s.Metadata.TMDBAPIKey, s.Metadata.Language)
		log.Printf("[settings] reloaded TMDB credentials (enabled=%v)", h.MetadataService.Enabled())
	}
}
