package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/presence"
	"rentaride-backend/internal/repository"
)

// DriverHandler serves the driver registry and the presence heartbeat.
type DriverHandler struct {
	drivers    repository.DriverRepository
	heartbeats *presence.Store
}

func (h *DriverHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Licenses string `json:"licenses"` // comma-joined, e.g. "LICENSE_A,LICENSE_C"
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if body.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	profile := &domain.DriverProfile{
		Email:    body.Email,
		Name:     body.Name,
		Licenses: domain.ParseLicenseSet(body.Licenses),
	}
	if err := h.drivers.Upsert(r.Context(), profile); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Heartbeat refreshes the driver's online TTL. Drivers that stop posting
// fall offline once the TTL lapses; no explicit sign-off is required.
func (h *DriverHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if err := h.heartbeats.Heartbeat(r.Context(), email); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DriverHandler) Offline(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if err := h.heartbeats.SetOffline(r.Context(), email); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
