package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/repository"
	"rentaride-backend/internal/service"
)

// RentalHandler serves confirmed rentals: tracking, return, ledger.
type RentalHandler struct {
	rentals service.RentalService
	ledger  repository.LedgerRepository
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseInt32(q.Get("page"), 1)
	pageSize := parseInt32(q.Get("page_size"), 20)

	rentals, total, err := h.rentals.List(r.Context(), q.Get("passenger"), q.Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rentals": rentals,
		"total":   total,
		"page":    page,
	})
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentals.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Handover(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentals.Handover(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentals.Return(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentals.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Overtime(w http.ResponseWriter, r *http.Request) {
	snap, err := h.rentals.Overtime(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"remaining_seconds": int64(snap.Remaining.Seconds()),
		"overtime_seconds":  int64(snap.Elapsed.Seconds()),
		"overtime":          snap.Overtime,
		"progress":          snap.Progress,
		"fee_cents":         snap.FeeCents,
		"status":            snap.Status,
	})
}

func (h *RentalHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledger.ListByRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// VehicleHandler serves the vehicle catalog.
type VehicleHandler struct {
	vehicles repository.VehicleRepository
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var v domain.VehicleTariff
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.vehicles.Create(r.Context(), &v); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseInt32(q.Get("page"), 1)
	pageSize := parseInt32(q.Get("page_size"), 20)

	vehicles, total, err := h.vehicles.List(r.Context(), q.Get("category"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles": vehicles,
		"total":    total,
		"page":     page,
	})
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.vehicles.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func parseInt32(s string, def int32) int32 {
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 1 {
		return def
	}
	return int32(n)
}
