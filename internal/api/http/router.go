// Package http exposes the booking engine over a JSON REST API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/logger"
	"rentaride-backend/internal/presence"
	"rentaride-backend/internal/repository"
	"rentaride-backend/internal/service"
)

// NewRouter wires all API routes.
func NewRouter(
	booking service.BookingService,
	rentals service.RentalService,
	vehicles repository.VehicleRepository,
	drivers repository.DriverRepository,
	ledger repository.LedgerRepository,
	heartbeats *presence.Store,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", handleHealth).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	qh := &QuoteHandler{booking: booking}
	api.HandleFunc("/quotes", qh.Create).Methods("POST")
	api.HandleFunc("/quotes/{id}", qh.Get).Methods("GET")
	api.HandleFunc("/quotes/{id}", qh.Update).Methods("PATCH")
	api.HandleFunc("/quotes/{id}", qh.Discard).Methods("DELETE")
	api.HandleFunc("/quotes/{id}/contact-owner", qh.ContactOwner).Methods("POST")
	api.HandleFunc("/quotes/{id}/contact-owner/confirm", qh.ConfirmContact).Methods("POST")
	api.HandleFunc("/quotes/{id}/contact-owner", qh.AbandonContact).Methods("DELETE")
	api.HandleFunc("/quotes/{id}/checkout", qh.Checkout).Methods("POST")

	rh := &RentalHandler{rentals: rentals, ledger: ledger}
	api.HandleFunc("/rentals", rh.List).Methods("GET")
	api.HandleFunc("/rentals/{id}", rh.Get).Methods("GET")
	api.HandleFunc("/rentals/{id}/handover", rh.Handover).Methods("POST")
	api.HandleFunc("/rentals/{id}/return", rh.Return).Methods("POST")
	api.HandleFunc("/rentals/{id}/cancel", rh.Cancel).Methods("POST")
	api.HandleFunc("/rentals/{id}/overtime", rh.Overtime).Methods("GET")
	api.HandleFunc("/rentals/{id}/ledger", rh.Ledger).Methods("GET")

	vh := &VehicleHandler{vehicles: vehicles}
	api.HandleFunc("/vehicles", vh.Create).Methods("POST")
	api.HandleFunc("/vehicles", vh.List).Methods("GET")
	api.HandleFunc("/vehicles/{id}", vh.Get).Methods("GET")

	dh := &DriverHandler{drivers: drivers, heartbeats: heartbeats}
	api.HandleFunc("/drivers", dh.Upsert).Methods("PUT")
	api.HandleFunc("/drivers/{email}/heartbeat", dh.Heartbeat).Methods("POST")
	api.HandleFunc("/drivers/{email}/offline", dh.Offline).Methods("POST")

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps engine errors onto HTTP statuses. Unknown errors are
// 500s with the message suppressed.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrQuoteNotFound),
		errors.Is(err, domain.ErrVehicleNotFound),
		errors.Is(err, domain.ErrDriverNotFound),
		errors.Is(err, domain.ErrRentalNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrSettlementContract):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedPaymentCombination),
		errors.Is(err, domain.ErrOwnerContactNotConfirmed):
		status = http.StatusConflict
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
