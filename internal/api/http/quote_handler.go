package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/service"
)

// QuoteHandler serves the booking draft lifecycle.
type QuoteHandler struct {
	booking service.BookingService
}

func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	view, err := h.booking.CreateQuote(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.booking.GetQuote(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch service.QuotePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	view, err := h.booking.UpdateQuote(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *QuoteHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.booking.DiscardQuote(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuoteHandler) ContactOwner(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	contact, err := h.booking.RequestOwnerContact(r.Context(), mux.Vars(r)["id"], body.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, contact)
}

func (h *QuoteHandler) ConfirmContact(w http.ResponseWriter, r *http.Request) {
	if err := h.booking.ConfirmOwnerContact(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuoteHandler) AbandonContact(w http.ResponseWriter, r *http.Request) {
	if err := h.booking.AbandonOwnerContact(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuoteHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaymentType   domain.PaymentType   `json:"payment_type"`
		PaymentMethod domain.PaymentMethod `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	conf, err := h.booking.Checkout(r.Context(), mux.Vars(r)["id"], body.PaymentType, body.PaymentMethod)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conf)
}
