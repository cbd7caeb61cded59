package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/srgjo27/rac_reservation/internal/core/domain"
	"github.com/srgjo27/rac_reservation/internal/core/services"
)

type ReservationHandler struct {
	svc *services.ReservationService
}

func NewReservationHandler(svc *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /passengers", h.CreatePassenger)
	mux.HandleFunc("POST /bookings", h.CreateBooking)
	mux.HandleFunc("DELETE /bookings/{passengerID}", h.CancelBooking)
	mux.HandleFunc("GET /tickets", h.ListTickets)
	mux.HandleFunc("GET /waitlist", h.ListWaitlist)
	mux.HandleFunc("GET /rac", h.ListRAC)
	mux.HandleFunc("GET /availability", h.GetAvailability)
}

func (h *ReservationHandler) CreatePassenger(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePassengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	resp, err := h.svc.CreatePassenger(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *ReservationHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	resp, err := h.svc.RequestBooking(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *ReservationHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("passengerID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid passenger id"})
		return
	}

	resp, err := h.svc.RequestCancellation(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPassengerNotFound) && resp != nil {
			writeJSON(w, http.StatusNotFound, resp)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ReservationHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("kind") {
	case "":
		writeJSON(w, http.StatusOK, h.svc.ListTickets(r.Context()))
	case "berth":
		writeJSON(w, http.StatusOK, h.svc.ListBerthTickets(r.Context()))
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ticket kind"})
	}
}

func (h *ReservationHandler) ListWaitlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListWaitlist(r.Context()))
}

func (h *ReservationHandler) ListRAC(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListRAC(r.Context()))
}

func (h *ReservationHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Availability(r.Context()))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidClassSelector), errors.Is(err, domain.ErrInvalidPassenger):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrPassengerNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrPassengerNotBookable):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Printf("Unhandled reservation error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
