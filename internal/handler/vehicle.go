package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ahmedmasbah72/gestion-parking/internal/domain"
)

// parkRequest is the body of POST /vehicles.
type parkRequest struct {
	LicensePlate string `json:"license_plate"`
}

// parkResponse is the body of a successful POST /vehicles. Warning is set
// when the vehicle was parked but the state could not be persisted.
type parkResponse struct {
	Vehicle domain.Vehicle `json:"vehicle"`
	Warning string         `json:"warning,omitempty"`
}

// exitResponse is the body of a successful POST /vehicles/{vehicleID}/exit.
type exitResponse struct {
	Vehicle       domain.Vehicle `json:"vehicle"`
	DurationHours int            `json:"duration_hours"`
	Fee           float64        `json:"fee"`
	Warning       string         `json:"warning,omitempty"`
}

// vehicleListResponse is the body of GET /vehicles.
type vehicleListResponse struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
}

// persistenceWarning is surfaced in otherwise-successful responses when the
// mutation was applied in memory but the state write failed.
const persistenceWarning = "state could not be saved; changes may be lost on restart"

// ParkVehicle handles POST /vehicles.
// Returns 201 with the new vehicle, 422 for a blank plate, 409 when the
// plate is already active or the lot is full.
func (s *Server) ParkVehicle(w http.ResponseWriter, r *http.Request) {
	var req parkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}

	vehicle, err := s.parking.Park(r.Context(), req.LicensePlate)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		status, body := errorBody(err)
		s.writeJSON(w, status, body)
		return
	}

	resp := parkResponse{Vehicle: vehicle}
	if err != nil {
		resp.Warning = persistenceWarning
	}
	s.writeJSON(w, http.StatusCreated, resp)
}

// ExitVehicle handles POST /vehicles/{vehicleID}/exit.
// Returns 200 with the receipt, 404 for an unknown or already-departed id.
func (s *Server) ExitVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := uuid.Parse(chi.URLParam(r, "vehicleID"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, requestBody("invalid vehicle id"))
		return
	}

	receipt, err := s.parking.Exit(r.Context(), vehicleID)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		status, body := errorBody(err)
		s.writeJSON(w, status, body)
		return
	}

	resp := exitResponse{
		Vehicle:       receipt.Vehicle,
		DurationHours: receipt.DurationHours,
		Fee:           receipt.Fee,
	}
	if err != nil {
		resp.Warning = persistenceWarning
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ListVehicles handles GET /vehicles.
// Returns the full history in insertion order; ?active=true filters to
// currently parked vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	vehicles, err := s.parking.Vehicles(r.Context(), activeOnly)
	if err != nil {
		status, body := errorBody(err)
		s.writeJSON(w, status, body)
		return
	}
	s.writeJSON(w, http.StatusOK, vehicleListResponse{Vehicles: vehicles})
}
