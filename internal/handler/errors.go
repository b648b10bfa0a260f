package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ahmedmasbah72/gestion-parking/internal/domain"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorBody maps a service error to its HTTP status and response body.
// Every sentinel in the domain taxonomy has a fixed mapping; anything
// unrecognized becomes a 500 with a generic message so internal details
// never leak to clients.
func errorBody(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity, response("invalid_input", err)
	case errors.Is(err, domain.ErrDuplicateVehicle):
		return http.StatusConflict, response("duplicate_vehicle", err)
	case errors.Is(err, domain.ErrLotFull):
		return http.StatusConflict, response("lot_full", err)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, response("vehicle_not_found", err)
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
		}
	}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "bad_request", Message: message}}
}

func response(code string, err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: unwrapMessage(err)}}
}

// unwrapMessage strips the wrapping and sentinel prefixes from an error
// message, leaving the human-readable part.
// e.g. "invalid input: license plate is required" → "license plate is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, prefix := range []string{
		"service.ParkingService.Park: ",
		"service.ParkingService.Exit: ",
		"parking.Exit: ",
		"invalid input: ",
		"vehicle already parked: ",
	} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return msg
}
