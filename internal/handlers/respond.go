package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"sports-package-store/internal/models"
)

// response is the JSON envelope every endpoint answers with
type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, response{Success: true, Data: data})
}

func writeDataMessage(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, response{Success: true, Data: data, Message: message})
}

func writeList(w http.ResponseWriter, data interface{}, count int) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data, Count: &count})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: false, Message: message})
}

// writeServiceError maps a service failure to its HTTP status: missing
// entities are 404, recoverable caller mistakes are 400, anything
// uncategorized is 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var reqErr *models.RequiredFieldError

	switch {
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrCartNotFound),
		errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrOutOfStock),
		errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidInput),
		errors.As(err, &reqErr):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
