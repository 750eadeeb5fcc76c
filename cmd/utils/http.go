package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/NtowKwame/hospital-server/cmd/models"
)

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error onto the HTTP status it deserves. Anything
// that is not a typed domain error is an internal failure and is not leaked
// to the client.
func WriteError(w http.ResponseWriter, err error) {
	var (
		validationErr *models.ValidationError
		duplicateErr  *models.DuplicateKeyError
		notFoundErr   *models.NotFoundError
		slotErr       *models.SlotConflictError
		transitionErr *models.InvalidTransitionError
		dateErr       *models.InvalidDateError
		argumentErr   *models.InvalidArgumentError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &dateErr), errors.As(err, &argumentErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &notFoundErr):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &duplicateErr), errors.As(err, &slotErr), errors.As(err, &transitionErr),
		errors.Is(err, models.ErrDoctorInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
