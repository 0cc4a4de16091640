package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"beneficiarydesk/repository"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeRepoError maps repository errors onto the HTTP taxonomy. Unexpected
// errors are logged server-side and reported with a generic message.
func writeRepoError(w http.ResponseWriter, err error, duplicateMessage string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ApiResponse{
			Success: false,
			Message: "Not found",
		})
	case errors.Is(err, repository.ErrDuplicateKey):
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: duplicateMessage,
		})
	case errors.Is(err, repository.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid status value",
		})
	default:
		log.Printf("storage error: %v", err)
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Server error",
		})
	}
}
