package rest

import (
	"encoding/json"
	"net/http"

	"bloodlink-service/pkg/apperrors"
	"bloodlink-service/pkg/pagination"
)

// envelope is the response shape shared by every endpoint. Success is
// derived purely from the HTTP status range; meta is omitted when empty.
type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    interface{}      `json:"data,omitempty"`
	Meta    *pagination.Meta `json:"meta,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data interface{}, meta *pagination.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{
		Success: status >= 200 && status < 300,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "something went wrong"
	}
	writeJSON(w, status, message, nil, nil)
}
