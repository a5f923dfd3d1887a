package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope is the canonical response wrapper emitted for every error
// response and, optionally, for success payloads that opt in. Status
// always equals the actual HTTP status code of the response. Field
// names are emitted in PascalCase.
type Envelope struct {
	Status  int         `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK response with the given payload
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteCreated writes a 201 Created response with the given payload
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, data)
}

// WriteNoContent writes a 204 No Content response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteErrorText writes a plain-text error body with the given status.
// The response normalizer rewrites any status >= 400 into the JSON
// Envelope, so error writers deliberately emit only the message text.
func WriteErrorText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	fmt.Fprintln(w, message)
}

// WriteBadRequest writes a 400 Bad Request error body
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteErrorText(w, http.StatusBadRequest, message)
}

// WriteUnauthorized writes a 401 Unauthorized error body
func WriteUnauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Authentication required"
	}
	WriteErrorText(w, http.StatusUnauthorized, message)
}

// WriteForbidden writes a 403 Forbidden error body
func WriteForbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Access forbidden"
	}
	WriteErrorText(w, http.StatusForbidden, message)
}

// WriteNotFound writes a 404 Not Found error body
func WriteNotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	WriteErrorText(w, http.StatusNotFound, message)
}

// WriteConflict writes a 409 Conflict error body
func WriteConflict(w http.ResponseWriter, message string) {
	WriteErrorText(w, http.StatusConflict, message)
}

// WriteInternalServerError writes a 500 Internal Server Error body
func WriteInternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	WriteErrorText(w, http.StatusInternalServerError, message)
}
