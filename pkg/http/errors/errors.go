package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Respond writes an error envelope with the status registered for code.
func Respond(w http.ResponseWriter, code, message string) {
	write(w, ErrorResponse{Error: code, Message: message})
}

// RespondField is Respond for an error caused by one request field, query
// parameter or header.
func RespondField(w http.ResponseWriter, code, message, field string) {
	write(w, ErrorResponse{Error: code, Message: message, Field: field})
}

func write(w http.ResponseWriter, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(body.Error))
	_ = json.NewEncoder(w).Encode(body)
}
