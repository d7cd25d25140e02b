package server

import (
	"encoding/json"
	"net/http"
)

const contentTypeJSON = "application/json"

type statusResponse struct {
	Success bool   `json:"success"`
	Error   bool   `json:"error,omitempty"`
	Message string `json:"message"`
}

func renderJSON(w http.ResponseWriter, data any, statusCode int) error {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func renderSuccessJSON(w http.ResponseWriter, message string, statusCode int) error {
	return renderJSON(w, statusResponse{Success: true, Message: message}, statusCode)
}

func renderErrorJSON(w http.ResponseWriter, message string, statusCode int) error {
	return renderJSON(w, statusResponse{Error: true, Message: message}, statusCode)
}
