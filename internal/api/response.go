// Package api provides HTTP response utilities for eSahyog.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/BTreeMap/eSahyog/internal/models"
	"github.com/twilio/twilio-go/twiml"
)

// Pre-marshaled fallback responses to avoid runtime JSON encoding failures
var (
	fallbackErrorResponse []byte
)

// init validates that our fallback responses can be marshaled
func init() {
	var err error
	fallbackErrorResponse, err = json.Marshal(models.Error("Internal server error"))
	if err != nil {
		panic(fmt.Sprintf("Failed to marshal fallback error response at startup: %v", err))
	}
}

// writeJSONResponse writes a JSON response to the http.ResponseWriter with the given status code.
func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	// Marshal first so encoding errors surface before headers are written
	jsonData, err := json.Marshal(response)
	if err != nil {
		slog.Error("Server.writeJSONResponse: failed to marshal JSON response", "error", err)
		jsonData = fallbackErrorResponse
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(jsonData); writeErr != nil {
		slog.Error("Server.writeJSONResponse: failed to write JSON response", "error", writeErr)
	}
}

// writeTwiMLResponse writes a TwiML messaging response. An empty message
// yields an empty <Response/> so Twilio sends nothing.
func writeTwiMLResponse(w http.ResponseWriter, message string) {
	var verbs []twiml.Element
	if message != "" {
		verbs = append(verbs, &twiml.MessagingMessage{Body: message})
	}

	xml, err := twiml.Messages(verbs)
	if err != nil {
		slog.Error("Server.writeTwiMLResponse: failed to build TwiML", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, writeErr := w.Write([]byte(xml)); writeErr != nil {
		slog.Error("Server.writeTwiMLResponse: failed to write TwiML response", "error", writeErr)
	}
}
