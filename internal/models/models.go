// Package models defines the core data structures for eSahyog.
//
// It includes the scheme catalog records, per-sender intake sessions, and the
// JSON envelope used by the non-webhook HTTP endpoints.
package models

import (
	"errors"
	"time"
)

// Error variables for better error handling and testability
var (
	ErrEmptyCatalogPath = errors.New("scheme catalog path is required")
	ErrInvalidPolicy    = errors.New("invalid eligibility policy")
	ErrInvalidReplyMode = errors.New("invalid reply mode")
)

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`            // status of the API response
	Message string      `json:"message,omitempty"` // optional message for error responses or additional info
	Result  interface{} `json:"result,omitempty"`  // optional result data for successful responses
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: string(APIStatusError), Message: message}
}

// HealthReport is the result payload of the health endpoint.
type HealthReport struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Schemes        int       `json:"schemes"`
	ActiveSessions int       `json:"active_sessions"`
	Policy         string    `json:"policy"`
	Error          string    `json:"error,omitempty"`
}
