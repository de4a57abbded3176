package flow

import (
	"strconv"
	"strings"
)

// RestartKeywords reset a session from any step.
var RestartKeywords = map[string]bool{
	"restart": true,
	"start":   true,
	"hi":      true,
	"hello":   true,
}

// NumberInput is the outcome of reading a numeric answer.
// Valid is false when Raw is not an integer.
type NumberInput struct {
	Value int
	Raw   string
	Valid bool
}

// ParseNumber reads an integer answer such as an age or income.
func ParseNumber(raw string) NumberInput {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return NumberInput{Raw: raw}
	}
	return NumberInput{Value: v, Raw: raw, Valid: true}
}

// normalizeInput trims and lower-cases an inbound message body.
func normalizeInput(body string) string {
	return strings.ToLower(strings.TrimSpace(body))
}

// IsRestart reports whether body is a restart keyword.
func IsRestart(body string) bool {
	return RestartKeywords[normalizeInput(body)]
}
