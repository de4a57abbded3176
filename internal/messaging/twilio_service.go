package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/BTreeMap/eSahyog/internal/twiliowhatsapp"
)

// TwilioService implements the Service interface using Twilio API
type TwilioService struct {
	client  twiliowhatsapp.Sender // Could be real Twilio client or MockClient
	mu      sync.RWMutex
	stopped bool
}

// NewTwilioService creates a new TwilioService over client.
func NewTwilioService(client twiliowhatsapp.Sender) *TwilioService {
	return &TwilioService{client: client}
}

// ValidateAndCanonicalizeRecipient validates and canonicalizes a WhatsApp phone number.
// It strips the "whatsapp:" prefix and all non-numeric characters and requires at least 6 digits.
func (s *TwilioService) ValidateAndCanonicalizeRecipient(recipient string) (string, error) {
	if recipient == "" {
		return "", fmt.Errorf("recipient cannot be empty")
	}

	canonical := strings.TrimPrefix(strings.TrimSpace(recipient), twiliowhatsapp.AddressPrefix)
	canonical = phoneNumberRegex.ReplaceAllString(canonical, "")

	if canonical == "" {
		return "", fmt.Errorf("invalid phone number: no digits found in recipient %q", recipient)
	}
	if len(canonical) < 6 {
		return "", fmt.Errorf("invalid phone number: %q is too short (minimum 6 digits required)", canonical)
	}

	if recipient != canonical {
		slog.Debug("TwilioService canonicalized recipient", "original", recipient, "canonical", canonical)
	}
	return canonical, nil
}

// Stop marks the service stopped; later sends fail with ErrServiceStopped.
func (s *TwilioService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

// SendMessage sends a message via Twilio.
func (s *TwilioService) SendMessage(ctx context.Context, to string, body string) error {
	s.mu.RLock()
	stopped := s.stopped
	s.mu.RUnlock()
	if stopped {
		return ErrServiceStopped
	}

	canonicalTo, err := s.ValidateAndCanonicalizeRecipient(to)
	if err != nil {
		slog.Error("TwilioService SendMessage validation error", "error", err, "to", to)
		return err
	}

	if err := s.client.SendMessage(ctx, canonicalTo, body); err != nil {
		return err
	}
	slog.Debug("TwilioService message sent", "to", canonicalTo, "body_length", len(body))
	return nil
}
