package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/BTreeMap/eSahyog/internal/twiliowhatsapp"
)

func TestTwilioService_ValidateAndCanonicalizeRecipient(t *testing.T) {
	svc := NewTwilioService(twiliowhatsapp.NewMockClient())

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"whatsapp:+919876543210", "919876543210", false},
		{"+91 98765-43210", "919876543210", false},
		{"919876543210", "919876543210", false},
		{"", "", true},
		{"whatsapp:", "", true},
		{"+123", "", true},
	}
	for _, tt := range tests {
		got, err := svc.ValidateAndCanonicalizeRecipient(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: unexpected error state: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestTwilioService_SendMessage(t *testing.T) {
	mock := twiliowhatsapp.NewMockClient()
	svc := NewTwilioService(mock)

	if err := svc.SendMessage(context.Background(), "whatsapp:+919876543210", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sent := mock.Sent()
	if len(sent) != 1 || sent[0].To != "919876543210" || sent[0].Body != "hello" {
		t.Errorf("unexpected sent messages: %+v", sent)
	}

	if err := svc.SendMessage(context.Background(), "12", "hello"); err == nil {
		t.Error("expected validation error for short number")
	}
}

func TestTwilioService_ClientError(t *testing.T) {
	mock := twiliowhatsapp.NewMockClient()
	mock.Err = errors.New("twilio down")
	svc := NewTwilioService(mock)

	if err := svc.SendMessage(context.Background(), "919876543210", "hello"); !errors.Is(err, mock.Err) {
		t.Errorf("expected client error, got %v", err)
	}
}

func TestTwilioService_Stop(t *testing.T) {
	mock := twiliowhatsapp.NewMockClient()
	svc := NewTwilioService(mock)
	svc.Stop()

	if err := svc.SendMessage(context.Background(), "919876543210", "hello"); !errors.Is(err, ErrServiceStopped) {
		t.Errorf("expected ErrServiceStopped, got %v", err)
	}
	if len(mock.Sent()) != 0 {
		t.Error("stopped service should not send")
	}
}
