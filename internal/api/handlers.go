// Package api provides HTTP handlers for eSahyog endpoints.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/BTreeMap/eSahyog/internal/models"
	"github.com/BTreeMap/eSahyog/internal/reply"
	"github.com/google/uuid"
)

// HomeMessage is served on the landing endpoint.
const HomeMessage = "✅ eSahyog WhatsApp Bot is Running!"

// homeHandler serves the static landing text (GET /).
func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, HomeMessage)
}

// webhookHandler handles inbound Twilio WhatsApp messages (POST /bot).
// The form carries the sender in From and the text in Body.
func (s *Server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.webhookHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.Warn("Server.webhookHandler: failed to parse Twilio webhook form", "error", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	requestID := r.PostFormValue("MessageSid")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := slog.With("request_id", requestID)

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	if from == "" || body == "" {
		log.Warn("Server.webhookHandler: webhook missing fields", "from_set", from != "", "body_set", body != "")
	}
	log.Debug("Server.webhookHandler: inbound WhatsApp message", "from", from, "body", body)

	text, err := s.intake.HandleMessage(r.Context(), from, body)
	if err != nil {
		log.Error("Server.webhookHandler: intake failed", "error", err, "from", from)
		text = reply.InternalError
	}

	if s.replyMode == ReplyModeREST {
		sendErr := s.msgService.SendMessage(r.Context(), from, text)
		if sendErr == nil {
			log.Info("Server.webhookHandler: reply sent via REST", "from", from)
			writeTwiMLResponse(w, "")
			return
		}
		log.Error("Server.webhookHandler: REST reply failed, replying inline", "error", sendErr, "from", from)
	}

	log.Info("Server.webhookHandler: reply returned inline", "from", from, "reply_length", len(text))
	writeTwiMLResponse(w, text)
}

// healthHandler provides a health check endpoint for monitoring and load balancing
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	report := models.HealthReport{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Schemes:   s.intake.Catalog().Len(),
		Policy:    s.intake.Policy().String(),
	}

	count, err := s.intake.ActiveSessions()
	if err != nil {
		slog.Warn("Health check: failed to count sessions", "error", err)
		report.Status = "degraded"
		report.Error = "Failed to fetch session metrics"
		writeJSONResponse(w, http.StatusServiceUnavailable, models.APIResponse{
			Status:  string(models.APIStatusError),
			Message: report.Error,
			Result:  report,
		})
		return
	}
	report.ActiveSessions = count
	writeJSONResponse(w, http.StatusOK, models.Success(report))
}
