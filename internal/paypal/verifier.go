// Package paypal relays inbound payment webhooks to PayPal's verification
// API and decodes the events this service cares about.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/common"
)

// EventCaptureCompleted is the only event type acted upon.
const EventCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"

const verifyPath = "/v1/notifications/verify-webhook-signature"

// Headers are the transmission headers PayPal attaches to each webhook
// delivery; all of them go back to the verification API verbatim.
type Headers struct {
	TransmissionID   string
	TransmissionTime string
	CertURL          string
	AuthAlgo         string
	TransmissionSig  string
}

// HeadersFromRequest extracts the paypal-* transmission headers.
func HeadersFromRequest(r *http.Request) Headers {
	return Headers{
		TransmissionID:   r.Header.Get("Paypal-Transmission-Id"),
		TransmissionTime: r.Header.Get("Paypal-Transmission-Time"),
		CertURL:          r.Header.Get("Paypal-Cert-Url"),
		AuthAlgo:         r.Header.Get("Paypal-Auth-Algo"),
		TransmissionSig:  r.Header.Get("Paypal-Transmission-Sig"),
	}
}

// Event is the subset of a webhook event this service reads.
type Event struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Resource  struct {
		ID     string `json:"id"`
		Amount struct {
			Value        string `json:"value"`
			CurrencyCode string `json:"currency_code"`
		} `json:"amount"`
		Payer struct {
			EmailAddress string `json:"email_address"`
		} `json:"payer"`
	} `json:"resource"`
}

// ParseEvent decodes the raw webhook body.
func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("decoding webhook event: %w", err)
	}
	return &ev, nil
}

// Verifier checks webhook signatures against PayPal's verification API.
type Verifier struct {
	cfg    common.PayPalConfig
	client *http.Client
	logger *zap.Logger
}

// NewVerifier creates a Verifier from config.
func NewVerifier(cfg common.PayPalConfig, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// ClientID exposes the public client id for frontend configuration.
func (v *Verifier) ClientID() string {
	return v.cfg.ClientID
}

type verifyRequest struct {
	AuthAlgo         string          `json:"auth_algo"`
	CertURL          string          `json:"cert_url"`
	TransmissionID   string          `json:"transmission_id"`
	TransmissionSig  string          `json:"transmission_sig"`
	TransmissionTime string          `json:"transmission_time"`
	WebhookID        string          `json:"webhook_id"`
	WebhookEvent     json.RawMessage `json:"webhook_event"`
}

type verifyResponse struct {
	VerificationStatus string `json:"verification_status"`
}

// Verify posts the raw event and its transmission headers to PayPal and
// reports whether the signature checks out. Only a SUCCESS verification
// status counts; anything else is an unverified delivery, not an error.
func (v *Verifier) Verify(ctx context.Context, h Headers, body []byte) (bool, error) {
	reqID := uuid.New().String()
	start := time.Now()

	if !json.Valid(body) {
		return false, common.NewAppError("BAD_WEBHOOK", "webhook body is not valid json", common.ErrInvalidInput)
	}

	payload, err := json.Marshal(verifyRequest{
		AuthAlgo:         h.AuthAlgo,
		CertURL:          h.CertURL,
		TransmissionID:   h.TransmissionID,
		TransmissionSig:  h.TransmissionSig,
		TransmissionTime: h.TransmissionTime,
		WebhookID:        v.cfg.WebhookID,
		WebhookEvent:     json.RawMessage(body),
	})
	if err != nil {
		return false, fmt.Errorf("encoding verification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.APIBaseURL+verifyPath, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("building verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(v.cfg.ClientID, v.cfg.ClientSecret)

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn("webhook verification call failed",
			zap.String("req_id", reqID),
			zap.Error(err),
		)
		return false, fmt.Errorf("calling verification api: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	v.logger.Info("webhook verification response",
		zap.String("req_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode/100 != 2 {
		return false, fmt.Errorf("verification api status %d", resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.Unmarshal(raw, &vr); err != nil {
		return false, fmt.Errorf("decoding verification response: %w", err)
	}
	return vr.VerificationStatus == "SUCCESS", nil
}
