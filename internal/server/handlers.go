package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/common"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/mail"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/paypal"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/receipt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type generateResponse struct {
	Success       bool    `json:"success"`
	Sent          bool    `json:"sent"`
	PDF           *string `json:"pdf"`
	Filename      *string `json:"filename"`
	Receipt       bool    `json:"receipt"`
	ReceiptNumber *int    `json:"receiptNumber,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := validateDonation(body); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	var donor receipt.DonorRecord
	if err := json.Unmarshal(body, &donor); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	res, err := s.pipeline.Generate(r.Context(), donor)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		s.logger.Error("receipt generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	data := mail.DonorEmailData{
		Name:          donor.Name,
		Surname:       donor.Surname,
		Amount:        donor.Amount.String(),
		ReceiptNumber: res.ReceiptNumber,
	}

	donorHTML, err := mail.DonorBody(data)
	if err != nil {
		s.logger.Error("rendering donor notice", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	subject := mail.SubjectThankYou
	var attachment *mail.Attachment
	if res.IsFiscalReceipt {
		subject = mail.SubjectFiscal
		attachment = &mail.Attachment{Filename: res.Filename, Bytes: res.Document}
	}

	if err := s.mailer.Send(r.Context(), mail.Message{
		To:         donor.Email,
		Subject:    subject,
		HTMLBody:   donorHTML,
		Attachment: attachment,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if res.IsFiscalReceipt {
		staffHTML, err := mail.StaffBody(data)
		if err != nil {
			s.logger.Error("rendering staff notice", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		if err := s.mailer.Send(r.Context(), mail.Message{
			To:         s.smtp.StaffEmail,
			Subject:    mail.StaffReceiptSubject(donor.Name, donor.Surname),
			HTMLBody:   staffHTML,
			Attachment: attachment,
		}); err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
	}

	out := generateResponse{
		Success:       true,
		Sent:          true,
		Receipt:       res.IsFiscalReceipt,
		ReceiptNumber: res.ReceiptNumber,
	}
	if res.IsFiscalReceipt {
		encoded := base64.StdEncoding.EncodeToString(res.Document)
		out.PDF = &encoded
		out.Filename = &res.Filename
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePayPalWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid signature.")
		return
	}

	ok, err := s.verifier.Verify(r.Context(), paypal.HeadersFromRequest(r), body)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Invalid signature.")
			return
		}
		s.logger.Error("webhook verification failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !ok {
		s.logger.Warn("webhook signature rejected")
		writeError(w, http.StatusBadRequest, "Invalid signature.")
		return
	}

	ev, err := paypal.ParseEvent(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid signature.")
		return
	}
	if ev.EventType == paypal.EventCaptureCompleted {
		s.logger.Info("payment completed",
			zap.String("transaction_id", ev.Resource.ID),
			zap.String("amount", ev.Resource.Amount.Value),
			zap.String("currency", ev.Resource.Amount.CurrencyCode),
			zap.String("payer_email", ev.Resource.Payer.EmailAddress),
		)
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "verified"})
}

func (s *Server) handleMetalPrices(w http.ResponseWriter, r *http.Request) {
	pair, err := s.prices.Current(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Prices not available yet")
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (s *Server) handlePayPalConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"clientId": s.verifier.ClientID()})
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email required.")
		return
	}

	welcome, err := mail.WelcomeBody()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	notice, err := mail.SubscriptionNoticeBody(req.Email, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := s.mailer.Send(r.Context(), mail.Message{
		To:       req.Email,
		Subject:  mail.SubjectWelcome,
		HTMLBody: welcome,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if err := s.mailer.Send(r.Context(), mail.Message{
		To:       s.smtp.StaffEmail,
		Subject:  "Nouveau/elle abonné(e)",
		HTMLBody: notice,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Subscription successful."})
}

type contactRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Email and message are required.")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format.")
		return
	}

	body, err := mail.ContactBody(req.Email, req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := s.mailer.Send(r.Context(), mail.Message{
		To:       s.smtp.StaffEmail,
		ReplyTo:  req.Email,
		Subject:  mail.ContactSubject(req.Email),
		HTMLBody: body,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Message sent successfully."})
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"service": "donation-backend"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
