// Package mail sends the transactional notices: donor receipts and
// thank-yous, staff notifications, subscription and contact-form messages.
// Delivery is at-most-once; transport failures are returned, never retried.
package mail

import (
	"bytes"
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/common"
)

// Attachment is a named binary attachment.
type Attachment struct {
	Filename    string
	ContentType string
	Bytes       []byte
}

// Message is one outbound email.
type Message struct {
	To         string
	ReplyTo    string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers via an SMTP relay using STARTTLS and plain auth.
type SMTPSender struct {
	cfg    common.SMTPConfig
	logger *zap.Logger
}

// NewSMTPSender creates an SMTPSender from config.
func NewSMTPSender(cfg common.SMTPConfig, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send builds and delivers one message.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("setting reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)

	if a := msg.Attachment; a != nil {
		ct := a.ContentType
		if ct == "" {
			ct = "application/pdf"
		}
		if err := m.AttachReader(a.Filename, bytes.NewReader(a.Bytes), gomail.WithFileContentType(gomail.ContentType(ct))); err != nil {
			return fmt.Errorf("attaching %s: %w", a.Filename, err)
		}
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Warn("smtp delivery failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return fmt.Errorf("sending mail: %w", err)
	}

	s.logger.Info("mail sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Bool("attachment", msg.Attachment != nil),
	)
	return nil
}
