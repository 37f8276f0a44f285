// Package receipt implements the fiscal-receipt pipeline: eligibility
// gating, receipt-number allocation and template rendering.
package receipt

import (
	"context"

	"go.uber.org/zap"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/common"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/sequence"
)

// DocumentRenderer turns a donor record and receipt number into document
// bytes. Satisfied by *Renderer.
type DocumentRenderer interface {
	Render(ctx context.Context, donor DonorRecord, receiptNumber int) ([]byte, error)
}

// Result is the outcome of one donation submission. For ineligible donors
// ReceiptNumber and Document are nil and only a thank-you notice is due.
type Result struct {
	ReceiptNumber   *int
	Document        []byte
	Filename        string
	IsFiscalReceipt bool
	// Degraded marks a receipt whose number could not be persisted.
	Degraded bool
}

// Service composes the sequencer and the renderer.
type Service struct {
	sequencer *sequence.Sequencer
	renderer  DocumentRenderer
	logger    *zap.Logger
}

// NewService creates the pipeline service.
func NewService(seq *sequence.Sequencer, renderer DocumentRenderer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sequencer: seq, renderer: renderer, logger: logger}
}

// Generate validates the donor record, and for receipt-eligible donors
// allocates a number and renders the document. Eligibility is decided
// before allocation so incomplete submissions never consume a sequence
// value.
func (s *Service) Generate(ctx context.Context, donor DonorRecord) (*Result, error) {
	if err := donor.Validate(); err != nil {
		return nil, err
	}

	if !donor.ReceiptEligible() {
		s.logger.Info("incomplete fiscal data, thank-you only",
			zap.String("email", donor.Email),
		)
		return &Result{IsFiscalReceipt: false}, nil
	}

	alloc := s.sequencer.Allocate()
	if !alloc.Persisted {
		s.logger.Warn("receipt number not persisted, continuing",
			zap.Int("receipt_number", alloc.Number),
		)
	}

	doc, err := s.renderer.Render(ctx, donor, alloc.Number)
	if err != nil {
		return nil, common.NewAppError("RENDER_FAILED", "rendering receipt", common.WrapError(err, "receipt"))
	}

	n := alloc.Number
	s.logger.Info("fiscal receipt rendered",
		zap.Int("receipt_number", n),
		zap.Bool("persisted", alloc.Persisted),
	)
	return &Result{
		ReceiptNumber:   &n,
		Document:        doc,
		Filename:        Filename(donor.Name, donor.Surname, n),
		IsFiscalReceipt: true,
		Degraded:        !alloc.Persisted,
	}, nil
}
