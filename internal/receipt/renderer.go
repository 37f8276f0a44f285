package receipt

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/assets"
)

// dateFormat is the fr-FR day-first short date used on the receipt.
const dateFormat = "02/01/2006"

// Renderer stamps donor data onto the fixed receipt template. It holds no
// mutable state; output depends only on the template, the donor record,
// the receipt number and the calendar day.
type Renderer struct {
	assets assets.Store
	layout Layout
	logger *zap.Logger
	now    func() time.Time
}

// NewRenderer creates a Renderer drawing the given layout.
func NewRenderer(store assets.Store, layout Layout, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{assets: store, layout: layout, logger: logger, now: time.Now}
}

// Render produces the finished receipt document. Template or signature
// read failures and malformed templates fail the whole render; no partial
// document is ever returned.
func (r *Renderer) Render(ctx context.Context, donor DonorRecord, receiptNumber int) ([]byte, error) {
	tmpl, err := r.assets.Template(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading receipt template: %w", err)
	}

	pageCount, err := api.PageCount(bytes.NewReader(tmpl), nil)
	if err != nil {
		return nil, fmt.Errorf("reading receipt template: %w", err)
	}

	values := r.fieldValues(donor, receiptNumber)

	stamps := make(map[int][]*model.Watermark)
	for _, s := range r.layout.Stamps {
		if s.Page > pageCount {
			continue
		}
		text := values[s.Field]
		if strings.TrimSpace(text) == "" {
			continue
		}
		wm, err := api.TextWatermark(text+s.Suffix, r.textDesc(s), true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("building stamp for %s: %w", s.Field, err)
		}
		stamps[s.Page] = append(stamps[s.Page], wm)
	}

	if pageCount > 1 {
		sig, err := r.assets.Signature(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading signature image: %w", err)
		}
		desc := fmt.Sprintf("scalefactor:%g abs, pos:bl, off:%g %g, rot:0",
			r.layout.Signature.Scale, r.layout.Signature.X, r.layout.Signature.Y)
		wm, err := api.ImageWatermarkForReader(bytes.NewReader(sig), desc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("building signature stamp: %w", err)
		}
		stamps[r.layout.Signature.Page] = append(stamps[r.layout.Signature.Page], wm)
	}

	var out bytes.Buffer
	if err := api.AddWatermarksSliceMap(bytes.NewReader(tmpl), &out, stamps, nil); err != nil {
		return nil, fmt.Errorf("stamping receipt: %w", err)
	}

	r.logger.Debug("receipt rendered",
		zap.Int("receipt_number", receiptNumber),
		zap.Int("pages", pageCount),
		zap.Int("bytes", out.Len()),
	)
	return out.Bytes(), nil
}

func (r *Renderer) textDesc(s Stamp) string {
	return fmt.Sprintf("fontname:Helvetica, points:%d, scalefactor:1 abs, pos:bl, off:%g %g, rot:0, fillcolor:#000000",
		r.layout.FontSize, s.X, s.Y)
}

func (r *Renderer) fieldValues(donor DonorRecord, receiptNumber int) map[string]string {
	today := r.now().Format(dateFormat)
	return map[string]string{
		FieldReceiptNumber: fmt.Sprintf("%d", receiptNumber),
		FieldName:          donor.Name,
		FieldSurname:       donor.Surname,
		FieldAddress:       donor.Address,
		FieldPostalCode:    donor.PostalCode,
		FieldCity:          donor.City,
		FieldAmount:        donor.Amount.String(),
		FieldAmountText:    donor.AmountText,
		FieldDonationDate:  today,
		FieldSignatureDate: today,
	}
}
