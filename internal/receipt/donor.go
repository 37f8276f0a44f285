package receipt

import (
	"encoding/json"
	"strings"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/common"
)

// DonorRecord is one donation submission. Address, postal code, city and
// the amount spelled out in words are optional; together they decide
// whether a fiscal receipt is issued or only a thank-you notice.
type DonorRecord struct {
	Name       string      `json:"name"`
	Surname    string      `json:"surname"`
	Address    string      `json:"address,omitempty"`
	PostalCode string      `json:"postalCode,omitempty"`
	City       string      `json:"city,omitempty"`
	Amount     json.Number `json:"amount"`
	AmountText string      `json:"amountText,omitempty"`
	Email      string      `json:"email"`
}

// Validate checks the fields required for any processing at all. It runs
// before allocation or rendering, so a rejected record has no side effects.
func (d DonorRecord) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return common.NewAppError("MISSING_FIELD", "name is required", common.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Surname) == "" {
		return common.NewAppError("MISSING_FIELD", "surname is required", common.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Email) == "" {
		return common.NewAppError("MISSING_FIELD", "email is required", common.ErrInvalidInput)
	}
	amt, err := d.Amount.Float64()
	if err != nil || amt <= 0 {
		return common.NewAppError("MISSING_FIELD", "amount is required", common.ErrInvalidInput)
	}
	return nil
}

// ReceiptEligible reports whether the record carries the complete fiscal
// data. Incomplete records must never consume a receipt number.
func (d DonorRecord) ReceiptEligible() bool {
	for _, f := range []string{d.Address, d.PostalCode, d.City, d.AmountText} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}
