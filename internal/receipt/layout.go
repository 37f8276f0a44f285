package receipt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Field names referenced by the layout table. Values for them come from
// the donor record, the allocated number and the current date.
const (
	FieldReceiptNumber = "receiptNumber"
	FieldName          = "name"
	FieldSurname       = "surname"
	FieldAddress       = "address"
	FieldPostalCode    = "postalCode"
	FieldCity          = "city"
	FieldAmount        = "amount"
	FieldAmountText    = "amountText"
	FieldDonationDate  = "donationDate"
	FieldSignatureDate = "signatureDate"
)

// Stamp places one field's value at an absolute position. Coordinates are
// document points with the origin at the bottom-left of the page.
type Stamp struct {
	Field  string  `yaml:"field"`
	Page   int     `yaml:"page"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Suffix string  `yaml:"suffix,omitempty"`
}

// SignatureStamp places the signature image.
type SignatureStamp struct {
	Page  int     `yaml:"page"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Scale float64 `yaml:"scale"`
}

// Layout is the declarative description of where everything lands on the
// template. Template revisions are a layout change, not a code change.
type Layout struct {
	FontSize  int            `yaml:"fontSize"`
	Stamps    []Stamp        `yaml:"stamps"`
	Signature SignatureStamp `yaml:"signature"`
}

// DefaultLayout matches the current two-page fiscal receipt template.
// Page 1 carries only the receipt number; page 2 carries the donor fields
// and the signature.
func DefaultLayout() Layout {
	return Layout{
		FontSize: 12,
		Stamps: []Stamp{
			{Field: FieldReceiptNumber, Page: 1, X: 480, Y: 761},
			{Field: FieldName, Page: 2, X: 350, Y: 740},
			{Field: FieldSurname, Page: 2, X: 60, Y: 740},
			{Field: FieldAddress, Page: 2, X: 60, Y: 695},
			{Field: FieldPostalCode, Page: 2, X: 130, Y: 680},
			{Field: FieldCity, Page: 2, X: 280, Y: 680},
			{Field: FieldAmount, Page: 2, X: 100, Y: 580, Suffix: " €"},
			{Field: FieldAmountText, Page: 2, X: 180, Y: 550},
			{Field: FieldDonationDate, Page: 2, X: 200, Y: 520},
			{Field: FieldSignatureDate, Page: 2, X: 370, Y: 97},
		},
		Signature: SignatureStamp{Page: 2, X: 380, Y: 20, Scale: 0.35},
	}
}

// LoadLayout reads a layout from a YAML file. Missing font size and
// signature scale fall back to the defaults.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading layout: %w", err)
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parsing layout: %w", err)
	}
	if l.FontSize == 0 {
		l.FontSize = 12
	}
	if l.Signature.Scale == 0 {
		l.Signature.Scale = 0.35
	}
	if len(l.Stamps) == 0 {
		return Layout{}, fmt.Errorf("layout has no stamps")
	}
	return l, nil
}
