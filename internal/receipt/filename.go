package receipt

import (
	"fmt"
	"regexp"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename derives the attachment name for a rendered receipt. Whitespace
// runs collapse to single underscores.
func Filename(name, surname string, receiptNumber int) string {
	base := fmt.Sprintf("Donation_Receipt_%s_%s_#%d", name, surname, receiptNumber)
	return whitespaceRun.ReplaceAllString(base, "_") + ".pdf"
}
