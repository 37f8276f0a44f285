package receipt

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Filename", func() {
	It("joins name, surname and number with the receipt prefix", func() {
		Expect(Filename("Jean Paul", "Martin", 1002)).To(Equal("Donation_Receipt_Jean_Paul_Martin_#1002.pdf"))
	})

	It("collapses whitespace runs into single underscores", func() {
		Expect(Filename("Anne  Marie", "De   La Tour", 1100)).To(Equal("Donation_Receipt_Anne_Marie_De_La_Tour_#1100.pdf"))
	})

	It("leaves names without whitespace untouched", func() {
		Expect(Filename("Omar", "Haddad", 1001)).To(Equal("Donation_Receipt_Omar_Haddad_#1001.pdf"))
	})
})
