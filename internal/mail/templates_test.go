package mail

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMail(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Mail Suite")
}

var _ = Describe("Templates", func() {
	Describe("DonorBody", func() {
		It("includes the donor name and amount", func() {
			n := 1002
			body, err := DonorBody(DonorEmailData{Name: "Jean", Surname: "Martin", Amount: "50", ReceiptNumber: &n})
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(ContainSubstring("Jean Martin"))
			Expect(body).To(ContainSubstring("50 €"))
			Expect(body).To(ContainSubstring("1002"))
		})

		It("omits the transaction line without a receipt number", func() {
			body, err := DonorBody(DonorEmailData{Name: "Jean", Surname: "Martin", Amount: "50"})
			Expect(err).NotTo(HaveOccurred())
			Expect(body).NotTo(ContainSubstring("ID de transaction"))
		})

		It("escapes HTML in donor fields", func() {
			body, err := DonorBody(DonorEmailData{Name: "<script>", Surname: "x", Amount: "5"})
			Expect(err).NotTo(HaveOccurred())
			Expect(body).NotTo(ContainSubstring("<script>"))
			Expect(body).To(ContainSubstring("&lt;script&gt;"))
		})
	})

	Describe("StaffBody", func() {
		It("falls back to N/A without a receipt number", func() {
			body, err := StaffBody(DonorEmailData{Name: "Jean", Surname: "Martin", Amount: "50"})
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(ContainSubstring("N/A"))
		})
	})

	Describe("SubscriptionNoticeBody", func() {
		It("includes the subscriber email and date", func() {
			when := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
			body, err := SubscriptionNoticeBody("new@example.fr", when)
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(ContainSubstring("new@example.fr"))
			Expect(body).To(ContainSubstring("14/03/2025 09:30"))
		})
	})

	Describe("ContactBody", func() {
		It("escapes markup and keeps line breaks", func() {
			body, err := ContactBody("a@b.fr", "bonjour\n<b>gras</b>")
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(ContainSubstring("bonjour<br/>"))
			Expect(body).To(ContainSubstring("&lt;b&gt;gras&lt;/b&gt;"))
			Expect(body).NotTo(ContainSubstring("<b>gras</b>"))
		})
	})
})
