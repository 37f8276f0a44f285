package receipt

import (
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/common"
)

func completeDonor() DonorRecord {
	return DonorRecord{
		Name:       "Jean Paul",
		Surname:    "Martin",
		Address:    "12 rue des Lilas",
		PostalCode: "75011",
		City:       "Paris",
		Amount:     json.Number("50"),
		AmountText: "cinquante euros",
		Email:      "jp.martin@example.fr",
	}
}

var _ = Describe("DonorRecord", func() {
	Describe("Validate", func() {
		It("accepts a complete record", func() {
			Expect(completeDonor().Validate()).To(Succeed())
		})

		It("rejects missing name, surname, email and amount as invalid input", func() {
			for _, mutate := range []func(*DonorRecord){
				func(d *DonorRecord) { d.Name = "  " },
				func(d *DonorRecord) { d.Surname = "" },
				func(d *DonorRecord) { d.Email = "" },
				func(d *DonorRecord) { d.Amount = json.Number("") },
				func(d *DonorRecord) { d.Amount = json.Number("0") },
			} {
				d := completeDonor()
				mutate(&d)
				err := d.Validate()
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, common.ErrInvalidInput)).To(BeTrue())
			}
		})
	})

	Describe("ReceiptEligible", func() {
		It("is true when address, postal code, city and amount text are present", func() {
			Expect(completeDonor().ReceiptEligible()).To(BeTrue())
		})

		It("is false when any fiscal field is blank after trimming", func() {
			for _, mutate := range []func(*DonorRecord){
				func(d *DonorRecord) { d.Address = "" },
				func(d *DonorRecord) { d.PostalCode = "   " },
				func(d *DonorRecord) { d.City = "" },
				func(d *DonorRecord) { d.AmountText = "\t" },
			} {
				d := completeDonor()
				mutate(&d)
				Expect(d.ReceiptEligible()).To(BeFalse())
			}
		})
	})
})
