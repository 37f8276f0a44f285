package receipt

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/common"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/sequence"
)

type renderStub struct {
	doc   []byte
	err   error
	calls int
}

func (r *renderStub) Render(_ context.Context, _ DonorRecord, _ int) ([]byte, error) {
	r.calls++
	return r.doc, r.err
}

var _ = Describe("Service", func() {
	var (
		counterPath string
		renderer    *renderStub
		svc         *Service
	)

	BeforeEach(func() {
		counterPath = filepath.Join(GinkgoT().TempDir(), "receiptCounter.json")
		renderer = &renderStub{doc: []byte("%PDF-stub")}
		seq := sequence.NewSequencer(sequence.NewFileStore(counterPath), nil)
		svc = NewService(seq, renderer, nil)
	})

	Describe("Generate", func() {
		When("the donor record is complete", func() {
			It("allocates a number and renders the receipt", func() {
				res, err := svc.Generate(context.Background(), completeDonor())
				Expect(err).NotTo(HaveOccurred())
				Expect(res.IsFiscalReceipt).To(BeTrue())
				Expect(res.ReceiptNumber).NotTo(BeNil())
				Expect(*res.ReceiptNumber).To(Equal(1001))
				Expect(res.Document).To(Equal([]byte("%PDF-stub")))
				Expect(res.Filename).To(Equal("Donation_Receipt_Jean_Paul_Martin_#1001.pdf"))
				Expect(res.Degraded).To(BeFalse())
			})

			It("increments the counter on every submission", func() {
				_, err := svc.Generate(context.Background(), completeDonor())
				Expect(err).NotTo(HaveOccurred())
				res, err := svc.Generate(context.Background(), completeDonor())
				Expect(err).NotTo(HaveOccurred())
				Expect(*res.ReceiptNumber).To(Equal(1002))
			})
		})

		When("fiscal data is incomplete", func() {
			It("produces a thank-you-only result without touching the counter", func() {
				donor := completeDonor()
				donor.AmountText = ""

				res, err := svc.Generate(context.Background(), donor)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.IsFiscalReceipt).To(BeFalse())
				Expect(res.ReceiptNumber).To(BeNil())
				Expect(res.Document).To(BeNil())
				Expect(renderer.calls).To(BeZero())

				// no allocation happened: the counter store was never written
				_, statErr := os.Stat(counterPath)
				Expect(os.IsNotExist(statErr)).To(BeTrue())

				full, err := svc.Generate(context.Background(), completeDonor())
				Expect(err).NotTo(HaveOccurred())
				Expect(*full.ReceiptNumber).To(Equal(1001))
			})
		})

		When("required fields are missing", func() {
			It("rejects before any side effect", func() {
				donor := completeDonor()
				donor.Email = ""

				res, err := svc.Generate(context.Background(), donor)
				Expect(res).To(BeNil())
				Expect(errors.Is(err, common.ErrInvalidInput)).To(BeTrue())
				Expect(renderer.calls).To(BeZero())
				_, statErr := os.Stat(counterPath)
				Expect(os.IsNotExist(statErr)).To(BeTrue())
			})
		})

		When("rendering fails", func() {
			BeforeEach(func() {
				renderer.doc = nil
				renderer.err = errors.New("template unreadable")
			})

			It("returns no partial result", func() {
				res, err := svc.Generate(context.Background(), completeDonor())
				Expect(res).To(BeNil())
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
