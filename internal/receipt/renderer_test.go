package receipt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubAssets struct {
	template []byte
	tmplErr  error
	sig      []byte
	sigErr   error
	sigReads int
}

func (s *stubAssets) Template(context.Context) ([]byte, error) {
	return s.template, s.tmplErr
}

func (s *stubAssets) Signature(context.Context) ([]byte, error) {
	s.sigReads++
	return s.sig, s.sigErr
}

var _ = Describe("Renderer", func() {
	var (
		store    *stubAssets
		renderer *Renderer
		donor    DonorRecord
	)

	BeforeEach(func() {
		store = &stubAssets{template: minimalPDF(2), sig: signaturePNG()}
		renderer = NewRenderer(store, DefaultLayout(), nil)
		donor = completeDonor()
	})

	Describe("Render", func() {
		It("produces a finished PDF document", func() {
			doc, err := renderer.Render(context.Background(), donor, 1001)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc).NotTo(BeEmpty())
			Expect(bytes.HasPrefix(doc, []byte("%PDF"))).To(BeTrue())
		})

		It("renders blank positions for empty optional fields", func() {
			donor.Address = ""
			doc, err := renderer.Render(context.Background(), donor, 1001)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc).NotTo(BeEmpty())
		})

		It("stamps an identical text layer across repeated renders on the same day", func() {
			renderer.now = func() time.Time {
				return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
			}

			a, err := renderer.Render(context.Background(), donor, 1002)
			Expect(err).NotTo(HaveOccurred())
			b, err := renderer.Render(context.Background(), donor, 1002)
			Expect(err).NotTo(HaveOccurred())

			// compare page content, not output bytes: the writer embeds
			// varying document metadata
			ctxA, err := api.ReadValidateAndOptimize(bytes.NewReader(a), model.NewDefaultConfiguration())
			Expect(err).NotTo(HaveOccurred())
			ctxB, err := api.ReadValidateAndOptimize(bytes.NewReader(b), model.NewDefaultConfiguration())
			Expect(err).NotTo(HaveOccurred())

			for _, page := range []int{1, 2} {
				ca, err := pdfcpu.ExtractPageContent(ctxA, page)
				Expect(err).NotTo(HaveOccurred())
				rawA, err := io.ReadAll(ca)
				Expect(err).NotTo(HaveOccurred())
				Expect(rawA).NotTo(BeEmpty())

				cb, err := pdfcpu.ExtractPageContent(ctxB, page)
				Expect(err).NotTo(HaveOccurred())
				rawB, err := io.ReadAll(cb)
				Expect(err).NotTo(HaveOccurred())
				Expect(rawB).To(Equal(rawA))
			}
		})

		When("the template has a single page", func() {
			BeforeEach(func() {
				store.template = minimalPDF(1)
				store.sigErr = errors.New("should not be read")
			})

			It("skips the signature image", func() {
				_, err := renderer.Render(context.Background(), donor, 1001)
				Expect(err).NotTo(HaveOccurred())
				Expect(store.sigReads).To(BeZero())
			})

			It("drops stamps aimed past the last page", func() {
				doc, err := renderer.Render(context.Background(), donor, 1001)
				Expect(err).NotTo(HaveOccurred())
				Expect(bytes.HasPrefix(doc, []byte("%PDF"))).To(BeTrue())
			})
		})

		When("the template cannot be read", func() {
			BeforeEach(func() {
				store.tmplErr = errors.New("no such file")
			})

			It("fails the whole render", func() {
				doc, err := renderer.Render(context.Background(), donor, 1001)
				Expect(err).To(MatchError(ContainSubstring("loading receipt template")))
				Expect(doc).To(BeNil())
			})
		})

		When("the template bytes are malformed", func() {
			BeforeEach(func() {
				store.template = []byte("definitely not a pdf")
			})

			It("fails the whole render", func() {
				doc, err := renderer.Render(context.Background(), donor, 1001)
				Expect(err).To(HaveOccurred())
				Expect(doc).To(BeNil())
			})
		})

		When("the signature asset cannot be read", func() {
			BeforeEach(func() {
				store.sig = nil
				store.sigErr = errors.New("no such file")
			})

			It("fails the whole render", func() {
				doc, err := renderer.Render(context.Background(), donor, 1001)
				Expect(err).To(MatchError(ContainSubstring("loading signature image")))
				Expect(doc).To(BeNil())
			})
		})
	})
})
