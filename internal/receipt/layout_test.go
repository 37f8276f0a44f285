package receipt

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Layout", func() {
	Describe("DefaultLayout", func() {
		It("places the receipt number alone on page one", func() {
			l := DefaultLayout()
			var pageOne []Stamp
			for _, s := range l.Stamps {
				if s.Page == 1 {
					pageOne = append(pageOne, s)
				}
			}
			Expect(pageOne).To(HaveLen(1))
			Expect(pageOne[0].Field).To(Equal(FieldReceiptNumber))
			Expect(pageOne[0].X).To(Equal(480.0))
			Expect(pageOne[0].Y).To(Equal(761.0))
		})

		It("suffixes the amount with the euro sign", func() {
			for _, s := range DefaultLayout().Stamps {
				if s.Field == FieldAmount {
					Expect(s.Suffix).To(Equal(" €"))
					return
				}
			}
			Fail("no amount stamp in default layout")
		})

		It("puts the signature at the fixed position on page two", func() {
			sig := DefaultLayout().Signature
			Expect(sig.Page).To(Equal(2))
			Expect(sig.X).To(Equal(380.0))
			Expect(sig.Y).To(Equal(20.0))
			Expect(sig.Scale).To(Equal(0.35))
		})
	})

	Describe("LoadLayout", func() {
		var path string

		BeforeEach(func() {
			path = filepath.Join(GinkgoT().TempDir(), "layout.yaml")
		})

		It("reads stamps and fills in defaults", func() {
			yaml := `
stamps:
  - field: receiptNumber
    page: 1
    x: 500
    y: 750
signature:
  page: 2
  x: 400
  y: 30
`
			Expect(os.WriteFile(path, []byte(yaml), 0644)).To(Succeed())

			l, err := LoadLayout(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(l.Stamps).To(HaveLen(1))
			Expect(l.Stamps[0].X).To(Equal(500.0))
			Expect(l.FontSize).To(Equal(12))
			Expect(l.Signature.Scale).To(Equal(0.35))
		})

		It("rejects a layout without stamps", func() {
			Expect(os.WriteFile(path, []byte("fontSize: 10\n"), 0644)).To(Succeed())
			_, err := LoadLayout(path)
			Expect(err).To(MatchError(ContainSubstring("no stamps")))
		})

		It("fails on a missing file", func() {
			_, err := LoadLayout(filepath.Join(GinkgoT().TempDir(), "absent.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})
})
