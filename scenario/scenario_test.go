package scenario

import (
	"errors"
	"strings"

	"github.com/sarchlab/digisim/signal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const writeThenRead = `
label: RAM1
addr_bits: 4
data_bits: 8
init: [0x11, 0x22]
steps:
  - {cs: 1, addr: 3, data: 0x5a}
  - {we: 1}
  - {we: 0, expect: Z}
  - {oe: 1, expect: "0x5a"}
  - {addr: 1, expect: "0x22"}
  - {cs: 0, expect: z}
`

var _ = Describe("Scenario", func() {
	It("should parse a scenario", func() {
		s, err := Load(strings.NewReader(writeThenRead))

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Label).To(Equal("RAM1"))
		Expect(s.AddrBits).To(Equal(4))
		Expect(s.Init).To(Equal([]uint64{0x11, 0x22}))
		Expect(s.Steps).To(HaveLen(6))
		Expect(*s.Steps[0].Addr).To(Equal(uint64(3)))
		Expect(s.Steps[1].Addr).To(BeNil())
	})

	It("should fill in defaults", func() {
		s, err := Parse([]byte("steps: []"))

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Label).To(Equal("RAM"))
		Expect(s.AddrBits).To(Equal(8))
		Expect(s.DataBits).To(Equal(8))
	})

	DescribeTable("should reject invalid scenarios",
		func(doc string) {
			_, err := Parse([]byte(doc))

			Expect(errors.Is(err, ErrInvalidScenario)).To(BeTrue())
		},
		Entry("address too wide", "addr_bits: 25"),
		Entry("word too wide", "data_bits: 65"),
		Entry("image too large", "addr_bits: 1\ninit: [1, 2, 3]"),
		Entry("bad expectation", "steps:\n  - {expect: high}"),
		Entry("unknown field", "adress_bits: 4"),
	)

	It("should parse expectations", func() {
		v, checked, err := Step{Expect: "Z"}.expectation()
		Expect(err).NotTo(HaveOccurred())
		Expect(checked).To(BeTrue())
		Expect(v.IsHighZ()).To(BeTrue())

		v, checked, err = Step{Expect: "42"}.expectation()
		Expect(err).NotTo(HaveOccurred())
		Expect(checked).To(BeTrue())
		Expect(v.Equal(signal.Driven(42))).To(BeTrue())

		_, checked, err = Step{}.expectation()
		Expect(err).NotTo(HaveOccurred())
		Expect(checked).To(BeFalse())
	})
})
