package nativetask_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ppryga-nordic/nativesim/nativetask"
)

var _ = Describe("Phase", func() {
	It("should order the phases by lifecycle position", func() {
		Expect(nativetask.PhasePreBoot1 < nativetask.PhasePreBoot2).
			To(BeTrue())
		Expect(nativetask.PhasePreBoot2 < nativetask.PhasePreBoot3).
			To(BeTrue())
		Expect(nativetask.PhasePreBoot3 < nativetask.PhaseFirstSleep).
			To(BeTrue())
		Expect(nativetask.PhaseFirstSleep < nativetask.PhaseOnExit).
			To(BeTrue())
	})

	It("should name the phases", func() {
		Expect(nativetask.PhasePreBoot1.String()).To(Equal("PRE_BOOT_1"))
		Expect(nativetask.PhasePreBoot2.String()).To(Equal("PRE_BOOT_2"))
		Expect(nativetask.PhasePreBoot3.String()).To(Equal("PRE_BOOT_3"))
		Expect(nativetask.PhaseFirstSleep.String()).To(Equal("FIRST_SLEEP"))
		Expect(nativetask.PhaseOnExit.String()).To(Equal("ON_EXIT"))
	})

	It("should name undefined phases by value", func() {
		Expect(nativetask.Phase(9).String()).To(Equal("Phase(9)"))
	})

	It("should validate phase values", func() {
		Expect(nativetask.ValidPhase(nativetask.PhasePreBoot1)).To(BeTrue())
		Expect(nativetask.ValidPhase(nativetask.PhaseOnExit)).To(BeTrue())
		Expect(nativetask.ValidPhase(nativetask.Phase(-1))).To(BeFalse())
		Expect(nativetask.ValidPhase(nativetask.Phase(5))).To(BeFalse())
	})
})
