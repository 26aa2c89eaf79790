package area

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rammap/arch"
)

var _ = Describe("Estimate", func() {
	var a arch.Architecture

	BeforeEach(func() {
		a = arch.MakeBuilder().Build()
	})

	It("should size the chip for the scarcest resource", func() {
		t := Tally{
			LogicBlocks:  100,
			ExtraLUTs:    15,
			LUTRAMBlocks: 10,
			M8KBlocks:    20,
			M128KBlocks:  1,
		}

		b := Estimate(t, a)

		Expect(b.RegularLBs).To(Equal(102))
		Expect(b.UsedTiles).To(Equal(112))
		Expect(b.Tiles).To(Equal(300))
		Expect(b.M8KSites).To(Equal(30))
		Expect(b.M128KSites).To(Equal(1))
		Expect(b.LogicArea).To(Equal(300 * LogicBlockArea))
		Expect(b.BlockRAMArea).To(BeNumerically("~",
			30*MacroArea(8192, 32)+MacroArea(131072, 128), 1e-6))
		Expect(b.Total).To(Equal(b.LogicArea + b.BlockRAMArea))
	})

	It("should make room for LUTRAM", func() {
		b := Estimate(Tally{LogicBlocks: 10, LUTRAMBlocks: 30}, a)

		Expect(b.Tiles).To(Equal(60))
		Expect(b.M8KSites).To(Equal(6))
		Expect(b.M128KSites).To(Equal(0))
	})

	It("should skip disabled kinds", func() {
		a = arch.MakeBuilder().
			WithLUTRAM(false).
			WithM128K(false).
			Build()

		b := Estimate(Tally{LogicBlocks: 10, LUTRAMBlocks: 30, M128KBlocks: 2}, a)

		Expect(b.Tiles).To(Equal(40))
		Expect(b.Sites(arch.KindM128K)).To(Equal(0))
		Expect(b.Sites(arch.KindM8K)).To(Equal(4))
	})

	It("should add tallies", func() {
		t := Tally{LogicBlocks: 1, ExtraLUTs: 2}
		t.AddBlocks(arch.KindM8K, 3)
		t.AddBlocks(arch.KindLUTRAM, 1)

		sum := t.Plus(Tally{M128KBlocks: 4, M8KBlocks: 1})

		Expect(sum).To(Equal(Tally{
			LogicBlocks:  1,
			ExtraLUTs:    2,
			LUTRAMBlocks: 1,
			M8KBlocks:    4,
			M128KBlocks:  4,
		}))
		Expect(sum.Blocks(arch.KindM8K)).To(Equal(4))
	})

	It("should compute the geometric mean", func() {
		Expect(GeometricMean(nil)).To(Equal(0.0))
		Expect(GeometricMean([]float64{1e7, 4e7})).
			To(BeNumerically("~", 2e7, 1e-3))
	})
})
