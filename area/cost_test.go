package area

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rammap/arch"
)

var _ = Describe("Cost model", func() {
	var a arch.Architecture

	BeforeEach(func() {
		a = arch.MakeBuilder().Build()
	})

	It("should compute the macro area", func() {
		Expect(MacroArea(8192, 32)).To(BeNumerically("~", 96505.870119, 1e-5))
	})

	It("should grow the macro area with bits and width", func() {
		Expect(MacroArea(8192, 64)).To(BeNumerically(">", MacroArea(8192, 32)))
		Expect(MacroArea(16384, 32)).To(BeNumerically(">", MacroArea(8192, 32)))
	})

	DescribeTable("decode overhead",
		func(series, expected int) {
			Expect(DecodeOverhead(series)).To(Equal(expected))
		},
		Entry("no chain", 1, 0),
		Entry("degenerate", 0, 0),
		Entry("two deep", 2, 1),
		Entry("three deep", 3, 3),
		Entry("sixteen deep", 16, 16),
	)

	DescribeTable("mux overhead",
		func(series, width, expected int) {
			Expect(MuxOverhead(series, width)).To(Equal(expected))
		},
		Entry("no chain", 1, 8, 0),
		Entry("two deep", 2, 8, 8),
		Entry("five deep", 5, 2, 6),
		Entry("sixteen deep", 16, 1, 5),
		Entry("seventeen deep", 17, 1, 8),
	)

	It("should pack ten LUTs into a logic block", func() {
		Expect(LogicBlocksForLUTs(0)).To(Equal(0))
		Expect(LogicBlocksForLUTs(1)).To(Equal(1))
		Expect(LogicBlocksForLUTs(10)).To(Equal(1))
		Expect(LogicBlocksForLUTs(11)).To(Equal(2))
	})

	It("should cost a fully used block RAM", func() {
		cost := MappingCost(Footprint{
			PhysBlocks:  1,
			LogicalBits: 8192,
		}, a.PhysConfig(arch.KindM8K))

		Expect(cost).To(BeNumerically("~", MacroArea(8192, 32)*29.8, 1e-3))
	})

	It("should charge the true-dual-port width", func() {
		cfg := a.PhysConfig(arch.KindM8K)
		fp := Footprint{PhysBlocks: 1, LogicalBits: 8192, TrueDualPort: true}

		Expect(MappingCost(fp, cfg)).
			To(BeNumerically("~", MacroArea(8192, 16)*29.8, 1e-3))
	})

	It("should fold LUTRAM into logic blocks", func() {
		cost := MappingCost(Footprint{
			PhysBlocks:  2,
			ExtraLUTs:   11,
			LogicalBits: 640,
		}, arch.LUTRAM)

		Expect(cost).To(BeNumerically("~", 4*LogicBlockArea*25.2, 1e-6))
	})

	It("should penalize poor utilization", func() {
		cfg := a.PhysConfig(arch.KindM128K)
		full := MappingCost(Footprint{PhysBlocks: 1, LogicalBits: 131072}, cfg)
		half := MappingCost(Footprint{PhysBlocks: 1, LogicalBits: 65536}, cfg)

		Expect(half).To(BeNumerically(">", full))
	})

	It("should clamp utilization", func() {
		Expect(Utilization(100, 0, 8192)).To(Equal(1.0))
		Expect(Utilization(20000, 1, 8192)).To(Equal(1.0))
		Expect(Utilization(-5, 1, 8192)).To(Equal(0.0))
		Expect(Utilization(4096, 1, 8192)).To(Equal(0.5))
	})
})
