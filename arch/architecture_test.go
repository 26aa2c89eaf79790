package arch

import (
	"io/fs"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Architecture", func() {
	It("should enable every kind by default", func() {
		a := MakeBuilder().Build()

		Expect(a.EnabledKinds()).To(Equal(
			[]Kind{KindLUTRAM, KindM8K, KindM128K}))
		Expect(a.Validate()).To(Succeed())
	})

	It("should derive the true-dual-port width", func() {
		a := MakeBuilder().Build()

		cfg := a.PhysConfig(KindM8K)
		Expect(cfg.Bits).To(Equal(8192))
		Expect(cfg.MaxWidth).To(Equal(32))
		Expect(cfg.MaxWidthTDP).To(Equal(16))

		cfg = a.PhysConfig(KindM128K)
		Expect(cfg.Bits).To(Equal(131072))
		Expect(cfg.MaxWidthTDP).To(Equal(64))
	})

	It("should use the fixed LUTRAM config", func() {
		a := MakeBuilder().Build()

		Expect(a.PhysConfig(KindLUTRAM)).To(Equal(LUTRAM))
		Expect(LUTRAM.SupportsTrueDualPort()).To(BeFalse())
	})

	It("should reject a configuration without any kind", func() {
		a := MakeBuilder().
			WithLUTRAM(false).
			WithM8K(false).
			WithM128K(false).
			Build()

		Expect(a.Validate()).To(MatchError(ErrNoKindEnabled))
	})

	It("should reject a bad fraction", func() {
		a := MakeBuilder().WithLUTRAMFraction(1.5).Build()

		Expect(a.Validate()).NotTo(Succeed())
	})

	It("should ignore parameters of disabled kinds", func() {
		a := MakeBuilder().WithM128K(false).WithM128KBits(0).Build()

		Expect(a.Validate()).To(Succeed())
	})

	It("should reject a zero capacity on an enabled kind", func() {
		a := MakeBuilder().WithM8KBits(0).Build()

		Expect(a.Validate()).To(MatchError(ContainSubstring("M8K")))
	})

	It("should round trip through the builder", func() {
		a := MakeBuilder().WithM8KMaxWidth(64).WithLUTRAM(false).Build()

		Expect(MakeBuilderFrom(a).Build()).To(Equal(a))
	})

	It("should panic when asking LUTRAM for block-RAM parameters", func() {
		a := MakeBuilder().Build()

		Expect(func() { a.BlockRAM(KindLUTRAM) }).To(Panic())
	})
})

var _ = Describe("Kind", func() {
	It("should convert type ids", func() {
		for _, k := range Kinds {
			back, ok := KindFromTypeID(k.TypeID())
			Expect(ok).To(BeTrue())
			Expect(back).To(Equal(k))
		}

		_, ok := KindFromTypeID(7)
		Expect(ok).To(BeFalse())
	})

	It("should name kinds", func() {
		Expect(KindM128K.String()).To(Equal("M128K"))
		Expect(Kind(9).String()).To(Equal("Kind(9)"))
	})

	It("should parse kind names", func() {
		for _, k := range Kinds {
			back, ok := ParseKind(k.String())
			Expect(ok).To(BeTrue())
			Expect(back).To(Equal(k))
		}

		_, ok := ParseKind("m8k")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Architecture files", func() {
	It("should override only the defined keys", func() {
		base := MakeBuilder().Build()

		a, err := Decode(`
[m8k]
bits = 4096
max_width = 16

[m128k]
enabled = false
`, base)

		Expect(err).NotTo(HaveOccurred())
		Expect(a.M8K.Bits).To(Equal(4096))
		Expect(a.M8K.MaxWidth).To(Equal(16))
		Expect(a.M8K.LBsPerSite).To(Equal(10))
		Expect(a.M8K.Enabled).To(BeTrue())
		Expect(a.M128K.Enabled).To(BeFalse())
		Expect(a.M128K.Bits).To(Equal(131072))
		Expect(a.LUTRAMFraction).To(Equal(0.5))
	})

	It("should reject unknown keys", func() {
		_, err := Decode("[m8k]\nsize = 3\n", MakeBuilder().Build())

		Expect(err).To(MatchError(ContainSubstring("m8k.size")))
	})

	It("should load a file from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "arch.toml")
		Expect(os.WriteFile(path,
			[]byte("[lutram]\nfraction = 0.25\n"), 0644)).To(Succeed())

		a, err := LoadFile(path, MakeBuilder().Build())

		Expect(err).NotTo(HaveOccurred())
		Expect(a.LUTRAMFraction).To(Equal(0.25))
	})

	It("should name the file on a syntax error", func() {
		path := filepath.Join(GinkgoT().TempDir(), "bad.toml")
		Expect(os.WriteFile(path, []byte("[m8k\n"), 0644)).To(Succeed())

		_, err := LoadFile(path, MakeBuilder().Build())

		Expect(err).To(MatchError(ContainSubstring("bad.toml")))
	})

	It("should keep the cause of a missing file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "none.toml")

		_, err := LoadFile(path, MakeBuilder().Build())

		Expect(err).To(MatchError(ContainSubstring("none.toml")))
		Expect(err).To(MatchError(fs.ErrNotExist))
	})
})

var _ = Describe("Positional parameters", func() {
	It("should apply all ten values", func() {
		a, err := ApplyParams(MakeBuilder().Build(), []string{
			"false", "0.3",
			"1", "4096", "20", "16",
			"TRUE", "65536", "200", "64",
		}, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(a.LUTRAMEnabled).To(BeFalse())
		Expect(a.LUTRAMFraction).To(Equal(0.3))
		Expect(a.M8K).To(Equal(BlockRAM{
			Enabled: true, Bits: 4096, LBsPerSite: 20, MaxWidth: 16,
		}))
		Expect(a.M128K).To(Equal(BlockRAM{
			Enabled: true, Bits: 65536, LBsPerSite: 200, MaxWidth: 64,
		}))
	})

	It("should keep values that cannot be parsed", func() {
		base := MakeBuilder().Build()

		a, err := ApplyParams(base, []string{
			"maybe", "x", "y", "z", "1.5", "w",
			"?", "", "-", "q",
		}, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(base))
	})

	It("should warn about an out-of-range fraction", func() {
		var warnings []string

		a, err := ApplyParams(MakeBuilder().Build(), []string{
			"1", "2.5", "1", "8192", "10", "32", "1", "131072", "300", "128",
		}, func(msg string) { warnings = append(warnings, msg) })

		Expect(err).NotTo(HaveOccurred())
		Expect(a.LUTRAMFraction).To(Equal(0.5))
		Expect(warnings).To(HaveLen(1))
	})

	It("should require ten values", func() {
		_, err := ApplyParams(MakeBuilder().Build(), []string{"1"}, nil)

		Expect(err).To(HaveOccurred())
	})
})
