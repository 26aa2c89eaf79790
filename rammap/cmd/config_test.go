package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/sarchlab/rammap/arch"
)

func parsedRunCmd(args ...string) *cobra.Command {
	c := newRunCmd()
	c.SetErr(new(bytes.Buffer))
	Expect(c.ParseFlags(args)).To(Succeed())

	return c
}

var _ = Describe("Configuration", func() {
	BeforeEach(func() {
		for _, name := range []string{
			envLogicBlocks, envLogicalRAMs, envArch, envOutputDir,
		} {
			GinkgoT().Setenv(name, "")
		}
	})

	It("should use the defaults", func() {
		a, err := resolveArch(parsedRunCmd())

		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(arch.MakeBuilder().Build()))
	})

	It("should apply only the changed flags", func() {
		a, err := resolveArch(parsedRunCmd(
			"--m8k=false", "--m128k-bits", "65536", "--lutram-fraction", "0.25"))

		Expect(err).NotTo(HaveOccurred())
		Expect(a.M8K.Enabled).To(BeFalse())
		Expect(a.M8K.Bits).To(Equal(8192))
		Expect(a.M128K.Bits).To(Equal(65536))
		Expect(a.M128K.MaxWidth).To(Equal(128))
		Expect(a.LUTRAMFraction).To(Equal(0.25))
	})

	It("should let flags override the architecture file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "arch.toml")
		Expect(os.WriteFile(path, []byte(
			"[m8k]\nbits = 4096\nmax_width = 16\n"+
				"[m128k]\nenabled = false\n"), 0o644)).To(Succeed())

		a, err := resolveArch(parsedRunCmd(
			"--arch", path, "--m8k-max-width", "8"))

		Expect(err).NotTo(HaveOccurred())
		Expect(a.M8K.Bits).To(Equal(4096))
		Expect(a.M8K.MaxWidth).To(Equal(8))
		Expect(a.M8K.LBsPerSite).To(Equal(10))
		Expect(a.M128K.Enabled).To(BeFalse())
	})

	It("should read the architecture file from the environment", func() {
		path := filepath.Join(GinkgoT().TempDir(), "arch.toml")
		Expect(os.WriteFile(path,
			[]byte("[lutram]\nenabled = false\n"), 0o644)).To(Succeed())
		GinkgoT().Setenv(envArch, path)

		a, err := resolveArch(parsedRunCmd())

		Expect(err).NotTo(HaveOccurred())
		Expect(a.LUTRAMEnabled).To(BeFalse())
	})

	It("should apply the classic parameters last", func() {
		a, err := resolveArch(parsedRunCmd(
			"--m8k-bits", "1024",
			"--params", "0 0.5 1 4096 5 16 0,131072,300,128"))

		Expect(err).NotTo(HaveOccurred())
		Expect(a.LUTRAMEnabled).To(BeFalse())
		Expect(a.M8K.Bits).To(Equal(4096))
		Expect(a.M8K.LBsPerSite).To(Equal(5))
		Expect(a.M8K.MaxWidth).To(Equal(16))
		Expect(a.M128K.Enabled).To(BeFalse())
	})

	It("should warn about an out-of-range fraction", func() {
		c := parsedRunCmd("--params", "1 1.5 1 8192 10 32 1 131072 300 128")
		stderr := new(bytes.Buffer)
		c.SetErr(stderr)

		a, err := resolveArch(c)

		Expect(err).NotTo(HaveOccurred())
		Expect(a.LUTRAMFraction).To(Equal(0.5))
		Expect(stderr.String()).To(ContainSubstring("lutram_fraction 1.5"))
	})

	It("should reject too few classic parameters", func() {
		_, err := resolveArch(parsedRunCmd("--params", "1 0.5"))

		Expect(err).To(MatchError(ContainSubstring("expected 10 parameters")))
	})

	It("should reject an architecture without memory", func() {
		_, err := resolveArch(parsedRunCmd(
			"--lutram=false", "--m8k=false", "--m128k=false"))

		Expect(errors.Is(err, arch.ErrNoKindEnabled)).To(BeTrue())
	})

	It("should take input files from arguments or the environment", func() {
		GinkgoT().Setenv(envLogicBlocks, "lb.txt")
		GinkgoT().Setenv(envOutputDir, "out")

		cfg, err := resolveConfig(parsedRunCmd(), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LogicBlockFile).To(Equal("lb.txt"))
		Expect(cfg.LogicalRAMFile).To(Equal(defaultLogicalRAMFile))
		Expect(cfg.OutputDir).To(Equal("out"))
		Expect(cfg.Record).To(BeFalse())

		cfg, err = resolveConfig(parsedRunCmd("--db", "", "-o", "x"),
			[]string{"a.txt", "b.txt"})
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LogicBlockFile).To(Equal("a.txt"))
		Expect(cfg.LogicalRAMFile).To(Equal("b.txt"))
		Expect(cfg.OutputDir).To(Equal("x"))
		Expect(cfg.Record).To(BeTrue())
		Expect(cfg.DBName).To(BeEmpty())
	})

	It("should accept a missing dotenv file", func() {
		Expect(loadEnv(filepath.Join(GinkgoT().TempDir(), ".env"))).
			To(Succeed())
	})

	It("should load a dotenv file without overriding", func() {
		path := filepath.Join(GinkgoT().TempDir(), ".env")
		Expect(os.WriteFile(path, []byte(
			envLogicBlocks+"=from_file.txt\n"+
				envLogicalRAMs+"=rams_from_file.txt\n"), 0o644)).To(Succeed())
		GinkgoT().Setenv(envLogicBlocks, "set.txt")
		os.Unsetenv(envLogicalRAMs)
		DeferCleanup(os.Unsetenv, envLogicalRAMs)

		Expect(loadEnv(path)).To(Succeed())

		Expect(os.Getenv(envLogicBlocks)).To(Equal("set.txt"))
		Expect(os.Getenv(envLogicalRAMs)).To(Equal("rams_from_file.txt"))
	})
})
