package cmd

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rammap/datarecording"
	"github.com/sarchlab/rammap/report"
)

const (
	sampleLogicBlocks = "Circuit\t# Logic blocks\n0\t10\n1\t20\n"
	sampleLogicalRAMs = "Num_Circuits 2\n" +
		"Circuit\tRamID\tMode\t\tDepth\tWidth\n" +
		"0\t0\tSinglePort\t1024\t4\n" +
		"0\t1\tSinglePort\t1024\t4\n" +
		"1\t0\tSinglePort\t1024\t8\n"
)

var _ = Describe("Run", func() {
	var (
		dir             string
		lbFile, ramFile string
		stdout, stderr  *bytes.Buffer
	)

	execute := func(args ...string) error {
		root := newRootCmd()
		root.SetArgs(args)
		root.SetOut(stdout)
		root.SetErr(stderr)

		return root.ExecuteContext(context.Background())
	}

	writeInput := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		stdout = new(bytes.Buffer)
		stderr = new(bytes.Buffer)
		lbFile = writeInput("lb.txt", sampleLogicBlocks)
		ramFile = writeInput("rams.txt", sampleLogicalRAMs)
	})

	It("should write the reports", func() {
		out := filepath.Join(dir, "out")

		err := execute("run", lbFile, ramFile, "-o", out,
			"--lutram=false", "--m128k=false")

		Expect(err).NotTo(HaveOccurred())

		mapped, err := os.ReadFile(filepath.Join(out, mappingFileName))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(mapped)).To(Equal(
			"0 0 0 LW 4 LD 1024 ID 0 S 1 P 1 Type 2 Mode TrueDualPort W 4 D 2048\n" +
				"0 1 0 LW 4 LD 1024 ID 0 S 1 P 1 Type 2 Mode TrueDualPort W 4 D 2048\n" +
				"1 0 0 LW 8 LD 1024 ID 2 S 1 P 1 Type 2 Mode SinglePort W 8 D 1024\n"))

		csv, err := os.ReadFile(filepath.Join(out, resultsFileName))
		Expect(err).NotTo(HaveOccurred())
		lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
		Expect(lines).To(HaveLen(3))
		Expect(lines[1]).To(HavePrefix("0,0,1,0,10,10,"))
		Expect(lines[2]).To(HavePrefix("1,0,1,0,20,20,"))

		Expect(stderr.String()).To(ContainSubstring("Program runtime:"))
		Expect(stderr.String()).To(ContainSubstring("Total FPGA area = "))
		Expect(stderr.String()).To(ContainSubstring("Geometric mean FPGA area = "))
	})

	It("should log decisions when verbose", func() {
		err := execute("run", lbFile, ramFile, "-o", dir, "-v")

		Expect(err).NotTo(HaveOccurred())
		Expect(stderr.String()).To(ContainSubstring("map c0 r0"))
	})

	It("should record the run", func() {
		db := filepath.Join(dir, "run")

		err := execute("run", lbFile, ramFile, "-o", dir, "--db", db)
		Expect(err).NotTo(HaveOccurred())

		reader, err := datarecording.NewReader(db + ".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()
		reader.MapTable(report.CircuitUsageTable, report.CircuitUsageRow{})
		reader.MapTable(report.RAMMappingTable, report.RAMMappingRow{})
		reader.MapTable(datarecording.ExecInfoTable, datarecording.ExecInfo{})

		_, circuits, err := reader.Query(context.Background(),
			report.CircuitUsageTable, datarecording.QueryParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(circuits).To(Equal(2))

		_, mappings, err := reader.Query(context.Background(),
			report.RAMMappingTable, datarecording.QueryParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(mappings).To(Equal(3))

		info, _, err := reader.Query(context.Background(),
			datarecording.ExecInfoTable, datarecording.QueryParams{
				Where: "Property = ?",
				Args:  []any{"Circuits"},
			})
		Expect(err).NotTo(HaveOccurred())
		Expect(info).To(HaveLen(1))
		Expect(info[0].(*datarecording.ExecInfo).Value).To(Equal("2"))
	})

	It("should fail on an unmappable memory", func() {
		rams := writeInput("tdp.txt", "Num_Circuits 1\nheader\n"+
			"0\t0\tTrueDualPort\t16\t4\n")

		err := execute("run", lbFile, rams, "-o", dir,
			"--m8k=false", "--m128k=false")

		Expect(err).To(MatchError(ContainSubstring(
			"no legal mapping for logical RAM 0 in circuit 0")))
		Expect(filepath.Join(dir, mappingFileName)).NotTo(BeAnExistingFile())
	})

	It("should report a missing input file", func() {
		err := execute("run", filepath.Join(dir, "none.txt"), ramFile, "-o", dir)

		Expect(err).To(MatchError(ContainSubstring("none.txt")))
		Expect(err).To(MatchError(fs.ErrNotExist))
	})

	It("should reject a single input file", func() {
		err := execute("run", lbFile)

		Expect(err).To(MatchError(ContainSubstring("got 1 arguments")))
	})

	It("should print the version", func() {
		Expect(execute("version")).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring(Version))
	})

	It("should print errors in a readable form", func() {
		buf := new(bytes.Buffer)

		printError(buf, os.ErrNotExist)

		Expect(buf.String()).To(ContainSubstring("Error: "))
		Expect(buf.String()).To(ContainSubstring("file does not exist"))
	})
})
