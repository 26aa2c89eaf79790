// Command rammap maps the logical memories of benchmark circuits onto the
// physical memory resources of an FPGA architecture.
package main

import "github.com/sarchlab/rammap/rammap/cmd"

func main() {
	cmd.Execute()
}
