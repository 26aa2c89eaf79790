package area

// DecodeOverhead returns the LUTs needed to decode the address when series
// macros are chained in depth.
func DecodeOverhead(series int) int {
	switch {
	case series <= 1:
		return 0
	case series == 2:
		return 1
	default:
		return series
	}
}

// MuxOverhead returns the LUTs needed to select the output word of a
// series-deep chain. Each output bit is a tree of 4-to-1 multiplexers.
func MuxOverhead(series, width int) int {
	if series <= 1 {
		return 0
	}

	nodes := 0
	for n := series; n > 1; {
		n = (n + 3) / 4
		nodes += n
	}

	return width * nodes
}
