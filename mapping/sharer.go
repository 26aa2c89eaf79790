package mapping

import (
	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/circuit"
)

// SharedPair records two mappings merged into one true-dual-port block. The
// mappings are copies taken after the merge.
type SharedPair struct {
	Kind   arch.Kind
	First  RamMapping
	Second RamMapping
}

// shareCandidate returns true if the mapping may give up its block to share
// one with another memory.
func shareCandidate(m RamMapping, cfg arch.PhysConfig) bool {
	if m.Kind != cfg.Kind {
		return false
	}

	if m.Mode != circuit.ModeROM && m.Mode != circuit.ModeSinglePort {
		return false
	}

	if m.PhysBlocks != 1 {
		return false
	}

	if cfg.MaxWidthTDP > 0 && m.PhysWidth > cfg.MaxWidthTDP {
		return false
	}

	bits := m.LogicalBits()

	return bits > 0 && bits < cfg.Bits
}

// canShare checks a pair of candidates. The caller has checked that both are
// candidates.
func canShare(a, b RamMapping, cfg arch.PhysConfig) bool {
	if a.CircuitID != b.CircuitID {
		return false
	}

	if !a.SameShape(b) {
		return false
	}

	if a.LogicalDepth+b.LogicalDepth > a.PhysDepth*a.Series {
		return false
	}

	return a.LogicalBits()+b.LogicalBits() == cfg.Bits
}

// Share merges pairs of single-port mappings of the kind into shared
// true-dual-port blocks, modifying mappings in place. Each merge saves one
// block. Matching is greedy: each candidate, in list order, takes the first
// later unmerged candidate it can share with. It returns the merged pairs in
// merge order.
func Share(mappings []RamMapping, cfg arch.PhysConfig) []SharedPair {
	var candidates []int

	for i, m := range mappings {
		if shareCandidate(m, cfg) {
			candidates = append(candidates, i)
		}
	}

	merged := make(map[int]bool)

	var pairs []SharedPair

	for ci, i := range candidates {
		if merged[i] {
			continue
		}

		for _, j := range candidates[ci+1:] {
			if merged[j] || !canShare(mappings[i], mappings[j], cfg) {
				continue
			}

			merged[i] = true
			merged[j] = true

			mappings[i].Mode = circuit.ModeTrueDualPort
			mappings[j].Mode = circuit.ModeTrueDualPort
			mappings[j].GroupID = mappings[i].GroupID

			pairs = append(pairs, SharedPair{
				Kind:   cfg.Kind,
				First:  mappings[i],
				Second: mappings[j],
			})

			break
		}
	}

	return pairs
}
