package arch

// Builder can build architectures.
type Builder struct {
	lutramEnabled  bool
	lutramFraction float64
	m8k            BlockRAM
	m128k          BlockRAM
}

// MakeBuilder creates a builder with the default architecture: LUTRAM on half
// of the logic blocks, an 8 Kbit block RAM every 10 logic blocks, and a
// 128 Kbit block RAM every 300 logic blocks.
func MakeBuilder() Builder {
	return Builder{
		lutramEnabled:  true,
		lutramFraction: 0.5,
		m8k: BlockRAM{
			Enabled:    true,
			Bits:       8192,
			LBsPerSite: 10,
			MaxWidth:   32,
		},
		m128k: BlockRAM{
			Enabled:    true,
			Bits:       128 * 1024,
			LBsPerSite: 300,
			MaxWidth:   128,
		},
	}
}

// MakeBuilderFrom creates a builder that starts from an existing
// architecture.
func MakeBuilderFrom(a Architecture) Builder {
	return Builder{
		lutramEnabled:  a.LUTRAMEnabled,
		lutramFraction: a.LUTRAMFraction,
		m8k:            a.M8K,
		m128k:          a.M128K,
	}
}

// WithLUTRAM enables or disables LUTRAM.
func (b Builder) WithLUTRAM(enabled bool) Builder {
	b.lutramEnabled = enabled
	return b
}

// WithLUTRAMFraction sets the fraction of logic blocks that can act as
// LUTRAM.
func (b Builder) WithLUTRAMFraction(f float64) Builder {
	b.lutramFraction = f
	return b
}

// WithM8K enables or disables the 8 Kbit block RAM.
func (b Builder) WithM8K(enabled bool) Builder {
	b.m8k.Enabled = enabled
	return b
}

// WithM8KBits sets the capacity of the 8K-class block RAM.
func (b Builder) WithM8KBits(bits int) Builder {
	b.m8k.Bits = bits
	return b
}

// WithM8KLBsPerSite sets how many logic blocks come with each 8K-class site.
func (b Builder) WithM8KLBsPerSite(n int) Builder {
	b.m8k.LBsPerSite = n
	return b
}

// WithM8KMaxWidth sets the widest port of the 8K-class block RAM.
func (b Builder) WithM8KMaxWidth(w int) Builder {
	b.m8k.MaxWidth = w
	return b
}

// WithM128K enables or disables the 128 Kbit block RAM.
func (b Builder) WithM128K(enabled bool) Builder {
	b.m128k.Enabled = enabled
	return b
}

// WithM128KBits sets the capacity of the 128K-class block RAM.
func (b Builder) WithM128KBits(bits int) Builder {
	b.m128k.Bits = bits
	return b
}

// WithM128KLBsPerSite sets how many logic blocks come with each 128K-class
// site.
func (b Builder) WithM128KLBsPerSite(n int) Builder {
	b.m128k.LBsPerSite = n
	return b
}

// WithM128KMaxWidth sets the widest port of the 128K-class block RAM.
func (b Builder) WithM128KMaxWidth(w int) Builder {
	b.m128k.MaxWidth = w
	return b
}

// Build creates the architecture. The result is not validated; call
// Validate before using it for a run.
func (b Builder) Build() Architecture {
	return Architecture{
		LUTRAMEnabled:  b.lutramEnabled,
		LUTRAMFraction: b.lutramFraction,
		M8K:            b.m8k,
		M128K:          b.m128k,
	}
}
