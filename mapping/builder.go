package mapping

import (
	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/hooking"
)

// Builder can build assigners.
type Builder struct {
	arch  arch.Architecture
	hooks []hooking.Hook
}

// MakeBuilder creates a builder that uses the default architecture.
func MakeBuilder() Builder {
	return Builder{
		arch: arch.MakeBuilder().Build(),
	}
}

// WithArchitecture sets the architecture to map onto.
func (b Builder) WithArchitecture(a arch.Architecture) Builder {
	b.arch = a
	return b
}

// WithHook registers a hook on the assigner being built.
func (b Builder) WithHook(h hooking.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], h)
	return b
}

// Build creates the assigner.
func (b Builder) Build() *Assigner {
	a := &Assigner{
		arch:   b.arch,
		mapper: NewMapper(b.arch),
	}

	for _, h := range b.hooks {
		a.AcceptHook(h)
	}

	return a
}
