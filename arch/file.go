package arch

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type fileConfig struct {
	LUTRAM lutramSection   `toml:"lutram"`
	M8K    blockRAMSection `toml:"m8k"`
	M128K  blockRAMSection `toml:"m128k"`
}

type lutramSection struct {
	Enabled  bool    `toml:"enabled"`
	Fraction float64 `toml:"fraction"`
}

type blockRAMSection struct {
	Enabled    bool `toml:"enabled"`
	Bits       int  `toml:"bits"`
	LBsPerSite int  `toml:"lbs_per_site"`
	MaxWidth   int  `toml:"max_width"`
}

// LoadFile reads an architecture TOML file. Keys that the file does not
// define keep their values from base.
func LoadFile(path string, base Architecture) (Architecture, error) {
	var cfg fileConfig

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Architecture{}, errors.Wrapf(err, "%s: failed to parse TOML",
			path)
	}

	a, err := merge(meta, cfg, base)
	if err != nil {
		return Architecture{}, errors.Wrap(err, path)
	}

	return a, nil
}

// Decode parses architecture TOML text. Keys that the text does not define
// keep their values from base.
func Decode(data string, base Architecture) (Architecture, error) {
	var cfg fileConfig

	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Architecture{}, errors.Wrap(err, "failed to parse TOML")
	}

	return merge(meta, cfg, base)
}

func merge(
	meta toml.MetaData,
	cfg fileConfig,
	base Architecture,
) (Architecture, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}

		return Architecture{}, errors.Errorf("unknown keys: %s",
			strings.Join(keys, ", "))
	}

	a := base

	if meta.IsDefined("lutram", "enabled") {
		a.LUTRAMEnabled = cfg.LUTRAM.Enabled
	}

	if meta.IsDefined("lutram", "fraction") {
		a.LUTRAMFraction = cfg.LUTRAM.Fraction
	}

	mergeBlockRAM(meta, "m8k", cfg.M8K, &a.M8K)
	mergeBlockRAM(meta, "m128k", cfg.M128K, &a.M128K)

	return a, nil
}

func mergeBlockRAM(
	meta toml.MetaData,
	section string,
	src blockRAMSection,
	dst *BlockRAM,
) {
	if meta.IsDefined(section, "enabled") {
		dst.Enabled = src.Enabled
	}

	if meta.IsDefined(section, "bits") {
		dst.Bits = src.Bits
	}

	if meta.IsDefined(section, "lbs_per_site") {
		dst.LBsPerSite = src.LBsPerSite
	}

	if meta.IsDefined(section, "max_width") {
		dst.MaxWidth = src.MaxWidth
	}
}
