package arch

import (
	"fmt"
	"strconv"
	"strings"
)

// NumParams is the number of positional values accepted by ApplyParams.
const NumParams = 10

// ParamsUsage names the positional values accepted by ApplyParams.
const ParamsUsage = "has_lutram lutram_fraction " +
	"has_ram1 ram1_bits lbs_per_ram1 max_width_ram1 " +
	"has_ram2 ram2_bits lbs_per_ram2 max_width_ram2"

// ApplyParams overrides base with the ten positional architecture values of
// the classic command line (see ParamsUsage). A value that cannot be parsed
// keeps the value from base. A LUTRAM fraction outside [0, 1] also keeps the
// base value and is reported through warn.
func ApplyParams(
	base Architecture,
	params []string,
	warn func(msg string),
) (Architecture, error) {
	if len(params) < NumParams {
		return Architecture{}, fmt.Errorf(
			"expected %d parameters (%s), got %d",
			NumParams, ParamsUsage, len(params))
	}

	a := base

	setBool(params[0], &a.LUTRAMEnabled)

	if v, err := strconv.ParseFloat(params[1], 64); err == nil {
		if v >= 0 && v <= 1 {
			a.LUTRAMFraction = v
		} else if warn != nil {
			warn(fmt.Sprintf(
				"lutram_fraction %g is not between 0 and 1, keeping %g",
				v, a.LUTRAMFraction))
		}
	}

	setBool(params[2], &a.M8K.Enabled)
	setInt(params[3], &a.M8K.Bits)
	setInt(params[4], &a.M8K.LBsPerSite)
	setInt(params[5], &a.M8K.MaxWidth)

	setBool(params[6], &a.M128K.Enabled)
	setInt(params[7], &a.M128K.Bits)
	setInt(params[8], &a.M128K.LBsPerSite)
	setInt(params[9], &a.M128K.MaxWidth)

	return a, nil
}

func setBool(s string, dst *bool) {
	switch strings.ToLower(s) {
	case "true", "1":
		*dst = true
	case "false", "0":
		*dst = false
	}
}

func setInt(s string, dst *int) {
	if v, err := strconv.Atoi(s); err == nil {
		*dst = v
	}
}
