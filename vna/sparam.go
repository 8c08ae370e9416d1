package vna

import "fmt"

// SParam identifies one of the four scattering parameters a two-port
// analyzer can measure.
type SParam string

const (
	S11 SParam = "S11"
	S21 SParam = "S21"
	S12 SParam = "S12"
	S22 SParam = "S22"
)

// measParamPrefix is the naming convention for measurement parameters
// defined on the instrument: a constant prefix plus the S-parameter name.
const measParamPrefix = "parameter_"

// AllSParams returns the four scattering parameters in canonical order.
func AllSParams() []SParam {
	return []SParam{S11, S21, S12, S22}
}

// ParseSParam converts a string into an SParam, rejecting unknown names.
func ParseSParam(s string) (SParam, error) {
	switch SParam(s) {
	case S11, S21, S12, S22:
		return SParam(s), nil
	default:
		return "", fmt.Errorf("unknown scattering parameter %q", s)
	}
}

// measName returns the instrument-side measurement parameter name,
// e.g. "parameter_S11".
func (p SParam) measName() string {
	return measParamPrefix + string(p)
}

func (p SParam) String() string { return string(p) }
