package progress

import (
	"fmt"
	"math"

	"github.com/cexll/boardrelay/internal/monday"
)

// Policy names accepted by PolicyByName.
const (
	PolicyColorLabel   = "color-label"
	PolicyStatusWeight = "status-weight"
)

// Policy computes a parent's completion percentage (0-100) from its subitems.
type Policy interface {
	Name() string
	Compute(subitems []monday.Item) int
}

// PolicyByName returns the named policy. weights only applies to the
// status-weight policy and may be nil. An empty name selects color-label.
func PolicyByName(name string, weights map[string]int) (Policy, error) {
	switch name {
	case "", PolicyColorLabel:
		return ColorLabelPolicy{}, nil
	case PolicyStatusWeight:
		return NewStatusWeightPolicy(weights), nil
	default:
		return nil, fmt.Errorf("unknown progress policy %q (must be %q or %q)", name, PolicyColorLabel, PolicyStatusWeight)
	}
}

// round rounds half away from zero for non-negative values, which is all
// we ever feed it.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
