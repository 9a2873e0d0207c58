package progress

import (
	"maps"

	"github.com/cexll/boardrelay/internal/monday"
)

// StatusColumnID is the column id the status-weight policy reads.
const StatusColumnID = "status"

// DefaultStatusWeights maps status text to its completion weight.
func DefaultStatusWeights() map[string]int {
	return map[string]int{
		"Done":          100,
		"Working On It": 50,
		"Stuck":         0,
	}
}

// StatusWeightPolicy averages per-subitem weights looked up by the text of
// the "status" column. Unknown statuses weigh 0.
type StatusWeightPolicy struct {
	weights map[string]int
}

// NewStatusWeightPolicy merges overrides onto DefaultStatusWeights. Keys in
// overrides replace the defaults, all other defaults are kept.
func NewStatusWeightPolicy(overrides map[string]int) StatusWeightPolicy {
	weights := DefaultStatusWeights()
	maps.Copy(weights, overrides)
	return StatusWeightPolicy{weights: weights}
}

func (p StatusWeightPolicy) Name() string { return PolicyStatusWeight }

// Weights returns a copy of the effective weight table.
func (p StatusWeightPolicy) Weights() map[string]int {
	return maps.Clone(p.weights)
}

func (p StatusWeightPolicy) Compute(subitems []monday.Item) int {
	if len(subitems) == 0 {
		return 0
	}

	weights := p.weights
	if weights == nil {
		weights = DefaultStatusWeights()
	}

	sum := 0
	for _, sub := range subitems {
		col, ok := sub.Column(StatusColumnID)
		if !ok {
			continue
		}
		sum += weights[col.Text]
	}

	return round(float64(sum) / float64(len(subitems)*100) * 100)
}
