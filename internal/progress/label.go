package progress

import (
	"strconv"
	"strings"
)

// LabelSeparator splits a status label into its name and percentage parts.
const LabelSeparator = "||"

// Label is a status label of the form "<name>||<percentage>%".
type Label struct {
	Name       string
	Percentage int
}

// ParseLabel splits a status label such as "In Review || 60%" into its name
// and percentage. ok is false when the separator is missing or the
// percentage part is not an integer; Name is populated either way.
func ParseLabel(label string) (Label, bool) {
	parts := strings.Split(label, LabelSeparator)
	parsed := Label{Name: strings.TrimSpace(parts[0])}
	if len(parts) < 2 {
		return parsed, false
	}

	raw := strings.TrimSpace(parts[1])
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "%"))
	pct, err := strconv.Atoi(raw)
	if err != nil {
		return parsed, false
	}
	parsed.Percentage = pct
	return parsed, true
}

// HasPercentage reports whether label uses the percentage convention.
func HasPercentage(label string) bool {
	return label != "" && strings.Contains(label, LabelSeparator)
}
