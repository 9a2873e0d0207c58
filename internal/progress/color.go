package progress

import "github.com/cexll/boardrelay/internal/monday"

// ColorTable maps a status label color to the percentage seen on a
// "<name>||<pct>%" label of that color.
type ColorTable map[string]int

// BuildColorTable collects color to percentage pairs from every subitem
// column that carries both a percentage label and a label color. A later
// label of the same color overwrites an earlier one.
func BuildColorTable(subitems []monday.Item) ColorTable {
	table := ColorTable{}
	for _, sub := range subitems {
		for _, col := range sub.ColumnValues {
			color := col.Color()
			if color == "" || !HasPercentage(col.Label) {
				continue
			}
			parsed, ok := ParseLabel(col.Label)
			if !ok {
				continue
			}
			table[color] = parsed.Percentage
		}
	}
	return table
}

// ColorLabelPolicy derives each subitem's percentage from the color of its
// first colored column, using the table built from the subitems' own labels.
// This keeps working when status options are renamed, as long as at least one
// subitem shows the percentage label for each color in use.
type ColorLabelPolicy struct{}

func (ColorLabelPolicy) Name() string { return PolicyColorLabel }

func (ColorLabelPolicy) Compute(subitems []monday.Item) int {
	table := BuildColorTable(subitems)

	total, counted := 0, 0
	for _, sub := range subitems {
		for _, col := range sub.ColumnValues {
			if color := col.Color(); color != "" {
				total += table[color]
				break
			}
		}
		counted++
	}

	if counted == 0 {
		return 0
	}
	return round(float64(total) / float64(counted))
}
