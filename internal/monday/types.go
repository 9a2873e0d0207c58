package monday

// Item is a board item (or subitem) as returned by the items query.
type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Board        *Board        `json:"board,omitempty"`
	ParentItem   *ItemRef      `json:"parent_item,omitempty"`
	ColumnValues []ColumnValue `json:"column_values"`
	Subitems     []Item        `json:"subitems,omitempty"`
}

// ItemRef is a bare reference to another item.
type ItemRef struct {
	ID string `json:"id"`
}

type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ColumnValue is a typed field on an item. Label and LabelStyle are only
// populated for status columns.
type ColumnValue struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	Label      string      `json:"label,omitempty"`
	LabelStyle *LabelStyle `json:"label_style,omitempty"`
}

type LabelStyle struct {
	Color  string `json:"color"`
	Border string `json:"border,omitempty"`
}

// Color returns the label color, or "" when the column carries none.
func (c ColumnValue) Color() string {
	if c.LabelStyle == nil {
		return ""
	}
	return c.LabelStyle.Color
}

// Column returns the first column value with the given id.
func (i Item) Column(id string) (ColumnValue, bool) {
	for _, col := range i.ColumnValues {
		if col.ID == id {
			return col, true
		}
	}
	return ColumnValue{}, false
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
