package relay

import (
	"context"
	"log"

	"github.com/cexll/boardrelay/internal/monday"
	"github.com/cexll/boardrelay/internal/progress"
)

// ItemTreeFetcher resolves the item whose subitems drive the progress value.
type ItemTreeFetcher interface {
	GetItemTree(ctx context.Context, id string) (*monday.Item, error)
}

// ColumnWriter writes a plain value into an item column.
type ColumnWriter interface {
	ChangeSimpleColumnValue(ctx context.Context, boardID, itemID, columnID, value string) error
}

// BoardAPI is the subset of the GraphQL client the updater needs.
type BoardAPI interface {
	ItemTreeFetcher
	ColumnWriter
}

// UpdateResult describes a computed (and possibly written) parent status.
type UpdateResult struct {
	Progress     int                   `json:"progress"`
	ParentStatus progress.ParentStatus `json:"parentStatus"`
	BoardID      string                `json:"-"`
	ItemID       string                `json:"-"`
	ColumnID     string                `json:"-"`
	Message      string                `json:"message"`
}

// Updater recomputes a parent item's status from its subitems.
type Updater struct {
	api    BoardAPI
	policy progress.Policy
}

// NewUpdater creates an updater. A nil policy selects the color-label policy.
func NewUpdater(api BoardAPI, policy progress.Policy) *Updater {
	if policy == nil {
		policy = progress.ColorLabelPolicy{}
	}
	return &Updater{api: api, policy: policy}
}

// Policy returns the aggregation policy in use.
func (u *Updater) Policy() progress.Policy {
	return u.policy
}

// Preview computes the parent status for the item without writing it.
func (u *Updater) Preview(ctx context.Context, itemID string) (*UpdateResult, error) {
	if itemID == "" {
		return nil, missingField("itemId")
	}

	parent, err := u.api.GetItemTree(ctx, itemID)
	if err != nil {
		return nil, &DownstreamError{Op: OpLookup, Err: err}
	}
	if parent == nil {
		return nil, ErrItemNotFound
	}

	value := u.policy.Compute(parent.Subitems)
	status := progress.Classify(value)

	column, ok := statusColumn(parent)
	if !ok {
		return nil, ErrStatusColumnNotFound
	}

	result := &UpdateResult{
		Progress:     value,
		ParentStatus: status,
		ItemID:       parent.ID,
		ColumnID:     column.ID,
	}
	if parent.Board != nil {
		result.BoardID = parent.Board.ID
	}
	return result, nil
}

// Update computes the parent status and writes it into the parent's status column.
func (u *Updater) Update(ctx context.Context, itemID string) (*UpdateResult, error) {
	result, err := u.Preview(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := u.api.ChangeSimpleColumnValue(ctx, result.BoardID, result.ItemID, result.ColumnID, result.ParentStatus.String()); err != nil {
		return nil, &DownstreamError{Op: OpWrite, Err: err}
	}

	log.Printf("[Relay] Updated item %s column %s: progress=%d status=%q policy=%s",
		result.ItemID, result.ColumnID, result.Progress, result.ParentStatus, u.policy.Name())
	result.Message = "Parent status updated successfully."
	return result, nil
}

// statusColumn picks the parent's first column with an id and a label color.
func statusColumn(item *monday.Item) (monday.ColumnValue, bool) {
	for _, col := range item.ColumnValues {
		if col.ID != "" && col.Color() != "" {
			return col, true
		}
	}
	return monday.ColumnValue{}, false
}
