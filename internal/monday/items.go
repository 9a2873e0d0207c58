package monday

import (
	"context"
	"fmt"
)

const statusValueFields = `
      id
      text
      ... on StatusValue {
        label
        label_style {
          color
        }
      }`

const itemTreeQuery = `
query ItemTree($ids: [ID!]) {
  items(ids: $ids) {
    id
    name
    board {
      id
      name
    }
    parent_item {
      id
    }
    column_values {` + statusValueFields + `
    }
    subitems {
      id
      name
      column_values {` + statusValueFields + `
      }
    }
  }
}`

const itemAndUserQuery = `
query ItemAndUser($itemIds: [ID!], $userIds: [ID!]) {
  items(ids: $itemIds) {
    id
    name
  }
  users(ids: $userIds) {
    id
    name
  }
}`

const changeSimpleColumnValueMutation = `
mutation ChangeStatus($boardId: ID!, $itemId: ID!, $columnId: String!, $value: String) {
  change_simple_column_value(board_id: $boardId, item_id: $itemId, column_id: $columnId, value: $value) {
    id
  }
}`

// GetItem fetches a single item with its board, parent reference, status
// column values and subitems. It returns nil, nil when no item matches.
func (c *Client) GetItem(ctx context.Context, id string) (*Item, error) {
	var out struct {
		Items []Item `json:"items"`
	}
	if err := c.Do(ctx, itemTreeQuery, map[string]any{"ids": []string{id}}, &out); err != nil {
		return nil, fmt.Errorf("fetch item %s: %w", id, err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	return &out.Items[0], nil
}

// GetItemTree resolves the item whose subitems should be aggregated. For a
// subitem that is its parent; an item without a parent is returned as is.
// It returns nil, nil when either lookup comes back empty.
func (c *Client) GetItemTree(ctx context.Context, id string) (*Item, error) {
	item, err := c.GetItem(ctx, id)
	if err != nil || item == nil {
		return item, err
	}
	if item.ParentItem == nil || item.ParentItem.ID == "" {
		return item, nil
	}
	return c.GetItem(ctx, item.ParentItem.ID)
}

// GetItemAndUser looks up an item's and a user's names in one request.
// Either result is nil when not found.
func (c *Client) GetItemAndUser(ctx context.Context, itemID, userID string) (*Item, *User, error) {
	var out struct {
		Items []Item `json:"items"`
		Users []User `json:"users"`
	}
	vars := map[string]any{
		"itemIds": []string{itemID},
		"userIds": []string{userID},
	}
	if err := c.Do(ctx, itemAndUserQuery, vars, &out); err != nil {
		return nil, nil, fmt.Errorf("fetch item %s and user %s: %w", itemID, userID, err)
	}

	var item *Item
	if len(out.Items) > 0 {
		item = &out.Items[0]
	}
	var user *User
	if len(out.Users) > 0 {
		user = &out.Users[0]
	}
	return item, user, nil
}

// ChangeSimpleColumnValue writes value into a column of an item.
func (c *Client) ChangeSimpleColumnValue(ctx context.Context, boardID, itemID, columnID, value string) error {
	vars := map[string]any{
		"boardId":  boardID,
		"itemId":   itemID,
		"columnId": columnID,
		"value":    value,
	}
	if err := c.Do(ctx, changeSimpleColumnValueMutation, vars, nil); err != nil {
		return fmt.Errorf("change column %s on item %s: %w", columnID, itemID, err)
	}
	return nil
}
