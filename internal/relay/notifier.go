package relay

import (
	"context"
	"fmt"
	"log"

	"github.com/cexll/boardrelay/internal/monday"
)

// ItemUserFetcher looks up an item and a user by id.
type ItemUserFetcher interface {
	GetItemAndUser(ctx context.Context, itemID, userID string) (*monday.Item, *monday.User, error)
}

// MessagePoster delivers a text message to a chat channel.
type MessagePoster interface {
	Post(ctx context.Context, text string) error
}

// Notifier announces that a user started working on an item.
type Notifier struct {
	api    ItemUserFetcher
	poster MessagePoster
}

func NewNotifier(api ItemUserFetcher, poster MessagePoster) *Notifier {
	return &Notifier{api: api, poster: poster}
}

// FormatStartedMessage renders the chat message for a started item.
func FormatStartedMessage(userName, itemName string) string {
	return fmt.Sprintf("User `%s` started working on Item `%s`", userName, itemName)
}

// Notify looks up the names for userID and itemID and posts the message.
func (n *Notifier) Notify(ctx context.Context, userID, itemID string) error {
	if userID == "" {
		return missingField("userId")
	}
	if itemID == "" {
		return missingField("itemId")
	}

	item, user, err := n.api.GetItemAndUser(ctx, itemID, userID)
	if err != nil {
		return &DownstreamError{Op: OpLookup, Err: err}
	}
	if item == nil {
		return ErrItemNotFound
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := n.poster.Post(ctx, FormatStartedMessage(user.Name, item.Name)); err != nil {
		return &DownstreamError{Op: OpDeliver, Err: err}
	}

	log.Printf("[Relay] Notified: user %s started item %s", userID, itemID)
	return nil
}
