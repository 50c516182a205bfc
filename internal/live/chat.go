package live

import (
	"context"
	"fmt"
	"log/slog"

	"trippcouch/pkg/store"
)

// adminSenderID marks messages sent from the studio side of a conversation.
const adminSenderID = "admin"

// Chat sends messages into per-user conversations. Each send is two writes:
// append the message, then merge the session summary so the session list can
// show a preview without reading the message collection. The summary merge
// also creates the session document on the first message.
type Chat struct {
	store store.Store
	log   *slog.Logger
}

func NewChat(st store.Store, log *slog.Logger) *Chat {
	if log == nil {
		log = slog.Default()
	}
	return &Chat{store: st, log: log}
}

// SendUserMessage appends a message to the user's own conversation and
// refreshes the session summary with the user's identity.
func (c *Chat) SendUserMessage(ctx context.Context, userID, userName, text string) error {
	if err := c.appendMessage(ctx, userID, userID, false, text); err != nil {
		return err
	}
	return c.mergeSummary(ctx, userID, text, map[string]any{
		"userName": userName,
		"userId":   userID,
	})
}

// SendAdminReply appends a studio reply to the given conversation. The
// session preview carries an "Admin: " prefix so the list shows who spoke
// last.
func (c *Chat) SendAdminReply(ctx context.Context, chatID, text string) error {
	if err := c.appendMessage(ctx, chatID, adminSenderID, true, text); err != nil {
		return err
	}
	return c.mergeSummary(ctx, chatID, "Admin: "+text, nil)
}

// appendMessage is step one of a send. A failure here means nothing was
// written.
func (c *Chat) appendMessage(ctx context.Context, chatID, senderID string, isAdmin bool, text string) error {
	_, err := c.store.Add(ctx, colChats+"/"+chatID+"/messages", map[string]any{
		"text":      text,
		"senderId":  senderID,
		"isAdmin":   isAdmin,
		"createdAt": store.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// mergeSummary is step two. When it fails, the message from step one stays
// in the conversation; only the session preview is stale.
func (c *Chat) mergeSummary(ctx context.Context, chatID, preview string, extra map[string]any) error {
	fields := map[string]any{
		"lastMessage": preview,
		"lastUpdated": store.ServerTimestamp,
	}
	for k, v := range extra {
		fields[k] = v
	}
	if err := c.store.Merge(ctx, colChats, chatID, fields); err != nil {
		c.log.Error("message stored but summary update failed", "chat", chatID, "err", err)
		return fmt.Errorf("update session summary: %w", err)
	}
	return nil
}
