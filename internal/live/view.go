// Package live projects remote collections into in-memory lists that track
// the backend in real time: chat sessions and messages, orders, and
// consultation leads. Every snapshot replaces the whole list; mutations are
// written through and come back via the subscription, never applied locally.
package live

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"trippcouch/pkg/domain"
	"trippcouch/pkg/store"
)

const (
	colChats         = "chats"
	colOrders        = "orders"
	colConsultations = "consultations"
)

// View maintains the current result set of one collection query. Items and
// Err are read under the same lock, so an error state and the last good list
// are always observed together.
type View[T any] struct {
	store  store.Store
	log    *slog.Logger
	query  store.Query
	decode func(store.Doc) (T, error)
	post   func([]T) // optional client-side reordering

	mu    sync.RWMutex
	items []T
	err   error
}

func newView[T any](st store.Store, log *slog.Logger, q store.Query, decode func(store.Doc) (T, error), post func([]T)) *View[T] {
	if log == nil {
		log = slog.Default()
	}
	return &View[T]{store: st, log: log, query: q, decode: decode, post: post}
}

// Watch consumes snapshots until ctx is done. A snapshot error (a revoked
// permission, say) sets the error state and keeps the last good list; the
// next successful snapshot clears it.
func (v *View[T]) Watch(ctx context.Context) {
	for ev := range v.store.WatchQuery(ctx, v.query) {
		if ev.Err != nil {
			v.log.Error("collection stream error", "path", v.query.Path, "err", ev.Err)
			v.mu.Lock()
			v.err = ev.Err
			v.mu.Unlock()
			continue
		}
		items := make([]T, 0, len(ev.Docs))
		for _, doc := range ev.Docs {
			item, err := v.decode(doc)
			if err != nil {
				v.log.Error("failed to decode document", "path", v.query.Path, "id", doc.ID(), "err", err)
				continue
			}
			items = append(items, item)
		}
		if v.post != nil {
			v.post(items)
		}
		v.mu.Lock()
		v.items = items
		v.err = nil
		v.mu.Unlock()
	}
}

// Items returns a copy of the current list.
func (v *View[T]) Items() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

// Err reports the current stream error, nil after a successful snapshot.
func (v *View[T]) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

// NewSessionsView lists every chat session, most recently active first. Admin
// surface.
func NewSessionsView(st store.Store, log *slog.Logger) *View[domain.ChatSession] {
	q := store.Query{Path: colChats, OrderBy: "lastUpdated", Desc: true}
	return newView(st, log, q, func(d store.Doc) (domain.ChatSession, error) {
		var s domain.ChatSession
		if err := d.DataTo(&s); err != nil {
			return domain.ChatSession{}, err
		}
		s.ID = d.ID()
		return s, nil
	}, nil)
}

// NewMessagesView lists one conversation, oldest first.
func NewMessagesView(st store.Store, log *slog.Logger, chatID string) *View[domain.ChatMessage] {
	q := store.Query{Path: colChats + "/" + chatID + "/messages", OrderBy: "createdAt"}
	return newView(st, log, q, func(d store.Doc) (domain.ChatMessage, error) {
		var m domain.ChatMessage
		if err := d.DataTo(&m); err != nil {
			return domain.ChatMessage{}, err
		}
		m.ID = d.ID()
		return m, nil
	}, nil)
}

func decodeOrder(d store.Doc) (domain.Order, error) {
	var o domain.Order
	if err := d.DataTo(&o); err != nil {
		return domain.Order{}, err
	}
	o.ID = d.ID()
	return o, nil
}

// NewAdminOrdersView lists every order, newest first, ordered by the backend.
func NewAdminOrdersView(st store.Store, log *slog.Logger) *View[domain.Order] {
	q := store.Query{Path: colOrders, OrderBy: "dateOrdered", Desc: true}
	return newView(st, log, q, decodeOrder, nil)
}

// NewUserOrdersView lists one user's orders. The backend only filters; the
// newest-first ordering is applied here, after decoding.
func NewUserOrdersView(st store.Store, log *slog.Logger, userID string) *View[domain.Order] {
	q := store.Query{Path: colOrders, Where: []store.Cond{{Field: "userId", Op: "==", Value: userID}}}
	return newView(st, log, q, decodeOrder, func(orders []domain.Order) {
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].DateOrdered.After(orders[j].DateOrdered)
		})
	})
}

// NewLeadsView lists consultation requests, newest first. Admin surface.
func NewLeadsView(st store.Store, log *slog.Logger) *View[domain.Consultation] {
	q := store.Query{Path: colConsultations, OrderBy: "createdAt", Desc: true}
	return newView(st, log, q, func(d store.Doc) (domain.Consultation, error) {
		var c domain.Consultation
		if err := d.DataTo(&c); err != nil {
			return domain.Consultation{}, err
		}
		c.ID = d.ID()
		return c, nil
	}, nil)
}

// SetOrderStatus moves an order through its workflow. The change is not
// applied to any view directly; it arrives through the subscription.
func SetOrderStatus(ctx context.Context, st store.Store, orderID string, status domain.OrderStatus) error {
	return st.Update(ctx, colOrders, orderID, map[string]any{"status": string(status)})
}

// SetLeadStatus updates a consultation lead's workflow state.
func SetLeadStatus(ctx context.Context, st store.Store, leadID string, status domain.LeadStatus) error {
	return st.Update(ctx, colConsultations, leadID, map[string]any{"status": string(status)})
}

// DeleteLead removes a consultation lead permanently.
func DeleteLead(ctx context.Context, st store.Store, leadID string) error {
	return st.Delete(ctx, colConsultations, leadID)
}

// SubmitConsultation files a contact-form lead. Submitters are anonymous;
// the lead starts in "New" with a backend-assigned creation time.
func SubmitConsultation(ctx context.Context, st store.Store, firstName, lastName, email, phone, message string) (string, error) {
	return st.Add(ctx, colConsultations, map[string]any{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"phone":     phone,
		"message":   message,
		"status":    string(domain.LeadNew),
		"createdAt": store.ServerTimestamp,
	})
}
