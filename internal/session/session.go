// Package session owns the current identity and the user-owned remote state
// synced at sign-in: favorites, cart, and profile. Mutations apply locally
// first and are then written through to the backend; a failed write never
// rolls the local state back.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"trippcouch/pkg/auth"
	"trippcouch/pkg/domain"
	"trippcouch/pkg/store"
)

const (
	colUsers  = "users"
	colAdmins = "admins"
	colOrders = "orders"
)

// TotalPending is the order total placeholder until pricing is done manually.
const TotalPending = "Calculating..."

// Session tracks the signed-in user and their favorites, cart, and profile.
// Favorites/cart/profile are fetched once at sign-in and thereafter mutated
// only through this component, not re-synced from remote.
type Session struct {
	store store.Store
	auth  auth.Authenticator
	log   *slog.Logger

	mu        sync.RWMutex
	user      *auth.User
	admin     bool
	favorites []string
	cart      []domain.CartItem
	profile   domain.UserProfile
}

// New constructs a signed-out session.
func New(st store.Store, au auth.Authenticator, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{store: st, auth: au, log: log}
}

// userDoc is the stored shape of a user account document.
type userDoc struct {
	Name      string            `json:"name" firestore:"name"`
	Phone     string            `json:"phone" firestore:"phone"`
	Email     string            `json:"email" firestore:"email"`
	Favorites []string          `json:"favorites" firestore:"favorites"`
	Cart      []domain.CartItem `json:"cart" firestore:"cart"`
}

// Login authenticates and runs the session bootstrap.
func (s *Session) Login(ctx context.Context, email, password string) error {
	user, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	s.bootstrap(ctx, user)
	return nil
}

// Signup creates a new identity and writes its initial profile document with
// empty favorites and cart.
func (s *Session) Signup(ctx context.Context, email, password, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	user, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	profile := map[string]any{
		"name":      name,
		"email":     email,
		"phone":     "",
		"favorites": []any{},
		"cart":      []any{},
	}
	if err := s.store.Merge(ctx, colUsers, user.UID, profile); err != nil {
		s.log.Error("failed to create profile on signup", "uid", user.UID, "err", err)
	}
	s.bootstrap(ctx, user)
	return nil
}

// Restore rebuilds the session from a previously issued ID token, without a
// provider roundtrip. The token's signature is not re-verified here; the
// provider authenticated the user when it issued the token. Expired tokens
// are rejected and the caller must sign in again.
func (s *Session) Restore(ctx context.Context, idToken string) error {
	claims, err := auth.TokenClaims(idToken)
	if err != nil {
		return err
	}
	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(time.Now()) {
		return ErrTokenExpired
	}
	s.bootstrap(ctx, auth.User{
		UID:       claims.UID,
		Email:     claims.Email,
		IDToken:   idToken,
		ExpiresAt: claims.ExpiresAt,
	})
	return nil
}

// Logout clears the local session. Nothing remote is touched.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.admin = false
	s.favorites = nil
	s.cart = nil
	s.profile = domain.UserProfile{}
}

// bootstrap runs once per sign-in: admin-registry lookup, then fetch or
// lazily initialize the profile document. An admin lookup failure resolves
// to non-admin; a profile fetch failure leaves empty defaults. Neither
// blocks the sign-in.
func (s *Session) bootstrap(ctx context.Context, user auth.User) {
	admin := false
	if _, err := s.store.Get(ctx, colAdmins, user.UID); err == nil {
		admin = true
	} else if !errors.Is(err, store.ErrNotFound) {
		s.log.Error("failed to verify admin status", "uid", user.UID, "err", err)
	}

	profile := domain.UserProfile{Email: user.Email}
	var favorites []string
	var cart []domain.CartItem

	doc, err := s.store.Get(ctx, colUsers, user.UID)
	switch {
	case err == nil:
		var u userDoc
		if derr := doc.DataTo(&u); derr != nil {
			s.log.Error("failed to decode profile", "uid", user.UID, "err", derr)
		} else {
			favorites = u.Favorites
			cart = u.Cart
			profile.Name = u.Name
			profile.Phone = u.Phone
		}
	case errors.Is(err, store.ErrNotFound):
		init := map[string]any{
			"name":      "",
			"phone":     "",
			"email":     user.Email,
			"favorites": []any{},
			"cart":      []any{},
		}
		if merr := s.store.Merge(ctx, colUsers, user.UID, init); merr != nil {
			s.log.Error("failed to initialize profile", "uid", user.UID, "err", merr)
		}
	default:
		s.log.Error("failed to fetch profile", "uid", user.UID, "err", err)
	}

	s.mu.Lock()
	s.user = &user
	s.admin = admin
	s.favorites = favorites
	s.cart = cart
	s.profile = profile
	s.mu.Unlock()
}

// User returns the signed-in identity, or nil.
func (s *Session) User() *auth.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool { return s.User() != nil }

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

func (s *Session) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.favorites))
	copy(out, s.favorites)
	return out
}

func (s *Session) Cart() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

func (s *Session) Profile() domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// ToggleFavorite flips membership locally, then issues the matching atomic
// array update. Toggling twice restores the original membership. Without a
// session it silently does nothing.
func (s *Session) ToggleFavorite(ctx context.Context, itemID string) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil
	}
	uid := s.user.UID
	wasFavorite := false
	for _, id := range s.favorites {
		if id == itemID {
			wasFavorite = true
			break
		}
	}
	if wasFavorite {
		kept := s.favorites[:0]
		for _, id := range s.favorites {
			if id != itemID {
				kept = append(kept, id)
			}
		}
		s.favorites = kept
	} else {
		s.favorites = append(s.favorites, itemID)
	}
	s.mu.Unlock()

	var err error
	if wasFavorite {
		err = s.store.ArrayRemove(ctx, colUsers, uid, "favorites", itemID)
	} else {
		err = s.store.ArrayUnion(ctx, colUsers, uid, "favorites", itemID)
	}
	if err != nil {
		s.log.Error("failed to persist favorite toggle", "uid", uid, "item", itemID, "err", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// AddToCart copies the catalog card into a new cart entry and writes the
// whole cart array through. Catalog edits after this point do not affect the
// entry. Local state is kept even when the remote write fails.
func (s *Session) AddToCart(ctx context.Context, item domain.AdCard) (domain.CartItem, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return domain.CartItem{}, ErrNotAuthenticated
	}
	uid := s.user.UID
	entry := domain.CartItem{
		AdCard:    item,
		CartID:    uuid.NewString(),
		DateAdded: time.Now().UnixMilli(),
	}
	s.cart = append(s.cart, entry)
	cart := make([]domain.CartItem, len(s.cart))
	copy(cart, s.cart)
	s.mu.Unlock()

	if err := s.writeCart(ctx, uid, cart); err != nil {
		return entry, err
	}
	return entry, nil
}

// RemoveFromCart drops the entry locally and remotely. Without a session it
// silently does nothing.
func (s *Session) RemoveFromCart(ctx context.Context, cartID string) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil
	}
	uid := s.user.UID
	kept := s.cart[:0]
	for _, it := range s.cart {
		if it.CartID != cartID {
			kept = append(kept, it)
		}
	}
	s.cart = kept
	cart := make([]domain.CartItem, len(s.cart))
	copy(cart, s.cart)
	s.mu.Unlock()

	return s.writeCart(ctx, uid, cart)
}

// ClearCart empties the cart locally and remotely.
func (s *Session) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil
	}
	uid := s.user.UID
	s.cart = nil
	s.mu.Unlock()

	return s.writeCart(ctx, uid, nil)
}

// Checkout builds one Order from the entire current cart and then clears the
// cart. The two remote writes are sequential, not transactional: when order
// creation succeeds and the cart clear fails, the order id is returned
// together with the error and no compensation happens; the remote cart then
// duplicates an already-placed order.
func (s *Session) Checkout(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.user == nil || len(s.cart) == 0 {
		s.mu.Unlock()
		return "", nil
	}
	uid := s.user.UID
	email := s.user.Email
	name := s.profile.Name
	if name == "" {
		name = email
	}
	items := make([]domain.CartItem, len(s.cart))
	copy(items, s.cart)
	s.mu.Unlock()

	orderID, err := s.store.Add(ctx, colOrders, map[string]any{
		"userId":      uid,
		"userName":    name,
		"userEmail":   email,
		"items":       items,
		"status":      string(domain.OrderPending),
		"totalAmount": TotalPending,
		"dateOrdered": store.ServerTimestamp,
	})
	if err != nil {
		s.log.Error("failed to place order", "uid", uid, "err", err)
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.ClearCart(ctx); err != nil {
		s.log.Error("order placed but cart clear failed", "uid", uid, "order", orderID, "err", err)
		return orderID, err
	}
	return orderID, nil
}

// ProfilePatch names the profile fields to change; nil fields are left as
// they are.
type ProfilePatch struct {
	Name  *string
	Phone *string
	Email *string
}

// UpdateProfile merges the patch into local state and writes only the given
// fields through.
func (s *Session) UpdateProfile(ctx context.Context, patch ProfilePatch) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil
	}
	uid := s.user.UID
	fields := make(map[string]any)
	if patch.Name != nil {
		s.profile.Name = *patch.Name
		fields["name"] = *patch.Name
	}
	if patch.Phone != nil {
		s.profile.Phone = *patch.Phone
		fields["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		s.profile.Email = *patch.Email
		fields["email"] = *patch.Email
	}
	s.mu.Unlock()
	if len(fields) == 0 {
		return nil
	}

	if err := s.store.Update(ctx, colUsers, uid, fields); err != nil {
		s.log.Error("failed to persist profile", "uid", uid, "err", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// CartTotalEstimate sums the digits of the display prices for a rough
// pre-checkout total. Pricing proper happens manually after the order.
func (s *Session) CartTotalEstimate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, it := range s.cart {
		if v, err := strconv.ParseFloat(digitsOnly(it.Price), 64); err == nil {
			total += v
		}
	}
	return total
}

func digitsOnly(price string) string {
	var b strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *Session) writeCart(ctx context.Context, uid string, cart []domain.CartItem) error {
	if cart == nil {
		cart = []domain.CartItem{}
	}
	if err := s.store.Update(ctx, colUsers, uid, map[string]any{"cart": cart}); err != nil {
		s.log.Error("failed to persist cart", "uid", uid, "err", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
