package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"trippcouch/pkg/auth"
	"trippcouch/pkg/domain"
	"trippcouch/pkg/store"
)

func signedToken(t *testing.T, uid, email string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func newTestSession(t *testing.T) (*Session, *store.Memory, *auth.Memory) {
	t.Helper()
	st := store.NewMemory()
	au := auth.NewMemory()
	return New(st, au, nil), st, au
}

func signedUp(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Signup(context.Background(), "user@example.com", "secret1", "Asha"); err != nil {
		t.Fatalf("signup: %v", err)
	}
}

func TestSignupInitializesProfile(t *testing.T) {
	s, st, _ := newTestSession(t)
	signedUp(t, s)

	user := s.User()
	if user == nil {
		t.Fatalf("expected signed-in user")
	}
	doc, err := st.Get(context.Background(), "users", user.UID)
	if err != nil {
		t.Fatalf("profile doc: %v", err)
	}
	var u userDoc
	if err := doc.DataTo(&u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.Name != "Asha" || u.Email != "user@example.com" {
		t.Fatalf("unexpected profile %+v", u)
	}
	if len(u.Favorites) != 0 || len(u.Cart) != 0 {
		t.Fatalf("expected empty favorites and cart, got %+v", u)
	}
	if got := s.Profile().Name; got != "Asha" {
		t.Fatalf("expected local profile name Asha, got %q", got)
	}
}

func TestSignupRequiresName(t *testing.T) {
	s, _, _ := newTestSession(t)
	err := s.Signup(context.Background(), "user@example.com", "secret1", "  ")
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	s, _, _ := newTestSession(t)
	err := s.Login(context.Background(), "ghost@example.com", "nope")
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("failed login must not create a session")
	}
}

func TestLoginLazilyCreatesMissingProfile(t *testing.T) {
	s, st, au := newTestSession(t)
	// Account exists at the provider but has no profile document.
	user, err := au.SignUp(context.Background(), "old@example.com", "secret1")
	if err != nil {
		t.Fatalf("provision account: %v", err)
	}
	if err := s.Login(context.Background(), "old@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := st.Get(context.Background(), "users", user.UID); err != nil {
		t.Fatalf("expected profile document to be created, got %v", err)
	}
}

func TestAdminBootstrap(t *testing.T) {
	s, st, au := newTestSession(t)
	user, err := au.SignUp(context.Background(), "boss@example.com", "secret1")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if err := st.Set(context.Background(), "admins", user.UID, map[string]any{}); err != nil {
		t.Fatalf("seed admin registry: %v", err)
	}
	if err := s.Login(context.Background(), "boss@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !s.IsAdmin() {
		t.Fatalf("expected admin flag from registry entry")
	}
}

func TestAdminLookupFailsOpenToNonAdmin(t *testing.T) {
	s, st, au := newTestSession(t)
	user, err := au.SignUp(context.Background(), "boss@example.com", "secret1")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if err := st.Set(context.Background(), "admins", user.UID, map[string]any{}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// The registry entry exists, but the lookup is denied. The session must
	// still come up, as a non-admin.
	st.Deny("admins")
	if err := s.Login(context.Background(), "boss@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.IsAdmin() {
		t.Fatalf("denied registry lookup must resolve to non-admin")
	}
	if !s.IsAuthenticated() {
		t.Fatalf("lookup failure must not block sign-in")
	}
}

func TestRestoreRebuildsSessionFromToken(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()
	if err := st.Set(ctx, "users", "uid-7", map[string]any{
		"name":      "Asha",
		"phone":     "",
		"email":     "user@example.com",
		"favorites": []any{"ad-7"},
		"cart":      []any{},
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if err := st.Set(ctx, "admins", "uid-7", map[string]any{}); err != nil {
		t.Fatalf("seed admin registry: %v", err)
	}

	token := signedToken(t, "uid-7", "user@example.com", time.Now().Add(time.Hour))
	if err := s.Restore(ctx, token); err != nil {
		t.Fatalf("restore: %v", err)
	}
	user := s.User()
	if user == nil || user.UID != "uid-7" || user.Email != "user@example.com" {
		t.Fatalf("unexpected restored identity %+v", user)
	}
	if user.IDToken != token {
		t.Fatalf("restored session must keep the token")
	}
	if !s.IsAdmin() {
		t.Fatalf("restore must run the admin bootstrap")
	}
	if favs := s.Favorites(); len(favs) != 1 || favs[0] != "ad-7" {
		t.Fatalf("restore must load the stored profile, got %v", favs)
	}
	if got := s.Profile().Name; got != "Asha" {
		t.Fatalf("expected restored profile name Asha, got %q", got)
	}
}

func TestRestoreRejectsExpiredToken(t *testing.T) {
	s, _, _ := newTestSession(t)
	token := signedToken(t, "uid-7", "user@example.com", time.Now().Add(-time.Minute))
	err := s.Restore(context.Background(), token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("expired token must not create a session")
	}
}

func TestRestoreRejectsMalformedToken(t *testing.T) {
	s, _, _ := newTestSession(t)
	if err := s.Restore(context.Background(), "not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
	if s.IsAuthenticated() {
		t.Fatalf("malformed token must not create a session")
	}
}

func TestLogoutResetsState(t *testing.T) {
	s, _, _ := newTestSession(t)
	signedUp(t, s)
	if _, err := s.AddToCart(context.Background(), domain.AdCard{ID: "ad-1"}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	s.Logout()
	if s.IsAuthenticated() || s.IsAdmin() {
		t.Fatalf("expected cleared identity")
	}
	if len(s.Cart()) != 0 || len(s.Favorites()) != 0 {
		t.Fatalf("expected empty cart and favorites after logout")
	}
	if s.Profile() != (domain.UserProfile{}) {
		t.Fatalf("expected zero profile after logout")
	}
}

func TestToggleFavoriteIsItsOwnInverse(t *testing.T) {
	s, _, _ := newTestSession(t)
	signedUp(t, s)
	ctx := context.Background()

	if err := s.ToggleFavorite(ctx, "ad-42"); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	favs := s.Favorites()
	if len(favs) != 1 || favs[0] != "ad-42" {
		t.Fatalf("expected [ad-42], got %v", favs)
	}
	if err := s.ToggleFavorite(ctx, "ad-42"); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if favs := s.Favorites(); len(favs) != 0 {
		t.Fatalf("expected empty favorites, got %v", favs)
	}
}

func TestToggleFavoriteSignedOutIsSilentNoop(t *testing.T) {
	s, _, _ := newTestSession(t)
	if err := s.ToggleFavorite(context.Background(), "ad-1"); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
}

func TestToggleFavoriteSurvivesLoginRoundtrip(t *testing.T) {
	s, st, _ := newTestSession(t)
	signedUp(t, s)
	ctx := context.Background()
	if err := s.ToggleFavorite(ctx, "ad-7"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	uid := s.User().UID
	s.Logout()
	if err := s.Login(ctx, "user@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	favs := s.Favorites()
	if len(favs) != 1 || favs[0] != "ad-7" {
		t.Fatalf("expected favorite to survive relogin, got %v", favs)
	}
	doc, _ := st.Get(ctx, "users", uid)
	if arr := doc.Data()["favorites"].([]any); len(arr) != 1 {
		t.Fatalf("expected remote favorites to hold one entry, got %v", arr)
	}
}

func TestAddToCartRequiresAuthentication(t *testing.T) {
	s, _, _ := newTestSession(t)
	_, err := s.AddToCart(context.Background(), domain.AdCard{ID: "ad-1"})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestCartEntriesAreUniqueSnapshots(t *testing.T) {
	s, _, _ := newTestSession(t)
	signedUp(t, s)
	ctx := context.Background()

	card := domain.AdCard{ID: "ad-1", Title: "Banner Ad", Price: "₹1,000"}
	first, err := s.AddToCart(ctx, card)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := s.AddToCart(ctx, card)
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if first.CartID == second.CartID {
		t.Fatalf("cart entry ids must be unique within one cart")
	}

	// Editing the catalog card afterwards must not change the entries.
	card.Price = "₹9,999"
	for _, it := range s.Cart() {
		if it.Price != "₹1,000" {
			t.Fatalf("cart entry drifted with catalog edit: %+v", it)
		}
	}

	if err := s.RemoveFromCart(ctx, first.CartID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	cart := s.Cart()
	if len(cart) != 1 || cart[0].CartID != second.CartID {
		t.Fatalf("expected only the second entry, got %+v", cart)
	}
}

func TestCartWriteFailureKeepsLocalState(t *testing.T) {
	s, st, _ := newTestSession(t)
	signedUp(t, s)
	ctx := context.Background()

	st.FailWrites("users", errors.New("backend down"))
	_, err := s.AddToCart(ctx, domain.AdCard{ID: "ad-1", Title: "Banner Ad"})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	// Optimistic state is deliberately kept.
	if len(s.Cart()) != 1 {
		t.Fatalf("local cart must keep the entry after a failed write")
	}
}

func TestCheckoutMovesCartToOrder(t *testing.T) {
	s, st, _ := newTestSession(t)
	signedUp(t, s)
	ctx := context.Background()

	entry, err := s.AddToCart(ctx, domain.AdCard{ID: "ad-1", Title: "Banner Ad", Price: "₹1,000"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	orderID, err := s.Checkout(ctx)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if orderID == "" {
		t.Fatalf("expected order id")
	}
	if len(s.Cart()) != 0 {
		t.Fatalf("expected empty cart after checkout")
	}

	doc, err := st.Get(ctx, "orders", orderID)
	if err != nil {
		t.Fatalf("order doc: %v", err)
	}
	var order domain.Order
	if err := doc.DataTo(&order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.Status != domain.OrderPending {
		t.Fatalf("expected Pending status, got %q", order.Status)
	}
	if order.TotalAmount != TotalPending {
		t.Fatalf("expected placeholder total, got %q", order.TotalAmount)
	}
	if order.UserName != "Asha" || order.UserEmail != "user@example.com" {
		t.Fatalf("unexpected owner fields %+v", order)
	}
	if len(order.Items) != 1 || order.Items[0].CartID != entry.CartID || order.Items[0].Price != "₹1,000" {
		t.Fatalf("order items must equal the cart by value, got %+v", order.Items)
	}
	if order.DateOrdered.IsZero() {
		t.Fatalf("expected server-assigned order date")
	}
}

func TestCheckoutEmptyCartIsNoop(t *testing.T) {
	s, st, _ := newTestSession(t)
	signedUp(t, s)
	orderID, err := s.Checkout(context.Background())
	if err != nil || orderID != "" {
		t.Fatalf("expected silent no-op, got id=%q err=%v", orderID, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ev := <-st.WatchQuery(ctx, store.Query{Path: "orders"})
	if len(ev.Docs) != 0 {
		t.Fatalf("no order documents expected, got %d", len(ev.Docs))
	}
}

func TestCheckoutSignedOutIsNoop(t *testing.T) {
	s, _, _ := newTestSession(t)
	orderID, err := s.Checkout(context.Background())
	if err != nil || orderID != "" {
		t.Fatalf("expected silent no-op, got id=%q err=%v", orderID, err)
	}
}

func TestCheckoutClearFailureKeepsOrderAndRemoteCart(t *testing.T) {
	s, st, _ := newTestSession(t)
	signedUp(t, s)
	ctx := context.Background()
	uid := s.User().UID

	if _, err := s.AddToCart(ctx, domain.AdCard{ID: "ad-1", Title: "Banner Ad"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Order creation succeeds, the cart clear fails.
	st.FailWrites("users", errors.New("backend down"))
	orderID, err := s.Checkout(ctx)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence from the clear step, got %v", err)
	}
	if orderID == "" {
		t.Fatalf("the order id must be returned even when the clear fails")
	}

	// No compensation: the order stays, and the remote cart still duplicates it.
	if _, err := st.Get(ctx, "orders", orderID); err != nil {
		t.Fatalf("order must survive the partial failure: %v", err)
	}
	doc, err := st.Get(ctx, "users", uid)
	if err != nil {
		t.Fatalf("user doc: %v", err)
	}
	var u userDoc
	if err := doc.DataTo(&u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(u.Cart) != 1 {
		t.Fatalf("remote cart must keep the ordered items, got %+v", u.Cart)
	}
}

func TestUpdateProfileWritesOnlyGivenFields(t *testing.T) {
	s, st, _ := newTestSession(t)
	signedUp(t, s)
	ctx := context.Background()
	uid := s.User().UID

	phone := "+91-12345"
	if err := s.UpdateProfile(ctx, ProfilePatch{Phone: &phone}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := s.Profile(); got.Phone != phone || got.Name != "Asha" {
		t.Fatalf("unexpected local profile %+v", got)
	}
	doc, _ := st.Get(ctx, "users", uid)
	var u userDoc
	if err := doc.DataTo(&u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.Phone != phone || u.Name != "Asha" {
		t.Fatalf("unexpected remote profile %+v", u)
	}
}

func TestCartTotalEstimate(t *testing.T) {
	s, _, _ := newTestSession(t)
	signedUp(t, s)
	ctx := context.Background()
	if _, err := s.AddToCart(ctx, domain.AdCard{ID: "a", Price: "₹ 1,000"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddToCart(ctx, domain.AdCard{ID: "b", Price: "₹ 2,500"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := s.CartTotalEstimate(); got != 3500 {
		t.Fatalf("expected 3500, got %v", got)
	}
}
