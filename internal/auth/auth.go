// Package auth is the identity adapter: accounts, DB-backed sessions and the
// request principal.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blog/internal/models"
	"blog/internal/store"
)

var (
	ErrEmailTaken    = errors.New("email already taken")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidLogin  = errors.New("invalid login or password")
	ErrNoSession     = errors.New("session not found")
)

// CredentialError is a rejected registration field.
type CredentialError struct {
	Field string
	Msg   string
}

func (e *CredentialError) Error() string { return e.Field + ": " + e.Msg }

// ----------------------------
// Context helpers
// ----------------------------

type ctxKeyPrincipal struct{}

func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal{}, p)
}

func PrincipalFrom(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal{}).(models.Principal)
	return p, ok && p.ID != 0
}

// ----------------------------
// Register
// ----------------------------

func ValidateCredentials(email, username, password string) error {
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return &CredentialError{Field: "email", Msg: "Enter a valid email address."}
	}
	if n := len([]rune(username)); n < 3 || n > 150 {
		return &CredentialError{Field: "username", Msg: "Username must be between 3 and 150 characters."}
	}
	if strings.ContainsAny(username, " \t@") {
		return &CredentialError{Field: "username", Msg: "Username may not contain spaces or @."}
	}
	if len(password) < 6 {
		return &CredentialError{Field: "password", Msg: "Password must be at least 6 characters."}
	}
	return nil
}

func Register(ctx context.Context, st *store.Store, email, username, password string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if err := ValidateCredentials(email, username, password); err != nil {
		return models.User{}, err
	}
	if err := taken(ctx, st, email, username); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{Email: email, Username: username, PasswordHash: string(hash)}
	err = st.CreateUser(ctx, &u)
	if errors.Is(err, store.ErrDuplicate) {
		// lost a race with another registration
		if terr := taken(ctx, st, email, username); terr != nil {
			return models.User{}, terr
		}
	}
	if err != nil {
		return models.User{}, err
	}
	log.Printf("auth.Register: uid=%d username=%s", u.ID, u.Username)
	return u, nil
}

func taken(ctx context.Context, st *store.Store, email, username string) error {
	for _, login := range []string{email, username} {
		u, err := st.UserByLogin(ctx, login)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if u.Email == email {
			return ErrEmailTaken
		}
		if u.Username == username {
			return ErrUsernameTaken
		}
	}
	return nil
}

// ----------------------------
// Login / Logout
// ----------------------------

// Login checks the password of the account matching login (email or
// username) and opens a fresh session, replacing older ones.
func Login(ctx context.Context, st *store.Store, login, password string, lifetime time.Duration) (models.Session, models.User, error) {
	login = strings.TrimSpace(login)
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}

	u, err := st.UserByLogin(ctx, login)
	if errors.Is(err, store.ErrNotFound) {
		log.Printf("auth.Login: no user for login=%s", login)
		return models.Session{}, models.User{}, ErrInvalidLogin
	}
	if err != nil {
		return models.Session{}, models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		log.Printf("auth.Login: bad password for uid=%d", u.ID)
		return models.Session{}, models.User{}, ErrInvalidLogin
	}

	sess := models.Session{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(lifetime).UTC(),
	}
	err = st.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.DeleteUserSessions(ctx, u.ID); err != nil {
			return fmt.Errorf("delete old sessions: %w", err)
		}
		return tx.CreateSession(ctx, sess)
	})
	if err != nil {
		return models.Session{}, models.User{}, err
	}

	log.Printf("auth.Login: OK uid=%d sid=%s", u.ID, sess.ID)
	return sess, u, nil
}

func Logout(ctx context.Context, st *store.Store, sid string) error {
	return st.DeleteSession(ctx, sid)
}

// PrincipalFromSession resolves a live session to its user. Expired
// sessions are removed on sight.
func PrincipalFromSession(ctx context.Context, st *store.Store, sid string) (models.Principal, error) {
	sess, err := st.SessionByID(ctx, sid)
	if errors.Is(err, store.ErrNotFound) {
		return models.Principal{}, ErrNoSession
	}
	if err != nil {
		return models.Principal{}, err
	}
	if !sess.ExpiresAt.After(time.Now()) {
		_ = st.DeleteSession(ctx, sid)
		return models.Principal{}, ErrNoSession
	}

	u, err := st.UserByID(ctx, sess.UserID)
	if err != nil {
		return models.Principal{}, fmt.Errorf("session user: %w", err)
	}
	return models.Principal{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}, nil
}

// PromoteAdmins grants the admin flag to the named accounts. Unknown names
// are logged and skipped.
func PromoteAdmins(ctx context.Context, st *store.Store, usernames []string) {
	for _, name := range usernames {
		if err := st.SetAdmin(ctx, name, true); err != nil {
			log.Printf("auth: promote %s: %v", name, err)
			continue
		}
		log.Printf("auth: %s is admin", name)
	}
}
