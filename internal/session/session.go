// Package session is the single source of truth for who is logged in. The
// identity lives in the signed osas_user cookie, so a reload restores
// exactly the last-known identity with no server-side state.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Abdinajib123/Online-student-admission/internal/api"
	"github.com/Abdinajib123/Online-student-admission/internal/model"
)

const CookieName = "osas_user"

type claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type Store struct {
	api    *api.Client
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewStore(client *api.Client, secret string, ttl time.Duration) *Store {
	return &Store{api: client, secret: []byte(secret), ttl: ttl}
}

type Credentials struct {
	Email    string
	Password string
}

// Result is a login outcome. Failures are values, not errors: the message
// is always user-visible.
type Result struct {
	OK      bool
	Message string
	User    *model.Identity
}

// Login validates locally first; empty credentials never reach the network.
func (s *Store) Login(ctx context.Context, w http.ResponseWriter, creds Credentials) Result {
	if creds.Email == "" || creds.Password == "" {
		return Result{Message: "Email and password are required"}
	}

	user, err := s.api.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		if apiErr, ok := err.(*api.Error); ok {
			return Result{Message: apiErr.Message}
		}
		return Result{Message: "Network error"}
	}

	s.issue(w, user)
	return Result{OK: true, User: &user}
}

// Logout clears the persisted identity. No upstream call is made.
func (s *Store) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Current returns the identity carried by the request, or nil. A missing,
// malformed or expired cookie is simply an unauthenticated visitor.
func (s *Store) Current(r *http.Request) *model.Identity {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil
	}
	parsed, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil
	}
	return &model.Identity{
		ID:       parsed.UserID,
		Username: parsed.Username,
		Email:    parsed.Email,
		Role:     parsed.Role,
	}
}

func (s *Store) issue(w http.ResponseWriter, user model.Identity) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
