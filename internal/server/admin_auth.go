package server

import (
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const adminCookieName = "admin_session"

var errNoAdminSession = errors.New("no valid admin session")

// AdminAuth guards the archive admin routes with a single configured
// credential and in-memory sessions. An empty email disables login.
type AdminAuth struct {
	email        string
	passwordHash string

	mu       sync.Mutex
	sessions map[string]struct{}
}

func NewAdminAuth(email, passwordHash string) *AdminAuth {
	return &AdminAuth{
		email:        email,
		passwordHash: passwordHash,
		sessions:     make(map[string]struct{}),
	}
}

// Login checks the credential pair against the configured bcrypt hash and
// issues a session id.
func (a *AdminAuth) Login(email, password string) (string, error) {
	if a.email == "" || email != a.email {
		return "", errNoAdminSession
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)); err != nil {
		return "", errNoAdminSession
	}
	session := uuid.NewString()
	a.mu.Lock()
	a.sessions[session] = struct{}{}
	a.mu.Unlock()
	return session, nil
}

func (a *AdminAuth) Logout(session string) {
	a.mu.Lock()
	delete(a.sessions, session)
	a.mu.Unlock()
}

func (a *AdminAuth) Valid(session string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.sessions[session]
	return ok
}

func adminAuthMiddleware(admin *AdminAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(adminCookieName)
			if err != nil || cookie.Value == "" || !admin.Valid(cookie.Value) {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
