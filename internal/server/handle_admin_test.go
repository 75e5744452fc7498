package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func adminLogin(t *testing.T, r http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	body, _ := json.Marshal(AdminLoginRequest{Email: email, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLoginWrongPassword(t *testing.T) {
	r := newTestRouter(t)

	w := adminLogin(t, r, "admin@example.com", "wrong")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
	if len(w.Result().Cookies()) != 0 {
		t.Errorf("expected no cookie on failed login")
	}
}

func TestAdminLoginWrongEmail(t *testing.T) {
	r := newTestRouter(t)

	w := adminLogin(t, r, "other@example.com", testAdminPassword)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminMatchesRequireSession(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/matches/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminSessionRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	w := adminLogin(t, r, "admin@example.com", testAdminPassword)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "admin_session" {
		t.Fatalf("expected admin_session cookie, got %v", cookies)
	}
	session := cookies[0]

	// The cookie opens the archive listing.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/matches/", nil)
	req.AddCookie(session)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list matches: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var matches []MatchRecord
	if err := json.NewDecoder(rec.Body).Decode(&matches); err != nil {
		t.Fatalf("decode matches: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected empty archive, got %d records", len(matches))
	}

	// Logout invalidates the session.
	req = httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/matches/", nil)
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("after logout: expected 401, got %d", rec.Code)
	}
}

func TestAdminDisabledWithoutCredentials(t *testing.T) {
	admin := NewAdminAuth("", "")

	if _, err := admin.Login("", ""); err == nil {
		t.Fatal("expected login to fail when no admin is configured")
	}
}
