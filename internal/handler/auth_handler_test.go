package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"club-service/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestUniversityLogin(t *testing.T) {
	e, _ := newTestServer(t)
	seedUniversityAdmin(t, "admin", "admin123")

	rec := doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	admin, ok := body["admin"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "admin", admin["username"])
	assert.Nil(t, admin["clubId"])

	// Session resolves to the same principal on every /me call
	cookie := loginCookie(t, rec)
	for i := 0; i < 3; i++ {
		me := doJSON(e, http.MethodGet, "/api/auth/me", nil, cookie)
		require.Equal(t, http.StatusOK, me.Code)
		meBody := decodeBody(t, me)
		meAdmin := meBody["admin"].(map[string]interface{})
		assert.Equal(t, admin["id"], meAdmin["id"])
		assert.Equal(t, "admin", meAdmin["username"])
	}
}

func TestUniversityLoginInvalidCredentials(t *testing.T) {
	e, _ := newTestServer(t)
	seedUniversityAdmin(t, "admin", "admin123")

	rec := doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "nobody",
		"password": "admin123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUniversityLoginMissingFields(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClubAdminRejectedOnUniversityLogin(t *testing.T) {
	e, _ := newTestServer(t)
	club := seedClub(t, "f54a2526-7b1c-4e8d-9a3f-2c6d0e1b5a77", "IEEE")
	seedClubAdmin(t, "ieee_admin", "ieee123", club.ID)

	rec := doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "ieee_admin",
		"password": "ieee123",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Club admins must use the club admin login", body["message"])
	assert.Equal(t, "club_admin_must_use_club_login", body["reason"])
}

func TestUniversityAdminRejectedOnClubLogin(t *testing.T) {
	e, _ := newTestServer(t)
	seedUniversityAdmin(t, "admin", "admin123")

	rec := doJSON(e, http.MethodPost, "/api/auth/club-login", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "University admins must use the university admin login", body["message"])
	assert.Equal(t, "university_admin_forbidden", body["reason"])
}

func TestClubLogin(t *testing.T) {
	e, _ := newTestServer(t)
	club := seedClub(t, "484c2b24-9f6a-4c1e-8b2d-1a7e3c5d9f01", "Aryavrat")
	seedClubAdmin(t, "aryavrat_admin", "aryavrat123", club.ID)

	rec := doJSON(e, http.MethodPost, "/api/auth/club-login", map[string]string{
		"username": "aryavrat_admin",
		"password": "aryavrat123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	admin := body["admin"].(map[string]interface{})
	assert.Equal(t, "aryavrat_admin", admin["username"])
	assert.Equal(t, club.ID, admin["clubId"])
}

func TestLogoutClearsSession(t *testing.T) {
	e, _ := newTestServer(t)
	seedUniversityAdmin(t, "admin", "admin123")

	rec := doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := loginCookie(t, rec)

	out := doJSON(e, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, out.Code)

	me := doJSON(e, http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, me.Code)
}

func TestMeUnauthenticated(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token fails closed
	rec = doJSON(e, http.MethodGet, "/api/auth/me", nil,
		&http.Cookie{Name: middleware.SessionCookieName, Value: "bogus"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeDoesNotReturnStudentSession(t *testing.T) {
	e, sessions := newTestServer(t)
	student := seedStudent(t, "EN-1001", "pass1234")

	cookie := sessionCookie(t, sessions, studentPrincipal(student))
	rec := doJSON(e, http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
