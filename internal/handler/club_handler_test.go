package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListClubsPublic(t *testing.T) {
	e, _ := newTestServer(t)
	seedClub(t, "clb_1", "Chess Club")
	seedClub(t, "clb_2", "Drama Club")

	rec := doJSON(e, http.MethodGet, "/api/clubs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var clubs []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clubs))
	assert.Len(t, clubs, 2)
}

func TestGetClub(t *testing.T) {
	e, _ := newTestServer(t)
	club := seedClub(t, "clb_1", "Chess Club")

	rec := doJSON(e, http.MethodGet, "/api/clubs/"+club.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Chess Club", body["name"])

	rec = doJSON(e, http.MethodGet, "/api/clubs/clb_missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateClub(t *testing.T) {
	e, sessions := newTestServer(t)
	admin := seedUniversityAdmin(t, "admin", "admin123")

	cookie := sessionCookie(t, sessions, universityAdminPrincipal(admin))
	rec := doJSON(e, http.MethodPost, "/api/clubs", map[string]string{
		"name":        "Astronomy Society",
		"description": "Stargazing and astrophotography",
		"category":    "science",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Astronomy Society", body["name"])
	assert.NotEmpty(t, body["id"])

	// Duplicate name is rejected
	rec = doJSON(e, http.MethodPost, "/api/clubs", map[string]string{
		"name": "Astronomy Society",
	}, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateClubDeniedForClubAdmin(t *testing.T) {
	e, sessions := newTestServer(t)
	club := seedClub(t, "clb_1", "Chess Club")
	admin := seedClubAdmin(t, "chess_admin", "pass1234", club.ID)

	cookie := sessionCookie(t, sessions, clubAdminPrincipal(admin))
	rec := doJSON(e, http.MethodPost, "/api/clubs", map[string]string{
		"name": "Another Club",
	}, cookie)
	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Club admins must use the club admin login", body["message"])
	assert.Equal(t, "club_admin_must_use_club_login", body["reason"])
}

func TestCreateClubUnauthenticated(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/clubs", map[string]string{"name": "Ghost Club"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateClub(t *testing.T) {
	e, sessions := newTestServer(t)
	club := seedClub(t, "clb_1", "Chess Club")
	admin := seedUniversityAdmin(t, "admin", "admin123")

	cookie := sessionCookie(t, sessions, universityAdminPrincipal(admin))
	rec := doJSON(e, http.MethodPatch, "/api/clubs/"+club.ID, map[string]string{
		"description": "Classical and blitz chess",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Classical and blitz chess", body["description"])
	// Untouched fields survive a partial update
	assert.Equal(t, "Chess Club", body["name"])

	rec = doJSON(e, http.MethodPatch, "/api/clubs/clb_missing", map[string]string{
		"description": "Nothing",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
