package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"club-service/internal/authz"
	"club-service/internal/middleware"
	"club-service/internal/model"
	"club-service/internal/session"
	"club-service/pkg/config"
	"club-service/pkg/database"
	"club-service/prometheus"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq int64

// newTestServer builds an Echo instance wired exactly like cmd/main.go, with
// an in-memory database and a fresh session store.
func newTestServer(t *testing.T) (*echo.Echo, *session.MemoryStore) {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)
	prometheus.InitMetrics(cfg)

	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	database.Set(db)

	sessions := session.NewMemoryStore(time.Hour)
	Init(sessions, time.Hour)

	e := echo.New()
	e.Use(middleware.Session(sessions))
	RegisterRoutes(e)

	return e, sessions
}

// doJSON performs a request against the test server and returns the recorder.
func doJSON(e *echo.Echo, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes a JSON response body into a map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// sessionCookie creates a live session for the principal and returns its cookie.
func sessionCookie(t *testing.T, sessions *session.MemoryStore, p authz.Principal) *http.Cookie {
	t.Helper()
	token, err := sessions.Create(p)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func seedUniversityAdmin(t *testing.T, username, password string) model.Admin {
	t.Helper()
	admin := model.Admin{Username: username, Password: hashPassword(t, password)}
	require.NoError(t, database.GetDB().Create(&admin).Error)
	return admin
}

func seedClubAdmin(t *testing.T, username, password, clubID string) model.Admin {
	t.Helper()
	admin := model.Admin{Username: username, Password: hashPassword(t, password), ClubID: &clubID}
	require.NoError(t, database.GetDB().Create(&admin).Error)
	return admin
}

func seedClub(t *testing.T, id, name string) model.Club {
	t.Helper()
	club := model.Club{ID: id, Name: name, Category: "technical"}
	require.NoError(t, database.GetDB().Create(&club).Error)
	return club
}

func seedEvent(t *testing.T, club model.Club, title string) model.Event {
	t.Helper()
	event := model.Event{
		Title:    title,
		Date:     "2026-09-12",
		Time:     "17:00",
		Location: "Auditorium",
		ClubID:   club.ID,
		ClubName: club.Name,
	}
	require.NoError(t, database.GetDB().Create(&event).Error)
	return event
}

func seedMembership(t *testing.T, clubID, enrollment, status string) model.ClubMembership {
	t.Helper()
	membership := model.ClubMembership{
		ClubID:           clubID,
		StudentName:      "Test Student",
		StudentEmail:     enrollment + "@university.edu",
		EnrollmentNumber: enrollment,
		Status:           status,
	}
	require.NoError(t, database.GetDB().Create(&membership).Error)
	return membership
}

func clubAdminPrincipal(admin model.Admin) authz.Principal {
	return authz.Principal{
		Kind:     authz.ClubAdmin,
		ID:       admin.ID,
		Username: admin.Username,
		ClubID:   *admin.ClubID,
	}
}

func universityAdminPrincipal(admin model.Admin) authz.Principal {
	return authz.Principal{
		Kind:     authz.UniversityAdmin,
		ID:       admin.ID,
		Username: admin.Username,
	}
}

func studentPrincipal(student model.Student) authz.Principal {
	return authz.Principal{
		Kind:       authz.Student,
		ID:         student.ID,
		Name:       student.Name,
		Email:      student.Email,
		Enrollment: student.Enrollment,
	}
}

func seedStudent(t *testing.T, enrollment, password string) model.Student {
	t.Helper()
	student := model.Student{
		Name:       "Test Student",
		Email:      enrollment + "@university.edu",
		Enrollment: enrollment,
		Branch:     "CSE",
		Password:   hashPassword(t, password),
	}
	require.NoError(t, database.GetDB().Create(&student).Error)
	return student
}
