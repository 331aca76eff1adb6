package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/handler"
	"github.com/inkpress/internal/router"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "inkpress-test"
	testPassword = "password"
)

type testEnv struct {
	router *gin.Engine
	tokens auth.TokenService
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&db.User{}, &db.Article{}, &db.Category{}, &db.ContactMessage{}, &db.Subscriber{}, &db.SiteStat{}, &db.SiteDailyVisitor{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	tokens := auth.NewTokenService(testSecret, testIssuer, time.Minute)
	api := handler.NewAPI(db.DB, tokens, 7)

	env := &testEnv{
		router: router.SetupRouter(api, testSecret),
		tokens: tokens,
	}

	return env, func() {
		sqlDB.Close()
	}
}

func seedUser(t *testing.T, username, role string) *db.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := db.User{Username: username, Password: string(hashed), Role: role, Email: username + "@example.com"}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", username, err)
	}
	return &user
}

func seedArticle(t *testing.T, owner *db.User, title, status string) *db.Article {
	t.Helper()

	article := db.Article{Title: title, Content: "# " + title, Status: status, OwnerID: owner.ID}
	if err := db.DB.Create(&article).Error; err != nil {
		t.Fatalf("failed to seed article %q: %v", title, err)
	}
	return &article
}

func bearerFor(t *testing.T, env *testEnv, user *db.User) string {
	t.Helper()

	role := auth.RoleAuthor
	if user.Role == db.RoleAdmin {
		role = auth.RoleAdmin
	}

	token, _, err := env.tokens.CreateAccessToken(formatUserID(user.ID), user.Email, role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return "Bearer " + token
}

func formatUserID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type request struct {
	method  string
	path    string
	body    interface{}
	bearer  string
	cookies []*http.Cookie
}

func perform(t *testing.T, env *testEnv, req request) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq := httptest.NewRequest(req.method, req.path, reader)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.bearer != "" {
		httpReq.Header.Set("Authorization", req.bearer)
	}
	for _, cookie := range req.cookies {
		httpReq.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httpReq)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return payload
}
