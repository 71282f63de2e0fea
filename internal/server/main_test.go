package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"threaded/internal/config"
	"threaded/internal/database"
	"threaded/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testServer bundles a wired Fiber app with the session cookie of the most
// recently established browser "session", so tests read like a user clicking
// through the site.
type testServer struct {
	t      *testing.T
	app    *fiber.App
	srv    *Server
	cookie string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		Port:            "8217",
		SessionSecret:   "test-session-secret",
		SessionTTLHours: 1,
		Env:             "development",
	}

	srv, err := NewServerWithDeps(cfg, db, redisClient)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	return &testServer{t: t, app: app, srv: srv}
}

// do performs a request, carrying the stored session cookie and capturing any
// replacement cookie the server sets.
func (ts *testServer) do(req *http.Request) *http.Response {
	ts.t.Helper()

	if ts.cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: ts.cookie})
	}

	resp, err := ts.app.Test(req, 5000)
	require.NoError(ts.t, err)

	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			ts.cookie = c.Value
		}
	}
	return resp
}

func (ts *testServer) get(path string) *http.Response {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (ts *testServer) postForm(path string, form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(req)
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload), "body: %s", body)
	return payload
}

func registerForm(first, email string) url.Values {
	return url.Values{
		"first_name": {first},
		"last_name":  {"Tester"},
		"email":      {email},
		"age":        {"30"},
		"password":   {"password1"},
	}
}

// register signs a user up through the HTTP surface and returns the dashboard
// path the server redirected to.
func (ts *testServer) register(first, email string) string {
	ts.t.Helper()

	resp := ts.postForm("/register", registerForm(first, email))
	require.Equal(ts.t, http.StatusSeeOther, resp.StatusCode)

	location := resp.Header.Get("Location")
	require.True(ts.t, strings.HasPrefix(location, "/dashboard/"), "unexpected redirect: %s", location)
	return location
}
