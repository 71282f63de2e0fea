package server

import (
	"net/http"
	"net/url"
	"testing"

	"threaded/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFlow(t *testing.T) {
	ts := newTestServer(t)

	location := ts.register("Alice", "alice@example.com")
	assert.Equal(t, "/dashboard/1", location)
	assert.NotEmpty(t, ts.cookie, "registration should establish a session")

	// The new session resolves the bare dashboard route to the user's own.
	resp := ts.get("/dashboard")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register("Alice", "alice@example.com")

	resp := ts.postForm("/register", registerForm("Alicia", "alice@example.com"))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// The conflict message rides along as a flash on the login page.
	payload := decodeJSON(t, ts.get("/login"))
	assert.Equal(t, "A user with that email already exists", payload["flash"])

	var count int64
	require.NoError(t, ts.srv.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterValidationRedirect(t *testing.T) {
	ts := newTestServer(t)

	form := registerForm("Alice", "not-an-email")
	resp := ts.postForm("/register", form)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/register", resp.Header.Get("Location"))

	payload := decodeJSON(t, ts.get("/register"))
	assert.NotEmpty(t, payload["flash"])
}

func TestLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.register("Alice", "alice@example.com")

	// Start from a logged-out browser.
	resp := ts.get("/logout")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	t.Run("wrong password", func(t *testing.T) {
		resp := ts.postForm("/login", url.Values{
			"email":    {"alice@example.com"},
			"password": {"wrongpass1"},
		})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))

		payload := decodeJSON(t, ts.get("/login"))
		assert.Equal(t, "Invalid email or password", payload["flash"])
	})

	t.Run("unknown email fails identically", func(t *testing.T) {
		resp := ts.postForm("/login", url.Values{
			"email":    {"nobody@example.com"},
			"password": {"password1"},
		})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		payload := decodeJSON(t, ts.get("/login"))
		assert.Equal(t, "Invalid email or password", payload["flash"])
	})

	t.Run("correct credentials", func(t *testing.T) {
		resp := ts.postForm("/login", url.Values{
			"email":    {"alice@example.com"},
			"password": {"password1"},
		})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/dashboard/1", resp.Header.Get("Location"))

		payload := decodeJSON(t, ts.get("/"))
		assert.Equal(t, "Alice", payload["first_name"])
	})
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	ts.register("Alice", "alice@example.com")

	resp := ts.get("/logout")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// Protected routes bounce back to the login form afterwards.
	resp = ts.get("/user_name")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	payload := decodeJSON(t, ts.get("/"))
	assert.NotContains(t, payload, "user_id")
}
