package server

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagePosting(t *testing.T) {
	ts := newTestServer(t)

	aliceDash := ts.register("Alice", "alice@example.com")
	aliceID := userIDFromDashboard(t, aliceDash)

	t.Run("valid image", func(t *testing.T) {
		resp := ts.postForm("/images", url.Values{
			"url":     {"https://cdn.example.com/sunset.png"},
			"caption": {"Sunset over the bay"},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		payload := decodeJSON(t, resp)
		assert.Equal(t, "https://cdn.example.com/sunset.png", payload["url"])
	})

	t.Run("relative url rejected", func(t *testing.T) {
		resp := ts.postForm("/images", url.Values{"url": {"/sunset.png"}})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("listing is public", func(t *testing.T) {
		anon := newTestServer(t)
		resp := anon.get("/users/" + aliceID + "/images")
		// A different server instance has no such user.
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = ts.get("/users/" + aliceID + "/images")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		payload := decodeJSON(t, resp)
		images, ok := payload["images"].([]any)
		require.True(t, ok)
		assert.Len(t, images, 1)
	})

	t.Run("bad user id parameter", func(t *testing.T) {
		resp := ts.get("/users/zero/images")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("posting requires a session", func(t *testing.T) {
		anon := newTestServer(t)
		resp := anon.postForm("/images", url.Values{"url": {"https://cdn.example.com/x.png"}})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})
}
