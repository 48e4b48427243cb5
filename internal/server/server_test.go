package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckBanner(t *testing.T) {
	app := newTestApp(new(MockUserStore), new(MockThoughtStore))

	resp, body := doJSON(t, app, http.MethodGet, "/api/", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Mindstream API", body["message"])
}

func TestSwaggerDocsServed(t *testing.T) {
	app := newTestApp(new(MockUserStore), new(MockThoughtStore))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/swagger/doc.json", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var spec map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&spec))
	assert.Equal(t, "2.0", spec["swagger"])

	paths, ok := spec["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/users/{userId}/friends/{friendId}")
	assert.Contains(t, paths, "/thoughts/{thoughtId}/reactions")
}
