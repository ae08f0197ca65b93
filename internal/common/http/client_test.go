package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(map[string]int{"doubled": body["n"] * 2})
	}))
	defer srv.Close()

	var out struct {
		Doubled int `json:"doubled"`
	}
	err := NewClient(time.Second).PostJSON(context.Background(), srv.URL,
		map[string]string{"X-Api-Key": "secret"}, map[string]int{"n": 21}, &out)

	require.NoError(t, err)
	assert.Equal(t, 42, out.Doubled)
}

func TestClient_PostJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewClient(time.Second).PostJSON(context.Background(), srv.URL, nil, map[string]int{}, nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "model not loaded", statusErr.Body)
}

func TestClient_PostJSON_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	var out map[string]interface{}
	err := NewClient(time.Second).PostJSON(context.Background(), srv.URL, nil, map[string]int{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
