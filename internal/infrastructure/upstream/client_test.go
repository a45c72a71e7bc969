package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient("test", time.Second)
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	body, header, err := c.Do(context.Background(), "get", req)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "text/plain", header.Get("Content-Type"))
}

func TestDoNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 2*maxErrorBody)))
	}))
	defer srv.Close()

	c := NewClient("test", time.Second)
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)

	_, _, err := c.Do(context.Background(), "get", req)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Len(t, se.Body, maxErrorBody)
}

func TestDoTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient("test", 20*time.Millisecond)
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)

	_, _, err := c.Do(context.Background(), "get", req)
	require.Error(t, err)
}

func TestNewClientDefaultsTimeout(t *testing.T) {
	c := NewClient("test", 0)
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
	assert.Equal(t, "test", c.Provider())
}
