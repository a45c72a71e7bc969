package review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickai-api/internal/config"
)

func TestReviewSendsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("apikey"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "resume text", body["text"])
		_, _ = w.Write([]byte(`{"feedback":"solid"}`))
	}))
	defer srv.Close()

	a := NewAPILayer(&config.Config{Providers: config.ProvidersConfig{
		Timeout: time.Second,
		Review:  config.EndpointConfig{APIKey: "k", BaseURL: srv.URL},
	}})
	require.True(t, a.Configured())

	out, err := a.Review(context.Background(), "resume text")
	require.NoError(t, err)
	assert.Equal(t, "solid", out)
}

func TestContentFromBody(t *testing.T) {
	assert.Equal(t, "good", contentFromBody([]byte(`{"review":"good","feedback":"meh"}`)))
	assert.Equal(t, `{"score":7}`, contentFromBody([]byte(`{"score":7}`)))
	assert.Equal(t, "plain", contentFromBody([]byte("plain\n")))
}
