package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCredentialsAcquirer_Acquire(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "id", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"amadeusOAuth2Token","access_token":"abc","token_type":"Bearer","expires_in":1799}`))
	}))
	defer srv.Close()

	a := NewClientCredentialsAcquirer(srv.URL, "id", "secret", time.Second)

	got, err := a.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Value)
	assert.InDelta(t, float64(1799*time.Second), float64(got.ExpiresIn), float64(5*time.Second))
}

func TestClientCredentialsAcquirer_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	_, err := NewClientCredentialsAcquirer(srv.URL, "", "", 0).Acquire(context.Background())
	assert.Error(t, err, "missing credentials")

	_, err = NewClientCredentialsAcquirer(srv.URL, "id", "wrong", time.Second).Acquire(context.Background())
	assert.Error(t, err)
}
