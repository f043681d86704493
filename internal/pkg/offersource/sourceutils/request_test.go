package sourceutils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Value string `json:"value"`
}

func TestFetchJSON_Closure(t *testing.T) {
	BaseBackoff = time.Millisecond

	fetchRequest := func(statuses []int, body string, maxRetries int, wantCalls int32,
		wantErr error, wantValue string,
	) func(t *testing.T) {
		return func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&calls, 1)
				status := statuses[len(statuses)-1]
				if int(n) <= len(statuses) {
					status = statuses[n-1]
				}
				w.WriteHeader(status)
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			var got payload
			err := FetchJSON(context.Background(), srv.Client(), "test", maxRetries,
				func(ctx context.Context) (*http.Request, error) {
					return http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
				}, &got)

			assert.Equal(t, wantCalls, atomic.LoadInt32(&calls))
			if wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, wantErr), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, wantValue, got.Value)
		}
	}

	t.Run("success", fetchRequest([]int{200}, `{"value":"ok"}`, 2, 1, nil, "ok"))
	t.Run("retry_then_success", fetchRequest([]int{500, 503, 200}, `{"value":"ok"}`, 2, 3, nil, "ok"))
	t.Run("retry_exceeded", fetchRequest([]int{500}, `{}`, 1, 2, ErrSourceInternalError, ""))
	t.Run("unauthorized_not_retried", fetchRequest([]int{401}, `{}`, 3, 1, ErrSourceUnauthorized, ""))
	t.Run("bad_request_not_retried", fetchRequest([]int{400}, `{}`, 3, 1, ErrSourceBadRequest, ""))
	t.Run("rate_limited_retried", fetchRequest([]int{429, 200}, `{"value":"late"}`, 1, 2, nil, "late"))
}

func TestFetchJSON_ParseErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	var got payload
	err := FetchJSON(context.Background(), srv.Client(), "test", 3,
		func(ctx context.Context) (*http.Request, error) {
			return http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
		}, &got)

	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
