package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC)

func TestTokenCache_Get(t *testing.T) {
	clock := &fakeClock{now: epoch}
	acquirer := &stubAcquirer{tokens: []AcquiredToken{
		{Value: "first", ExpiresIn: 10 * time.Minute},
		{Value: "second", ExpiresIn: 10 * time.Minute},
	}}
	cache := NewTokenCache("amadeus", acquirer, WithClock(clock.Now), WithRefreshSkew(30*time.Second))

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.Equal(t, epoch.Add(10*time.Minute), cache.ExpiresAt())

	clock.Advance(9 * time.Minute)
	got, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.Equal(t, 1, acquirer.calls)

	// inside the refresh skew
	clock.Advance(45 * time.Second)
	got, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", got)
	assert.Equal(t, 2, acquirer.calls)
}

func TestTokenCache_Refresh(t *testing.T) {
	acquirer := &stubAcquirer{tokens: []AcquiredToken{
		{Value: "first", ExpiresIn: time.Hour},
		{Value: "second", ExpiresIn: time.Hour},
	}}
	cache := NewTokenCache("amadeus", acquirer)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	got, err := cache.Refresh(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
	assert.Equal(t, 2, acquirer.calls)
}

func TestTokenCache_RefreshReusesReplacedToken(t *testing.T) {
	acquirer := &stubAcquirer{tokens: []AcquiredToken{
		{Value: "first", ExpiresIn: time.Hour},
		{Value: "second", ExpiresIn: time.Hour},
		{Value: "third", ExpiresIn: time.Hour},
	}}
	cache := NewTokenCache("amadeus", acquirer)

	rejected, err := cache.Get(context.Background())
	require.NoError(t, err)

	// two cabins rejected the same token
	got, err := cache.Refresh(context.Background(), rejected)
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	got, err = cache.Refresh(context.Background(), rejected)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
	assert.Equal(t, 2, acquirer.calls)

	got, err = cache.Refresh(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, "third", got)
	assert.Equal(t, 3, acquirer.calls)
}

func TestTokenCache_Failures_Closure(t *testing.T) {
	failureRequest := func(acquirer *stubAcquirer) func(t *testing.T) {
		return func(t *testing.T) {
			cache := NewTokenCache("amadeus", acquirer)

			got, err := cache.Get(context.Background())
			if !errors.Is(err, ErrNoToken) {
				t.Fatalf("expected ErrNoToken, got %v", err)
			}
			if got != "" {
				t.Fatalf("expected empty token, got %q", got)
			}
			if !cache.ExpiresAt().IsZero() {
				t.Fatalf("expected zero expiry, got %v", cache.ExpiresAt())
			}
		}
	}

	t.Run("acquire_error", failureRequest(&stubAcquirer{err: errors.New("401 invalid_client")}))
	t.Run("empty_token", failureRequest(&stubAcquirer{tokens: []AcquiredToken{{ExpiresIn: time.Hour}}}))
	t.Run("already_expired", failureRequest(&stubAcquirer{tokens: []AcquiredToken{{Value: "x"}}}))
}

func TestTokenCache_SharedStore_Closure(t *testing.T) {
	storeRequest := func(mockSetup func(m *MockRedisClient), wantToken string, wantCalls int) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)

			clock := &fakeClock{now: epoch}
			acquirer := &stubAcquirer{tokens: []AcquiredToken{{Value: "fresh", ExpiresIn: 30 * time.Minute}}}
			cache := NewTokenCache("amadeus", acquirer,
				WithStore(NewRedisTokenStore(m), 5*time.Second),
				WithClock(clock.Now),
			)

			got, err := cache.Get(context.Background())
			require.NoError(t, err)
			assert.Equal(t, wantToken, got)
			assert.Equal(t, wantCalls, acquirer.calls)
		}
	}

	shared, err := json.Marshal(Token{Value: "shared", ExpiresAt: epoch.Add(20 * time.Minute)})
	require.NoError(t, err)

	stale, err := json.Marshal(Token{Value: "stale", ExpiresAt: epoch.Add(10 * time.Second)})
	require.NoError(t, err)

	t.Run("shared_token_reused", storeRequest(func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "token:cache:amadeus").Return(redis.NewStringResult(string(shared), nil))
	}, "shared", 0))

	t.Run("miss_acquires_and_publishes", storeRequest(func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "token:cache:amadeus").Return(redis.NewStringResult("", redis.Nil))
		m.On("SetNX", mock.Anything, "token:lock:amadeus", "1", 5*time.Second).Return(redis.NewBoolResult(true, nil))
		m.On("Set", mock.Anything, "token:cache:amadeus", mock.Anything, 30*time.Minute).Return(redis.NewStatusResult("OK", nil))
		m.On("Del", mock.Anything, "token:lock:amadeus").Return(redis.NewIntResult(1, nil))
	}, "fresh", 1))

	t.Run("stale_token_refreshed", storeRequest(func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "token:cache:amadeus").Return(redis.NewStringResult(string(stale), nil))
		m.On("SetNX", mock.Anything, "token:lock:amadeus", "1", 5*time.Second).Return(redis.NewBoolResult(true, nil))
		m.On("Set", mock.Anything, "token:cache:amadeus", mock.Anything, 30*time.Minute).Return(redis.NewStatusResult("OK", nil))
		m.On("Del", mock.Anything, "token:lock:amadeus").Return(redis.NewIntResult(1, nil))
	}, "fresh", 1))

	t.Run("lock_held_elsewhere", storeRequest(func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "token:cache:amadeus").Return(redis.NewStringResult("", redis.Nil))
		m.On("SetNX", mock.Anything, "token:lock:amadeus", "1", 5*time.Second).Return(redis.NewBoolResult(false, nil))
	}, "fresh", 1))

	t.Run("store_unavailable", storeRequest(func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "token:cache:amadeus").Return(redis.NewStringResult("", errors.New("connection refused")))
		m.On("SetNX", mock.Anything, "token:lock:amadeus", "1", 5*time.Second).Return(redis.NewBoolResult(false, errors.New("connection refused")))
	}, "fresh", 1))
}
