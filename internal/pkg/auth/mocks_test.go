package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockRedisClient is a mock type for the RedisClient type
type MockRedisClient struct {
	mock.Mock
}

func (_m *MockRedisClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	ret := _m.Called(ctx, key, value, expiration)
	return ret.Get(0).(*redis.BoolCmd)
}

func (_m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	_ca := []interface{}{ctx}
	for _, k := range keys {
		_ca = append(_ca, k)
	}
	ret := _m.Called(_ca...)
	return ret.Get(0).(*redis.IntCmd)
}

func (_m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	ret := _m.Called(ctx, key, value, expiration)
	return ret.Get(0).(*redis.StatusCmd)
}

func (_m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	ret := _m.Called(ctx, key)
	return ret.Get(0).(*redis.StringCmd)
}

// NewMockRedisClient creates a new instance of MockRedisClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockRedisClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRedisClient {
	m := &MockRedisClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type stubAcquirer struct {
	tokens []AcquiredToken
	err    error
	calls  int
}

func (s *stubAcquirer) Acquire(_ context.Context) (AcquiredToken, error) {
	s.calls++
	if s.err != nil {
		return AcquiredToken{}, s.err
	}
	token := s.tokens[0]
	if len(s.tokens) > 1 {
		s.tokens = s.tokens[1:]
	}
	return token, nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
