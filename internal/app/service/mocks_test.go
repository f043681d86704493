package service

import (
	"context"

	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offer"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offersource"
	"github.com/stretchr/testify/mock"
)

// MockAwardSource is a mock type for the AwardSource type
type MockAwardSource struct {
	mock.Mock
}

func (_m *MockAwardSource) SearchAwards(ctx context.Context, query offersource.AwardQuery) ([]offer.Offer, error) {
	ret := _m.Called(ctx, query)

	var r0 []offer.Offer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]offer.Offer)
	}

	return r0, ret.Error(1)
}

// NewMockAwardSource creates a new instance of MockAwardSource. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAwardSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAwardSource {
	m := &MockAwardSource{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockCashSource is a mock type for the CashSource type
type MockCashSource struct {
	mock.Mock
}

func (_m *MockCashSource) SearchFares(ctx context.Context, query offersource.CashQuery) ([]offer.Offer, error) {
	ret := _m.Called(ctx, query)

	var r0 []offer.Offer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]offer.Offer)
	}

	return r0, ret.Error(1)
}

// NewMockCashSource creates a new instance of MockCashSource. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCashSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCashSource {
	m := &MockCashSource{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockTokenProvider is a mock type for the TokenProvider type
type MockTokenProvider struct {
	mock.Mock
}

func (_m *MockTokenProvider) Get(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

func (_m *MockTokenProvider) Refresh(ctx context.Context, rejected string) (string, error) {
	ret := _m.Called(ctx, rejected)
	return ret.String(0), ret.Error(1)
}

// NewMockTokenProvider creates a new instance of MockTokenProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTokenProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenProvider {
	m := &MockTokenProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
