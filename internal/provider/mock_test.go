package provider

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSource struct {
	mock.Mock
	name string
}

func (m *MockSource) Fetch(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSource) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}
