package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockHelloService struct {
	mock.Mock
}

func (m *MockHelloService) Hello(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
