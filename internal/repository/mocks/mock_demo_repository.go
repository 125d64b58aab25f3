package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockDemoRepository struct {
	mock.Mock
}

func (m *MockDemoRepository) CountByUID(ctx context.Context, uid int64) (*int64, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}
