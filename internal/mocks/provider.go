package mocks

import (
	"context"

	"github.com/brettbedarf/ramvfs"
	"github.com/stretchr/testify/mock"
)

// MockContentProvider implements ramvfs.ContentProvider for testing across packages
type MockContentProvider struct {
	mock.Mock
}

func (m *MockContentProvider) Content(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)

	// Handle function return types (for complex tests)
	if fn, ok := args.Get(0).(func(context.Context) []byte); ok {
		return fn(ctx), args.Error(1)
	}

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockContentProvider) ReadOnly() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockAllocator implements ramvfs.Allocator for testing allocation failures
type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Alloc(size int) ([]byte, error) {
	args := m.Called(size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockAllocator) Free(buf []byte) {
	m.Called(buf)
}

func (m *MockAllocator) Stats() ramvfs.AllocStats {
	args := m.Called()
	return args.Get(0).(ramvfs.AllocStats)
}
