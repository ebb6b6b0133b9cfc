package testutils

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockKafkaProducer struct {
	mock.Mock
}

func (m *MockKafkaProducer) Send(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockKafkaProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	m.Called(ctx, key, data, ttl)
}

func (m *MockCache) Delete(ctx context.Context, key string) {
	m.Called(ctx, key)
}
