package testutil

import (
	"context"
	"time"

	"github.com/RKmodz24/studio/pkg/xredis"
	"github.com/puzpuzpuz/xsync"
)

type MockRedisClient struct {
	ExistFunc  func(ctx context.Context, key string) (bool, error)
	DelFunc    func(ctx context.Context, key ...string) error
	KeysFunc   func(ctx context.Context, pattern string) ([]string, error)
	SetFunc    func(ctx context.Context, key, value string) error
	SetObjFunc func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetFunc    func(ctx context.Context, key string) (string, error)
	GetObjFunc func(ctx context.Context, key string, v any) error
	IncrByFunc func(ctx context.Context, key string, value int64) (int64, error)
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return nil
}

func (m *MockRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	if m.KeysFunc != nil {
		return m.KeysFunc(ctx, pattern)
	}

	return nil, nil
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}

	return nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return "", xredis.ErrNil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	return xredis.ErrNil
}

func (m *MockRedisClient) IncrBy(ctx context.Context, key string, value int64) (int64, error) {
	if m.IncrByFunc != nil {
		return m.IncrByFunc(ctx, key, value)
	}

	return 0, nil
}

func (m *MockRedisClient) Close() error {
	return nil
}

// NewMapRedisClient returns a mock whose string commands are backed by a map.
func NewMapRedisClient() *MockRedisClient {
	values := xsync.NewMapOf[string]()
	return &MockRedisClient{
		GetFunc: func(ctx context.Context, key string) (string, error) {
			v, ok := values.Load(key)
			if !ok {
				return "", xredis.ErrNil
			}
			return v, nil
		},
		SetFunc: func(ctx context.Context, key, value string) error {
			values.Store(key, value)
			return nil
		},
		DelFunc: func(ctx context.Context, key ...string) error {
			for _, k := range key {
				values.Delete(k)
			}
			return nil
		},
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			_, ok := values.Load(key)
			return ok, nil
		},
	}
}
