package repository

import (
	"context"
	"errors"

	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/RKmodz24/studio/pkg/xredis"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValueRepository is the persistence boundary of session state. A missing
// key is reported with found=false, never as an error.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type keyValueRepository struct{}

func NewKeyValueRepository() *keyValueRepository {
	return &keyValueRepository{}
}

func (r *keyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var result entity.KeyValue
	err := xcontext.DB(ctx).Where("`key`=?", key).Take(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}

		return "", false, err
	}

	return result.Value, true, nil
}

func (r *keyValueRepository) Set(ctx context.Context, key, value string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entity.KeyValue{Key: key, Value: value}).Error
}

func (r *keyValueRepository) Delete(ctx context.Context, key string) error {
	return xcontext.DB(ctx).Where("`key`=?", key).Delete(&entity.KeyValue{}).Error
}

type redisKeyValueRepository struct {
	redisClient xredis.Client
}

func NewRedisKeyValueRepository(redisClient xredis.Client) *redisKeyValueRepository {
	return &redisKeyValueRepository{redisClient: redisClient}
}

func (r *redisKeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.redisClient.Get(ctx, key)
	if err != nil {
		if errors.Is(err, xredis.ErrNil) {
			return "", false, nil
		}

		return "", false, err
	}

	return value, true, nil
}

func (r *redisKeyValueRepository) Set(ctx context.Context, key, value string) error {
	return r.redisClient.Set(ctx, key, value)
}

func (r *redisKeyValueRepository) Delete(ctx context.Context, key string) error {
	return r.redisClient.Del(ctx, key)
}

type memoryKeyValueRepository struct {
	values *xsync.MapOf[string, string]
}

func NewMemoryKeyValueRepository() *memoryKeyValueRepository {
	return &memoryKeyValueRepository{values: xsync.NewMapOf[string]()}
}

func (r *memoryKeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok := r.values.Load(key)
	return value, ok, nil
}

func (r *memoryKeyValueRepository) Set(ctx context.Context, key, value string) error {
	r.values.Store(key, value)
	return nil
}

func (r *memoryKeyValueRepository) Delete(ctx context.Context, key string) error {
	r.values.Delete(key)
	return nil
}
