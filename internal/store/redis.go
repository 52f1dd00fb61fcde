package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/mockmentor-backend/internal/platform/logger"
	"github.com/yungbote/mockmentor-backend/internal/types"
)

const redisKeyPrefix = "interview:session:"

// RedisStore keeps session records as JSON values in redis. Records are not
// expired: retention is an operational concern, same as the other backends.
type RedisStore struct {
	rdb *redis.Client
	log *logger.Logger
}

func NewRedisStore(rdb *redis.Client, baseLog *logger.Logger) *RedisStore {
	var storeLog *logger.Logger
	if baseLog != nil {
		storeLog = baseLog.With("store", "RedisStore")
	}
	return &RedisStore{rdb: rdb, log: storeLog}
}

func (s *RedisStore) Create(ctx context.Context, record *types.SessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrStorage, record.ID, err)
	}
	ok, err := s.rdb.SetNX(ctx, redisKeyPrefix+record.ID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStorage, record.ID, err)
	}
	if !ok {
		return fmt.Errorf("%w: session %s already exists", ErrStorage, record.ID)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*types.SessionRecord, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: get %s: %v", ErrStorage, id, err)
	}
	var record types.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &record, nil
}

func (s *RedisStore) Save(ctx context.Context, record *types.SessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrStorage, record.ID, err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+record.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStorage, record.ID, err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
