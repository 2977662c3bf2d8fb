package conversations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/danomnoms/server/internal/agent/model"
	errx "github.com/danomnoms/server/internal/core/error"
	logx "github.com/danomnoms/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisThreadRepository stores each thread as a Redis list of JSON messages.
type RedisThreadRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisThreadRepository(rdb redis.Cmdable, ttl time.Duration) *RedisThreadRepository {
	return &RedisThreadRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisThreadRepository) threadKey(threadID string) string {
	return fmt.Sprintf("thread:%s:messages", threadID)
}

func (r *RedisThreadRepository) SaveThread(ctx context.Context, threadID string, messages []*schema.Message) error {
	rows := make([]any, 0, len(messages))
	for _, m := range messages {
		b, err := json.Marshal(m)
		if err != nil {
			logx.Error().Err(err).Str("threadID", threadID).Msg("failed to marshal message")
			return fmt.Errorf("marshal message: %w", err)
		}
		rows = append(rows, b)
	}
	key := r.threadKey(threadID)

	// replace the list atomically
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(rows) > 0 {
			pipe.RPush(ctx, key, rows...)
			// extend TTL on touch
			if r.ttl > 0 {
				pipe.Expire(ctx, key, r.ttl)
			}
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save thread to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisThreadRepository) LoadThread(ctx context.Context, threadID string) (*model.Thread, error) {
	key := r.threadKey(threadID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.Thread{ThreadID: threadID, Messages: []*schema.Message{}}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load thread from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]*schema.Message, 0, len(rows))
	for i, s := range rows {
		var m schema.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("threadID", threadID).Int("index", i).Msg("failed to unmarshal message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, &m)
	}
	return &model.Thread{ThreadID: threadID, Messages: msgs}, nil
}

var _ model.ThreadRepository = (*RedisThreadRepository)(nil)
