// File: skybook/database/repository/session/redis.go
package sessionRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"skybook/models"
	"skybook/utils"
)

const sessionPrefix = "chat:session:"

// RedisSessionRepo stores each session as a single JSON document with a
// sliding TTL. Save performs an optimistic compare-and-set on the stored
// version under WATCH, so two concurrent turns for the same session cannot
// silently lose an update.
type RedisSessionRepo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionRepo(client *redis.Client, ttl time.Duration) *RedisSessionRepo {
	return &RedisSessionRepo{client: client, ttl: ttl}
}

func (r *RedisSessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		// A corrupt document is treated as no session at all: conversational
		// continuity beats strict validation here.
		utils.GetLogger().Warn("discarding undecodable session document",
			zap.String("sessionId", id), zap.Error(err))
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (r *RedisSessionRepo) Save(ctx context.Context, sess *models.Session) error {
	key := sessionPrefix + sess.ID
	loadedVersion := sess.Version

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		switch {
		case err == redis.Nil:
			// First save of a new session only succeeds if nobody persisted
			// it since the load.
			if loadedVersion != 0 {
				return ErrConflict
			}
		case err != nil:
			return err
		default:
			var stored models.Session
			if err := json.Unmarshal([]byte(data), &stored); err == nil && stored.Version != loadedVersion {
				return ErrConflict
			}
		}

		sess.Version = loadedVersion + 1
		payload, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		return err
	}, key)

	if err == redis.TxFailedErr {
		sess.Version = loadedVersion
		return ErrConflict
	}
	if err != nil {
		if err == ErrConflict {
			sess.Version = loadedVersion
			return ErrConflict
		}
		return fmt.Errorf("failed to save session %s: %w", sess.ID, err)
	}
	return nil
}

func (r *RedisSessionRepo) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionPrefix+id).Err()
}
