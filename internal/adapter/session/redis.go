package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"newstracker/internal/domain/model"
	"newstracker/internal/domain/ports"
)

const (
	sessionKeyPrefix = "newstracker:session:"
	autoPlayKey      = "newstracker:autoplay"
	maxTxRetries     = 5
)

// RedisStore keeps sessions in Redis as JSON documents with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

var _ ports.SessionStore = (*RedisStore)(nil)

// NewRedisStore wraps a connected client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Connect parses a redis URL (or a bare host:port) and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Get retrieves a session by ID.
func (r *RedisStore) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return decodeSession(data)
}

// Update runs fn inside an optimistic WATCH/MULTI transaction, retrying when
// a concurrent writer changed the session first.
func (r *RedisStore) Update(ctx context.Context, id string, fn func(*model.Session) error) (*model.Session, error) {
	key := sessionKey(id)
	var updated *model.Session

	txf := func(tx *redis.Tx) error {
		now := r.now()
		current, err := r.load(ctx, tx, id, now)
		if err != nil {
			return err
		}
		if err := fn(current); err != nil {
			return err
		}
		current.ID = id
		current.UpdatedAt = now

		data, err := encodeSession(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			if current.AutoPlay {
				pipe.SAdd(ctx, autoPlayKey, id)
			} else {
				pipe.SRem(ctx, autoPlayKey, id)
			}
			return nil
		})
		if err != nil {
			return err
		}
		updated = current
		return nil
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("update session %s: too much contention", id)
}

func (r *RedisStore) load(ctx context.Context, tx *redis.Tx, id string, now time.Time) (*model.Session, error) {
	data, err := tx.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewSession(id, now), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return decodeSession(data)
}

// AutoPlaySessions lists sessions with auto-play enabled. Members whose
// session document expired are removed from the set.
func (r *RedisStore) AutoPlaySessions(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, autoPlayKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list auto-play sessions: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := r.client.Pipeline()
	checks := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		checks[i] = pipe.Exists(ctx, sessionKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("check auto-play sessions: %w", err)
	}

	live := make([]string, 0, len(ids))
	stale := make([]any, 0)
	for i, id := range ids {
		if checks[i].Val() > 0 {
			live = append(live, id)
			continue
		}
		stale = append(stale, id)
	}
	if len(stale) > 0 {
		if err := r.client.SRem(ctx, autoPlayKey, stale...).Err(); err != nil {
			return nil, fmt.Errorf("prune auto-play sessions: %w", err)
		}
	}
	return live, nil
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
