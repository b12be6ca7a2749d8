package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/the-chronicles/Creditflow/internal/domain/session"
)

const keyPrefix = "sess:"

// RedisStore keeps sessions in redis with a TTL, so a forgotten tab expires
// server-side instead of holding a remote token forever.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) load(ctx context.Context, sid string) (session.Session, error) {
	var sess session.Session
	raw, err := s.rdb.Get(ctx, keyPrefix+sid).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return sess, session.ErrNotFound
		}
		return sess, err
	}
	if err := json.Unmarshal(raw, &sess); err != nil {
		return sess, err
	}
	return sess, nil
}

func (s *RedisStore) Token(ctx context.Context, sid string) string {
	if sid == "" {
		return ""
	}
	sess, err := s.load(ctx, sid)
	if err != nil {
		return ""
	}
	return sess.Token
}

func (s *RedisStore) User(ctx context.Context, sid string) (session.User, error) {
	sess, err := s.load(ctx, sid)
	if err != nil {
		return session.User{}, err
	}
	return sess.User, nil
}

func (s *RedisStore) Set(ctx context.Context, sid string, sess session.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+sid, payload, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, keyPrefix+sid).Err()
}
