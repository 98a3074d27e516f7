package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/mboard/webclient/internal/model"
)

var ctx = context.Background()

// SessionStore is the piece of the cache the session service needs,
// extracted so tests can run against an in-memory fake.
type SessionStore interface {
	SetSession(sid string, session *model.Session, ttl time.Duration) error
	GetSession(sid string) (*model.Session, error)
	DeleteSession(sid string) error
}

type RedisCache struct {
	Client *redis.Client
}

var _ SessionStore = (*RedisCache)(nil)

func NewRedisCache(url string) (*RedisCache, error) {
	client := redis.NewClient(
		&redis.Options{
			Addr:     url,
			Password: "",
			DB:       0,
		},
	)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{Client: client}, nil
}

func (r *RedisCache) Set(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisCache) Get(key string, dest any) error {
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

/*
* session records
 */

// SetSession stores the token and user record as one value, so a reader
// never observes a half-written session.
func (r *RedisCache) SetSession(sid string, session *model.Session, ttl time.Duration) error {
	return r.Set(MakeSessionKey(sid), session, ttl)
}

// GetSession fails soft: a missing or unreadable record means "no session",
// not an error. Unreadable records are dropped so the next read starts clean.
func (r *RedisCache) GetSession(sid string) (*model.Session, error) {
	var session model.Session
	if err := r.Get(MakeSessionKey(sid), &session); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if isDecodeErr(err) {
			_ = r.DeleteSession(sid)
			return nil, nil
		}
		return nil, err
	}
	if session.Token == "" {
		return nil, nil
	}
	return &session, nil
}

func (r *RedisCache) DeleteSession(sid string) error {
	return r.Client.Del(ctx, MakeSessionKey(sid)).Err()
}

// isDecodeErr reports whether err came from unmarshalling rather than redis.
func isDecodeErr(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
