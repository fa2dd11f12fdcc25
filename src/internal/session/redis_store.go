package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"auth-session-svc/src/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// storedRecord is the wire shape persisted in redis. SessionRecord hides
// token and expiry from JSON responses, so persistence needs its own tags.
type storedRecord struct {
	Token       string             `json:"token"`
	Username    string             `json:"username"`
	LastLogin   time.Time          `json:"last_login"`
	Preferences models.Preferences `json:"preferences"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

// RedisStore is a redis-backed Store for deployments where sessions must
// survive the process or be shared between nodes. Redis key TTL mirrors the
// record expiry, so redis performs the eviction itself.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) Create(ctx context.Context, username string) (*models.SessionRecord, error) {
	token, err := GenerateToken()
	if err != nil {
		logrus.WithError(err).Error("Failed to generate session token")
		return nil, err
	}

	now := time.Now()
	stored := storedRecord{
		Token:       token,
		Username:    username,
		LastLogin:   now,
		Preferences: models.Preferences{Theme: models.ThemeLight},
		ExpiresAt:   now.Add(r.ttl),
	}

	data, err := json.Marshal(stored)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal session record")
		return nil, models.ErrSessionCreating
	}

	if err := r.client.Set(ctx, r.key(token), data, r.ttl).Err(); err != nil {
		logrus.WithError(err).Error("Failed to store session in redis")
		return nil, models.ErrRedisSet
	}

	logrus.WithField("username", username).Debug("Session created in redis")
	return stored.toRecord(), nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (*models.SessionRecord, error) {
	data, err := r.client.Get(ctx, r.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logrus.WithError(err).Error("Failed to get session from redis")
		return nil, models.ErrRedisGet
	}

	stored, err := r.unmarshal(data)
	if err != nil {
		return nil, err
	}

	if !time.Now().Before(stored.ExpiresAt) {
		// Redis TTL should have evicted this already; clean up anyway.
		if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
			logrus.WithError(err).Warn("Failed to delete expired session from redis")
		}
		return nil, nil
	}

	return stored.toRecord(), nil
}

func (r *RedisStore) SetTheme(ctx context.Context, token, theme string) (*models.SessionRecord, error) {
	if !models.IsValidTheme(theme) {
		return nil, models.ErrInvalidTheme
	}

	data, err := r.client.Get(ctx, r.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrSessionNotFound
		}
		logrus.WithError(err).Error("Failed to get session from redis")
		return nil, models.ErrRedisGet
	}

	stored, err := r.unmarshal(data)
	if err != nil {
		return nil, err
	}

	remaining := time.Until(stored.ExpiresAt)
	if remaining <= 0 {
		if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
			logrus.WithError(err).Warn("Failed to delete expired session from redis")
		}
		return nil, models.ErrSessionNotFound
	}

	stored.Preferences.Theme = theme

	updated, err := json.Marshal(stored)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal session record")
		return nil, models.ErrRedisSet
	}

	if err := r.client.Set(ctx, r.key(token), updated, remaining).Err(); err != nil {
		logrus.WithError(err).Error("Failed to update session in redis")
		return nil, models.ErrRedisSet
	}

	return stored.toRecord(), nil
}

func (r *RedisStore) Destroy(ctx context.Context, token string) error {
	deleted, err := r.client.Del(ctx, r.key(token)).Result()
	if err != nil {
		logrus.WithError(err).Error("Failed to delete session from redis")
		return models.ErrRedisDelete
	}
	if deleted == 0 {
		return models.ErrSessionNotFound
	}
	return nil
}

func (r *RedisStore) unmarshal(data string) (*storedRecord, error) {
	var stored storedRecord
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		logrus.WithError(err).Error("Failed to unmarshal session record from redis")
		return nil, models.ErrRedisGet
	}
	return &stored, nil
}

func (s *storedRecord) toRecord() *models.SessionRecord {
	return &models.SessionRecord{
		Token:       s.Token,
		Username:    s.Username,
		LastLogin:   s.LastLogin,
		Preferences: s.Preferences,
		ExpiresAt:   s.ExpiresAt,
	}
}
