package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/pkg/config"
)

// Key layout matches the two-key scheme of the mobile client's preference
// store: one opaque token, one serialized profile.
const (
	redisTokenKey = "smarteval:auth_token"
	redisUserKey  = "smarteval:user_data"
)

// RedisBackend keeps the session in Redis for shared-workstation
// deployments where several hosts present the same login.
type RedisBackend struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedis returns a configured Redis client, pinging it once.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// NewRedisBackend wraps an established Redis client.
func NewRedisBackend(client *redis.Client, logger *zap.Logger) *RedisBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBackend{client: client, logger: logger}
}

// Load reads both keys. A missing pair or an undecodable profile loads as
// logged out.
func (b *RedisBackend) Load(ctx context.Context) (Session, error) {
	values, err := b.client.MGet(ctx, redisTokenKey, redisUserKey).Result()
	if err != nil {
		return Session{}, fmt.Errorf("read session keys: %w", err)
	}

	token, _ := values[0].(string)
	rawUser, _ := values[1].(string)
	if token == "" || rawUser == "" {
		return Session{}, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		b.logger.Warn("stored profile undecodable, discarding", zap.Error(err))
		return Session{}, nil
	}
	return Session{Token: token, User: &user}, nil
}

// Store writes both keys in one pipeline so they stay paired.
func (b *RedisBackend) Store(ctx context.Context, s Session) error {
	rawUser, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	pipe := b.client.TxPipeline()
	pipe.Set(ctx, redisTokenKey, s.Token, 0)
	pipe.Set(ctx, redisUserKey, rawUser, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write session keys: %w", err)
	}
	return nil
}

// Clear deletes both keys together.
func (b *RedisBackend) Clear(ctx context.Context) error {
	if err := b.client.Del(ctx, redisTokenKey, redisUserKey).Err(); err != nil {
		return fmt.Errorf("delete session keys: %w", err)
	}
	return nil
}
