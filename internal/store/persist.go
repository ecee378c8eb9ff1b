package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"remesa/internal/models"
)

// persistVersion guards the blob schema; any mismatch is a cold cache.
const persistVersion = 1

// preloadKey is the single namespaced blob holding the persisted reference
// lists. Nothing else is persisted.
const preloadKey = "remesa:preloaded-data"

// referenceBlob is the persisted subset of the preload cache.
type referenceBlob struct {
	Version       int                   `json:"version"`
	Countries     []models.Country      `json:"countries"`
	Banks         []models.Bank         `json:"banks"`
	DocumentTypes []models.DocumentType `json:"documentTypes"`
	AccountTypes  []models.AccountType  `json:"accountTypes"`
}

// Persister stores the reference blob across sessions.
type Persister interface {
	Save(ctx context.Context, blob referenceBlob) error
	Load(ctx context.Context) (*referenceBlob, error)
	Drop(ctx context.Context) error
}

// RedisConfig configures the persistence client.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisClient creates the redis client used for persistence.
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisPersister stores the blob in redis with no expiry.
type RedisPersister struct {
	client *redis.Client
}

func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{client: client}
}

func (r *RedisPersister) Save(ctx context.Context, blob referenceBlob) error {
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encode preload blob: %w", err)
	}
	return r.client.Set(ctx, preloadKey, data, 0).Err()
}

func (r *RedisPersister) Load(ctx context.Context) (*referenceBlob, error) {
	data, err := r.client.Get(ctx, preloadKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var blob referenceBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		// Corrupted blob: treat as cold cache instead of failing startup.
		return nil, nil
	}
	return &blob, nil
}

func (r *RedisPersister) Drop(ctx context.Context) error {
	return r.client.Del(ctx, preloadKey).Err()
}
