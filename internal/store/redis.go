package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/flightfinder/internal/session"
)

const keyPrefix = "flightfinder:session:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      30 * time.Minute,
	}
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisStore{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (session.Snapshot, bool) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		return session.Snapshot{}, false
	}

	var snap session.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return session.Snapshot{}, false
	}

	return snap, true
}

func (s *RedisStore) Save(ctx context.Context, id string, snap session.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, keyPrefix+id, data, s.ttl).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
