package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrNotFound = redis.Nil

const SessionKeyPrefix = "munbot:session:"

type ISessionStore interface {
	Save(ctx context.Context, sessionID string, payload []byte, expiration time.Duration) error
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Delete(ctx context.Context, sessionID string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	TTL(ctx context.Context, sessionID string) (time.Duration, error)
}

type sessionStore struct {
	client *redis.Client
}

func New() ISessionStore {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &sessionStore{client: client}
}

func (r *sessionStore) Save(ctx context.Context, sessionID string, payload []byte, expiration time.Duration) error {
	err := r.client.Set(ctx, sessionID, payload, expiration).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error saving session %s: %v", sessionID, err))
		return err
	}
	return nil
}

func (r *sessionStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	val, err := r.client.Get(ctx, sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, err
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting session %s: %v", sessionID, err))
		return nil, err
	}
	return val, nil
}

func (r *sessionStore) Delete(ctx context.Context, sessionID string) error {
	_, err := r.client.Del(ctx, sessionID).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting session %s: %v", sessionID, err))
		return err
	}
	return nil
}

func (r *sessionStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		batch, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			logrus.Error(fmt.Sprintf("Error scanning sessions with pattern %s: %v", pattern, err))
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

func (r *sessionStore) TTL(ctx context.Context, sessionID string) (time.Duration, error) {
	return r.client.TTL(ctx, sessionID).Result()
}
