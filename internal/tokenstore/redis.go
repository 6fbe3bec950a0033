package tokenstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix = "tasker:auth:"
	changeChannel  = "tasker:auth:changed"
)

// RedisStore shares the token pair between processes through Redis. Each
// mutation notifies local subscribers directly and publishes on a pub/sub
// channel so every other attached process re-synchronizes too. Published
// messages carry the originating store's id; the listener drops its own
// echoes so one logical mutation yields one notification per process.
type RedisStore struct {
	id     string
	client *redis.Client
	logger *zap.Logger
	events *notifier

	pubsub *redis.PubSub
	cancel context.CancelFunc
}

// NewRedisStore builds a store on client and starts the change listener.
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &RedisStore{
		id:     uuid.NewString(),
		client: client,
		logger: logger,
		events: newNotifier(),
		pubsub: client.Subscribe(ctx, changeChannel),
		cancel: cancel,
	}
	go s.listen()
	return s
}

// Close stops the pub/sub listener. The underlying client is not closed.
func (s *RedisStore) Close() {
	s.cancel()
	_ = s.pubsub.Close()
}

func (s *RedisStore) listen() {
	for msg := range s.pubsub.Channel() {
		if msg.Payload == s.id {
			continue
		}
		s.events.publish()
	}
}

func (s *RedisStore) AccessToken() string {
	return s.get(accessTokenKey)
}

func (s *RedisStore) SetAccessToken(token string) {
	s.set(accessTokenKey, token)
	s.broadcast()
}

func (s *RedisStore) ClearAccessToken() {
	ctx := context.Background()
	if err := s.client.Del(ctx, redisKeyPrefix+accessTokenKey, redisKeyPrefix+refreshTokenKey).Err(); err != nil {
		s.logger.Warn("failed to clear tokens in redis", zap.Error(err))
	}
	s.broadcast()
}

func (s *RedisStore) RefreshToken() string {
	return s.get(refreshTokenKey)
}

func (s *RedisStore) SetRefreshToken(token string) {
	s.set(refreshTokenKey, token)
	s.broadcast()
}

func (s *RedisStore) ClearRefreshToken() {
	ctx := context.Background()
	if err := s.client.Del(ctx, redisKeyPrefix+refreshTokenKey).Err(); err != nil {
		s.logger.Warn("failed to clear refresh token in redis", zap.Error(err))
	}
	s.broadcast()
}

func (s *RedisStore) Subscribe(fn func()) func() {
	return s.events.subscribe(fn)
}

func (s *RedisStore) get(key string) string {
	val, err := s.client.Get(context.Background(), redisKeyPrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("failed to read token from redis", zap.String("key", key), zap.Error(err))
		}
		return ""
	}
	return val
}

func (s *RedisStore) set(key, token string) {
	if err := s.client.Set(context.Background(), redisKeyPrefix+key, token, 0).Err(); err != nil {
		s.logger.Warn("failed to write token to redis", zap.String("key", key), zap.Error(err))
	}
}

// broadcast notifies local subscribers and fans the change out to other
// processes. The pub/sub payload is this store's id, never the token.
func (s *RedisStore) broadcast() {
	s.events.publish()
	if err := s.client.Publish(context.Background(), changeChannel, s.id).Err(); err != nil {
		s.logger.Warn("failed to publish token change", zap.Error(err))
	}
}
