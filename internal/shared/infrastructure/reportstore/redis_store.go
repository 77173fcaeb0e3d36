// Package reportstore keeps the latest published report per user in Redis so
// external consumers can read it without recomputing. The analytics engines
// themselves never read from here.
package reportstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Kind names a report family.
type Kind string

const (
	KindTasks    Kind = "tasks"
	KindCalendar Kind = "calendar"
)

// RedisStore writes the latest report per user and kind.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisStore creates a store around an existing client. A zero ttl keeps
// reports forever.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

// Put serializes the report and overwrites the user's latest entry.
func (s *RedisStore) Put(ctx context.Context, userID uuid.UUID, kind Kind, report any) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode %s report: %w", kind, err)
	}

	if err := s.client.Set(ctx, key(userID, kind), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store %s report: %w", kind, err)
	}

	s.logger.Debug("report stored", "user_id", userID, "kind", kind, "size", len(payload))
	return nil
}

// Get returns the raw JSON of the user's latest report, or redis.Nil when
// none exists.
func (s *RedisStore) Get(ctx context.Context, userID uuid.UUID, kind Kind) ([]byte, error) {
	return s.client.Get(ctx, key(userID, kind)).Bytes()
}

func key(userID uuid.UUID, kind Kind) string {
	return fmt.Sprintf("cadence:report:%s:%s", kind, userID)
}
