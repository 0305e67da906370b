// internal/presence/service.go
// Online-presence tracking backed by Redis key TTLs. A user is online while
// their heartbeat key lives; the last-seen timestamp survives the TTL.

package presence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Service tracks user presence
type Service struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewService creates a presence service. ttl controls how long a user stays
// online after their last heartbeat.
func NewService(redisClient *redis.Client, ttl time.Duration) *Service {
	return &Service{redis: redisClient, ttl: ttl}
}

// Touch records a heartbeat for the user
func (s *Service) Touch(ctx context.Context, userID int64) error {
	now := time.Now().Unix()

	pipe := s.redis.Pipeline()
	pipe.Set(ctx, onlineKey(userID), now, s.ttl)
	pipe.Set(ctx, lastSeenKey(userID), now, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}

	return nil
}

// IsOnline reports whether the user heartbeated within the TTL window
func (s *Service) IsOnline(ctx context.Context, userID int64) (bool, error) {
	count, err := s.redis.Exists(ctx, onlineKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check presence: %w", err)
	}
	return count > 0, nil
}

// LastSeen returns the time of the user's most recent heartbeat.
// The second return is false when the user has never heartbeated.
func (s *Service) LastSeen(ctx context.Context, userID int64) (time.Time, bool, error) {
	value, err := s.redis.Get(ctx, lastSeenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get last seen: %w", err)
	}

	unix, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("corrupt last seen value: %w", err)
	}

	return time.Unix(unix, 0), true, nil
}

// OnlineSet reports online status for a batch of users in one round trip
func (s *Service) OnlineSet(ctx context.Context, userIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	pipe := s.redis.Pipeline()
	cmds := make(map[int64]*redis.IntCmd, len(userIDs))
	for _, id := range userIDs {
		cmds[id] = pipe.Exists(ctx, onlineKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to check presence batch: %w", err)
	}

	for id, cmd := range cmds {
		result[id] = cmd.Val() > 0
	}

	return result, nil
}

func onlineKey(userID int64) string {
	return fmt.Sprintf("presence:online:%d", userID)
}

func lastSeenKey(userID int64) string {
	return fmt.Sprintf("presence:lastseen:%d", userID)
}
