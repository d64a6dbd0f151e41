// Package tracker provides ScanTracker implementations for in-memory and
// Redis-backed scan bookkeeping.
package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	inflightKeyPrefix  = "scan:inflight:"
	lastErrorKeyPrefix = "scan:lasterror:"
	lastScanKeyPrefix  = "scan:lastat:"

	// inflightTTL bounds how long a crashed scan can block the client.
	inflightTTL = 5 * time.Minute
)

// RedisTracker is a ScanTracker backed by Redis, for deployments where more
// than one process serves the same client.
type RedisTracker struct {
	client *redis.Client
}

// NewRedisTracker creates a new Redis-backed scan tracker from a Redis URL.
func NewRedisTracker(url string) (*RedisTracker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisTracker{client: redis.NewClient(opts)}, nil
}

// NewRedisTrackerWithClient creates a tracker over an existing client.
// Used by tests running against miniredis.
func NewRedisTrackerWithClient(client *redis.Client) *RedisTracker {
	return &RedisTracker{client: client}
}

// Ping checks the Redis connection.
func (t *RedisTracker) Ping(ctx context.Context) error {
	return t.client.Ping(ctx).Err()
}

// TryBegin marks a scan as running via SET NX with a safety TTL.
func (t *RedisTracker) TryBegin(ctx context.Context, clientID string) (bool, error) {
	return t.client.SetNX(ctx, inflightKeyPrefix+clientID, "1", inflightTTL).Result()
}

// End clears the in-flight marker.
func (t *RedisTracker) End(ctx context.Context, clientID string) error {
	return t.client.Del(ctx, inflightKeyPrefix+clientID).Err()
}

// IsScanning reports whether a scan is in flight.
func (t *RedisTracker) IsScanning(ctx context.Context, clientID string) (bool, error) {
	count, err := t.client.Exists(ctx, inflightKeyPrefix+clientID).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetLastError records the most recent scan failure.
func (t *RedisTracker) SetLastError(ctx context.Context, clientID string, code string, message string) error {
	return t.client.HSet(ctx, lastErrorKeyPrefix+clientID, "code", code, "message", message).Err()
}

// LastError returns the most recent scan failure.
func (t *RedisTracker) LastError(ctx context.Context, clientID string) (string, string, error) {
	values, err := t.client.HGetAll(ctx, lastErrorKeyPrefix+clientID).Result()
	if err != nil {
		return "", "", err
	}
	return values["code"], values["message"], nil
}

// ClearLastError clears the recorded failure.
func (t *RedisTracker) ClearLastError(ctx context.Context, clientID string) error {
	return t.client.Del(ctx, lastErrorKeyPrefix+clientID).Err()
}

// SetLastScanAt records the completion time of the last successful scan.
func (t *RedisTracker) SetLastScanAt(ctx context.Context, clientID string, at time.Time) error {
	return t.client.Set(ctx, lastScanKeyPrefix+clientID, at.UTC().Format(time.RFC3339Nano), 0).Err()
}

// LastScanAt returns the completion time of the last successful scan.
func (t *RedisTracker) LastScanAt(ctx context.Context, clientID string) (time.Time, error) {
	raw, err := t.client.Get(ctx, lastScanKeyPrefix+clientID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, raw)
}

// ClearLastScanAt clears the recorded completion time.
func (t *RedisTracker) ClearLastScanAt(ctx context.Context, clientID string) error {
	return t.client.Del(ctx, lastScanKeyPrefix+clientID).Err()
}
