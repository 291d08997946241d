// Package history keeps a bounded log of past probe results so consecutive
// runs can be compared.
package history

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	apperrors "auwalk/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// Entry is one recorded probe attempt.
type Entry struct {
	Case       string    `json:"case"`
	Email      string    `json:"email"`
	Outcome    string    `json:"outcome"`
	StatusCode int       `json:"status_code"`
	RequestID  string    `json:"request_id"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// NewNop returns a Recorder that drops everything.
func NewNop() Recorder {
	return nopRecorder{}
}

type nopRecorder struct{}

func (nopRecorder) Record(ctx context.Context, entry Entry) error { return nil }

// RedisRecorder stores entries newest-first in a capped Redis list.
type RedisRecorder struct {
	client *redis.Client
	key    string
	limit  int64
}

// Options parses rawURL with redis.ParseURL. A value without a scheme is
// taken as host:port and redis+tls:// is read as rediss://. A non-empty
// password and a db >= 0 replace what the URL carries.
func Options(rawURL, password string, db int) (*redis.Options, error) {
	switch {
	case strings.HasPrefix(rawURL, "redis+tls://"):
		rawURL = "rediss://" + strings.TrimPrefix(rawURL, "redis+tls://")
	case !strings.Contains(rawURL, "://"):
		rawURL = "redis://" + rawURL
	}

	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, apperrors.Mark(apperrors.Wrap(err, "redis url"), apperrors.ErrInvalidConfig)
	}
	if password != "" {
		opts.Password = password
	}
	if db >= 0 {
		opts.DB = db
	}
	return opts, nil
}

// Connect opens a client for rawURL and checks it with PING.
func Connect(ctx context.Context, rawURL, password string, db int) (*redis.Client, error) {
	opts, err := Options(rawURL, password, db)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, apperrors.Wrap(err, "redis ping")
	}
	return client, nil
}

func NewRedisRecorder(client *redis.Client, key string, limit int64) *RedisRecorder {
	return &RedisRecorder{
		client: client,
		key:    key,
		limit:  limit,
	}
}

func (r *RedisRecorder) Record(ctx context.Context, entry Entry) error {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, data)
	pipe.LTrim(ctx, r.key, 0, r.limit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "recording probe result")
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (r *RedisRecorder) Recent(ctx context.Context, n int64) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := r.client.LRange(ctx, r.key, 0, n-1).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "reading probe history")
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
