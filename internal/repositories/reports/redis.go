package reports

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/errors"
	"github.com/brainsnorkel/eso-builds/internal/pkg/clock"
	redisclient "github.com/brainsnorkel/eso-builds/internal/redis"
)

const (
	reportKeyPrefix = "report:"
	defaultTTL      = 6 * time.Hour

	// Error messages
	errSummaryNil   = "summary cannot be nil"
	errLogCodeEmpty = "log code cannot be empty"
)

// RedisConfig holds the dependencies for the Redis-backed repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock

	// TTL bounds how long a cached summary stays valid. Zero means
	// the default of six hours; logs are still being uploaded to for
	// a while after a raid night ends.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis-backed report cache
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.LogCode == "" {
		return nil, errors.InvalidArgument(errLogCodeEmpty)
	}

	key := reportKeyPrefix + input.LogCode
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no cached summary for log %s", input.LogCode).
				WithMeta("log_code", input.LogCode)
		}
		return nil, errors.Wrapf(err, "failed to get cached summary")
	}

	var summary eso.ReportSummary
	if err := json.Unmarshal([]byte(result), &summary); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal cached summary")
	}

	return &GetOutput{Summary: &summary}, nil
}

func (r *redisRepository) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.Summary == nil {
		return nil, errors.InvalidArgument(errSummaryNil)
	}
	if input.Summary.LogCode == "" {
		return nil, errors.InvalidArgument(errLogCodeEmpty)
	}

	summary := *input.Summary
	if summary.GeneratedAt.IsZero() {
		summary.GeneratedAt = r.clock.Now()
	}

	data, err := json.Marshal(&summary)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal summary")
	}

	key := reportKeyPrefix + summary.LogCode
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to cache summary")
	}

	return &SetOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.LogCode == "" {
		return nil, errors.InvalidArgument(errLogCodeEmpty)
	}

	key := reportKeyPrefix + input.LogCode
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to evict cached summary")
	}

	return &DeleteOutput{}, nil
}
