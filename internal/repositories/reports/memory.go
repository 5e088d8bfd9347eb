package reports

import (
	"context"
	"sync"
	"time"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/errors"
	"github.com/brainsnorkel/eso-builds/internal/pkg/clock"
)

// MemoryConfig holds the dependencies for the in-memory repository.
type MemoryConfig struct {
	Clock clock.Clock

	// TTL bounds how long a cached summary stays valid. Zero means
	// the same six hour default as the Redis repository.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *MemoryConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type memoryEntry struct {
	summary   eso.ReportSummary
	expiresAt time.Time
}

// memoryRepository is a process-local cache for runs without a Redis
// endpoint. Entries expire lazily on read.
type memoryRepository struct {
	clock clock.Clock
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryRepository creates an in-memory report cache
func NewMemoryRepository(cfg *MemoryConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &memoryRepository{
		clock:   cfg.Clock,
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}, nil
}

func (r *memoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.LogCode == "" {
		return nil, errors.InvalidArgument(errLogCodeEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[input.LogCode]
	if !ok || r.clock.Now().After(entry.expiresAt) {
		delete(r.entries, input.LogCode)
		return nil, errors.NotFoundf("no cached summary for log %s", input.LogCode).
			WithMeta("log_code", input.LogCode)
	}

	summary := entry.summary
	return &GetOutput{Summary: &summary}, nil
}

func (r *memoryRepository) Set(_ context.Context, input SetInput) (*SetOutput, error) {
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

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[summary.LogCode] = memoryEntry{
		summary:   summary,
		expiresAt: r.clock.Now().Add(r.ttl),
	}

	return &SetOutput{}, nil
}

func (r *memoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.LogCode == "" {
		return nil, errors.InvalidArgument(errLogCodeEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, input.LogCode)
	return &DeleteOutput{}, nil
}
