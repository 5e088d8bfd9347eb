// Package reports defines the interface for analyzed report caching
package reports

//go:generate mockgen -destination=mock/mock_repository.go -package=reportsmock github.com/brainsnorkel/eso-builds/internal/repositories/reports Repository

import (
	"context"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
)

// Repository caches analyzed report summaries so repeated runs against
// the same log code skip the upstream API entirely.
type Repository interface {
	// Get retrieves a cached summary by log code
	// Returns errors.InvalidArgument for empty codes
	// Returns errors.NotFound on cache miss
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Set stores a summary under its log code
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Set(ctx context.Context, input SetInput) (*SetOutput, error)

	// Delete evicts a cached summary
	// Returns errors.InvalidArgument for empty codes
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for retrieving a cached summary
type GetInput struct {
	LogCode string
}

// GetOutput defines the output for retrieving a cached summary
type GetOutput struct {
	Summary *eso.ReportSummary
}

// SetInput defines the input for caching a summary
type SetInput struct {
	Summary *eso.ReportSummary
}

// SetOutput defines the output for caching a summary
type SetOutput struct{}

// DeleteInput defines the input for evicting a cached summary
type DeleteInput struct {
	LogCode string
}

// DeleteOutput defines the output for evicting a cached summary
type DeleteOutput struct{}
