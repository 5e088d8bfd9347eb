// Package errors provides structured error handling for the eso-builds tool.
//
// This package provides:
//   - Structured errors with codes, messages, and metadata
//   - Error context preservation through wrapping
//   - Validation error helpers
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("report not found")
//	err := errors.InvalidArgumentf("invalid top-ability depth: %d", depth)
//
// Adding metadata:
//
//	err := errors.NotFound("report not found").
//	    WithMeta("log_code", code)
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to read cached report")
//	}
//
// # Error Checking
//
// Type checking:
//
//	if errors.IsNotFound(err) {
//	    // Cache miss: fall through to the live API.
//	}
//
// Extracting information:
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//	meta := errors.GetMeta(err)
//
// # Validation Errors
//
// Using the validation builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("LogCode", input.LogCode, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Rules/config layer:
//   - A static table that fails to load is fatal: return Internal and let
//     the process refuse to start (misclassifying every item silently is
//     worse than not starting).
//
// Client layer:
//   - Missing per-player data is NOT an error; it degrades to empty values
//     with a diagnostic log line.
//   - Upstream transport failures return Unavailable; auth failures return
//     Unauthenticated.
//
// Repository layer:
//   - Return NotFound on cache misses and include the log code in metadata.
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors.
//   - Wrap client/repository errors with pipeline context.
package errors
