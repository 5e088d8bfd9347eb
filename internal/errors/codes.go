package errors

// Code classifies an error for callers that branch on failure kind
// rather than message text.
type Code string

// The codes this tool produces. Cache misses are NotFound, bad flags
// and malformed inputs are InvalidArgument, OAuth failures are
// Unauthenticated, upstream API and webhook outages are Unavailable,
// canceled or timed-out contexts map to Canceled/DeadlineExceeded, and
// everything unexpected is Internal.
const (
	CodeOK               Code = "OK"
	CodeCanceled         Code = "CANCELED"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeInternal         Code = "INTERNAL"
	CodeUnavailable      Code = "UNAVAILABLE"
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}
