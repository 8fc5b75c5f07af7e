package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 109

	// Market data errors (700-799)
	ErrCodeTransportFailed ErrorCode = 700
	ErrCodeHTTPStatus      ErrorCode = 701
	ErrCodeParseFailed     ErrorCode = 702
)
