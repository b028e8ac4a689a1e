package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every layer of the engine.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTimeout            ErrorCode = "COMMON_005"
	ErrCodeValidation         ErrorCode = "COMMON_006"
	ErrCodeSerialization      ErrorCode = "COMMON_007"
	ErrCodeDatabaseError      ErrorCode = "COMMON_008"
	ErrCodeCacheError         ErrorCode = "COMMON_009"
	ErrCodeStorageError       ErrorCode = "COMMON_010"
	ErrCodeExternalService    ErrorCode = "COMMON_011"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_012"
)

// Content-adapter error codes.
const (
	// ErrCodeUnsupportedContentType is the only hard failure the core engine
	// ever propagates: the caller asked for an adapter the factory does not
	// know about.
	ErrCodeUnsupportedContentType ErrorCode = "ADAPT_001"

	// ErrCodeExtractionDegraded marks an internal extraction failure that was
	// absorbed by a fallback strategy.  It is recorded for logging and
	// metrics; adaptContent still returns a valid document.
	ErrCodeExtractionDegraded ErrorCode = "ADAPT_002"

	// ErrCodeNoPDFBackend means no PDF text-extraction backend in the
	// registry could produce any text for the given input.
	ErrCodeNoPDFBackend ErrorCode = "ADAPT_003"
)

// Engine error codes.
const (
	ErrCodeArtworkNotFound ErrorCode = "ENGINE_001"
	ErrCodeInvalidProfile  ErrorCode = "ENGINE_002"
	ErrCodeArchiveMiss     ErrorCode = "ENGINE_003"
)

// Aliases kept short for call-site readability.
const (
	CodeInternal               = ErrCodeInternal
	CodeInvalidParam           = ErrCodeBadRequest
	CodeNotFound               = ErrCodeNotFound
	CodeConflict               = ErrCodeConflict
	CodeUnknown                = ErrorCode("UNKNOWN")
	CodeOK                     = ErrorCode("OK")
	CodeDBError                = ErrCodeDatabaseError
	CodeUnsupportedContentType = ErrCodeUnsupportedContentType
)

// IsAdapterCode reports whether the code belongs to the content-adapter family.
func IsAdapterCode(c ErrorCode) bool {
	return strings.HasPrefix(string(c), "ADAPT_")
}
