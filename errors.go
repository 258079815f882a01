package ancore

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrorCode is the machine-readable classification of a taxonomy error.
type ErrorCode string

const (
	// CodeValidation marks errors raised before any network call.
	CodeValidation ErrorCode = "validation_error"

	// CodeSimulationFailed marks genuine simulator-reported failures.
	CodeSimulationFailed ErrorCode = "simulation_failed"

	// CodeMalformedSimulation marks a simulation response that matched no
	// known outcome shape. Kept distinct from CodeSimulationFailed so the
	// defensive fallback is never confused with a reported failure.
	CodeMalformedSimulation ErrorCode = "simulation_malformed_response"

	// CodeRestoreRequired marks expired ledger state that must be restored
	// out-of-band before the pipeline is retried.
	CodeRestoreRequired ErrorCode = "restore_required"

	// CodeSubmissionFailed marks a failure in the external submission step.
	CodeSubmissionFailed ErrorCode = "submission_failed"

	// CodeRetriesExhausted marks a retry policy that ran out of attempts.
	CodeRetriesExhausted ErrorCode = "retries_exhausted"
)

// CodedError is implemented by every variant of the error taxonomy so
// callers can match exhaustively on the code.
type CodedError interface {
	error
	Code() ErrorCode
}

// Sentinel errors for encoding and decoding failures.
var (
	// ErrValueOutOfRange indicates a numeric input outside the target domain.
	ErrValueOutOfRange = errors.New("ancore: value out of range")

	// ErrEmptySymbol indicates an empty method or field identifier.
	ErrEmptySymbol = errors.New("ancore: empty symbol")

	// ErrSymbolTooLong indicates a symbol over the 32-character limit.
	ErrSymbolTooLong = errors.New("ancore: symbol exceeds 32 characters")

	// ErrInvalidSymbolChar indicates a symbol with characters outside [a-zA-Z0-9_].
	ErrInvalidSymbolChar = errors.New("ancore: symbol contains invalid character")

	// ErrInvalidAddress indicates a string that fails the address grammar.
	ErrInvalidAddress = errors.New("ancore: invalid address encoding")

	// ErrInvalidKey indicates key material that is neither a valid public-key
	// string nor a raw 32-byte sequence.
	ErrInvalidKey = errors.New("ancore: invalid key material")

	// ErrInvalidKeyLength indicates raw key material of length != 32.
	ErrInvalidKeyLength = errors.New("ancore: key material must be exactly 32 bytes")

	// ErrEmptyInvocationList indicates an execute batch with no operations.
	ErrEmptyInvocationList = errors.New("ancore: invocation list must not be empty")

	// ErrTruncatedValue indicates a canonical value encoding that ended early.
	ErrTruncatedValue = errors.New("ancore: truncated value encoding")

	// ErrValueTooLarge indicates a canonical encoding over the size limits.
	ErrValueTooLarge = errors.New("ancore: value exceeds encoding size limits")
)

// ValidationError indicates a malformed argument or an empty operation set.
// It is always raised before any network round trip.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("ancore: validation failed for %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("ancore: validation failed: %s", e.Reason)
}

// Code returns CodeValidation.
func (e *ValidationError) Code() ErrorCode { return CodeValidation }

// ArgumentError indicates an issue with an invocation argument.
type ArgumentError struct {
	Method string
	Name   string
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("ancore: argument %q for method %q: %v", e.Name, e.Method, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Code returns CodeValidation.
func (e *ArgumentError) Code() ErrorCode { return CodeValidation }

// EncodingError indicates a failure converting a native value to its
// tagged representation.
type EncodingError struct {
	Value any
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("ancore: encoding error for value %T: %v", e.Value, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Code returns CodeValidation.
func (e *EncodingError) Code() ErrorCode { return CodeValidation }

// DecodeError indicates a tagged value whose variant does not match the
// expected shape.
type DecodeError struct {
	Want  ValueKind
	Got   ValueKind
	Field string
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("ancore: field %q: cannot decode %s as %s", e.Field, e.Got, e.Want)
	}
	return fmt.Sprintf("ancore: cannot decode %s as %s", e.Got, e.Want)
}

// MissingFieldError indicates a structured record without a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("ancore: record is missing required field %q", e.Field)
}

// SimulationFailedError carries the raw diagnostic from the remote
// simulator. Malformed is set only by the defensive fallback, when the
// response shape matched none of the known outcomes.
type SimulationFailedError struct {
	Diagnostic string
	Malformed  bool
}

func (e *SimulationFailedError) Error() string {
	if e.Malformed {
		return fmt.Sprintf("ancore: unrecognized simulation response: %s", e.Diagnostic)
	}
	return fmt.Sprintf("ancore: simulation failed: %s", e.Diagnostic)
}

// Code returns CodeSimulationFailed, or CodeMalformedSimulation for the
// defensive fallback.
func (e *SimulationFailedError) Code() ErrorCode {
	if e.Malformed {
		return CodeMalformedSimulation
	}
	return CodeSimulationFailed
}

// RestoreRequiredError indicates the referenced ledger state has expired
// and must be restored out-of-band before the pipeline is retried.
type RestoreRequiredError struct{}

func (e *RestoreRequiredError) Error() string {
	return "ancore: ledger state expired, restore required before retry"
}

// Code returns CodeRestoreRequired.
func (e *RestoreRequiredError) Code() ErrorCode { return CodeRestoreRequired }

// ErrRestoreRequired is the canonical restore-required error. It carries no
// payload beyond the fact; compare with errors.Is.
var ErrRestoreRequired = &RestoreRequiredError{}

// SubmissionFailedError is a pass-through type for failures in the external
// submission step. Result optionally carries the raw submission payload.
type SubmissionFailedError struct {
	Result any
}

func (e *SubmissionFailedError) Error() string {
	if e.Result != nil {
		return fmt.Sprintf("ancore: submission failed: %+v", e.Result)
	}
	return "ancore: submission failed"
}

// Code returns CodeSubmissionFailed.
func (e *SubmissionFailedError) Code() ErrorCode { return CodeSubmissionFailed }

// RetriesExhaustedError is raised by the retry policy after all attempts
// fail. It wraps the last underlying error.
type RetriesExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("ancore: retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

// Code returns CodeRetriesExhausted.
func (e *RetriesExhaustedError) Code() ErrorCode { return CodeRetriesExhausted }

// ContractErrorCode is an error code reported by the account contract itself.
type ContractErrorCode uint32

const (
	// ContractErrAlreadyInitialized: the account is already initialized.
	ContractErrAlreadyInitialized ContractErrorCode = 1

	// ContractErrNotInitialized: the account is not initialized.
	ContractErrNotInitialized ContractErrorCode = 2

	// ContractErrUnauthorized: the caller is not authorized.
	ContractErrUnauthorized ContractErrorCode = 3

	// ContractErrInvalidNonce: the provided nonce does not match.
	ContractErrInvalidNonce ContractErrorCode = 4

	// ContractErrSessionKeyNotFound: no session key under that identifier.
	ContractErrSessionKeyNotFound ContractErrorCode = 5

	// ContractErrSessionKeyExpired: the session key has expired.
	ContractErrSessionKeyExpired ContractErrorCode = 6

	// ContractErrInsufficientPermission: the key lacks the permission.
	ContractErrInsufficientPermission ContractErrorCode = 7
)

// String returns the contract error name.
func (c ContractErrorCode) String() string {
	switch c {
	case ContractErrAlreadyInitialized:
		return "AlreadyInitialized"
	case ContractErrNotInitialized:
		return "NotInitialized"
	case ContractErrUnauthorized:
		return "Unauthorized"
	case ContractErrInvalidNonce:
		return "InvalidNonce"
	case ContractErrSessionKeyNotFound:
		return "SessionKeyNotFound"
	case ContractErrSessionKeyExpired:
		return "SessionKeyExpired"
	case ContractErrInsufficientPermission:
		return "InsufficientPermission"
	default:
		return fmt.Sprintf("ContractError(%d)", uint32(c))
	}
}

// contractErrPattern matches the host's diagnostic form, e.g.
// "Error(Contract, #5)".
var contractErrPattern = regexp.MustCompile(`Error\(Contract, #(\d+)\)`)

// ContractErrorFromDiagnostic extracts a contract error code from a
// simulator diagnostic string, if one is present.
func ContractErrorFromDiagnostic(diag string) (ContractErrorCode, bool) {
	m := contractErrPattern.FindStringSubmatch(diag)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, false
	}
	return ContractErrorCode(n), true
}
