package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyDataset indicates a dataset was loaded with no rows,
	// so no header can be inferred. Callers degrade to an explicit
	// "no data" state rather than crashing.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrIndexOutOfRange indicates a row position outside the
	// working table.
	ErrIndexOutOfRange = errors.New("row position out of range")

	// ErrUnknownColumn indicates a column name not present in the
	// dataset header.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidRange indicates a row range violating
	// 1 <= start <= end <= rowCount. The existing selection is
	// never mutated by an invalid range.
	ErrInvalidRange = errors.New("invalid row range")

	// ErrOperationInProgress indicates a chunked operation is already
	// in flight. Concurrent chunked operations are rejected, never
	// queued silently.
	ErrOperationInProgress = errors.New("operation in progress")

	// ErrDetailsRequired indicates the catch-all "other" reason code
	// was selected without free-text details.
	ErrDetailsRequired = errors.New("details required for reason \"other\"")

	// ErrInvalidReason indicates an unrecognised modification reason code.
	ErrInvalidReason = errors.New("invalid reason code")

	// ErrNotReady indicates a modification was submitted before the
	// apply flow reached the READY state.
	ErrNotReady = errors.New("modification not ready for submission")

	// ErrEmptyExplanation indicates an annotation with no explanation text.
	ErrEmptyExplanation = errors.New("annotation explanation must not be empty")

	// ErrTimeout indicates a chunked operation exceeded its liveness
	// budget. Busy flags are forcibly cleared; the user retries.
	ErrTimeout = errors.New("operation timed out")

	// ErrFingerprintMismatch indicates a file's content no longer
	// matches its recorded fingerprint.
	ErrFingerprintMismatch = errors.New("fingerprint mismatch")
)
