package domain

import "time"

// ReasonCode classifies why a dataset was modified. The set is closed:
// anything else must use ReasonOther with free-text details.
type ReasonCode string

// Modification reason codes.
const (
	ReasonDataCorrection        ReasonCode = "data_correction"
	ReasonOutlierRemoval        ReasonCode = "outlier_removal"
	ReasonRangeClipping         ReasonCode = "range_clipping"
	ReasonDataCleaning          ReasonCode = "data_cleaning"
	ReasonFormatStandardization ReasonCode = "format_standardization"
	ReasonMissingDataHandling   ReasonCode = "missing_data_handling"
	ReasonCalibrationAdjustment ReasonCode = "calibration_adjustment"
	ReasonOther                 ReasonCode = "other"
)

// ReasonCodes returns all valid reason codes in display order.
func ReasonCodes() []ReasonCode {
	return []ReasonCode{
		ReasonDataCorrection,
		ReasonOutlierRemoval,
		ReasonRangeClipping,
		ReasonDataCleaning,
		ReasonFormatStandardization,
		ReasonMissingDataHandling,
		ReasonCalibrationAdjustment,
		ReasonOther,
	}
}

// IsValid returns true if the reason code is recognised.
func (r ReasonCode) IsValid() bool {
	switch r {
	case ReasonDataCorrection, ReasonOutlierRemoval, ReasonRangeClipping,
		ReasonDataCleaning, ReasonFormatStandardization,
		ReasonMissingDataHandling, ReasonCalibrationAdjustment, ReasonOther:
		return true
	default:
		return false
	}
}

// RequiresDetails returns true if the code demands non-empty free-text
// details. Only the catch-all "other" does; every other code accepts
// optional details.
func (r ReasonCode) RequiresDetails() bool {
	return r == ReasonOther
}

// String returns the string representation.
func (r ReasonCode) String() string {
	return string(r)
}

// Description returns a human-readable description of the reason code.
func (r ReasonCode) Description() string {
	switch r {
	case ReasonDataCorrection:
		return "Data correction"
	case ReasonOutlierRemoval:
		return "Outlier removal"
	case ReasonRangeClipping:
		return "Range clipping"
	case ReasonDataCleaning:
		return "Data cleaning"
	case ReasonFormatStandardization:
		return "Format standardization"
	case ReasonMissingDataHandling:
		return "Missing data handling"
	case ReasonCalibrationAdjustment:
		return "Calibration adjustment"
	case ReasonOther:
		return "Other (details required)"
	default:
		return "Unknown"
	}
}

// ModificationRecord is an append-only audit entry tying a content
// mutation to before/after fingerprints of the canonical serialization.
// Immutable once written; never updated or deleted.
type ModificationRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// FileID identifies the modified file.
	FileID string

	// Reason classifies the modification.
	Reason ReasonCode

	// Details is free text. Required when Reason is "other".
	Details string

	// FingerprintBefore is the digest captured when editing began.
	FingerprintBefore string

	// FingerprintAfter is the digest of the committed working table.
	FingerprintAfter string

	// Author is the identity that applied the modification.
	Author Actor

	// CreatedAt is when the record was written.
	CreatedAt time.Time
}

// ApplyState is the state of a pending modification.
type ApplyState int

// Apply flow states. A pending modification moves
// EDITING -> REASON_REQUIRED -> READY -> SUBMITTING -> COMMITTED or
// FAILED; FAILED returns to READY for a user-initiated retry.
const (
	StateEditing ApplyState = iota
	StateReasonRequired
	StateReady
	StateSubmitting
	StateCommitted
	StateFailed
)

// String returns the string representation of the apply state.
func (s ApplyState) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateReasonRequired:
		return "reason_required"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
