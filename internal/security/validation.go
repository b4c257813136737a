package security

import (
	"errors"
	"strings"

	"compliscan/scan-engine/internal/model"
)

// DefaultMaxCodeBytes bounds the accepted code payload. Scans are
// CPU-bound over attacker-influenced input; the size cap is the first line
// of defense before any matcher runs.
const DefaultMaxCodeBytes = 1 << 20

var (
	ErrEmptyCode     = errors.New("code is required and must be non-empty")
	ErrCodeTooLarge  = errors.New("code exceeds maximum size")
	ErrBlankStandard = errors.New("standards entries must be non-blank")
)

// ValidateScanRequest rejects malformed requests before the engine runs.
// Validation faults are caller errors, never silently treated as a clean
// scan. maxCodeBytes <= 0 selects DefaultMaxCodeBytes.
func ValidateScanRequest(req model.ScanRequest, maxCodeBytes int) error {
	if maxCodeBytes <= 0 {
		maxCodeBytes = DefaultMaxCodeBytes
	}
	if strings.TrimSpace(req.Code) == "" {
		return ErrEmptyCode
	}
	if len(req.Code) > maxCodeBytes {
		return ErrCodeTooLarge
	}
	for _, std := range req.Standards {
		if strings.TrimSpace(std) == "" {
			return ErrBlankStandard
		}
	}
	return nil
}
