// Package types defines shared types used across the mcloud OAuth2 server core.
package types

import "fmt"

// ErrorType categorizes failures surfaced by the service layer so that an
// outer transport layer can map them to response codes.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeInternal   ErrorType = "internal"
)

// PageRequest describes one page of a paged scan: an offset into the ordered
// result set and the maximum number of records to return.
type PageRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalize clamps the page request to sane bounds. Zero or negative limits
// fall back to defaultLimit, limits above maxLimit are capped, and negative
// offsets become zero.
func (p PageRequest) Normalize(defaultLimit, maxLimit int) PageRequest {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// String returns a compact representation, useful in log fields.
func (p PageRequest) String() string {
	return fmt.Sprintf("limit=%d offset=%d", p.Limit, p.Offset)
}
