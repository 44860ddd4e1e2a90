package domain

import "errors"

// Error taxonomy. Handlers map these to HTTP statuses; services and
// repositories only ever return sentinels from this set (wrapped or
// not) for expected failures.
var (
	// ErrDeviceExists is returned when registering an identifier that
	// is already taken.
	ErrDeviceExists = errors.New("device identifier already exists")

	// ErrDeviceNotFound is returned when a device identifier is
	// unknown.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrStatExists is returned by the storage layer when a row for
	// the (device, date) pair already exists. The ingestion pipeline
	// answers it as an "already uploaded" soft outcome, never as an
	// error.
	ErrStatExists = errors.New("statistics already uploaded")

	// ErrInvalidDate means a date path segment or query parameter is
	// not an 8-digit valid calendar date.
	ErrInvalidDate = errors.New("wrong date format")

	// ErrInvalidStats means a report is dated in the future or its
	// carrier breakdown is inconsistent.
	ErrInvalidStats = errors.New("invalid statistics")

	// ErrInvalidDateRange means a query window is reversed, in the
	// future, or otherwise unusable.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrDateRangeTooWide means a query window exceeds the maximum
	// chart span.
	ErrDateRangeTooWide = errors.New("too long date range")

	// ErrValidation means a request body failed schema validation.
	ErrValidation = errors.New("invalid request body")
)
