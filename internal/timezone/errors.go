package timezone

import "errors"

var (
	// ErrInvalidZone indicates an identifier the catalog does not recognize
	ErrInvalidZone = errors.New("invalid timezone")
	// ErrConflictingInstant indicates both a timestamp and a datetime were supplied
	ErrConflictingInstant = errors.New("provide either 'timestamp' or 'datetime'+'from', not both")
	// ErrMissingInstant indicates neither a timestamp nor a datetime was supplied
	ErrMissingInstant = errors.New("either 'timestamp' or 'datetime'+'from' is required")
	// ErrMissingSourceZone indicates a datetime was supplied without its source timezone
	ErrMissingSourceZone = errors.New("'from' timezone is required when using 'datetime'")
	// ErrMalformedDatetime indicates the datetime string matches no accepted layout
	ErrMalformedDatetime = errors.New("invalid datetime")
	// ErrAmbiguousLocalTime indicates a wall-clock value that does not map to
	// exactly one instant in its zone (DST gap or overlap)
	ErrAmbiguousLocalTime = errors.New("ambiguous or invalid local time")
)

// IsValidationError reports whether err is a caller-facing bad-input error
// rather than an infrastructure fault.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidZone,
		ErrConflictingInstant,
		ErrMissingInstant,
		ErrMissingSourceZone,
		ErrMalformedDatetime,
		ErrAmbiguousLocalTime,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
