package analysis

import (
	"errors"
	"fmt"
)

// ErrDomainViolation marks input that indicates an upstream data-integrity
// bug (negative durations, non-positive heart rates). Missing data degrades
// locally and never produces this error; invalid data always does.
var ErrDomainViolation = errors.New("domain violation")

func domainErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDomainViolation, fmt.Sprintf(format, args...))
}
