package errorx

import (
	"fmt"
	"strings"
)

type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every violated field constraint of a request, not
// only the first one.
type ValidationError struct {
	Violations []FieldViolation
}

func (e ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		reasons = append(reasons, fmt.Sprintf("%s %s", v.Field, v.Reason))
	}

	return strings.Join(reasons, "; ")
}

// Violations accumulates field violations while a request is checked. Use its
// Error method to get the final ValidationError, or nil if nothing was added.
type Violations struct {
	violations []FieldViolation
}

func (v *Violations) Add(field, format string, a ...any) {
	v.violations = append(v.violations, FieldViolation{
		Field:  field,
		Reason: fmt.Sprintf(format, a...),
	})
}

func (v *Violations) Error() error {
	if len(v.violations) == 0 {
		return nil
	}

	return ValidationError{Violations: v.violations}
}
