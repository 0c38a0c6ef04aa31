package contract

import "fmt"

// ValidationIssue is a single violated constraint with its location.
type ValidationIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// ValidationResult aggregates every issue found while validating a payload.
type ValidationResult struct {
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AddError appends an issue.
func (r *ValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, ValidationIssue{Path: path, Message: message})
}

// Merge combines another ValidationResult into this one.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
}

// ToError converts the result to a validation *Error if invalid, nil if valid.
func (r *ValidationResult) ToError(shape Shape) error {
	if r.Valid() {
		return nil
	}

	msg := fmt.Sprintf("%s: %s", shape, r.Errors[0])
	if len(r.Errors) > 1 {
		msg = fmt.Sprintf("%s: validation failed with %d errors", shape, len(r.Errors))
	}

	return &Error{
		Code:    ErrCodeValidation,
		Message: msg,
		Issues:  r.Errors,
		Details: map[string]any{
			"shape":       string(shape),
			"error_count": len(r.Errors),
		},
	}
}
