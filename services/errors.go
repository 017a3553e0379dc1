package services

import "errors"

// ErrNotFound reports that a referenced entity does not exist
var ErrNotFound = errors.New("not found")

// ValidationError reports input of the wrong shape. Nothing has been written
// when it is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// BusinessRuleError reports a violated domain rule with a human-readable
// reason (insufficient capacity, duplicate waiting entry, duplicate email).
// Nothing has been written when it is returned.
type BusinessRuleError struct {
	Reason string
}

func (e *BusinessRuleError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsBusinessRule reports whether err is a BusinessRuleError
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}
