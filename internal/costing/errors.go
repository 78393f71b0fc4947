package costing

import "fmt"

// InvalidInputError reports a parameter that violates a precondition, such
// as an amortizing divisor that is zero or negative. The engine signals it
// before performing any division and returns no partial result.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s=%v: %s", e.Field, e.Value, e.Reason)
}

// UnknownKeyError reports a lookup against a key absent from its table,
// e.g. an unlisted metal or furnace type.
type UnknownKeyError struct {
	Kind string
	Key  string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Key)
}

func requirePositive(field string, value float64) error {
	if value <= 0 {
		return &InvalidInputError{Field: field, Value: value, Reason: "must be greater than 0"}
	}
	return nil
}
