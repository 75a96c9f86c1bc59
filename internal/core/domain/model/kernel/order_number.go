package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"tradein/internal/pkg/errs"
)

// ErrOrderNumberIsNotConstructed indicates an OrderNumber that was not created
// through NewOrderNumber or ParseOrderNumber.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderNumber must be created via NewOrderNumber or ParseOrderNumber")

// OrderNumber is the immutable identity of a trade-in order, issued exactly
// once by the order number sequencer. Its string form is PREFIX-NNNNN with the
// numeric part zero-padded to at least five digits, e.g. "TI-00042". Numbers
// form a gapless increasing sequence per prefix under correct operation.
//
// The zero value is invalid; construct via NewOrderNumber or ParseOrderNumber.
type OrderNumber struct {
	prefix string
	value  int64

	isConstructed bool
}

// NewOrderNumber creates an OrderNumber from a prefix and a sequencer-issued
// positive value. The prefix must be non-empty and must not contain the
// separator character.
func NewOrderNumber(prefix string, value int64) (OrderNumber, error) {
	if prefix == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("prefix")
	}
	if strings.Contains(prefix, "-") {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("prefix",
			fmt.Errorf("%q must not contain '-'", prefix))
	}
	if value <= 0 {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("value",
			fmt.Errorf("%d is not greater than 0", value))
	}

	return OrderNumber{prefix: prefix, value: value, isConstructed: true}, nil
}

// ParseOrderNumber parses the PREFIX-NNNNN string form back into an OrderNumber.
func ParseOrderNumber(s string) (OrderNumber, error) {
	idx := strings.LastIndex(s, "-")
	if idx <= 0 || idx == len(s)-1 {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("orderNumber",
			fmt.Errorf("%q is not in PREFIX-NNNNN form", s))
	}

	value, err := strconv.ParseInt(s[idx+1:], 10, 64)
	if err != nil {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("orderNumber", err)
	}

	return NewOrderNumber(s[:idx], value)
}

// Validate reports whether the OrderNumber was properly constructed.
func (n OrderNumber) Validate() error {
	if !n.isConstructed {
		return ErrOrderNumberIsNotConstructed
	}
	return nil
}

// IsEqual compares two order numbers by prefix and value.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.prefix == other.prefix && n.value == other.value
}

// Prefix returns the configured order number prefix.
func (n OrderNumber) Prefix() string {
	return n.prefix
}

// Value returns the sequencer-issued integer part.
func (n OrderNumber) Value() int64 {
	return n.value
}

// String formats the order number as PREFIX-NNNNN, zero-padded to five digits.
// Values above 99999 keep their natural width.
func (n OrderNumber) String() string {
	return fmt.Sprintf("%s-%05d", n.prefix, n.value)
}
