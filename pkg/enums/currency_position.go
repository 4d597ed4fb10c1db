package enums

import "fmt"

// CurrencyPosition controls where the currency symbol renders around amounts.
type CurrencyPosition string

const (
	CurrencyPositionBefore CurrencyPosition = "before"
	CurrencyPositionAfter  CurrencyPosition = "after"
)

var validCurrencyPositions = []CurrencyPosition{
	CurrencyPositionBefore,
	CurrencyPositionAfter,
}

// String implements fmt.Stringer.
func (c CurrencyPosition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CurrencyPosition.
func (c CurrencyPosition) IsValid() bool {
	for _, candidate := range validCurrencyPositions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCurrencyPosition converts raw input into a CurrencyPosition.
func ParseCurrencyPosition(value string) (CurrencyPosition, error) {
	for _, candidate := range validCurrencyPositions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency position %q", value)
}
