package testing

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Dec parses decimal or panics. To be used for tests only
func Dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// AssertDecimal checks that actual is numerically equal to expected
func AssertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) bool {
	want := Dec(expected)
	if !want.Equal(actual) {
		return assert.Fail(t, fmt.Sprintf("Decimals are not equal. expected: %v, actual: %v", want, actual), msgAndArgs...)
	}
	return true
}
