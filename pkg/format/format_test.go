package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$85,000", Currency(85000))
	assert.Equal(t, "$100", Currency(100))
	assert.Equal(t, "$62.50", Currency(62.5))
	assert.Equal(t, "$1,234,567", Currency(1234567))
}

func TestCompensation(t *testing.T) {
	assert.Equal(t, "$85,000/year", Compensation(85000, false))
	assert.Equal(t, "$100/hour", Compensation(100, true))
}

func TestName(t *testing.T) {
	assert.Equal(t, "Jane Doe", Name("  Jane \t  Doe "))
	// Decomposed e + combining acute composes to a single rune
	assert.Equal(t, "Ren\u00e9 Roy", Name("Rene\u0301 Roy"))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "jose-nunez", Slug("José Núñez"))
	assert.Equal(t, "jane-o-neil", Slug("  Jane O'Neil "))
	assert.Equal(t, "", Slug("!!!"))
}
