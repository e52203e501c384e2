package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

func TestValidateName(t *testing.T) {
	cases := map[string]bool{
		"John Smith":            true,
		"  Mary-Jane  ":         true,
		"A":                     false,
		" ":                     false,
		"R2D2":                  false,
		strings.Repeat("a", 50): true,
		strings.Repeat("a", 51): false,
	}
	for input, ok := range cases {
		err := ValidateName("name", input)
		if ok {
			assert.NoError(t, err, input)
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, input)
	}
}

func TestValidateName_CarriesField(t *testing.T) {
	err := ValidateName("item name", "x")
	var field *apperrors.FieldError
	require.ErrorAs(t, err, &field)
	require.Equal(t, "item name", field.Field)
}

func TestValidateContact(t *testing.T) {
	assert.NoError(t, ValidateContact("555-0101"))
	assert.NoError(t, ValidateContact("+1 (555) 010-1010"))
	assert.Error(t, ValidateContact("555-1"))
	assert.Error(t, ValidateContact("555-0101x"))
	assert.Error(t, ValidateContact(strings.Repeat("1", 21)))
}

func TestValidateItemCode(t *testing.T) {
	assert.NoError(t, ValidateItemCode("CAKE1"))
	assert.NoError(t, ValidateItemCode(" choc-001 "))
	assert.Error(t, ValidateItemCode("AB"))
	assert.Error(t, ValidateItemCode("CAKE_1"))
	assert.Error(t, ValidateItemCode(strings.Repeat("A", 21)))
	assert.Equal(t, "CHOC-001", NormalizeItemCode(" choc-001 "))
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(decimal.RequireFromString("0")))
	assert.NoError(t, ValidatePrice(decimal.RequireFromString("25.99")))
	assert.NoError(t, ValidatePrice(decimal.RequireFromString("10.5")))
	assert.Error(t, ValidatePrice(decimal.RequireFromString("10.999")))
	assert.Error(t, ValidatePrice(decimal.RequireFromString("-1")))
}

func TestParsePrice(t *testing.T) {
	price, err := ParsePrice(" 20.00 ")
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.NewFromInt(20)))

	for _, raw := range []string{"", "abc", "-3", "1.234", "1e3"} {
		_, err := ParsePrice(raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, raw)
	}
}

func TestQuantity(t *testing.T) {
	assert.NoError(t, ValidateQuantity(0))
	assert.Error(t, ValidateQuantity(-1))

	qty, err := ParseQuantity("12")
	require.NoError(t, err)
	require.Equal(t, 12, qty)

	for _, raw := range []string{"-1", "1.5", "ten", "99999999999999999999999"} {
		_, err := ParseQuantity(raw)
		assert.Error(t, err, raw)
	}
}

func TestValidateAddress(t *testing.T) {
	assert.NoError(t, ValidateAddress(""))
	assert.NoError(t, ValidateAddress("123 Main St, City."))
	assert.Error(t, ValidateAddress("Flat #4"))
	assert.Error(t, ValidateAddress(strings.Repeat("a", 201)))
}
