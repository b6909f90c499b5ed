package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupNormalizesCode(t *testing.T) {
	c, err := Lookup(" usd ")
	require.NoError(t, err)
	assert.Equal(t, "en-US", c.Locale)
	assert.Equal(t, "$", c.Symbol)
}

func TestLookupUnsupported(t *testing.T) {
	_, err := Lookup("XYZ")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	_, err = NewFormatter("")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestSupportedCurrenciesHaveFormatters(t *testing.T) {
	for _, c := range Supported() {
		f, err := NewFormatter(c.Code)
		require.NoError(t, err, c.Code)
		assert.NotEmpty(t, f.Format(decimal.NewFromInt(10)), c.Code)
	}
}

func TestFormatUSD(t *testing.T) {
	f, err := NewFormatter("USD")
	require.NoError(t, err)

	assert.Equal(t, "$1,234.50", f.Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.00", f.Format(decimal.Zero))
	assert.Equal(t, "-$12.30", f.Format(decimal.RequireFromString("-12.3")))
}

func TestFormatEURUsesGermanSeparatorsAndSuffix(t *testing.T) {
	f, err := NewFormatter("EUR")
	require.NoError(t, err)

	assert.Equal(t, "1.234,50 €", f.Format(decimal.RequireFromString("1234.5")))
}

func TestFormatJPYHasNoMinorUnits(t *testing.T) {
	f, err := NewFormatter("JPY")
	require.NoError(t, err)

	assert.Equal(t, 0, f.Scale())
	out := f.Format(decimal.RequireFromString("1234"))
	assert.Contains(t, out, "1,234")
	assert.NotContains(t, out, ".")
}

func TestFormatINRUsesLakhGrouping(t *testing.T) {
	f, err := NewFormatter("INR")
	require.NoError(t, err)

	assert.Equal(t, "₹12,34,567.50", f.Format(decimal.RequireFromString("1234567.5")))
}

func TestFormatGBP(t *testing.T) {
	f, err := NewFormatter("GBP")
	require.NoError(t, err)

	assert.Equal(t, "£1,234.50", f.Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-£0.99", f.Format(decimal.RequireFromString("-0.99")))
}
