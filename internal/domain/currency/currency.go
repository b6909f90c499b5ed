package currency

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

type Currency struct {
	Code   string
	Locale string
	Symbol string
}

var supported = []Currency{
	{Code: "USD", Locale: "en-US", Symbol: "$"},
	{Code: "EUR", Locale: "de-DE", Symbol: "€"},
	{Code: "JPY", Locale: "ja-JP", Symbol: "¥"},
	{Code: "GBP", Locale: "en-GB", Symbol: "£"},
	{Code: "INR", Locale: "en-IN", Symbol: "₹"},
}

// symbolAfter lists locales that write the symbol after the number.
var symbolAfter = map[string]bool{
	"de-DE": true,
}

func Supported() []Currency {
	out := make([]Currency, len(supported))
	copy(out, supported)
	return out
}

func Lookup(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range supported {
		if c.Code == code {
			return c, nil
		}
	}
	return Currency{}, ErrUnsupportedCurrency
}

// Formatter renders amounts the way the currency's locale writes money.
type Formatter struct {
	currency Currency
	printer  *message.Printer
	scale    int
}

func NewFormatter(code string) (*Formatter, error) {
	c, err := Lookup(code)
	if err != nil {
		return nil, err
	}

	tag, err := language.Parse(c.Locale)
	if err != nil {
		return nil, err
	}
	unit, err := xcurrency.ParseISO(c.Code)
	if err != nil {
		return nil, err
	}
	scale, _ := xcurrency.Standard.Rounding(unit)

	return &Formatter{
		currency: c,
		printer:  message.NewPrinter(tag),
		scale:    scale,
	}, nil
}

func (f *Formatter) Currency() Currency {
	return f.currency
}

func (f *Formatter) Scale() int {
	return f.scale
}

func (f *Formatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(int32(f.scale))
	digits := f.printer.Sprintf("%v", number.Decimal(rounded.Abs().InexactFloat64(), number.Scale(f.scale)))

	var formatted string
	if symbolAfter[f.currency.Locale] {
		formatted = digits + " " + f.currency.Symbol
	} else {
		formatted = f.currency.Symbol + digits
	}

	if rounded.IsNegative() {
		return "-" + formatted
	}
	return formatted
}
