package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSVTextEscapesFormulaPrefixes(t *testing.T) {
	cases := map[string]string{
		"=SUM(A1:A9)": "'=SUM(A1:A9)",
		"+1 bonus":    "'+1 bonus",
		"-5 refund":   "'-5 refund",
		"@cmd":        "'@cmd",
		"\tindented":  "'\tindented",
		"lunch":       "lunch",
		"a=b":         "a=b",
		"":            "",
		"🍔":           "🍔",
	}
	for input, want := range cases {
		assert.Equal(t, want, csvText(input), input)
	}
}
