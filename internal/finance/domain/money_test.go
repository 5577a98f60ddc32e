package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"12.34", 1234},
		{"0.05", 5},
		{"100", 10000},
		{"100.5", 10050},
		{"-3.25", -325},
		{"0", 0},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "12.345", "1,50"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.34", FormatAmount(1234))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "100.00", FormatAmount(10000))
	assert.Equal(t, "-3.25", FormatAmount(-325))
}
