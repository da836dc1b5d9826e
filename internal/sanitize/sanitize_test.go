package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace_only", "  \t\n  ", ""},
		{"trims", "  merhaba  ", "merhaba"},
		{"collapses_internal", "dolar \t kuru\n\nne  kadar", "dolar kuru ne kadar"},
		{"already_clean", "hava nasıl", "hava nasıl"},
		{"turkish_runes", "  güneş   neden  sıcak?  ", "güneş neden sıcak?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in, DefaultMaxLen))
		})
	}
}

func TestText_Truncates(t *testing.T) {
	long := strings.Repeat("a", 700)
	got := Text(long, DefaultMaxLen)
	assert.Len(t, got, DefaultMaxLen)

	// Rune-safe truncation for multibyte text.
	turkish := strings.Repeat("ş", 700)
	got = Text(turkish, DefaultMaxLen)
	assert.Equal(t, DefaultMaxLen, len([]rune(got)))
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"  dolar   kuru ne kadar? ",
		strings.Repeat("kelime ", 200),
		"",
		"tek",
	}
	for _, in := range inputs {
		once := Text(in, DefaultMaxLen)
		twice := Text(once, DefaultMaxLen)
		assert.Equal(t, once, twice)
	}
}

func TestText_ZeroMaxLenUsesDefault(t *testing.T) {
	long := strings.Repeat("b", 700)
	assert.Len(t, Text(long, 0), DefaultMaxLen)
}
