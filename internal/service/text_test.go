package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainTextClean(t *testing.T) {
	sanitizer := newPlainText()

	cases := map[string]string{
		"it's Tom & Jerry <3":          "it's Tom & Jerry <3",
		"  <b>bold</b> move  ":         "bold move",
		"a <script>alert(1)</script>b": "a b",
		`say "hi" > bye`:               `say "hi" > bye`,
		"<i></i>":                      "",
		"fish &amp; chips":             "fish & chips",
	}
	for input, want := range cases {
		require.Equal(t, want, sanitizer.clean(input), input)
	}
}

func TestTooLongCountsCharacters(t *testing.T) {
	require.False(t, tooLong(strings.Repeat("é", MaxTextLength)))
	require.True(t, tooLong(strings.Repeat("a", MaxTextLength+1)))
}
