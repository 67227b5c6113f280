package service

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// MaxTextLength bounds message, reply and bio text in characters.
const MaxTextLength = 500

// plainText strips markup from user input and keeps the remaining text as typed.
type plainText struct {
	policy *bluemonday.Policy
}

func newPlainText() plainText {
	return plainText{policy: bluemonday.StrictPolicy()}
}

// clean removes tags and decodes the entities the policy emits, so
// "Tom & Jerry <3" is stored as written rather than as escaped HTML.
func (p plainText) clean(input string) string {
	return strings.TrimSpace(html.UnescapeString(p.policy.Sanitize(input)))
}

func tooLong(text string) bool {
	return utf8.RuneCountInString(text) > MaxTextLength
}
