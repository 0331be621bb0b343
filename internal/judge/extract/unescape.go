package extract

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Unescape decodes the backslash escapes a script string literal may carry:
// \uXXXX (surrogate pairs included), \xXX, octal, \n, \t, \\, \' and the
// like. Malformed escapes are kept verbatim.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		if s[0] != '\\' {
			_, size := utf8.DecodeRuneInString(s)
			b.WriteString(s[:size])
			s = s[size:]
			continue
		}
		if len(s) >= 2 && (s[1] == '\'' || s[1] == '"') {
			b.WriteByte(s[1])
			s = s[2:]
			continue
		}
		if r, tail, ok := surrogatePair(s); ok {
			b.WriteRune(r)
			s = tail
			continue
		}
		value, _, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			b.WriteByte('\\')
			s = s[1:]
			continue
		}
		b.WriteRune(value)
		s = tail
	}
	return b.String()
}

// surrogatePair decodes a \uD83D\uDE00 style pair into one rune.
func surrogatePair(s string) (rune, string, bool) {
	if len(s) < 12 || s[1] != 'u' || s[6] != '\\' || s[7] != 'u' {
		return 0, s, false
	}
	hi, err := strconv.ParseUint(s[2:6], 16, 16)
	if err != nil {
		return 0, s, false
	}
	lo, err := strconv.ParseUint(s[8:12], 16, 16)
	if err != nil {
		return 0, s, false
	}
	r := utf16.DecodeRune(rune(hi), rune(lo))
	if r == utf8.RuneError {
		return 0, s, false
	}
	return r, s[12:], true
}
