// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strconv"
	"strings"
)

// noSpaceAfter lists the bytes that may directly follow a closing math
// delimiter.
const noSpaceAfter = ".,;:!?)"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeMath escapes & < > " and leaves TeX delimiters intact so MathJax can
// typeset the result. A run of '$' gets a space before it unless it starts
// the text or follows whitespace, and a space after it unless it ends the
// text or is followed by whitespace or closing punctuation. "\(" and "\)"
// are padded the same way.
func EscapeMath(s string) string {
	s = htmlEscaper.Replace(s)

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		switch {
		case s[i] == '$':
			j := i
			for j < len(s) && s[j] == '$' {
				j++
			}
			padBefore(&b, s, i)
			b.WriteString(s[i:j])
			padAfter(&b, s, j)
			i = j
		case strings.HasPrefix(s[i:], `\(`):
			padBefore(&b, s, i)
			b.WriteString(`\(`)
			i += 2
		case strings.HasPrefix(s[i:], `\)`):
			b.WriteString(`\)`)
			padAfter(&b, s, i+2)
			i += 2
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

func padBefore(b *strings.Builder, s string, i int) {
	if i > 0 && !isSpace(s[i-1]) {
		b.WriteByte(' ')
	}
}

func padAfter(b *strings.Builder, s string, j int) {
	if j < len(s) && !isSpace(s[j]) && strings.IndexByte(noSpaceAfter, s[j]) < 0 {
		b.WriteByte(' ')
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// Thousands formats n with comma group separators: 12345 → "12,345".
func Thousands(n int) string {
	neg := n < 0
	digits := strconv.Itoa(n)
	if neg {
		digits = digits[1:]
	}
	if len(digits) <= 3 {
		if neg {
			return "-" + digits
		}
		return digits
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
