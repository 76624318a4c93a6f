package selector

import (
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Hash is the classic 31-multiplier string hash over UTF-16 code units with
// 32-bit signed wraparound. It reproduces Java's String.hashCode.
func Hash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(unit)
	}
	return h
}

// SelectIndex maps a seed phrase to a stable index in [0, poolSize).
// The phrase is normalized with Normalize first. poolSize <= 0 yields 0.
func SelectIndex(seedPhrase string, poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	h := int64(Hash(Normalize(seedPhrase)))
	if h < 0 {
		h = -h
	}
	return int(h % int64(poolSize))
}

// Normalize trims and lowercases a phrase with ECMAScript rules: trim also
// strips U+FEFF but keeps U+0085, U+0130 lowercases to "i\u0307", and a
// word-final capital sigma becomes final sigma.
func Normalize(s string) string {
	s = strings.TrimFunc(s, isECMASpace)

	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch r {
		case 'İ':
			b.WriteString("i\u0307")
		case 'Σ':
			if finalSigma(s, i) {
				b.WriteRune('ς')
			} else {
				b.WriteRune('σ')
			}
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func isECMASpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return r == '\uFEFF' || unicode.IsSpace(r)
}

// finalSigma reports whether the sigma at byte offset i ends a word: a cased
// letter precedes it and none follows, skipping case-ignorable runes.
func finalSigma(s string, i int) bool {
	before := false
	for j := i; j > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:j])
		j -= size
		if caseIgnorable(r) {
			continue
		}
		before = cased(r)
		break
	}
	if !before {
		return false
	}
	for _, r := range s[i+utf8.RuneLen('Σ'):] {
		if caseIgnorable(r) {
			continue
		}
		return !cased(r)
	}
	return true
}

func cased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

func caseIgnorable(r rune) bool {
	switch r {
	case '\'', '.', ':', '^', '`', '·', '’':
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf, unicode.Lm, unicode.Sk)
}
