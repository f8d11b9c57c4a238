package keyer

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that carry no combining mark under NFD and would otherwise survive
// diacritic stripping.
var transliterations = map[rune]string{
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'ß': "ss",
	'ł': "l",
	'đ': "d",
	'ð': "d",
	'þ': "th",
	'ı': "i",
	'ħ': "h",
	'ŧ': "t",
	'ŋ': "n",
	'ĸ': "k",
	'ſ': "s",
}

// Casers and transform chains are stateful and not safe for concurrent use.
type normalizer struct {
	lower cases.Caser
	strip transform.Transformer
}

var normalizerPool = sync.Pool{
	New: func() any {
		return &normalizer{
			lower: cases.Lower(language.Und),
			strip: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))),
		}
	},
}

// normalize lowercases s, strips diacritics, drops punctuation and control
// characters and collapses whitespace runs into single spaces. Malformed
// UTF-8 is dropped rather than reported.
func normalize(s string) string {
	s = strings.TrimSpace(strings.ToValidUTF8(s, ""))
	if s == "" {
		return ""
	}

	n := normalizerPool.Get().(*normalizer)
	defer normalizerPool.Put(n)

	s = n.lower.String(s)
	if stripped, _, err := transform.String(n.strip, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if isNoise(r) {
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		if t, ok := transliterations[r]; ok {
			b.WriteString(t)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isNoise reports punctuation, control and format characters, plus the
// ASCII symbols that POSIX counts as punctuation.
func isNoise(r rune) bool {
	switch {
	case unicode.IsPunct(r), unicode.IsControl(r), unicode.Is(unicode.Cf, r):
		return true
	case r < utf8.RuneSelf && unicode.IsSymbol(r):
		return true
	default:
		return false
	}
}
