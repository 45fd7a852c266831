package render

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugify turns a display name into an ASCII anchor: accents are dropped,
// letters lowercased and every other run of characters becomes one hyphen.
func slugify(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// anchors hands out unique anchor names for one document
type anchors struct {
	used map[string]bool
}

func newAnchors() *anchors {
	return &anchors{used: make(map[string]bool)}
}

// claim returns the first free name among base, fallback, then fallback-2,
// fallback-3 and so on
func (a *anchors) claim(base, fallback string) string {
	if base == "" {
		base = "section"
	}
	if !a.used[base] {
		a.used[base] = true
		return base
	}
	if fallback == "" {
		fallback = base
	}
	name := fallback
	for n := 2; a.used[name]; n++ {
		name = fallback + "-" + strconv.Itoa(n)
	}
	a.used[name] = true
	return name
}
