package contenttype

import (
	"strings"
	"unicode"

	"github.com/huandu/xstrings"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns a label into a lowercase, hyphen-separated identifier
// suitable as a content type slug. "Book Reviews" becomes "book-reviews" and
// "Café Menus" becomes "cafe-menus". Letters outside Latin scripts are kept.
func Slugify(label string) string {
	folded, _, err := transform.String(foldAccents(), label)
	if err != nil {
		folded = label
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '.':
			b.WriteRune('-')
		}
	}
	// xstrings ignores an unescaped leading hyphen in patterns
	return strings.Trim(xstrings.Squeeze(b.String(), `\-`), "-")
}

func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
