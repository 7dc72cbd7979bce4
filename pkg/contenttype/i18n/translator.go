package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Translator renders catalog messages for one locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

func newTranslator(c *Catalog, tag language.Tag) *Translator {
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(c.builder)),
	}
}

// Tag returns the translator's locale.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// Sprintf translates key and formats it with args.
func (t *Translator) Sprintf(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Plural translates singular when count takes the "one" plural form in the
// translator's locale and plural otherwise, then formats it with args.
func (t *Translator) Plural(count int, singular, pluralKey string, args ...any) string {
	if IsSingular(t.tag, count) {
		return t.printer.Sprintf(singular, args...)
	}
	return t.printer.Sprintf(pluralKey, args...)
}

// IsSingular reports whether count takes the "one" form under the CLDR
// cardinal rules of tag.
func IsSingular(tag language.Tag, count int) bool {
	n := count
	if n < 0 {
		n = -n
	}
	return plural.Cardinal.MatchPlural(tag, n, 0, 0, 0, 0) == plural.One
}
