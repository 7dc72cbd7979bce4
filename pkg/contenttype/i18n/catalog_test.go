package i18n

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const frCatalog = `locale: fr_FR
domain: content-types
messages:
  "Add New %s": "Ajouter %s"
  "%[1]d %[2]s updated.": "%[1]d %[2]s mis à jour."
  "%[1]d %[3]s updated.": "%[1]d %[3]s mis à jour."
`

func TestCatalog_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content-types-fr_FR.yaml")
	require.NoError(t, os.WriteFile(path, []byte(frCatalog), 0o644))

	c := NewCatalog()
	assert.True(t, c.Load("content-types", path))

	fr := language.MustParse("fr-FR")
	assert.Equal(t, []language.Tag{fr}, c.Locales("content-types"))
	assert.Empty(t, c.Locales("other"))

	tr := c.Translator(fr)
	assert.Equal(t, fr, tr.Tag())
	assert.Equal(t, "Ajouter Livre", tr.Sprintf("Add New %s", "Livre"))
	assert.Equal(t, "Edit Livre", tr.Sprintf("Edit %s", "Livre"))
}

func TestCatalog_LoadFailures(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "locale: [fr"},
		{"missing domain", "locale: fr_FR\nmessages:\n  a: b\n"},
		{"missing messages", "locale: fr_FR\ndomain: content-types\n"},
		{"other domain", "locale: fr_FR\ndomain: other\nmessages:\n  a: b\n"},
		{"missing locale", "domain: content-types\nmessages:\n  a: b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			c := NewCatalog()
			assert.False(t, c.Load("content-types", path))
			assert.Error(t, c.LoadFile("content-types", path))
		})
	}

	t.Run("missing file", func(t *testing.T) {
		c := NewCatalog()
		assert.False(t, c.Load("content-types", filepath.Join(dir, "nope.yaml")))
	})
}

func TestCatalog_LoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"content-types-fr_FR.yaml": {Data: []byte(frCatalog)},
		"content-types-de_DE.yaml": {Data: []byte("locale: de_DE\ndomain: content-types\nmessages:\n  \"Add New %s\": \"%s hinzufügen\"\n")},
		"other-fr_FR.yaml":         {Data: []byte("locale: fr_FR\ndomain: other\nmessages:\n  \"Add New %s\": \"Nouveau %s\"\n")},
		"README.md":                {Data: []byte("not a catalog")},
	}

	c := NewCatalog()
	require.NoError(t, c.LoadFS(fsys, "content-types"))

	assert.Len(t, c.Locales("content-types"), 2)
	assert.Equal(t, "Ajouter Livre", c.Translator(language.MustParse("fr-FR")).Sprintf("Add New %s", "Livre"))
	assert.Equal(t, "Buch hinzufügen", c.Translator(language.MustParse("de-DE")).Sprintf("Add New %s", "Buch"))
}

func TestCatalog_UnknownKeyFallsBackToSource(t *testing.T) {
	c := NewCatalog()
	tr := c.Translator(language.English)

	assert.Equal(t, "Add New Book", tr.Sprintf("Add New %s", "Book"))
	assert.Equal(t, "Book draft updated.", tr.Sprintf("%s draft updated.", "Book"))
}

func TestTranslator_Plural(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.LoadBytes("content-types", []byte(frCatalog)))

	en := c.Translator(language.English)
	assert.Equal(t, "1 Book updated.", en.Plural(1, "%[1]d %[2]s updated.", "%[1]d %[3]s updated.", 1, "Book", "Books"))
	assert.Equal(t, "5 Books updated.", en.Plural(5, "%[1]d %[2]s updated.", "%[1]d %[3]s updated.", 5, "Book", "Books"))
	assert.Equal(t, "0 Books updated.", en.Plural(0, "%[1]d %[2]s updated.", "%[1]d %[3]s updated.", 0, "Book", "Books"))

	fr := c.Translator(language.MustParse("fr-FR"))
	assert.Equal(t, "0 Livre mis à jour.", fr.Plural(0, "%[1]d %[2]s updated.", "%[1]d %[3]s updated.", 0, "Livre", "Livres"))
	assert.Equal(t, "2 Livres mis à jour.", fr.Plural(2, "%[1]d %[2]s updated.", "%[1]d %[3]s updated.", 2, "Livre", "Livres"))
}

func TestIsSingular(t *testing.T) {
	tests := []struct {
		name  string
		tag   language.Tag
		count int
		want  bool
	}{
		{"english one", language.English, 1, true},
		{"english zero", language.English, 0, false},
		{"english many", language.English, 5, false},
		{"english negative one", language.English, -1, true},
		{"french zero", language.French, 0, true},
		{"french one", language.French, 1, true},
		{"french two", language.French, 2, false},
		{"japanese one", language.Japanese, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSingular(tt.tag, tt.count))
		})
	}
}

func TestParseLocale(t *testing.T) {
	tag, err := ParseLocale("pt_BR")
	require.NoError(t, err)
	assert.Equal(t, language.MustParse("pt-BR"), tag)

	tag, err = ParseLocale(" en-US ")
	require.NoError(t, err)
	assert.Equal(t, language.AmericanEnglish, tag)

	_, err = ParseLocale("")
	assert.Error(t, err)

	_, err = ParseLocale("not a locale!")
	assert.Error(t, err)
}

func TestCatalog_Set(t *testing.T) {
	c := NewCatalog()
	de := language.German
	require.NoError(t, c.Set(de, "%s Title", "%s-Titel"))

	assert.Equal(t, "Buch-Titel", c.Translator(de).Sprintf("%s Title", "Buch"))
}
