// Package i18n loads translation catalogs for content type UI strings and
// renders them through golang.org/x/text/message.
//
// Catalog files are YAML:
//
//	locale: fr_FR
//	domain: content-types
//	messages:
//	  "Add New %s": "Ajouter %s"
//
// Keys are English source strings. A key with no translation is rendered as
// its own format string, so an empty catalog yields English output.
package i18n

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a catalog.
type File struct {
	Locale   string            `yaml:"locale"`
	Domain   string            `yaml:"domain"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds translations for any number of locales and domains.
type Catalog struct {
	mu      sync.RWMutex
	builder *catalog.Builder
	loaded  map[string][]language.Tag // domain -> locales
}

// NewCatalog creates an empty catalog with English as the fallback.
func NewCatalog() *Catalog {
	return &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(language.English)),
		loaded:  make(map[string][]language.Tag),
	}
}

// Load reads the catalog file at path for domain and reports whether it was
// loaded. A missing file, a parse failure or a domain mismatch all report false.
func (c *Catalog) Load(domain, path string) bool {
	return c.LoadFile(domain, path) == nil
}

// LoadFile reads the catalog file at path for domain.
func (c *Catalog) LoadFile(domain, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", path, err)
	}
	return c.LoadBytes(domain, data)
}

// LoadFS loads every *.yaml file in the root of fsys whose domain matches.
// Files for other domains are skipped.
func (c *Catalog) LoadFS(fsys fs.FS, domain string) error {
	paths, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return fmt.Errorf("glob catalogs: %w", err)
	}
	sort.Strings(paths)

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read catalog %s: %w", p, err)
		}
		file, err := parseFile(data)
		if err != nil {
			return fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if file.Domain != domain {
			continue
		}
		if err := c.add(file); err != nil {
			return fmt.Errorf("catalog %s: %w", path.Base(p), err)
		}
	}
	return nil
}

// LoadBytes parses a catalog and registers it when its domain matches.
func (c *Catalog) LoadBytes(domain string, data []byte) error {
	file, err := parseFile(data)
	if err != nil {
		return err
	}
	if file.Domain != domain {
		return fmt.Errorf("catalog domain %q does not match %q", file.Domain, domain)
	}
	return c.add(file)
}

// Set registers a single translation.
func (c *Catalog) Set(tag language.Tag, key, msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builder.SetString(tag, key, msg)
}

// Locales returns the locales loaded for domain.
func (c *Catalog) Locales(domain string) []language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]language.Tag, len(c.loaded[domain]))
	copy(out, c.loaded[domain])
	return out
}

// Translator returns a translator rendering messages for tag.
func (c *Catalog) Translator(tag language.Tag) *Translator {
	return newTranslator(c, tag)
}

func (c *Catalog) add(file File) error {
	tag, err := ParseLocale(file.Locale)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(file.Messages))
	for key := range file.Messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		if err := c.builder.SetString(tag, key, file.Messages[key]); err != nil {
			return fmt.Errorf("set %q: %w", key, err)
		}
	}
	c.loaded[file.Domain] = append(c.loaded[file.Domain], tag)
	return nil
}

// ParseLocale parses a locale such as "fr_FR" or "pt-BR".
func ParseLocale(locale string) (language.Tag, error) {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return language.Und, fmt.Errorf("locale is required")
	}
	tag, err := language.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return tag, nil
}

func parseFile(data []byte) (File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("parse catalog: %w", err)
	}
	if strings.TrimSpace(file.Domain) == "" {
		return File{}, fmt.Errorf("missing domain")
	}
	if len(file.Messages) == 0 {
		return File{}, fmt.Errorf("missing messages")
	}
	return file, nil
}
