// Package config loads content type declarations and the settings the
// executables share, from defaults, YAML files and environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/content-types/pkg/contenttype"
	"github.com/tendant/content-types/pkg/contenttype/host/memory"
	"github.com/tendant/content-types/pkg/contenttype/host/postgres"
	"github.com/tendant/content-types/pkg/contenttype/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Load constructs a Config by applying the supplied options on top of defaults.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadDeclarationsFile(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		Port:         "8080",
		Environment:  "development",
		Locale:       contenttype.DefaultLocale,
		LanguagesDir: "languages",
	}
}

// Config holds the settings for serving content type declarations
type Config struct {
	Port        string `yaml:"port" env:"CPT_PORT"`
	Environment string `yaml:"environment" env:"CPT_ENVIRONMENT"` // development, production, testing

	// Registration host: empty or "memory" for in-process, a postgres URL otherwise
	DatabaseURL string `yaml:"database_url" env:"CPT_DATABASE_URL"`

	// Localization
	Locale       string `yaml:"locale" env:"CPT_LOCALE"`
	LanguagesDir string `yaml:"languages_dir" env:"CPT_LANGUAGES_DIR"`

	// DeclarationsFile names a YAML file holding a list of declarations
	DeclarationsFile string        `yaml:"declarations_file" env:"CPT_DECLARATIONS"`
	Declarations     []Declaration `yaml:"declarations"`
}

// Declaration describes one content type
type Declaration struct {
	Singular  string         `yaml:"singular" json:"singular"`
	Plural    string         `yaml:"plural,omitempty" json:"plural,omitempty"`
	Slug      string         `yaml:"slug,omitempty" json:"slug,omitempty"`
	Overrides map[string]any `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// ResolvedSlug returns the declared slug, or one derived from the plural
// (or singular) label when none is declared.
func (d Declaration) ResolvedSlug() string {
	if d.Slug != "" {
		return d.Slug
	}
	if d.Plural != "" {
		return contenttype.Slugify(d.Plural)
	}
	return contenttype.Slugify(d.Singular)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if _, err := i18n.ParseLocale(c.Locale); err != nil {
		return fmt.Errorf("invalid locale: %w", err)
	}

	if c.DatabaseURL != "" && c.DatabaseURL != "memory" && !isPostgresURL(c.DatabaseURL) {
		return fmt.Errorf("unsupported database_url format: %s (use 'memory' or 'postgresql://...')", c.DatabaseURL)
	}

	seen := make(map[string]bool, len(c.Declarations))
	for i, d := range c.Declarations {
		if strings.TrimSpace(d.Singular) == "" {
			return fmt.Errorf("declaration %d: %w", i, contenttype.ErrSingularRequired)
		}
		slug := d.ResolvedSlug()
		if slug == "" {
			return fmt.Errorf("declaration %d (%s): %w", i, d.Singular, contenttype.ErrSlugRequired)
		}
		if seen[slug] {
			return fmt.Errorf("declaration %d: duplicate slug %q", i, slug)
		}
		seen[slug] = true
	}

	return nil
}

// Tag returns the configured locale as a language tag
func (c *Config) Tag() language.Tag {
	tag, err := i18n.ParseLocale(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// UsesPostgres reports whether registrations are stored in PostgreSQL
func (c *Config) UsesPostgres() bool {
	return isPostgresURL(c.DatabaseURL)
}

// BuildFactories constructs one factory per declaration. Locale and
// languages directory come from the config; opts apply to every factory.
func (c *Config) BuildFactories(opts ...contenttype.Option) ([]*contenttype.Factory, error) {
	factories := make([]*contenttype.Factory, 0, len(c.Declarations))
	for _, d := range c.Declarations {
		options := []contenttype.Option{
			contenttype.WithPlural(d.Plural),
			contenttype.WithOverrides(contenttype.Overrides(d.Overrides)),
			contenttype.WithLocale(c.Locale),
			contenttype.WithLanguagesDir(c.LanguagesDir),
		}
		options = append(options, opts...)

		f, err := contenttype.New(d.Singular, d.ResolvedSlug(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to build content type %s: %w", d.Singular, err)
		}
		factories = append(factories, f)
	}
	return factories, nil
}

// BuildRegistrar creates the registration host named by DatabaseURL. The
// returned close function releases any connection pool.
func (c *Config) BuildRegistrar(ctx context.Context) (contenttype.Registrar, func(), error) {
	if !c.UsesPostgres() {
		return memory.NewRegistrar(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, c.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	registrar := postgres.NewWithPool(pool)
	if err := registrar.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return registrar, pool.Close, nil
}

// WithFile reads settings from a YAML file. Environment variables still
// take precedence over file values.
func WithFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return fmt.Errorf("config file path cannot be empty")
		}
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv applies environment variable overrides.
//
//	CPT_PORT           - Server port (default: "8080")
//	CPT_ENVIRONMENT    - Runtime environment (default: "development")
//	CPT_DATABASE_URL   - "memory" or "postgresql://..." (default: memory)
//	CPT_LOCALE         - Locale whose catalog is loaded (default: "en_US")
//	CPT_LANGUAGES_DIR  - Directory holding catalogs (default: "languages")
//	CPT_DECLARATIONS   - YAML file listing content type declarations
func WithEnv() Option {
	return func(c *Config) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		return nil
	}
}

// WithDeclarations appends content type declarations
func WithDeclarations(decls ...Declaration) Option {
	return func(c *Config) error {
		c.Declarations = append(c.Declarations, decls...)
		return nil
	}
}

// WithLocale sets the locale
func WithLocale(locale string) Option {
	return func(c *Config) error {
		if locale == "" {
			return fmt.Errorf("locale cannot be empty")
		}
		c.Locale = locale
		return nil
	}
}

// WithLanguagesDir sets the catalog directory
func WithLanguagesDir(dir string) Option {
	return func(c *Config) error {
		c.LanguagesDir = dir
		return nil
	}
}

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *Config) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithDatabaseURL sets the registration host
func WithDatabaseURL(url string) Option {
	return func(c *Config) error {
		c.DatabaseURL = url
		return nil
	}
}

// loadDeclarationsFile appends the declarations listed in DeclarationsFile
func (c *Config) loadDeclarationsFile() error {
	if c.DeclarationsFile == "" {
		return nil
	}
	path := c.DeclarationsFile

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read declarations %s: %w", path, err)
	}
	var decls []Declaration
	if err := yaml.Unmarshal(data, &decls); err != nil {
		return fmt.Errorf("failed to parse declarations %s: %w", path, err)
	}
	c.Declarations = append(c.Declarations, decls...)
	return nil
}

func isPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgresql://") || strings.HasPrefix(url, "postgres://")
}
