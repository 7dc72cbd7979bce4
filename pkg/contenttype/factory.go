package contenttype

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/tendant/content-types/pkg/contenttype/i18n"
	"golang.org/x/text/language"
)

// TextDomain is the translation domain of the factory's UI strings.
const TextDomain = "content-types"

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en_US"

// Factory derives labels, registration arguments and admin messages for one
// content type. A Factory is not safe for concurrent use.
type Factory struct {
	singular  string
	plural    string
	slug      string
	overrides Overrides

	args Arguments

	translator    Translator
	columns       ColumnProvider
	registrar     Registrar
	localizer     Localizer
	locale        string
	languagesDir  string
	screens       ScreenProbe
	dateFormatter DateFormatter
	registry      *Registry
	logger        *slog.Logger

	l10nLoaded bool
}

// Option represents a functional option for configuring a Factory
type Option func(*Factory)

// WithPlural sets the plural label. An empty plural falls back to the singular.
func WithPlural(plural string) Option {
	return func(f *Factory) {
		f.plural = plural
	}
}

// WithOverrides sets the registration argument overrides
func WithOverrides(overrides Overrides) Option {
	return func(f *Factory) {
		f.overrides = overrides
	}
}

// WithTranslator sets the translator used for every derived string
func WithTranslator(t Translator) Option {
	return func(f *Factory) {
		f.translator = t
	}
}

// WithColumns sets the admin column provider
func WithColumns(p ColumnProvider) Option {
	return func(f *Factory) {
		f.columns = p
	}
}

// WithRegistrar sets the host registration call used by Register
func WithRegistrar(r Registrar) Option {
	return func(f *Factory) {
		f.registrar = r
	}
}

// WithLocalizer sets the catalog loader used by LoadTranslations
func WithLocalizer(l Localizer) Option {
	return func(f *Factory) {
		f.localizer = l
	}
}

// WithLocale sets the locale whose catalog LoadTranslations loads
func WithLocale(locale string) Option {
	return func(f *Factory) {
		f.locale = locale
	}
}

// WithLanguagesDir sets the directory holding translation catalogs
func WithLanguagesDir(dir string) Option {
	return func(f *Factory) {
		f.languagesDir = dir
	}
}

// WithScreenProbe sets how the title hook finds the current admin screen
func WithScreenProbe(p ScreenProbe) Option {
	return func(f *Factory) {
		f.screens = p
	}
}

// WithDateFormatter sets the formatter for scheduled-publish dates
func WithDateFormatter(d DateFormatter) Option {
	return func(f *Factory) {
		f.dateFormatter = d
	}
}

// WithRegistry records the factory in r once registration succeeds
func WithRegistry(r *Registry) Option {
	return func(f *Factory) {
		f.registry = r
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// New declares a content type. singular and slug are required; a missing
// value is a programming error and the declaration must not be registered.
func New(singular, slug string, options ...Option) (*Factory, error) {
	if singular == "" {
		return nil, &ContentTypeError{Slug: slug, Op: "construct", Err: ErrSingularRequired}
	}
	if slug == "" {
		return nil, &ContentTypeError{Op: "construct", Err: ErrSlugRequired}
	}

	f := &Factory{
		singular:     singular,
		slug:         slug,
		locale:       DefaultLocale,
		languagesDir: "languages",
	}

	for _, option := range options {
		option(f)
	}

	if f.plural == "" {
		f.plural = f.singular
	}
	if f.overrides == nil {
		f.overrides = Overrides{}
	}
	if f.translator == nil {
		f.translator = i18n.NewCatalog().Translator(language.English)
	}
	if f.columns == nil {
		f.columns = PassthroughColumns{}
	}
	if f.localizer == nil {
		f.localizer = NoopLocalizer{}
	}
	if f.screens == nil {
		f.screens = ContextScreenProbe{}
	}
	if f.dateFormatter == nil {
		f.dateFormatter = LayoutDateFormatter{}
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f, nil
}

// Slug returns the content type's registered identifier
func (f *Factory) Slug() string {
	return f.slug
}

// Singular returns the singular label
func (f *Factory) Singular() string {
	return f.singular
}

// Plural returns the plural label
func (f *Factory) Plural() string {
	return f.plural
}

// Spec returns the singular, plural and slug as declared
func (f *Factory) Spec() Spec {
	return Spec{Singular: f.singular, Plural: f.plural, Slug: f.slug}
}

// Hierarchical reports whether the overrides declare a parent/child type
func (f *Factory) Hierarchical() bool {
	return truthy(f.overrides[ArgHierarchical])
}

// ResolveArguments returns the registration arguments: defaults overlaid by
// the overrides, with derived labels overlaid by the override labels. The
// result is memoized; repeated calls return the same map.
func (f *Factory) ResolveArguments() Arguments {
	if f.args != nil {
		return f.args
	}

	args := defaultArguments()
	for key, value := range f.overrides {
		args[key] = value
	}

	labels := f.deriveLabels()
	for key, value := range toLabels(args[ArgLabels]) {
		labels[key] = value
	}
	args[ArgLabels] = labels

	f.args = args
	return f.args
}

// Arg returns one resolved argument
func (f *Factory) Arg(key string) (any, bool) {
	v, ok := f.ResolveArguments()[key]
	return v, ok
}

// Register hands the resolved arguments to the host. A host failure is
// returned wrapped in ErrRegistrationFailed and must be treated as fatal for
// this content type. On success the host's canonical arguments replace the
// memoized ones.
func (f *Factory) Register(ctx context.Context) error {
	if f.registrar == nil {
		return &ContentTypeError{Slug: f.slug, Op: "register", Err: ErrRegistrarRequired}
	}

	canonical, err := f.registrar.RegisterContentType(ctx, f.slug, f.ResolveArguments())
	if err != nil {
		f.logger.Error("Failed to register content type", "slug", f.slug, "err", err)
		return &ContentTypeError{
			Slug: f.slug,
			Op:   "register",
			Err:  fmt.Errorf("%w: %w", ErrRegistrationFailed, err),
		}
	}

	if canonical != nil {
		f.args = canonical
	}
	if f.registry != nil {
		f.registry.Add(f)
	}

	f.logger.Debug("Registered content type", "slug", f.slug, "singular", f.singular)
	return nil
}

// LoadTranslations loads the catalog for the configured locale once. It
// reports whether a catalog is loaded.
func (f *Factory) LoadTranslations(ctx context.Context) bool {
	if f.l10nLoaded {
		return true
	}

	path := filepath.Join(f.languagesDir, fmt.Sprintf("%s-%s.yaml", TextDomain, f.locale))
	f.l10nLoaded = f.localizer.Load(TextDomain, path)
	if !f.l10nLoaded {
		f.logger.Debug("No translation catalog loaded", "domain", TextDomain, "path", path)
	}
	return f.l10nLoaded
}

func defaultArguments() Arguments {
	return Arguments{
		ArgLabels:            Labels{},
		ArgPublic:            true,
		ArgPubliclyQueryable: true,
		ArgShowUI:            true,
		ArgShowInMenu:        true,
		ArgHasArchive:        true,
		ArgSupports:          []string{"title", "editor", "excerpt"},
	}
}
