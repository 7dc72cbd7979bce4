package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tendant/content-types/pkg/contenttype"
	"github.com/tendant/content-types/pkg/contenttype/config"
	"github.com/tendant/content-types/pkg/contenttype/i18n"
	"gopkg.in/yaml.v3"
)

type rootOptions struct {
	out          io.Writer
	configFile   string
	singular     string
	plural       string
	slug         string
	sets         []string
	locale       string
	languagesDir string
	format       string
}

func newRootCmd(out io.Writer) *cobra.Command {
	o := &rootOptions{out: out}

	root := &cobra.Command{
		Use:   "cptctl",
		Short: "Resolve content type declarations",
		Long: `Resolve content type declarations without a running host.

Declare a single content type with --singular (and optionally --plural,
--slug and --set), or load declarations from a YAML config with --config.

Examples:
  # Registration arguments for one type
  cptctl resolve --singular Book --plural Books --slug book

  # Hierarchical type with a custom menu name
  cptctl resolve --singular Page --set hierarchical=true --set labels.menu_name=Docs

  # Notices for a published item, as YAML
  cptctl messages --config content-types.yaml --permalink https://example.com/book/1 -o yaml

  # Bulk notices
  cptctl bulk --singular Book --plural Books --updated 1 --trashed 5

  # Catalog skeleton for translators
  cptctl catalog-template --locale fr_FR > languages/content-types-fr_FR.yaml`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&o.configFile, "config", "c", "", "YAML config file with content type declarations")
	pf.StringVar(&o.singular, "singular", "", "singular label of a content type to declare")
	pf.StringVar(&o.plural, "plural", "", "plural label (default: the singular label)")
	pf.StringVar(&o.slug, "slug", "", "content type slug (default: derived from the plural label)")
	pf.StringArrayVar(&o.sets, "set", nil, "argument override as key=value; value is parsed as YAML, dotted keys nest (repeatable)")
	pf.StringVar(&o.locale, "locale", "", "locale whose catalog is loaded (default: en_US)")
	pf.StringVar(&o.languagesDir, "languages-dir", "", "directory holding translation catalogs (default: languages)")
	pf.StringVarP(&o.format, "output", "o", "json", "output format: json or yaml")

	root.AddCommand(
		newResolveCmd(o),
		newMessagesCmd(o),
		newBulkCmd(o),
		newCatalogTemplateCmd(o),
	)
	return root
}

func newResolveCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print the registration arguments of each declared content type",
		RunE: func(cmd *cobra.Command, args []string) error {
			factories, err := o.factories(cmd.Context())
			if err != nil {
				return err
			}
			out := make(map[string]contenttype.Arguments, len(factories))
			for _, f := range factories {
				out[f.Slug()] = f.ResolveArguments()
			}
			return o.write(out)
		},
	}
}

func newMessagesCmd(o *rootOptions) *cobra.Command {
	var (
		itemID      string
		permalink   string
		publishedAt string
		revision    string
	)

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Print the single-action notices of each declared content type",
		RunE: func(cmd *cobra.Command, args []string) error {
			mc := contenttype.MessageContext{Revision: revision}
			if itemID != "" {
				id, err := uuid.Parse(itemID)
				if err != nil {
					return fmt.Errorf("invalid item ID %q: %w", itemID, err)
				}
				mc.ItemID = id
			}
			if publishedAt != "" {
				t, err := time.Parse(time.RFC3339, publishedAt)
				if err != nil {
					return fmt.Errorf("invalid publish date %q: %w", publishedAt, err)
				}
				mc.PublishedAt = t
			}
			mc.Permalinks = contenttype.PermalinkFunc(func(uuid.UUID) string {
				return permalink
			})

			factories, err := o.factories(cmd.Context())
			if err != nil {
				return err
			}
			tables := contenttype.MessageTables{}
			for _, f := range factories {
				tables = f.SingleActionMessages(tables, mc)
			}
			return o.write(tables)
		},
	}

	cmd.Flags().StringVar(&itemID, "item-id", "", "UUID of the item")
	cmd.Flags().StringVar(&permalink, "permalink", "", "public URL of the item")
	cmd.Flags().StringVar(&publishedAt, "published-at", "", "scheduled publish date (RFC 3339)")
	cmd.Flags().StringVar(&revision, "revision", "", "revision being restored")
	return cmd
}

func newBulkCmd(o *rootOptions) *cobra.Command {
	counts := make(map[contenttype.BulkOutcome]*int, len(contenttype.BulkOutcomes))

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Print the bulk-action notices of each declared content type",
		RunE: func(cmd *cobra.Command, args []string) error {
			bulk := make(contenttype.BulkCounts, len(counts))
			for outcome, n := range counts {
				bulk[outcome] = *n
			}

			factories, err := o.factories(cmd.Context())
			if err != nil {
				return err
			}
			tables := contenttype.BulkMessageTables{}
			for _, f := range factories {
				tables = f.BulkActionMessages(tables, bulk)
			}
			return o.write(tables)
		},
	}

	for _, outcome := range contenttype.BulkOutcomes {
		n := new(int)
		counts[outcome] = n
		cmd.Flags().IntVar(n, string(outcome), 0, fmt.Sprintf("number of items %s", outcome))
	}
	return cmd
}

func newCatalogTemplateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog-template",
		Short: "Print a translation catalog listing every UI source string",
		RunE: func(cmd *cobra.Command, args []string) error {
			locale := o.locale
			if locale == "" {
				locale = contenttype.DefaultLocale
			}
			if _, err := i18n.ParseLocale(locale); err != nil {
				return err
			}

			file := i18n.File{
				Locale:   locale,
				Domain:   contenttype.TextDomain,
				Messages: make(map[string]string),
			}
			for _, key := range contenttype.TranslatableStrings() {
				file.Messages[key] = key
			}

			enc := yaml.NewEncoder(o.out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(file)
		},
	}
}

// factories builds and localizes a factory per declared content type
func (o *rootOptions) factories(ctx context.Context) ([]*contenttype.Factory, error) {
	var opts []config.Option
	if o.configFile != "" {
		opts = append(opts, config.WithFile(o.configFile))
	}
	if o.locale != "" {
		opts = append(opts, config.WithLocale(o.locale))
	}
	if o.languagesDir != "" {
		opts = append(opts, config.WithLanguagesDir(o.languagesDir))
	}
	if o.singular != "" {
		overrides, err := parseSets(o.sets)
		if err != nil {
			return nil, err
		}
		opts = append(opts, config.WithDeclarations(config.Declaration{
			Singular:  o.singular,
			Plural:    o.plural,
			Slug:      o.slug,
			Overrides: overrides,
		}))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}
	if len(cfg.Declarations) == 0 {
		return nil, fmt.Errorf("no content types declared: use --singular or --config")
	}

	catalog := i18n.NewCatalog()
	factories, err := cfg.BuildFactories(
		contenttype.WithTranslator(catalog.Translator(cfg.Tag())),
		contenttype.WithLocalizer(catalog),
	)
	if err != nil {
		return nil, err
	}
	for _, f := range factories {
		f.LoadTranslations(ctx)
	}
	return factories, nil
}

func (o *rootOptions) write(v any) error {
	switch o.format {
	case "json":
		enc := json.NewEncoder(o.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(o.out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q (use json or yaml)", o.format)
	}
}

// parseSets turns key=value pairs into overrides. "labels.menu_name=Docs"
// sets one entry of the labels map.
func parseSets(sets []string) (map[string]any, error) {
	overrides := make(map[string]any, len(sets))
	for _, set := range sets {
		key, raw, ok := strings.Cut(set, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", set)
		}

		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", set, err)
		}

		parent, child, nested := strings.Cut(key, ".")
		if !nested {
			overrides[key] = value
			continue
		}
		m, _ := overrides[parent].(map[string]any)
		if m == nil {
			m = make(map[string]any)
			overrides[parent] = m
		}
		m[child] = value
	}
	return overrides, nil
}
