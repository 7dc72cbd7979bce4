package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tendant/content-types/pkg/contenttype"
)

// MaxSlugLength is the longest slug the host accepts.
const MaxSlugLength = 20

// ErrInvalidSlug is returned for slugs the host cannot store.
var ErrInvalidSlug = errors.New("content type slugs must be between 1 and 20 characters in length")

// ErrNotRegistered is returned by Get for unknown slugs.
var ErrNotRegistered = errors.New("content type not registered")

// Registrar implements contenttype.Registrar using in-memory storage.
// It normalizes arguments the way a host would: the slug and display label
// are recorded and capability names are generated.
type Registrar struct {
	mu    sync.RWMutex
	types map[string]contenttype.Arguments
}

var _ contenttype.Registrar = (*Registrar)(nil)

// NewRegistrar creates a new in-memory registrar
func NewRegistrar() *Registrar {
	return &Registrar{
		types: make(map[string]contenttype.Arguments),
	}
}

type capabilityOptions struct {
	CapabilityType any `mapstructure:"capability_type"`
}

// RegisterContentType stores a canonical copy of args under slug and returns it
func (r *Registrar) RegisterContentType(ctx context.Context, slug string, args contenttype.Arguments) (contenttype.Arguments, error) {
	if len(slug) == 0 || len(slug) > MaxSlugLength {
		return nil, ErrInvalidSlug
	}

	canonical, err := canonicalize(slug, args)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.types[slug] = canonical
	return copyArguments(canonical), nil
}

// Get returns a copy of the canonical arguments stored for slug
func (r *Registrar) Get(ctx context.Context, slug string) (contenttype.Arguments, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	args, ok := r.types[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, slug)
	}
	return copyArguments(args), nil
}

// Slugs returns the registered slugs in sorted order
func (r *Registrar) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slugs := make([]string, 0, len(r.types))
	for slug := range r.types {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

func canonicalize(slug string, args contenttype.Arguments) (contenttype.Arguments, error) {
	var opts capabilityOptions
	if err := args.Decode(&opts); err != nil {
		return nil, fmt.Errorf("decode arguments for %s: %w", slug, err)
	}

	canonical := copyArguments(args)
	canonical["name"] = slug

	if name, ok := canonical.Labels().Get(contenttype.LabelName); ok {
		canonical["label"] = name
	}

	singularBase, pluralBase := capabilityBases(opts.CapabilityType)
	canonical["capability_type"] = singularBase
	if _, ok := canonical["map_meta_cap"]; !ok {
		canonical["map_meta_cap"] = true
	}
	canonical["cap"] = map[string]string{
		"edit_post":          "edit_" + singularBase,
		"read_post":          "read_" + singularBase,
		"delete_post":        "delete_" + singularBase,
		"edit_posts":         "edit_" + pluralBase,
		"edit_others_posts":  "edit_others_" + pluralBase,
		"publish_posts":      "publish_" + pluralBase,
		"read_private_posts": "read_private_" + pluralBase,
		"create_posts":       "edit_" + pluralBase,
	}
	return canonical, nil
}

// capabilityBases accepts "book" or ["book", "books"].
func capabilityBases(v any) (string, string) {
	switch t := v.(type) {
	case string:
		if t != "" {
			return t, t + "s"
		}
	case []string:
		if len(t) >= 2 {
			return t[0], t[1]
		}
		if len(t) == 1 {
			return t[0], t[0] + "s"
		}
	case []any:
		if len(t) >= 2 {
			return fmt.Sprint(t[0]), fmt.Sprint(t[1])
		}
		if len(t) == 1 {
			return fmt.Sprint(t[0]), fmt.Sprint(t[0]) + "s"
		}
	}
	return "post", "posts"
}

// copyArguments copies the top level and the label set
func copyArguments(args contenttype.Arguments) contenttype.Arguments {
	out := make(contenttype.Arguments, len(args))
	for k, v := range args {
		out[k] = v
	}
	if labels := args.Labels(); labels != nil {
		labelsCopy := make(contenttype.Labels, len(labels))
		for k, v := range labels {
			labelsCopy[k] = v
		}
		out[contenttype.ArgLabels] = labelsCopy
	}
	return out
}
