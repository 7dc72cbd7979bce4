package contenttype

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Registrar is the host's content type registration call. On success it
// returns the host's canonical form of the arguments.
type Registrar interface {
	RegisterContentType(ctx context.Context, slug string, args Arguments) (Arguments, error)
}

// Dispatcher attaches callbacks to the host's named lifecycle points.
// argCount bounds how many dispatch arguments the callback receives; for
// filters it includes the filtered value.
type Dispatcher interface {
	AddAction(name string, fn Action, priority, argCount int)
	AddFilter(name string, fn Filter, priority, argCount int)
}

// Localizer loads a translation catalog for a text domain from a file.
type Localizer interface {
	Load(domain, path string) bool
}

// Translator renders UI strings. Keys are English source strings in fmt
// syntax and are used verbatim when no translation exists.
type Translator interface {
	Sprintf(key string, args ...any) string
	// Plural picks singular or plural by count under the locale's plural
	// rules, then formats it with args.
	Plural(count int, singular, plural string, args ...any) string
}

// ScreenProbe reports the admin screen serving the current request.
type ScreenProbe interface {
	CurrentScreen(ctx context.Context) (Screen, bool)
}

// Permalinker produces the public URL of an item.
type Permalinker interface {
	Permalink(itemID uuid.UUID) string
}

// PermalinkFunc adapts a function to Permalinker.
type PermalinkFunc func(itemID uuid.UUID) string

// Permalink calls f(itemID).
func (f PermalinkFunc) Permalink(itemID uuid.UUID) string {
	return f(itemID)
}

// DateFormatter renders an item's publish date using a layout.
type DateFormatter interface {
	FormatDate(layout string, t time.Time) string
}

// ColumnProvider customizes the admin list table of a content type. Embed
// PassthroughColumns to override only some of the methods.
type ColumnProvider interface {
	Columns(columns Columns) Columns
	SortableColumns(sortable SortableColumns) SortableColumns
	DisplayColumn(w io.Writer, column string, itemID uuid.UUID)
}
