package contenttype

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// PassthroughColumns is the default ColumnProvider.
// It returns column sets unchanged and displays nothing.
type PassthroughColumns struct{}

// Columns returns columns unchanged
func (PassthroughColumns) Columns(columns Columns) Columns {
	return columns
}

// SortableColumns returns sortable unchanged
func (PassthroughColumns) SortableColumns(sortable SortableColumns) SortableColumns {
	return sortable
}

// DisplayColumn writes nothing
func (PassthroughColumns) DisplayColumn(w io.Writer, column string, itemID uuid.UUID) {}

// ContextScreenProbe reads the screen stored on the request context by WithScreen.
type ContextScreenProbe struct{}

// CurrentScreen returns the screen from ctx, if any
func (ContextScreenProbe) CurrentScreen(ctx context.Context) (Screen, bool) {
	return ScreenFromContext(ctx)
}

// NoopLocalizer is a no-operation implementation of Localizer.
// It never loads anything, so source strings are used as-is.
type NoopLocalizer struct{}

// Load always reports false
func (NoopLocalizer) Load(domain, path string) bool {
	return false
}

// LayoutDateFormatter formats dates with time.Format in a fixed location.
// A nil Location keeps the time's own location.
type LayoutDateFormatter struct {
	Location *time.Location
}

// FormatDate formats t with layout
func (f LayoutDateFormatter) FormatDate(layout string, t time.Time) string {
	if f.Location != nil {
		t = t.In(f.Location)
	}
	return t.Format(layout)
}
