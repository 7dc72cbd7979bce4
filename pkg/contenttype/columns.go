package contenttype

import (
	"io"

	"github.com/google/uuid"
)

// Columns returns the admin list-table columns for this content type
func (f *Factory) Columns(columns Columns) Columns {
	return f.columns.Columns(columns)
}

// SortableColumns returns the sortable admin columns for this content type
func (f *Factory) SortableColumns(sortable SortableColumns) SortableColumns {
	return f.columns.SortableColumns(sortable)
}

// DisplayColumn renders one cell of the admin list table
func (f *Factory) DisplayColumn(w io.Writer, column string, itemID uuid.UUID) {
	f.columns.DisplayColumn(w, column, itemID)
}
