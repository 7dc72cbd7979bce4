package contenttype

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Hook names the factory attaches to. Column hooks are per content type, see
// ColumnsHook, SortableColumnsHook and CustomColumnHook.
const (
	HookPluginsLoaded       = "plugins_loaded"
	HookInit                = "init"
	HookPostUpdatedMessages = "post_updated_messages"
	HookBulkUpdatedMessages = "bulk_post_updated_messages"
	HookEnterTitleHere      = "enter_title_here"
)

// Hook priorities. Translations load ahead of default-priority callbacks and
// registration runs late so other declarations can adjust arguments first.
const (
	PriorityTranslations = 5
	PriorityDefault      = 10
	PriorityRegister     = 99
)

// ColumnsHook names the filter for the admin columns of slug
func ColumnsHook(slug string) string {
	return "manage_edit-" + slug + "_columns"
}

// SortableColumnsHook names the filter for the sortable admin columns of slug
func SortableColumnsHook(slug string) string {
	return "manage_edit-" + slug + "_sortable_columns"
}

// CustomColumnHook names the action that renders custom column cells.
// Hierarchical types share the pages hook, all others the posts hook.
func CustomColumnHook(hierarchical bool) string {
	if hierarchical {
		return "manage_pages_custom_column"
	}
	return "manage_posts_custom_column"
}

// HookContext carries information through the hook chain
type HookContext struct {
	Context   context.Context
	Metadata  map[string]interface{} // Custom metadata passed between hooks
	StopChain bool                   // Set to true to stop processing remaining hooks
}

// NewHookContext creates a new hook context
func NewHookContext(ctx context.Context) *HookContext {
	return &HookContext{
		Context:  ctx,
		Metadata: make(map[string]interface{}),
	}
}

// Action is a lifecycle callback with no result
type Action func(hctx *HookContext, args ...any) error

// Filter is a lifecycle callback that returns a replacement for value
type Filter func(hctx *HookContext, value any, args ...any) (any, error)

// Hooks attaches the factory's callbacks to the host's lifecycle points:
//
//	plugins_loaded (5)                   load translations
//	init (99)                            register the content type
//	post_updated_messages                MessageTables, MessageContext
//	bulk_post_updated_messages           BulkMessageTables, BulkCounts
//	manage_edit-<slug>_columns           Columns
//	manage_edit-<slug>_sortable_columns  SortableColumns
//	manage_{pages,posts}_custom_column   io.Writer, column, item ID
//	enter_title_here                     placeholder text
func (f *Factory) Hooks(d Dispatcher) {
	d.AddAction(HookPluginsLoaded, f.loadTranslationsAction, PriorityTranslations, 0)
	d.AddAction(HookInit, f.registerAction, PriorityRegister, 0)
	d.AddFilter(HookPostUpdatedMessages, f.messagesFilter, PriorityDefault, 2)
	d.AddFilter(HookBulkUpdatedMessages, f.bulkMessagesFilter, PriorityDefault, 2)
	d.AddFilter(ColumnsHook(f.slug), f.columnsFilter, PriorityDefault, 1)
	d.AddFilter(SortableColumnsHook(f.slug), f.sortableColumnsFilter, PriorityDefault, 1)
	d.AddAction(CustomColumnHook(f.Hierarchical()), f.displayColumnAction, PriorityDefault, 3)
	d.AddFilter(HookEnterTitleHere, f.titleFilter, PriorityDefault, 1)
}

func (f *Factory) loadTranslationsAction(hctx *HookContext, args ...any) error {
	f.LoadTranslations(hctx.Context)
	return nil
}

func (f *Factory) registerAction(hctx *HookContext, args ...any) error {
	return f.Register(hctx.Context)
}

func (f *Factory) messagesFilter(hctx *HookContext, value any, args ...any) (any, error) {
	tables, ok := value.(MessageTables)
	if !ok && value != nil {
		return value, f.unexpected(HookPostUpdatedMessages, value)
	}
	var mc MessageContext
	if len(args) > 0 {
		if mc, ok = args[0].(MessageContext); !ok {
			return value, f.unexpected(HookPostUpdatedMessages, args[0])
		}
	}
	return f.SingleActionMessages(tables, mc), nil
}

func (f *Factory) bulkMessagesFilter(hctx *HookContext, value any, args ...any) (any, error) {
	tables, ok := value.(BulkMessageTables)
	if !ok && value != nil {
		return value, f.unexpected(HookBulkUpdatedMessages, value)
	}
	var counts BulkCounts
	if len(args) > 0 {
		if counts, ok = args[0].(BulkCounts); !ok {
			return value, f.unexpected(HookBulkUpdatedMessages, args[0])
		}
	}
	return f.BulkActionMessages(tables, counts), nil
}

func (f *Factory) columnsFilter(hctx *HookContext, value any, args ...any) (any, error) {
	columns, ok := value.(Columns)
	if !ok && value != nil {
		return value, f.unexpected(ColumnsHook(f.slug), value)
	}
	return f.Columns(columns), nil
}

func (f *Factory) sortableColumnsFilter(hctx *HookContext, value any, args ...any) (any, error) {
	sortable, ok := value.(SortableColumns)
	if !ok && value != nil {
		return value, f.unexpected(SortableColumnsHook(f.slug), value)
	}
	return f.SortableColumns(sortable), nil
}

func (f *Factory) displayColumnAction(hctx *HookContext, args ...any) error {
	name := CustomColumnHook(f.Hierarchical())
	if len(args) < 3 {
		return f.unexpected(name, args)
	}
	w, ok := args[0].(io.Writer)
	if !ok {
		return f.unexpected(name, args[0])
	}
	column, ok := args[1].(string)
	if !ok {
		return f.unexpected(name, args[1])
	}
	itemID, ok := args[2].(uuid.UUID)
	if !ok {
		return f.unexpected(name, args[2])
	}
	f.DisplayColumn(w, column, itemID)
	return nil
}

func (f *Factory) titleFilter(hctx *HookContext, value any, args ...any) (any, error) {
	text, ok := value.(string)
	if !ok {
		return value, f.unexpected(HookEnterTitleHere, value)
	}
	screen, _ := f.screens.CurrentScreen(hctx.Context)
	return f.TitlePlaceholder(text, screen), nil
}

func (f *Factory) unexpected(hook string, value any) error {
	return &ContentTypeError{
		Slug: f.slug,
		Op:   hook,
		Err:  fmt.Errorf("%w: %T", ErrUnexpectedHookValue, value),
	}
}
