package contenttype

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// Argument keys the factory reads or supplies defaults for
const (
	ArgLabels            = "labels"
	ArgPublic            = "public"
	ArgPubliclyQueryable = "publicly_queryable"
	ArgShowUI            = "show_ui"
	ArgShowInMenu        = "show_in_menu"
	ArgHasArchive        = "has_archive"
	ArgSupports          = "supports"
	ArgHierarchical      = "hierarchical"
)

// Label keys
const (
	LabelName               = "name"
	LabelSingularName       = "singular_name"
	LabelAddNew             = "add_new"
	LabelAddNewItem         = "add_new_item"
	LabelEditItem           = "edit_item"
	LabelNewItem            = "new_item"
	LabelAllItems           = "all_items"
	LabelViewItem           = "view_item"
	LabelSearchItems        = "search_items"
	LabelNotFound           = "not_found"
	LabelNotFoundInTrash    = "not_found_in_trash"
	LabelParentItemColon    = "parent_item_colon"
	LabelMenuName           = "menu_name"
	LabelInsertIntoItem     = "insert_into_item"
	LabelUploadedToThisItem = "uploaded_to_this_item"
	LabelItemsList          = "items_list"
	LabelItemsListNav       = "items_list_navigation"
	LabelFilterItemsList    = "filter_items_list"
)

// LabelKeys lists every label the factory derives, in display order.
var LabelKeys = []string{
	LabelName,
	LabelSingularName,
	LabelAddNew,
	LabelAddNewItem,
	LabelEditItem,
	LabelNewItem,
	LabelAllItems,
	LabelViewItem,
	LabelSearchItems,
	LabelNotFound,
	LabelNotFoundInTrash,
	LabelParentItemColon,
	LabelMenuName,
	LabelInsertIntoItem,
	LabelUploadedToThisItem,
	LabelItemsList,
	LabelItemsListNav,
	LabelFilterItemsList,
}

// Spec is the identity of a content type as declared by the caller.
type Spec struct {
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
	Slug     string `json:"slug"`
}

// Overrides are caller-supplied registration arguments. Unknown keys are
// passed to the host verbatim.
type Overrides map[string]any

// Arguments is the registration argument structure handed to the host.
type Arguments map[string]any

// Bool reports whether the argument is set to a truthy value.
func (a Arguments) Bool(key string) bool {
	return truthy(a[key])
}

// Labels returns the label set stored under "labels", or nil.
func (a Arguments) Labels() Labels {
	return toLabels(a[ArgLabels])
}

// Supports returns the feature list stored under "supports".
func (a Arguments) Supports() []string {
	return cast.ToStringSlice(a[ArgSupports])
}

// Decode maps the arguments onto a struct using mapstructure tags.
func (a Arguments) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]any(a))
}

// Labels maps label keys to UI strings. A nil value marks a label the host
// should leave unset.
type Labels map[string]any

// Get returns the label text and whether it is set.
func (l Labels) Get(key string) (string, bool) {
	v, ok := l[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return cast.ToString(v), true
}

// Message is one slot of a single-action message table. The zero value is
// NoMessage, which the host must skip rather than render.
type Message struct {
	text string
	ok   bool
}

// NoMessage marks a slot that has nothing to show.
var NoMessage = Message{}

// Text returns a message slot holding s. An empty s is still a message.
func Text(s string) Message {
	return Message{text: s, ok: true}
}

// OK reports whether the slot holds a message.
func (m Message) OK() bool {
	return m.ok
}

func (m Message) String() string {
	return m.text
}

// MarshalJSON encodes NoMessage as false and any other slot as its text.
func (m Message) MarshalJSON() ([]byte, error) {
	if !m.ok {
		return []byte("false"), nil
	}
	return json.Marshal(m.text)
}

// MarshalYAML encodes NoMessage as false and any other slot as its text.
func (m Message) MarshalYAML() (any, error) {
	if !m.ok {
		return false, nil
	}
	return m.text, nil
}

// MessageTable holds single-action notices indexed by the host's message code.
type MessageTable map[int]Message

// MessageTables holds one MessageTable per content type slug.
type MessageTables map[string]MessageTable

// MessageContext describes the item whose action produced the notice.
type MessageContext struct {
	ItemID      uuid.UUID
	Permalinks  Permalinker
	PublishedAt time.Time
	// Revision identifies the revision being restored; empty when the request
	// carries none.
	Revision string
}

// BulkOutcome names a bulk-action result.
type BulkOutcome string

// Bulk outcomes
const (
	BulkUpdated   BulkOutcome = "updated"
	BulkLocked    BulkOutcome = "locked"
	BulkDeleted   BulkOutcome = "deleted"
	BulkTrashed   BulkOutcome = "trashed"
	BulkUntrashed BulkOutcome = "untrashed"
)

// BulkOutcomes lists every bulk outcome in display order.
var BulkOutcomes = []BulkOutcome{BulkUpdated, BulkLocked, BulkDeleted, BulkTrashed, BulkUntrashed}

// BulkCounts holds the number of items affected per outcome.
type BulkCounts map[BulkOutcome]int

// BulkMessages holds the notice for each outcome.
type BulkMessages map[BulkOutcome]string

// BulkMessageTables holds one BulkMessages per content type slug.
type BulkMessageTables map[string]BulkMessages

// Screen describes the admin screen serving the current request.
type Screen struct {
	ContentType string `json:"content_type"`
}

type screenKey struct{}

// WithScreen returns a copy of ctx carrying screen.
func WithScreen(ctx context.Context, screen Screen) context.Context {
	return context.WithValue(ctx, screenKey{}, screen)
}

// ScreenFromContext returns the screen stored by WithScreen.
func ScreenFromContext(ctx context.Context) (Screen, bool) {
	if ctx == nil {
		return Screen{}, false
	}
	screen, ok := ctx.Value(screenKey{}).(Screen)
	return screen, ok
}

// Column is one admin list-table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Columns is an ordered set of admin list-table columns.
type Columns []Column

// SortableColumns maps a column key to the field it sorts by.
type SortableColumns map[string]string

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case map[string]string:
		return len(t) > 0
	case Labels:
		return len(t) > 0
	case Overrides:
		return len(t) > 0
	case Arguments:
		return len(t) > 0
	case Columns:
		return len(t) > 0
	case SortableColumns:
		return len(t) > 0
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return true
	}
	return b
}

func toLabels(v any) Labels {
	switch t := v.(type) {
	case nil:
		return nil
	case Labels:
		return t
	case map[string]any:
		return Labels(t)
	case map[string]string:
		out := make(Labels, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil
	}
	return Labels(m)
}
