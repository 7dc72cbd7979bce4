package contenttype_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-types/pkg/contenttype"
	"gopkg.in/yaml.v3"
)

func TestArguments_Bool(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"missing", nil, false},
		{"true", true, true},
		{"false", false, false},
		{"one", 1, true},
		{"zero", 0, false},
		{"float zero", 0.0, false},
		{"string", "yes", true},
		{"string false", "false", true},
		{"string zero", "0", false},
		{"empty string", "", false},
		{"empty slice", []any{}, false},
		{"slice", []string{"title"}, true},
		{"empty map", map[string]any{}, false},
		{"empty string map", map[string]string{}, false},
		{"string map", map[string]string{"a": "b"}, true},
		{"empty labels", contenttype.Labels{}, false},
		{"labels", contenttype.Labels{contenttype.LabelName: "Books"}, true},
		{"empty overrides", contenttype.Overrides{}, false},
		{"empty arguments", contenttype.Arguments{}, false},
		{"arguments", contenttype.Arguments{contenttype.ArgPublic: true}, true},
		{"empty columns", contenttype.Columns{}, false},
		{"empty sortable columns", contenttype.SortableColumns{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := contenttype.Arguments{}
			if tt.value != nil {
				args["flag"] = tt.value
			}
			assert.Equal(t, tt.want, args.Bool("flag"))
		})
	}
}

func TestArguments_Labels(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  contenttype.Labels
	}{
		{"missing", nil, nil},
		{"labels", contenttype.Labels{"name": "Books"}, contenttype.Labels{"name": "Books"}},
		{"any map", map[string]any{"name": "Books"}, contenttype.Labels{"name": "Books"}},
		{"string map", map[string]string{"name": "Books"}, contenttype.Labels{"name": "Books"}},
		{"yaml map", map[any]any{"name": "Books"}, contenttype.Labels{"name": "Books"}},
		{"not a map", "Books", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := contenttype.Arguments{contenttype.ArgLabels: tt.value}
			assert.Equal(t, tt.want, args.Labels())
		})
	}
}

func TestArguments_Supports(t *testing.T) {
	args := contenttype.Arguments{contenttype.ArgSupports: []any{"title", "thumbnail"}}
	assert.Equal(t, []string{"title", "thumbnail"}, args.Supports())
	assert.Empty(t, contenttype.Arguments{}.Supports())
}

func TestArguments_Decode(t *testing.T) {
	var out struct {
		Public       bool     `mapstructure:"public"`
		MenuPosition int      `mapstructure:"menu_position"`
		Supports     []string `mapstructure:"supports"`
	}

	args := contenttype.Arguments{
		contenttype.ArgPublic:   "1",
		"menu_position":         "25",
		contenttype.ArgSupports: []any{"title"},
	}
	require.NoError(t, args.Decode(&out))
	assert.True(t, out.Public)
	assert.Equal(t, 25, out.MenuPosition)
	assert.Equal(t, []string{"title"}, out.Supports)
}

func TestLabels_Get(t *testing.T) {
	labels := contenttype.Labels{"name": "Books", "parent_item_colon": nil, "count": 3}

	got, ok := labels.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Books", got)

	_, ok = labels.Get("parent_item_colon")
	assert.False(t, ok)

	_, ok = labels.Get("missing")
	assert.False(t, ok)

	got, ok = labels.Get("count")
	assert.True(t, ok)
	assert.Equal(t, "3", got)
}

func TestMessage_Encoding(t *testing.T) {
	table := contenttype.MessageTable{
		0: contenttype.Text(""),
		4: contenttype.Text("Book updated."),
		5: contenttype.NoMessage,
	}

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t, `{"0":"","4":"Book updated.","5":false}`, string(data))

	out, err := yaml.Marshal(table)
	require.NoError(t, err)
	var decoded map[int]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, map[int]any{0: "", 4: "Book updated.", 5: false}, decoded)
}

func TestScreenFromContext(t *testing.T) {
	_, ok := contenttype.ScreenFromContext(context.Background())
	assert.False(t, ok)

	ctx := contenttype.WithScreen(context.Background(), contenttype.Screen{ContentType: "books"})
	screen, ok := contenttype.ScreenFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "books", screen.ContentType)

	screen, ok = contenttype.ContextScreenProbe{}.CurrentScreen(ctx)
	assert.True(t, ok)
	assert.Equal(t, "books", screen.ContentType)
}

func TestLayoutDateFormatter(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "Mar 5, 2024 @ 14:30", contenttype.LayoutDateFormatter{}.FormatDate("Jan 2, 2006 @ 15:04", ts))

	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "Mar 5, 2024 @ 23:30", contenttype.LayoutDateFormatter{Location: tokyo}.FormatDate("Jan 2, 2006 @ 15:04", ts))
}

func TestContentTypeError(t *testing.T) {
	err := &contenttype.ContentTypeError{Slug: "books", Op: "register", Err: contenttype.ErrRegistrationFailed}
	assert.Equal(t, "content type operation register failed for books: content type registration failed", err.Error())
	assert.True(t, errors.Is(err, contenttype.ErrRegistrationFailed))

	err = &contenttype.ContentTypeError{Op: "construct", Err: contenttype.ErrSlugRequired}
	assert.Equal(t, "content type operation construct failed: slug is required", err.Error())
}
