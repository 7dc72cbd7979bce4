package memory_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-types/pkg/contenttype"
	"github.com/tendant/content-types/pkg/contenttype/host/memory"
)

func TestMemoryRegistrar_RegisterContentType(t *testing.T) {
	r := memory.NewRegistrar()
	ctx := context.Background()

	args := contenttype.Arguments{
		contenttype.ArgLabels: contenttype.Labels{contenttype.LabelName: "Books"},
		contenttype.ArgPublic: true,
	}

	t.Run("canonical arguments", func(t *testing.T) {
		canonical, err := r.RegisterContentType(ctx, "books", args)
		require.NoError(t, err)

		assert.Equal(t, "books", canonical["name"])
		assert.Equal(t, "Books", canonical["label"])
		assert.Equal(t, "post", canonical["capability_type"])
		assert.Equal(t, true, canonical["map_meta_cap"])
		assert.Equal(t, true, canonical[contenttype.ArgPublic])

		caps, ok := canonical["cap"].(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "edit_post", caps["edit_post"])
		assert.Equal(t, "publish_posts", caps["publish_posts"])
	})

	t.Run("input is not modified", func(t *testing.T) {
		assert.NotContains(t, args, "name")
		assert.NotContains(t, args, "cap")
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		stored, err := r.Get(ctx, "books")
		require.NoError(t, err)

		stored.Labels()[contenttype.LabelName] = "Changed"
		again, err := r.Get(ctx, "books")
		require.NoError(t, err)
		assert.Equal(t, "Books", again.Labels()[contenttype.LabelName])
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := r.Get(ctx, "movies")
		assert.ErrorIs(t, err, memory.ErrNotRegistered)
	})
}

func TestMemoryRegistrar_CapabilityType(t *testing.T) {
	tests := []struct {
		name           string
		capabilityType any
		wantEdit       string
		wantPublish    string
	}{
		{"default", nil, "edit_post", "publish_posts"},
		{"string", "book", "edit_book", "publish_books"},
		{"pair", []string{"story", "stories"}, "edit_story", "publish_stories"},
		{"yaml pair", []any{"story", "stories"}, "edit_story", "publish_stories"},
		{"single element", []any{"book"}, "edit_book", "publish_books"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := contenttype.Arguments{}
			if tt.capabilityType != nil {
				args["capability_type"] = tt.capabilityType
			}

			canonical, err := memory.NewRegistrar().RegisterContentType(context.Background(), "books", args)
			require.NoError(t, err)

			caps := canonical["cap"].(map[string]string)
			assert.Equal(t, tt.wantEdit, caps["edit_post"])
			assert.Equal(t, tt.wantPublish, caps["publish_posts"])
		})
	}
}

func TestMemoryRegistrar_KeepsMapMetaCap(t *testing.T) {
	canonical, err := memory.NewRegistrar().RegisterContentType(context.Background(), "books",
		contenttype.Arguments{"map_meta_cap": false})
	require.NoError(t, err)
	assert.Equal(t, false, canonical["map_meta_cap"])
}

func TestMemoryRegistrar_SlugLength(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"empty", "", true},
		{"one character", "b", false},
		{"twenty characters", strings.Repeat("a", 20), false},
		{"twenty-one characters", strings.Repeat("a", 21), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := memory.NewRegistrar().RegisterContentType(context.Background(), tt.slug, contenttype.Arguments{})
			if tt.wantErr {
				assert.ErrorIs(t, err, memory.ErrInvalidSlug)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMemoryRegistrar_Concurrent(t *testing.T) {
	r := memory.NewRegistrar()
	slugs := []string{"books", "movies", "albums", "games"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.RegisterContentType(context.Background(), slugs[i%len(slugs)], contenttype.Arguments{})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []string{"albums", "books", "games", "movies"}, r.Slugs())
}
