package postgres_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-types/pkg/contenttype"
	"github.com/tendant/content-types/pkg/contenttype/host/postgres"
)

// withTx runs testFunc against a registrar bound to a transaction that is
// rolled back afterwards
func withTx(t *testing.T, testFunc func(t *testing.T, r *postgres.Registrar)) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err, "Failed to connect to test database")
	defer pool.Close()
	require.NoError(t, pool.Ping(ctx), "Failed to ping test database")

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	r := postgres.New(tx)
	require.NoError(t, r.Migrate(ctx))
	_, err = tx.Exec(ctx, "DELETE FROM content_types")
	require.NoError(t, err)

	testFunc(t, r)
}

func TestRegistrar_RejectsInvalidSlugWithoutDatabase(t *testing.T) {
	r := postgres.New(nil)

	_, err := r.RegisterContentType(context.Background(), "", contenttype.Arguments{})
	assert.ErrorIs(t, err, postgres.ErrInvalidSlug)

	_, err = r.RegisterContentType(context.Background(), strings.Repeat("a", 21), contenttype.Arguments{})
	assert.ErrorIs(t, err, postgres.ErrInvalidSlug)
}

func TestRegistrar_RegisterAndGet(t *testing.T) {
	withTx(t, func(t *testing.T, r *postgres.Registrar) {
		ctx := context.Background()

		f, err := contenttype.New("Book", "books",
			contenttype.WithPlural("Books"),
			contenttype.WithRegistrar(r),
		)
		require.NoError(t, err)
		require.NoError(t, f.Register(ctx))

		args := f.ResolveArguments()
		assert.Equal(t, true, args[contenttype.ArgPublic])
		assert.Equal(t, []string{"title", "editor", "excerpt"}, args.Supports())
		assert.Equal(t, "Add New Book", args.Labels()[contenttype.LabelAddNew])
		assert.Nil(t, args.Labels()[contenttype.LabelParentItemColon])

		record, err := r.Get(ctx, "books")
		require.NoError(t, err)
		assert.Equal(t, "books", record.Slug)
		assert.Equal(t, "Books", record.Arguments.Labels()[contenttype.LabelName])
		assert.False(t, record.CreatedAt.IsZero())
	})
}

func TestRegistrar_Upsert(t *testing.T) {
	withTx(t, func(t *testing.T, r *postgres.Registrar) {
		ctx := context.Background()

		_, err := r.RegisterContentType(ctx, "books", contenttype.Arguments{contenttype.ArgPublic: true})
		require.NoError(t, err)
		canonical, err := r.RegisterContentType(ctx, "books", contenttype.Arguments{contenttype.ArgPublic: false})
		require.NoError(t, err)
		assert.Equal(t, false, canonical[contenttype.ArgPublic])

		records, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, false, records[0].Arguments[contenttype.ArgPublic])
	})
}

func TestRegistrar_ListAndDelete(t *testing.T) {
	withTx(t, func(t *testing.T, r *postgres.Registrar) {
		ctx := context.Background()

		for _, slug := range []string{"movies", "books"} {
			_, err := r.RegisterContentType(ctx, slug, contenttype.Arguments{})
			require.NoError(t, err)
		}

		records, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "books", records[0].Slug)
		assert.Equal(t, "movies", records[1].Slug)

		require.NoError(t, r.Delete(ctx, "books"))
		assert.ErrorIs(t, r.Delete(ctx, "books"), postgres.ErrNotRegistered)

		_, err = r.Get(ctx, "books")
		assert.ErrorIs(t, err, postgres.ErrNotRegistered)
	})
}

// compile-time check that a transaction satisfies DBTX
var _ postgres.DBTX = (pgx.Tx)(nil)
