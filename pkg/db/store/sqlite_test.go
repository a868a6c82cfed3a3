package store

import (
	"context"
	"testing"

	"github.com/papershare/papershare/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteStoreRequiresPath(t *testing.T) {
	_, err := NewSQLiteStore(SQLiteConfig{})
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	mustSignup(t, st, "alice", "bob")

	pid := mustAddPaper(t, st, "alice", "doomed", "tag1")
	require.NoError(t, st.LikePaper(ctx, "bob", pid))

	require.NoError(t, st.Reset(ctx))

	for _, model := range []any{
		&models.User{}, &models.Paper{}, &models.Tagname{}, &models.Tag{}, &models.Like{},
	} {
		var count int64
		require.NoError(t, st.DB().Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}

	// The schema is usable again right away.
	mustSignup(t, st, "alice")
	fresh := mustAddPaper(t, st, "alice", "phoenix", "tag1")
	assert.Greater(t, fresh, 0)

	// And resetting twice in a row is fine.
	require.NoError(t, st.Reset(ctx))
	require.NoError(t, st.Reset(ctx))

	var users int64
	require.NoError(t, st.DB().Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestMigrateIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Migrate(ctx))
	require.NoError(t, st.Migrate(ctx))
	require.NoError(t, st.Health(ctx))
}
