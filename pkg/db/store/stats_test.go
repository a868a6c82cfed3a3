package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMostActiveUsers(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	mustSignup(t, st, "busy", "idle", "aa", "bb")

	mustAddPaper(t, st, "busy", "one")
	mustAddPaper(t, st, "busy", "two")
	mustAddPaper(t, st, "busy", "three")
	mustAddPaper(t, st, "bb", "single")
	mustAddPaper(t, st, "aa", "single")

	users, err := st.GetMostActiveUsers(ctx, DefaultCount)
	require.NoError(t, err)
	assert.Equal(t, []string{"busy", "aa", "bb"}, users,
		"ties resolve by username ascending, zero-paper users are excluded")

	top, err := st.GetMostActiveUsers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"busy"}, top)
}

func TestGetMostPopularTags(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	mustSignup(t, st, "alice")

	mustAddPaper(t, st, "alice", "p1", "storage", "ml")
	mustAddPaper(t, st, "alice", "p2", "storage")
	mustAddPaper(t, st, "alice", "p3", "ml")
	mustAddPaper(t, st, "alice", "p4", "ml")

	tags, err := st.GetMostPopularTags(ctx, DefaultCount)
	require.NoError(t, err)
	assert.Equal(t, []TagCount{
		{Tagname: "ml", PaperCount: 3},
		{Tagname: "storage", PaperCount: 2},
	}, tags)
}

func TestGetMostPopularTagPairs(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	mustSignup(t, st, "alice")

	// t0 on four papers, t1 on two, t2 on one; co-occurrences:
	// t0+t1 on two papers, t0+t2 and t1+t2 on one each.
	mustAddPaper(t, st, "alice", "p1", "t0", "t1")
	mustAddPaper(t, st, "alice", "p2", "t0", "t1", "t2")
	mustAddPaper(t, st, "alice", "p3", "t0")
	mustAddPaper(t, st, "alice", "p4", "t0")

	pairs, err := st.GetMostPopularTagPairs(ctx, DefaultCount)
	require.NoError(t, err)
	assert.Equal(t, []TagPairCount{
		{First: "t0", Second: "t1", PaperCount: 2},
		{First: "t0", Second: "t2", PaperCount: 1},
		{First: "t1", Second: "t2", PaperCount: 1},
	}, pairs)

	// Never both (x, y) and (y, x).
	seen := map[string]bool{}
	for _, pair := range pairs {
		assert.Less(t, pair.First, pair.Second)
		assert.False(t, seen[pair.Second+"|"+pair.First])
		seen[pair.First+"|"+pair.Second] = true
	}
}

func TestUserCounters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	mustSignup(t, st, "alice", "bob")

	p1 := mustAddPaper(t, st, "alice", "p1", "shared", "extra")
	mustAddPaper(t, st, "alice", "p2", "shared")
	other := mustAddPaper(t, st, "bob", "other")

	require.NoError(t, st.LikePaper(ctx, "bob", p1))
	require.NoError(t, st.LikePaper(ctx, "alice", other))

	t.Run("Papers", func(t *testing.T) {
		count, err := st.GetNumberPapersUser(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Likes", func(t *testing.T) {
		count, err := st.GetNumberLikedUser(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("DistinctTags", func(t *testing.T) {
		// "shared" appears on both of alice's papers but counts once.
		count, err := st.GetNumberTagsUser(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("UnknownUserCountsZero", func(t *testing.T) {
		count, err := st.GetNumberPapersUser(ctx, "ghost")
		require.NoError(t, err)
		assert.Zero(t, count)

		count, err = st.GetNumberTagsUser(ctx, "ghost")
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
