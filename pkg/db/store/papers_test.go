package store

import (
	"context"
	"strings"
	"testing"

	"github.com/papershare/papershare/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPaper(t *testing.T) {
	t.Run("WithTags", func(t *testing.T) {
		st := newTestStore(t)
		ctx := context.Background()
		mustSignup(t, st, "alice")

		pid, err := st.AddPaper(ctx, "alice", "Skiplists revisited", "a short note", "full text body", []string{"database", "index"})
		require.NoError(t, err)
		assert.Greater(t, pid, 0)

		tags, err := st.GetPaperTags(ctx, pid)
		require.NoError(t, err)
		assert.Equal(t, []string{"database", "index"}, tags)
	})

	t.Run("NoTags", func(t *testing.T) {
		st := newTestStore(t)
		ctx := context.Background()
		mustSignup(t, st, "alice")

		pid, err := st.AddPaper(ctx, "alice", "untagged", "", "", nil)
		require.NoError(t, err)

		tags, err := st.GetPaperTags(ctx, pid)
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("MonotonicPids", func(t *testing.T) {
		st := newTestStore(t)
		mustSignup(t, st, "alice")

		first := mustAddPaper(t, st, "alice", "one")
		second := mustAddPaper(t, st, "alice", "two")
		assert.Greater(t, second, first)
	})

	t.Run("OversizedFieldFails", func(t *testing.T) {
		st := newTestStore(t)
		ctx := context.Background()
		mustSignup(t, st, "alice")

		cases := map[string]struct {
			title, description string
			tags               []string
		}{
			"title":       {title: strings.Repeat("t", models.MaxTitleLen+1)},
			"description": {description: strings.Repeat("d", models.MaxDescriptionLen+1)},
			"tag":         {tags: []string{strings.Repeat("x", models.MaxTagnameLen+1)}},
			"empty tag":   {tags: []string{""}},
		}

		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				pid, err := st.AddPaper(ctx, "alice", tc.title, tc.description, "", tc.tags)
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Zero(t, pid)
			})
		}

		var papers int64
		require.NoError(t, st.DB().Model(&models.Paper{}).Count(&papers).Error)
		assert.Zero(t, papers, "failed inserts must leave the papers table unchanged")
	})

	t.Run("DuplicateTagRollsBackPaper", func(t *testing.T) {
		st := newTestStore(t)
		ctx := context.Background()
		mustSignup(t, st, "alice")

		// The duplicate violates the (pid, tagname) key after the paper
		// row is already written; the whole transaction must unwind.
		pid, err := st.AddPaper(ctx, "alice", "dup tags", "", "", []string{"graphs", "graphs"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, pid)

		var papers int64
		require.NoError(t, st.DB().Model(&models.Paper{}).Count(&papers).Error)
		assert.Zero(t, papers)
	})

	t.Run("UnknownOwnerFails", func(t *testing.T) {
		st := newTestStore(t)

		pid, err := st.AddPaper(context.Background(), "ghost", "title", "", "", nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, pid)
	})

	t.Run("TagnameReuseIsIdempotent", func(t *testing.T) {
		st := newTestStore(t)
		mustSignup(t, st, "alice")

		mustAddPaper(t, st, "alice", "first", "shared")
		mustAddPaper(t, st, "alice", "second", "shared")

		var tagnames int64
		require.NoError(t, st.DB().Model(&models.Tagname{}).Count(&tagnames).Error)
		assert.EqualValues(t, 1, tagnames)
	})
}

func TestDeletePaper(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	mustSignup(t, st, "alice", "bob", "carol")

	pid := mustAddPaper(t, st, "alice", "cascades", "t1", "t2", "t3")
	require.NoError(t, st.LikePaper(ctx, "bob", pid))
	require.NoError(t, st.LikePaper(ctx, "carol", pid))

	keep := mustAddPaper(t, st, "alice", "survivor", "t1")
	require.NoError(t, st.LikePaper(ctx, "bob", keep))

	require.NoError(t, st.DeletePaper(ctx, pid))

	var tags, likes int64
	require.NoError(t, st.DB().Model(&models.Tag{}).Count(&tags).Error)
	require.NoError(t, st.DB().Model(&models.Like{}).Count(&likes).Error)
	assert.EqualValues(t, 1, tags, "only the surviving paper's tag rows remain")
	assert.EqualValues(t, 1, likes, "only the surviving paper's like rows remain")

	// Orphaned tagnames persist.
	var tagnames int64
	require.NoError(t, st.DB().Model(&models.Tagname{}).Count(&tagnames).Error)
	assert.EqualValues(t, 3, tagnames)

	err := st.DeletePaper(ctx, pid)
	assert.ErrorIs(t, err, ErrPaperNotFound)
}

func TestGetPaperTags(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	mustSignup(t, st, "alice")

	t.Run("LexicalOrder", func(t *testing.T) {
		pid := mustAddPaper(t, st, "alice", "numeric names", "9", "10", "2")

		tags, err := st.GetPaperTags(ctx, pid)
		require.NoError(t, err)
		assert.Equal(t, []string{"10", "2", "9"}, tags, "ordering is lexical, not numeric")
	})

	t.Run("UnknownPid", func(t *testing.T) {
		_, err := st.GetPaperTags(ctx, 99999)
		assert.ErrorIs(t, err, ErrPaperNotFound)
	})
}

func TestTimelines(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	clock := newTestClock()
	st.now = clock.Now
	mustSignup(t, st, "alice", "bob")

	a1 := mustAddPaper(t, st, "alice", "a1")
	b1 := mustAddPaper(t, st, "bob", "b1")
	a2 := mustAddPaper(t, st, "alice", "a2")

	t.Run("PerUser", func(t *testing.T) {
		papers, err := st.GetTimeline(ctx, "alice", DefaultCount)
		require.NoError(t, err)
		assert.Equal(t, []int{a2, a1}, pids(papers), "newest first")
	})

	t.Run("All", func(t *testing.T) {
		papers, err := st.GetTimelineAll(ctx, DefaultCount)
		require.NoError(t, err)
		assert.Equal(t, []int{a2, b1, a1}, pids(papers))
	})

	t.Run("CountCap", func(t *testing.T) {
		papers, err := st.GetTimelineAll(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []int{a2, b1}, pids(papers))
	})

	t.Run("ZeroCount", func(t *testing.T) {
		papers, err := st.GetTimelineAll(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, papers)
	})

	t.Run("SummaryShape", func(t *testing.T) {
		papers, err := st.GetTimeline(ctx, "bob", DefaultCount)
		require.NoError(t, err)
		require.Len(t, papers, 1)
		assert.Equal(t, b1, papers[0].Pid)
		assert.Equal(t, "bob", papers[0].Username)
		assert.Equal(t, "b1", papers[0].Title)
		assert.False(t, papers[0].BeginTime.IsZero())
	})
}

func TestGetPapersByTag(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	clock := newTestClock()
	st.now = clock.Now
	mustSignup(t, st, "alice")

	p1 := mustAddPaper(t, st, "alice", "older", "shared", "only1")
	p2 := mustAddPaper(t, st, "alice", "newer", "shared")
	mustAddPaper(t, st, "alice", "unrelated", "other")

	papers, err := st.GetPapersByTag(ctx, "shared", DefaultCount)
	require.NoError(t, err)
	assert.Equal(t, []int{p2, p1}, pids(papers))

	none, err := st.GetPapersByTag(ctx, "missing", DefaultCount)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetPapersByKeyword(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	clock := newTestClock()
	st.now = clock.Now
	mustSignup(t, st, "alice")

	inTitle, err := st.AddPaper(ctx, "alice", "Graph algorithms", "", "", nil)
	require.NoError(t, err)
	inDescription, err := st.AddPaper(ctx, "alice", "misc", "notes on Graph theory", "", nil)
	require.NoError(t, err)
	inBody, err := st.AddPaper(ctx, "alice", "misc", "", "a Graph appears in the body", nil)
	require.NoError(t, err)
	_, err = st.AddPaper(ctx, "alice", "lowercase graph only", "", "", nil)
	require.NoError(t, err)

	papers, err := st.GetPapersByKeyword(ctx, "Graph", DefaultCount)
	require.NoError(t, err)
	assert.Equal(t, []int{inBody, inDescription, inTitle}, pids(papers),
		"substring match is case sensitive and ordered newest first")
}
