package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	st, err := NewSQLiteStore(SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "papershare.db"),
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, st.Connect(ctx))
	require.NoError(t, st.Migrate(ctx))

	t.Cleanup(func() {
		st.Close()
	})

	return st
}

// testClock hands out strictly increasing timestamps so that ordering by
// begin_time and like_time stays deterministic across fast inserts.
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{
		current: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (c *testClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func mustSignup(t *testing.T, st *SQLiteStore, usernames ...string) {
	t.Helper()
	for _, username := range usernames {
		require.NoError(t, st.Signup(context.Background(), username, "secret"))
	}
}

func mustAddPaper(t *testing.T, st *SQLiteStore, username, title string, tags ...string) int {
	t.Helper()
	pid, err := st.AddPaper(context.Background(), username, title, "", "", tags)
	require.NoError(t, err)
	return pid
}

func pids(papers []PaperSummary) []int {
	ids := make([]int, 0, len(papers))
	for _, paper := range papers {
		ids = append(ids, paper.Pid)
	}
	return ids
}
