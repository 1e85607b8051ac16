package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "site.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	s := openTest(t)
	h := s.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, s.HashIP("203.0.113.8"))
}

func TestStats(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	visits := []Visit{
		{IP: "10.0.0.1", UserAgent: "ua", Path: "/"},
		{IP: "10.0.0.1", UserAgent: "ua", Path: "/services"},
		{IP: "10.0.0.2", UserAgent: "ua", Path: "/"},
		{IP: "10.0.0.3", UserAgent: "ua", Path: "/", At: time.Now().AddDate(0, 0, -3)},
		{IP: "10.0.0.4", UserAgent: "ua", Path: "/blog", At: time.Now().AddDate(0, 0, -30)},
	}
	for _, v := range visits {
		require.NoError(t, s.RecordVisit(ctx, v))
	}
	require.NoError(t, s.RecordContact(ctx, ContactSent))
	require.NoError(t, s.RecordContact(ctx, ContactSent))
	require.NoError(t, s.RecordContact(ctx, ContactFailed))
	require.NoError(t, s.RecordContact(ctx, ContactInvalid))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, stats.TotalVisitors)
	assert.EqualValues(t, 4, stats.UniqueVisitors)
	assert.EqualValues(t, 3, stats.VisitorsToday)
	assert.EqualValues(t, 4, stats.VisitorsThisWeek)
	assert.EqualValues(t, 2, stats.ContactsSent)
	assert.EqualValues(t, 1, stats.ContactsFailed)
	assert.EqualValues(t, 1, stats.ContactsInvalid)

	require.NotEmpty(t, stats.TopPaths)
	assert.Equal(t, PathStat{Path: "/", Views: 3}, stats.TopPaths[0])

	require.Len(t, stats.RecentVisitors, 5)
	assert.Equal(t, "/blog", stats.RecentVisitors[4].Path)
	assert.False(t, stats.RecentVisitors[0].Timestamp.IsZero())
}

func TestCleanupOldVisitors(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	require.NoError(t, s.RecordVisit(ctx, Visit{IP: "a", Path: "/"}))
	require.NoError(t, s.RecordVisit(ctx, Visit{IP: "b", Path: "/", At: time.Now().AddDate(-2, 0, 0)}))

	n, err := s.CleanupOldVisitors(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	recent, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, s.HashIP("a"), recent[0].HashedIP)
}
