package analytics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaltPersisted(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, InitSalt(store))

	saved, err := store.GetSetting("hash_salt")
	require.NoError(t, err)
	require.NotEmpty(t, saved)
	require.Equal(t, saved, getSalt())
}

func TestVisitorHashingIsStable(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, InitSalt(store))

	a := VisitorID("10.0.0.1", "Mozilla/5.0")
	b := VisitorID("10.0.0.1", "Mozilla/5.0")
	c := VisitorID("10.0.0.2", "Mozilla/5.0")
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 16)
	require.NotContains(t, a, "10.0.0.1")
}

func TestRecordAndAggregate(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, InitSalt(store))

	now := time.Now().UTC()
	visits := []Visit{
		{VisitorID: "v1", SessionID: "s1", IPHash: "h1", Path: "/", Locale: "en", Device: "Desktop", Timestamp: now},
		{VisitorID: "v1", SessionID: "s1", IPHash: "h1", Path: "/blog", Locale: "en", Device: "Desktop", Timestamp: now},
		{VisitorID: "v2", SessionID: "s2", IPHash: "h2", Path: "/", Locale: "hi", Device: "Mobile", Timestamp: now},
	}
	for _, v := range visits {
		require.NoError(t, store.RecordVisit(v))
	}

	stats, err := store.GetStats("week")
	require.NoError(t, err)
	require.Equal(t, 2, stats.UniqueVisitors)
	require.Equal(t, 3, stats.TotalViews)
	require.Equal(t, "/", stats.TopPages[0].Path)
	require.Equal(t, 2, stats.TopPages[0].Views)

	locales := map[string]int{}
	for _, d := range stats.LocaleStats {
		locales[d.Name] = d.Count
	}
	require.Equal(t, map[string]int{"en": 2, "hi": 1}, locales)
}

func TestOldVisitsExcludedAndPurged(t *testing.T) {
	store := newTestStore(t)

	old := Visit{VisitorID: "v1", SessionID: "s1", IPHash: "h1", Path: "/",
		Locale: "en", Device: "Desktop", Timestamp: time.Now().UTC().AddDate(0, -2, 0)}
	require.NoError(t, store.RecordVisit(old))

	stats, err := store.GetStats("month")
	require.NoError(t, err)
	require.Zero(t, stats.TotalViews)

	n, err := store.PurgeBefore(time.Now().UTC().AddDate(0, -1, 0))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestLimiter(t *testing.T) {
	l := NewLimiter(3, time.Minute)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("key"))
	}
	require.False(t, l.Allow("key"))
	require.True(t, l.Allow("other"))
}

func TestBotDetection(t *testing.T) {
	require.True(t, IsBot("Googlebot/2.1 (+http://www.google.com/bot.html)"))
	require.True(t, IsBot("curl/8.0.1"))
	require.False(t, IsBot("Mozilla/5.0 (Windows NT 10.0) Chrome/120.0"))
}

func TestDeviceClass(t *testing.T) {
	require.Equal(t, "Mobile", DeviceClass("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Mobile/15E148"))
	require.Equal(t, "Tablet", DeviceClass("Mozilla/5.0 (iPad; CPU OS 17_0) Mobile/15E148"))
	require.Equal(t, "Desktop", DeviceClass("Mozilla/5.0 (X11; Linux x86_64) Firefox/122.0"))
}
