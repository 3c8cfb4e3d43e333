package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPageCacheRoundTrip(t *testing.T) {
	pc := NewPageCache(t.TempDir(), time.Hour)

	_, found, err := pc.Get("SBER")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, pc.Set("SBER", "<html>страница</html>"))

	html, found, err := pc.Get("SBER")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "<html>страница</html>", html)
}

func TestPageCacheExpiry(t *testing.T) {
	pc := NewPageCache(t.TempDir(), -time.Minute)

	require.NoError(t, pc.Set("GAZP", "<html></html>"))

	_, found, err := pc.Get("GAZP")
	require.NoError(t, err)
	require.False(t, found)
}

func TestPageCacheInvalidate(t *testing.T) {
	pc := NewPageCache(t.TempDir(), time.Hour)

	require.NoError(t, pc.Set("LKOH", "<html></html>"))
	require.NoError(t, pc.Invalidate("LKOH"))

	_, found, err := pc.Get("LKOH")
	require.NoError(t, err)
	require.False(t, found)

	// Invalidating a missing entry is not an error.
	require.NoError(t, pc.Invalidate("LKOH"))
}

func TestPageCacheCleanExpired(t *testing.T) {
	dir := t.TempDir()

	expired := NewPageCache(dir, -time.Minute)
	require.NoError(t, expired.Set("OLD", "<html></html>"))

	live := NewPageCache(dir, time.Hour)
	require.NoError(t, live.Set("NEW", "<html>свежая</html>"))

	require.NoError(t, live.CleanExpired())

	_, found, err := live.Get("NEW")
	require.NoError(t, err)
	require.True(t, found)

	_, found, err = live.Get("OLD")
	require.NoError(t, err)
	require.False(t, found)
}
