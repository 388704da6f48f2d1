package llm

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey_Stable(t *testing.T) {
	req := Request{Model: "m", Messages: []Message{{Role: RoleUser, Content: "안녕 <b>"}}, Temperature: Temperature(0.2)}

	key := CacheKey(req)
	assert.Regexp(t, regexp.MustCompile(`^chat-[0-9a-f]{40}$`), key)
	assert.Equal(t, key, CacheKey(req))

	assert.NotEqual(t, key, CacheKey(req.WithoutTemperature()))
	assert.NotEqual(t, key, CacheKey(Request{Model: "other", Messages: req.Messages, Temperature: req.Temperature}))
}

func TestCanonicalJSON_SortsKeysAndKeepsUnicode(t *testing.T) {
	raw, err := canonicalJSON(Request{Model: "m", Messages: []Message{{Role: "user", Content: "서울 & <x>"}}})
	require.NoError(t, err)
	assert.Equal(t, `{"messages":[{"content":"서울 & <x>","role":"user"}],"model":"m"}`, string(raw))
}

func TestDirCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := NewDirCache(dir)

	_, ok := c.Get("chat-abc", time.Minute)
	assert.False(t, ok, "miss before the directory exists")

	c.Put("chat-abc", "hello")
	got, ok := c.Get("chat-abc", time.Minute)
	require.True(t, ok)
	assert.Equal(t, "hello", got)
	assert.FileExists(t, filepath.Join(dir, "chat-abc.json"))

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "chat-abc.json"), old, old))
	_, ok = c.Get("chat-abc", time.Minute)
	assert.False(t, ok, "expired entry")

	_, ok = c.Get("chat-abc", 0)
	assert.True(t, ok, "zero max age disables expiry")
}

func TestDirCache_UnwritableIsNoop(t *testing.T) {
	file := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	c := NewDirCache(filepath.Join(file, "sub"))
	c.Put("k", "v")
	_, ok := c.Get("k", time.Minute)
	assert.False(t, ok)
}

func TestSQLiteCache(t *testing.T) {
	c, err := OpenSQLiteCache(filepath.Join(t.TempDir(), "cache", "llm.db"))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, ok := c.Get("k", time.Minute)
	assert.False(t, ok)

	c.Put("k", "v1")
	c.Put("k", "v2")
	got, ok := c.Get("k", time.Minute)
	require.True(t, ok)
	assert.Equal(t, "v2", got)

	_, err = c.db.Exec(`UPDATE llm_cache SET created_at = ? WHERE key = ?`, time.Now().Add(-time.Hour).UnixNano(), "k")
	require.NoError(t, err)
	_, ok = c.Get("k", time.Minute)
	assert.False(t, ok)
}

func TestSQLiteCache_Pragmas(t *testing.T) {
	c, err := OpenSQLiteCache(filepath.Join(t.TempDir(), "llm.db"))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	var mode string
	require.NoError(t, c.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, c.db.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestSQLiteCache_InMemory(t *testing.T) {
	c, err := OpenSQLiteCache(":memory:")
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	c.Put("k", "v")
	got, ok := c.Get("k", time.Minute)
	require.True(t, ok)
	assert.Equal(t, "v", got)
}
