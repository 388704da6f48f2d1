package llm

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // content addressing, not security
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Cache stores completion text by request key. Implementations treat every
// failure as a miss on read and a no-op on write.
type Cache interface {
	Get(key string, maxAge time.Duration) (string, bool)
	Put(key, content string)
}

// CacheKey returns "chat-" plus the SHA-1 hex digest of the request's canonical
// JSON encoding (object keys sorted, non-ASCII left unescaped).
func CacheKey(req Request) string {
	raw, err := canonicalJSON(req)
	if err != nil {
		raw, _ = json.Marshal(req)
	}
	sum := sha1.Sum(raw) //nolint:gosec // content addressing, not security
	return "chat-" + hex.EncodeToString(sum[:])
}

func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(generic); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DirCache keeps one file per key under a directory. Entry age is the file's mtime.
// The directory is created on first write.
type DirCache struct {
	dir  string
	once sync.Once
	err  error
}

// NewDirCache creates a directory-backed cache rooted at dir.
func NewDirCache(dir string) *DirCache {
	return &DirCache{dir: dir}
}

func (c *DirCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get returns the cached content if it exists and is younger than maxAge.
// A non-positive maxAge disables expiry.
func (c *DirCache) Get(key string, maxAge time.Duration) (string, bool) {
	p := c.path(key)
	info, err := os.Stat(p)
	if err != nil {
		return "", false
	}
	if maxAge > 0 && time.Since(info.ModTime()) > maxAge {
		return "", false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Put writes content for key, ignoring any filesystem error.
func (c *DirCache) Put(key, content string) {
	c.once.Do(func() {
		c.err = os.MkdirAll(c.dir, 0o755)
	})
	if c.err != nil {
		return
	}
	_ = os.WriteFile(c.path(key), []byte(content), 0o644)
}

// SQLiteCache keeps entries in a single SQLite table.
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLiteCache opens (or creates) the cache database at path.
// Pass ":memory:" for an in-memory cache.
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS llm_cache (
		key        TEXT PRIMARY KEY,
		content    TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

// Get returns the cached content if present and younger than maxAge.
func (c *SQLiteCache) Get(key string, maxAge time.Duration) (string, bool) {
	var content string
	var createdAt int64
	err := c.db.QueryRow(`SELECT content, created_at FROM llm_cache WHERE key = ?`, key).Scan(&content, &createdAt)
	if err != nil {
		return "", false
	}
	if maxAge > 0 && time.Since(time.Unix(0, createdAt)) > maxAge {
		return "", false
	}
	return content, true
}

// Put upserts content for key.
func (c *SQLiteCache) Put(key, content string) {
	_, _ = c.db.Exec(`INSERT INTO llm_cache (key, content, created_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET content = excluded.content, created_at = excluded.created_at`,
		key, content, time.Now().UnixNano())
}

// Close closes the underlying database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// noCache never hits.
type noCache struct{}

func (noCache) Get(string, time.Duration) (string, bool) { return "", false }
func (noCache) Put(string, string)                       {}
