package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ResponseCache stores raw provider response bodies keyed by the full request
// parameter tuple, with per-entry expiry. Search results live minutes, detail
// lookups an hour; both windows come from configuration.
type ResponseCache struct {
	DB  *sql.DB
	Now func() time.Time // test hook, defaults to time.Now
}

func (c *ResponseCache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Get returns the cached body for key if present and unexpired.
func (c *ResponseCache) Get(ctx context.Context, key string) (string, bool) {
	var body, expires string
	err := c.DB.QueryRowContext(ctx,
		`SELECT body, expires_at FROM api_cache WHERE key = ?;`, key,
	).Scan(&body, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		return "", false
	}

	exp, err := time.Parse(time.RFC3339, expires)
	if err != nil || !c.now().Before(exp) {
		return "", false
	}
	return body, true
}

// Put upserts a body with the given ttl.
func (c *ResponseCache) Put(ctx context.Context, key, body string, ttl time.Duration) error {
	now := c.now().UTC()
	_, err := c.DB.ExecContext(ctx, `
INSERT INTO api_cache(key, body, fetched_at, expires_at)
VALUES(?,?,?,?)
ON CONFLICT(key) DO UPDATE SET
  body = excluded.body,
  fetched_at = excluded.fetched_at,
  expires_at = excluded.expires_at;`,
		key,
		body,
		now.Format(time.RFC3339),
		now.Add(ttl).Format(time.RFC3339),
	)
	return err
}

// Prune drops expired entries. Called opportunistically at startup.
func (c *ResponseCache) Prune(ctx context.Context) error {
	_, err := c.DB.ExecContext(ctx,
		`DELETE FROM api_cache WHERE expires_at < ?;`,
		c.now().UTC().Format(time.RFC3339),
	)
	return err
}
