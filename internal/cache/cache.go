package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/malbright/frontpage/internal/article"
)

// Cache persists the most recent article batch as a whole-batch snapshot.
// A snapshot younger than the TTL is returned verbatim and the fetch stage
// is skipped; anything else (absent, expired, unreadable, corrupt) is a
// miss. There is no partial refresh and no cross-process locking; the last
// writer wins.
type Cache struct {
	db *sql.DB
}

func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	db.SetMaxOpenConns(1)

	c := &Cache{db: db}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshot (
			position        INTEGER PRIMARY KEY,
			title           TEXT NOT NULL,
			summary         TEXT NOT NULL,
			url             TEXT NOT NULL,
			image_url       TEXT NOT NULL DEFAULT '',
			category        TEXT NOT NULL,
			style           TEXT NOT NULL DEFAULT 'normal',
			source          TEXT NOT NULL,
			published       DATETIME NOT NULL,
			headline        TEXT NOT NULL DEFAULT '',
			score           INTEGER NOT NULL DEFAULT 0,
			tech_importance INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Load returns the cached batch when the snapshot is younger than ttl.
// ok is false on any miss, including read errors and corruption.
func (c *Cache) Load(ttl time.Duration) (articles []article.Article, ok bool) {
	var value string
	err := c.db.QueryRow("SELECT value FROM meta WHERE key = 'fetched_at'").Scan(&value)
	if err != nil {
		return nil, false
	}
	fetchedAt, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, false
	}
	if time.Since(fetchedAt) >= ttl {
		return nil, false
	}

	rows, err := c.db.Query(`
		SELECT title, summary, url, image_url, category, style, source,
		       published, headline, score, tech_importance
		FROM snapshot ORDER BY position
	`)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	for rows.Next() {
		var a article.Article
		if err := rows.Scan(&a.Title, &a.Summary, &a.URL, &a.ImageURL,
			&a.Category, &a.Style, &a.Source, &a.Published,
			&a.Headline, &a.Score, &a.TechImportance); err != nil {
			return nil, false
		}
		articles = append(articles, a)
	}
	if rows.Err() != nil {
		return nil, false
	}
	return articles, true
}

// Store replaces the snapshot with the given batch and stamps it with the
// current time, all in one transaction.
func (c *Cache) Store(articles []article.Article) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM snapshot"); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO snapshot (position, title, summary, url, image_url,
			category, style, source, published, headline, score, tech_importance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, a := range articles {
		_, err := stmt.Exec(i, a.Title, a.Summary, a.URL, a.ImageURL,
			a.Category, a.Style, a.Source, a.Published,
			a.Headline, a.Score, a.TechImportance)
		if err != nil {
			return fmt.Errorf("storing article %s: %w", a.URL, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO meta (key, value) VALUES ('fetched_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().Format(time.RFC3339))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Clear drops the snapshot and its timestamp.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec("DELETE FROM snapshot"); err != nil {
		return err
	}
	_, err := c.db.Exec("DELETE FROM meta WHERE key = 'fetched_at'")
	return err
}

// Stats reports the cached article count and the snapshot timestamp.
// A zero time means no snapshot exists.
func (c *Cache) Stats() (count int, fetchedAt time.Time, err error) {
	if err = c.db.QueryRow("SELECT COUNT(*) FROM snapshot").Scan(&count); err != nil {
		return 0, time.Time{}, err
	}
	var value string
	err = c.db.QueryRow("SELECT value FROM meta WHERE key = 'fetched_at'").Scan(&value)
	if err == sql.ErrNoRows {
		return count, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}
	fetchedAt, _ = time.Parse(time.RFC3339, value)
	return count, fetchedAt, nil
}
