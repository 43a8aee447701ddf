package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mailsift/mailsift/internal/core"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteCache is a SQLite implementation of the CacheRepository interface
type SQLiteCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewSQLiteCache creates a new SQLite cache
func NewSQLiteCache(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS classification_cache (
			message_id TEXT PRIMARY KEY,
			is_spam BOOLEAN,
			reason TEXT,
			has_unsubscribe_link BOOLEAN,
			identified_link TEXT,
			last_seen TIMESTAMP,
			expires_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_expires_at ON classification_cache(expires_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	cache := &SQLiteCache{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go cache.startCleanupTask()

	return cache, nil
}

// Get retrieves a cached classification for a message
func (c *SQLiteCache) Get(ctx context.Context, messageID string) (*core.Classification, bool) {
	var isSpam, hasLink bool
	var reason string
	var link sql.NullString

	err := c.db.QueryRowContext(ctx, `
		SELECT is_spam, reason, has_unsubscribe_link, identified_link
		FROM classification_cache
		WHERE message_id = ? AND expires_at > datetime('now')
	`, messageID).Scan(&isSpam, &reason, &hasLink, &link)

	if err != nil {
		if err != sql.ErrNoRows {
			c.logger.Error("Failed to query cache", zap.Error(err), zap.String("message_id", messageID))
		}
		return nil, false
	}

	classification := &core.Classification{
		IsSpam:             isSpam,
		Reason:             reason,
		HasUnsubscribeLink: hasLink,
	}
	if hasLink && link.Valid {
		classification.IdentifiedLink = &link.String
	}

	return classification, true
}

// Set stores a classification
func (c *SQLiteCache) Set(ctx context.Context, messageID string, classification *core.Classification, ttl time.Duration) {
	var link sql.NullString
	if classification.IdentifiedLink != nil {
		link = sql.NullString{String: *classification.IdentifiedLink, Valid: true}
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO classification_cache
			(message_id, is_spam, reason, has_unsubscribe_link, identified_link, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, messageID, classification.IsSpam, classification.Reason, classification.HasUnsubscribeLink,
		link, time.Now().Format(time.RFC3339), time.Now().Add(ttl).Format(time.RFC3339))

	if err != nil {
		c.logger.Error("Failed to insert cache entry", zap.Error(err), zap.String("message_id", messageID))
	}
}

// Delete removes a cache entry
func (c *SQLiteCache) Delete(ctx context.Context, messageID string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM classification_cache
		WHERE message_id = ?
	`, messageID)

	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries
func (c *SQLiteCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM classification_cache
		WHERE expires_at <= datetime('now')
	`)
	if err != nil {
		return fmt.Errorf("failed to clean up cache: %w", err)
	}

	if removed, err := result.RowsAffected(); err == nil {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int64("expired_count", removed))
	}
	return nil
}

// startCleanupTask starts a background task to clean up expired entries
func (c *SQLiteCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task and closes the database
func (c *SQLiteCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
