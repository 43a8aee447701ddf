package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mailsift/mailsift/internal/core"
	"go.uber.org/zap"
)

// MySQLCache is a MySQL implementation of the CacheRepository interface
type MySQLCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMySQLCache creates a new MySQL cache
func NewMySQLCache(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLCache, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS classification_cache (
			message_id VARCHAR(128) PRIMARY KEY,
			is_spam BOOLEAN,
			reason TEXT,
			has_unsubscribe_link BOOLEAN,
			identified_link TEXT,
			last_seen DATETIME,
			expires_at DATETIME,
			INDEX idx_expires_at (expires_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	cache := &MySQLCache{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go cache.startCleanupTask()

	return cache, nil
}

// Get retrieves a cached classification for a message
func (c *MySQLCache) Get(ctx context.Context, messageID string) (*core.Classification, bool) {
	var isSpam, hasLink bool
	var reason string
	var link sql.NullString

	err := c.db.QueryRowContext(ctx, `
		SELECT is_spam, reason, has_unsubscribe_link, identified_link
		FROM classification_cache
		WHERE message_id = ? AND expires_at > NOW()
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
func (c *MySQLCache) Set(ctx context.Context, messageID string, classification *core.Classification, ttl time.Duration) {
	var link sql.NullString
	if classification.IdentifiedLink != nil {
		link = sql.NullString{String: *classification.IdentifiedLink, Valid: true}
	}

	_, err := c.db.ExecContext(ctx, `
		REPLACE INTO classification_cache
			(message_id, is_spam, reason, has_unsubscribe_link, identified_link, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, messageID, classification.IsSpam, classification.Reason, classification.HasUnsubscribeLink,
		link, time.Now(), time.Now().Add(ttl))

	if err != nil {
		c.logger.Error("Failed to insert cache entry", zap.Error(err), zap.String("message_id", messageID))
	}
}

// Delete removes a cache entry
func (c *MySQLCache) Delete(ctx context.Context, messageID string) error {
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
func (c *MySQLCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM classification_cache
		WHERE expires_at <= NOW()
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
func (c *MySQLCache) startCleanupTask() {
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
func (c *MySQLCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close MySQL connection", zap.Error(err))
	}
}
