// Package boardcache keeps ephemeral duty-board rendering state in Redis.
// The board is a rendering cache, not durable business data, so it lives
// outside the record document.
package boardcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/community-ops/internal/domain"
)

const (
	boardKeyPrefix = "dutyboard:"
	defaultTTL     = 24 * time.Hour

	// DefaultGuild keys the board for single-community deployments.
	DefaultGuild = "default"
)

// Board is the last rendered duty-board state for a guild.
type Board struct {
	MessageID string               `json:"messageId"`
	Sessions  []domain.DutySession `json:"sessions"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// Cache stores boards keyed by guild id with a TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps a Redis client.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// Put stores the rendered board for a guild.
func (c *Cache) Put(ctx context.Context, guildID string, board Board) error {
	if c.client == nil {
		return nil
	}
	if board.UpdatedAt.IsZero() {
		board.UpdatedAt = time.Now()
	}
	data, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	return c.client.Set(ctx, boardKeyPrefix+guildID, data, c.ttl).Err()
}

// Get returns the cached board for a guild, or false when absent.
func (c *Cache) Get(ctx context.Context, guildID string) (Board, bool, error) {
	if c.client == nil {
		return Board{}, false, nil
	}
	data, err := c.client.Get(ctx, boardKeyPrefix+guildID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Board{}, false, nil
		}
		return Board{}, false, err
	}
	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		return Board{}, false, fmt.Errorf("decode board: %w", err)
	}
	return board, true, nil
}

// Invalidate drops the cached board for a guild.
func (c *Cache) Invalidate(ctx context.Context, guildID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, boardKeyPrefix+guildID).Err()
}
