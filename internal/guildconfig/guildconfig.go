// Package guildconfig stores per-guild role and channel identifiers. It is a
// collaborator beside the record store: the core services never read it,
// they accept already-resolved identifiers from callers.
package guildconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// GuildConfig holds resolved identifiers for one guild.
type GuildConfig struct {
	GuildID          string `json:"guildId"`
	StaffRoleID      string `json:"staffRoleId"`
	DutyRoleID       string `json:"dutyRoleId"`
	TicketCategoryID string `json:"ticketCategoryId"`
	DutyBoardChannel string `json:"dutyBoardChannelId"`
	LogChannelID     string `json:"logChannelId"`
}

// Store persists guild configurations in a JSON file, keyed by guild id.
type Store struct {
	mu     sync.RWMutex
	path   string
	guilds map[string]GuildConfig
	logger *zap.Logger
}

// NewStore creates a store backed by the given file.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, guilds: map[string]GuildConfig{}, logger: logger}
}

// Hydrate loads stored configurations. Missing or malformed content starts
// empty.
func (s *Store) Hydrate(ctx context.Context) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read guild config file: %w", err)
	}

	guilds := map[string]GuildConfig{}
	if err := json.Unmarshal(data, &guilds); err != nil {
		s.logger.Warn("discarding malformed guild config file",
			zap.String("path", s.path),
			zap.Error(err))
		return nil
	}

	s.mu.Lock()
	s.guilds = guilds
	s.mu.Unlock()
	return nil
}

// Get returns the configuration for a guild.
func (s *Store) Get(guildID string) (GuildConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.guilds[guildID]
	return cfg, ok
}

// Put stores a guild configuration and flushes the file.
func (s *Store) Put(ctx context.Context, cfg GuildConfig) error {
	if cfg.GuildID == "" {
		return errors.New("guild id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guilds[cfg.GuildID] = cfg
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.guilds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode guild configs: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace guild config file: %w", err)
	}
	return nil
}
