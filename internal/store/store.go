package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yunhang/cloudnav/internal/models"
)

// Persisted keys. One slot each, overwritten wholesale on every write.
const (
	KeySnapshot = "snapshot"
	KeyToken    = "auth_token"
	KeyWebDAV   = "webdav_config"
	KeyAI       = "ai_config"
	KeyTheme    = "theme"
)

// Store is the durable local cache: a single-table key/value slot backed by
// SQLite. It plays the role browser local storage plays in the web app.
type Store struct {
	conn *sql.DB
}

func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate cache: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// Get returns the raw value for key, or nil when the key is absent.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

// Set overwrites the slot for key.
func (s *Store) Set(key string, value []byte) error {
	_, err := s.conn.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the slot for key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.conn.Exec(`DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// SaveSnapshot serializes the snapshot into its slot.
func (s *Store) SaveSnapshot(snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return s.Set(KeySnapshot, data)
}

// LoadSnapshot returns the cached snapshot. A missing or unreadable blob
// returns nil without error; the caller falls back to defaults.
func (s *Store) LoadSnapshot() (*models.Snapshot, error) {
	data, err := s.Get(KeySnapshot)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Corrupt cache is recovered by falling back, never fatal.
		return nil, nil
	}
	return &snap, nil
}

// Token returns the persisted auth token, or "" when none is stored.
func (s *Store) Token() string {
	data, err := s.Get(KeyToken)
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *Store) SaveToken(token string) error {
	return s.Set(KeyToken, []byte(token))
}

func (s *Store) ClearToken() error {
	return s.Delete(KeyToken)
}

// Theme returns the persisted theme identifier, defaulting when unset.
func (s *Store) Theme() string {
	data, err := s.Get(KeyTheme)
	if err != nil || len(data) == 0 {
		return models.DefaultTheme
	}
	return string(data)
}

func (s *Store) SaveTheme(theme string) error {
	return s.Set(KeyTheme, []byte(theme))
}

// WebDAVConfig returns the stored backup settings, or nil when unset.
func (s *Store) WebDAVConfig() *models.WebDAVConfig {
	var cfg models.WebDAVConfig
	if !s.loadJSON(KeyWebDAV, &cfg) {
		return nil
	}
	return &cfg
}

func (s *Store) SaveWebDAVConfig(cfg *models.WebDAVConfig) error {
	return s.saveJSON(KeyWebDAV, cfg)
}

// AIConfig returns the stored provider settings, or nil when unset.
func (s *Store) AIConfig() *models.AIConfig {
	var cfg models.AIConfig
	if !s.loadJSON(KeyAI, &cfg) {
		return nil
	}
	return &cfg
}

func (s *Store) SaveAIConfig(cfg *models.AIConfig) error {
	return s.saveJSON(KeyAI, cfg)
}

func (s *Store) saveJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.Set(key, data)
}

func (s *Store) loadJSON(key string, v interface{}) bool {
	data, err := s.Get(key)
	if err != nil || len(data) == 0 {
		return false
	}
	return json.Unmarshal(data, v) == nil
}
