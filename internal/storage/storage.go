/*
Package storage implements the persistent analytics layer.

This package provides SQLite-based storage for tool-call events with
graceful degradation if the database is unavailable. Conversation state
is deliberately not persisted; only tool-call analytics survive a
process restart.

The database lives at the path given by configuration (by default
~/.gadget-scout-mcp/analytics.db) and uses modernc.org/sqlite (a pure
Go, CGo-free implementation).
*/
package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// CallEvent is a single recorded tool invocation.
type CallEvent struct {
	// ToolName is the name of the tool that was invoked.
	ToolName string `json:"tool_name"`

	// QueryHash is the SHA256 hash of the triggering query for privacy.
	QueryHash string `json:"query_hash"`

	// Timestamp is when the tool was invoked.
	Timestamp time.Time `json:"timestamp"`

	// Success indicates whether the call was recorded as successful.
	Success bool `json:"success"`
}

// CallTotals aggregates recorded calls for one tool.
type CallTotals struct {
	Calls     int `json:"calls"`
	Successes int `json:"successes"`
}

// Storage defines the interface for persistent analytics operations.
type Storage interface {
	// Init initializes the database and runs migrations.
	Init() error

	// RecordCall records a tool-call event.
	RecordCall(event CallEvent) error

	// CallHistory retrieves call events for a tool since a given time.
	CallHistory(toolName string, since time.Time) ([]CallEvent, error)

	// Totals aggregates per-tool call counts since a given time.
	Totals(since time.Time) (map[string]CallTotals, error)

	// Cleanup removes records older than the retention window.
	Cleanup(retention time.Duration) error

	// Close closes the database connection.
	Close() error
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	mu       sync.Mutex
	initOnce sync.Once
}

// NewStorage creates a SQLite storage instance at dbPath.
//
// An empty path disables storage; all operations become no-ops rather
// than errors so callers never have to branch on analytics availability.
func NewStorage(dbPath string) *SQLiteStorage {
	return &SQLiteStorage{
		dbPath:  dbPath,
		enabled: dbPath != "",
	}
}

// Init initializes the database and runs migrations.
//
// If initialization fails, storage is disabled and subsequent operations
// become no-ops (graceful degradation).
func (s *SQLiteStorage) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		dbDir := filepath.Dir(s.dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.enabled = false
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}
	})

	return initErr
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.db = nil
	return nil
}

// HashQuery creates a SHA256 hash of a query string for privacy.
func HashQuery(query string) string {
	if query == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(query))
	return hex.EncodeToString(hash[:])
}
