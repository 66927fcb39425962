package storage

import (
	"fmt"
	"log"
	"time"
)

// runMigrations executes database schema migrations.
func (s *SQLiteStorage) runMigrations() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	if err := s.createMigrationsTable(); err != nil {
		return err
	}

	version, err := s.currentMigrationVersion()
	if err != nil {
		return err
	}

	migrations := []migration{
		{version: 1, name: "initial_schema", up: s.migration001InitialSchema},
	}

	for _, m := range migrations {
		if version < m.version {
			log.Printf("Running migration %d: %s", m.version, m.name)
			if err := m.up(); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
			if err := s.setMigrationVersion(m.version, m.name); err != nil {
				return err
			}
		}
	}

	return nil
}

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	up      func() error
}

// createMigrationsTable creates the schema_migrations table.
func (s *SQLiteStorage) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`
	_, err := s.db.Exec(query)
	return err
}

// currentMigrationVersion returns the highest applied migration version.
func (s *SQLiteStorage) currentMigrationVersion() (int, error) {
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")

	var version int
	if err := row.Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// setMigrationVersion records a migration as applied.
func (s *SQLiteStorage) setMigrationVersion(version int, name string) error {
	_, err := s.db.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", version, name)
	return err
}

// migration001InitialSchema creates the tool_calls table and its indexes.
func (s *SQLiteStorage) migration001InitialSchema() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS tool_calls (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tool_name TEXT NOT NULL,
			query_hash TEXT NOT NULL,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
			success INTEGER NOT NULL DEFAULT 1
		)
	`); err != nil {
		return err
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tool_calls_tool_time
		ON tool_calls (tool_name, timestamp)
	`); err != nil {
		return err
	}

	return nil
}

// RecordCall records a tool-call event.
func (s *SQLiteStorage) RecordCall(event CallEvent) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	success := 0
	if event.Success {
		success = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO tool_calls (tool_name, query_hash, timestamp, success)
		VALUES (?, ?, ?, ?)
	`,
		event.ToolName,
		event.QueryHash,
		event.Timestamp.Format(time.RFC3339),
		success,
	)

	if err != nil {
		log.Printf("Warning: failed to record tool call: %v", err)
	}

	return nil
}

// CallHistory retrieves call events for a tool since a given time,
// newest first.
func (s *SQLiteStorage) CallHistory(toolName string, since time.Time) ([]CallEvent, error) {
	if !s.enabled || s.db == nil {
		return []CallEvent{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT tool_name, query_hash, timestamp, success
		FROM tool_calls
		WHERE tool_name = ? AND timestamp >= ?
		ORDER BY timestamp DESC
	`, toolName, since.Format(time.RFC3339))
	if err != nil {
		log.Printf("Warning: failed to query call history: %v", err)
		return []CallEvent{}, nil
	}
	defer rows.Close()

	var events []CallEvent
	for rows.Next() {
		var event CallEvent
		var timestampStr string
		var success int

		if err := rows.Scan(&event.ToolName, &event.QueryHash, &timestampStr, &success); err != nil {
			log.Printf("Warning: failed to scan call row: %v", err)
			continue
		}

		event.Success = success == 1
		event.Timestamp, err = time.Parse(time.RFC3339, timestampStr)
		if err != nil {
			log.Printf("Warning: failed to parse timestamp: %v", err)
			continue
		}

		events = append(events, event)
	}

	return events, rows.Err()
}

// Totals aggregates per-tool call counts since a given time.
func (s *SQLiteStorage) Totals(since time.Time) (map[string]CallTotals, error) {
	totals := make(map[string]CallTotals)

	if !s.enabled || s.db == nil {
		return totals, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT tool_name, COUNT(*), COALESCE(SUM(success), 0)
		FROM tool_calls
		WHERE timestamp >= ?
		GROUP BY tool_name
	`, since.Format(time.RFC3339))
	if err != nil {
		log.Printf("Warning: failed to query call totals: %v", err)
		return totals, nil
	}
	defer rows.Close()

	for rows.Next() {
		var toolName string
		var t CallTotals
		if err := rows.Scan(&toolName, &t.Calls, &t.Successes); err != nil {
			log.Printf("Warning: failed to scan totals row: %v", err)
			continue
		}
		totals[toolName] = t
	}

	return totals, rows.Err()
}

// Cleanup removes records older than the retention window.
func (s *SQLiteStorage) Cleanup(retention time.Duration) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-retention).Format(time.RFC3339)
	_, err := s.db.Exec("DELETE FROM tool_calls WHERE timestamp < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up old records: %w", err)
	}

	return nil
}
