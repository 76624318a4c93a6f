package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"Rabscootle/internal/logger"
)

// SQLiteRecorder persists interaction history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so readers don't block the bot's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.New("recorder").Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS interactions (
			id           TEXT PRIMARY KEY,
			timestamp    INTEGER NOT NULL,
			command      TEXT NOT NULL,
			option_value TEXT,
			user_name    TEXT,
			chat_id      TEXT,
			outcome      TEXT,
			duration_ms  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_ts ON interactions(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_cmd ON interactions(command)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordInteraction(evt *InteractionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := evt.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO interactions
		(id, timestamp, command, option_value, user_name, chat_id, outcome, duration_ms)
		VALUES (?,?,?,?,?,?,?,?)`,
		evt.ID, ts.Unix(), evt.Command, evt.Option, evt.User, evt.ChatID,
		evt.Outcome, evt.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert interaction %s: %w", evt.ID, err)
	}
	return nil
}

// CommandCounts returns how often each command was recorded.
func (r *SQLiteRecorder) CommandCounts() (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT command, COUNT(*) FROM interactions GROUP BY command`)
	if err != nil {
		return nil, fmt.Errorf("query command counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var cmd string
		var n int
		if err := rows.Scan(&cmd, &n); err != nil {
			return nil, fmt.Errorf("scan command count: %w", err)
		}
		counts[cmd] = n
	}
	return counts, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	logger.New("recorder").Info("closing sqlite recorder")
	return r.db.Close()
}
