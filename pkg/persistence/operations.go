package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/bot"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/logx"
)

// Store provides the chat persistence operations. It implements
// bot.TurnLogger.
type Store struct {
	db     *sql.DB
	logger *logx.Logger
}

// NewStore wraps an opened database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, logger: logx.NewLogger("persistence")}
}

// DB exposes the underlying handle for lifecycle management.
func (s *Store) DB() *sql.DB { return s.db }

// TouchSession upserts the session row and bumps its message counter.
func (s *Store) TouchSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_sessions (id, created_at, last_seen, message_count)
		VALUES (?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, 1)
		ON CONFLICT(id) DO UPDATE SET
			last_seen = CURRENT_TIMESTAMP,
			message_count = message_count + 1
	`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to touch session %s: %w", sessionID, err)
	}
	return nil
}

// RecordMessage stores one transcript line.
func (s *Store) RecordMessage(ctx context.Context, sessionID, role, content, intentName string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (session_id, role, content, intent)
		VALUES (?, ?, ?, ?)
	`, sessionID, role, content, nullable(intentName))
	if err != nil {
		return fmt.Errorf("failed to record message for session %s: %w", sessionID, err)
	}
	return nil
}

// LogTurn stores one classified turn for analytics.
func (s *Store) LogTurn(ctx context.Context, sessionID string, e bot.TurnEvent) error {
	if err := s.TouchSession(ctx, sessionID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_events (session_id, intent, message, selected_panel, purpose, snapshot)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, e.Intent, e.Message, nullable(e.SelectedPanel), nullable(e.Purpose), nullable(string(e.Snapshot)))
	if err != nil {
		return fmt.Errorf("failed to log turn for session %s: %w", sessionID, err)
	}
	return nil
}

// LogConfiguration stores a saved configuration and flags the session.
func (s *Store) LogConfiguration(ctx context.Context, sessionID string, e bot.ConfigEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO configurations (session_id, summary, snapshot)
		VALUES (?, ?, ?)
	`, sessionID, e.Summary, nullable(string(e.Snapshot)))
	if err != nil {
		return fmt.Errorf("failed to log configuration for session %s: %w", sessionID, err)
	}
	if _, err := s.db.ExecContext(ctx,
		"UPDATE chat_sessions SET saved = 1 WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to flag session %s saved: %w", sessionID, err)
	}
	return nil
}

// Analytics aggregates the dashboard numbers.
func (s *Store) Analytics(ctx context.Context) (*Analytics, error) {
	a := &Analytics{}

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chat_sessions").Scan(&a.TotalSessions); err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chat_messages").Scan(&a.TotalMessages); err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM configurations").Scan(&a.SavedConfigurations); err != nil {
		return nil, fmt.Errorf("failed to count configurations: %w", err)
	}

	var err error
	if a.TopPanels, err = s.nameCounts(ctx, `
		SELECT selected_panel, COUNT(*) AS n FROM chat_events
		WHERE selected_panel IS NOT NULL AND selected_panel != ''
		GROUP BY selected_panel ORDER BY n DESC LIMIT 5`); err != nil {
		return nil, fmt.Errorf("failed to aggregate top panels: %w", err)
	}
	if a.TopPurposes, err = s.nameCounts(ctx, `
		SELECT purpose, COUNT(*) AS n FROM chat_events
		WHERE purpose IS NOT NULL AND purpose != ''
		GROUP BY purpose ORDER BY n DESC LIMIT 5`); err != nil {
		return nil, fmt.Errorf("failed to aggregate top purposes: %w", err)
	}
	if a.IntentBreakdown, err = s.nameCounts(ctx, `
		SELECT intent, COUNT(*) AS n FROM chat_events
		GROUP BY intent ORDER BY n DESC`); err != nil {
		return nil, fmt.Errorf("failed to aggregate intents: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date(created_at) AS day, COUNT(*) AS n FROM chat_sessions
		WHERE created_at >= date('now', '-6 days')
		GROUP BY day ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily sessions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d DayCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily sessions: %w", err)
		}
		a.DailySessions = append(a.DailySessions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily sessions: %w", err)
	}

	return a, nil
}

// Messages returns transcript lines created at or after since, oldest first.
func (s *Store) Messages(ctx context.Context, since time.Time) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, COALESCE(intent, ''), created_at
		FROM chat_messages
		WHERE created_at >= ?
		ORDER BY created_at ASC, id ASC
	`, since.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Intent, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return out, nil
}

// Configurations returns the most recent saved configurations.
func (s *Store) Configurations(ctx context.Context, limit int) ([]Configuration, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, summary, COALESCE(snapshot, ''), created_at
		FROM configurations
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query configurations: %w", err)
	}
	defer rows.Close()

	var out []Configuration
	for rows.Next() {
		var c Configuration
		if err := rows.Scan(&c.ID, &c.SessionID, &c.Summary, &c.Snapshot, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan configuration: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate configurations: %w", err)
	}
	return out, nil
}

func (s *Store) nameCounts(ctx context.Context, query string) ([]NameCount, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NameCount
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, err
		}
		out = append(out, nc)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
