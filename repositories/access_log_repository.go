package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vitalink/telemonitor/models"
)

// AccessLogRepository handles access log persistence.
// Entries are append-only; there are no update or delete operations.
type AccessLogRepository interface {
	Create(ctx context.Context, entry *models.AccessLogEntry) error
	List(ctx context.Context, filter models.AccessLogFilter) ([]models.AccessLogEntry, error)
	Count(ctx context.Context, filter models.AccessLogFilter) (int, error)
}

type accessLogRepository struct {
	db *sql.DB
}

// NewAccessLogRepository creates a new access log repository
func NewAccessLogRepository(db *sql.DB) AccessLogRepository {
	return &accessLogRepository{db: db}
}

// Create inserts a new access log entry and sets its ID and timestamp
func (r *accessLogRepository) Create(ctx context.Context, entry *models.AccessLogEntry) error {
	query := `
		INSERT INTO access_logs (user_id, username, nome, cognome, ruolo,
		                         action_type, page_url, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query,
		entry.UserID,
		entry.Username,
		entry.Nome,
		entry.Cognome,
		entry.Ruolo,
		entry.Action,
		entry.PageURL,
		entry.IPAddress,
		entry.UserAgent,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create access log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	entry.ID = id
	return nil
}

// List retrieves entries matching the filter, newest first
func (r *accessLogRepository) List(ctx context.Context, filter models.AccessLogFilter) ([]models.AccessLogEntry, error) {
	query := `
		SELECT id, user_id, username, nome, cognome, ruolo,
		       action_type, page_url, ip_address, user_agent, created_at
		FROM access_logs
	`

	where, args := buildAccessLogFilter(filter)
	query += where
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query access logs: %w", err)
	}
	defer rows.Close()

	var entries []models.AccessLogEntry
	for rows.Next() {
		var entry models.AccessLogEntry
		var nome, cognome, ruolo, pageURL, ipAddress, userAgent sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Username,
			&nome,
			&cognome,
			&ruolo,
			&entry.Action,
			&pageURL,
			&ipAddress,
			&userAgent,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access log entry: %w", err)
		}

		entry.Nome = nome.String
		entry.Cognome = cognome.String
		entry.Ruolo = ruolo.String
		entry.PageURL = pageURL.String
		entry.IPAddress = ipAddress.String
		entry.UserAgent = userAgent.String

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating access logs: %w", err)
	}

	return entries, nil
}

// Count returns the number of entries matching the filter, ignoring limit/offset
func (r *accessLogRepository) Count(ctx context.Context, filter models.AccessLogFilter) (int, error) {
	query := `SELECT COUNT(*) FROM access_logs`

	where, args := buildAccessLogFilter(filter)
	query += where

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count access logs: %w", err)
	}

	return count, nil
}

// buildAccessLogFilter builds the WHERE clause shared by List and Count
func buildAccessLogFilter(filter models.AccessLogFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.UserID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.Action != "" {
		conditions = append(conditions, "action_type = ?")
		args = append(args, filter.Action)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
