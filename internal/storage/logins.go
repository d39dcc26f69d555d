package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/utsavgifts/catalogd/internal/model"
)

// SaveLogin records a login attempt.
func (s *SQLiteStorage) SaveLogin(ctx context.Context, entry model.AuditEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO login_history (timestamp, email, status, message, ip_address)
		 VALUES (?, ?, ?, ?, ?)`,
		ts.Format(time.RFC3339), entry.Email, string(entry.Status), entry.Message, entry.IPAddress)
	if err != nil {
		return fmt.Errorf("failed to save login entry: %w", err)
	}
	return nil
}

// RecentLogins returns the most recent login attempts, newest first.
func (s *SQLiteStorage) RecentLogins(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, email, status, message, ip_address
		 FROM login_history
		 ORDER BY timestamp DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query login history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.AuditEntry
	for rows.Next() {
		var (
			entry  model.AuditEntry
			ts     string
			status string
		)
		if err := rows.Scan(&ts, &entry.Email, &status, &entry.Message, &entry.IPAddress); err != nil {
			return nil, fmt.Errorf("failed to scan login entry: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, ts)
		if err == nil {
			entry.Timestamp = parsed
		}
		entry.Status = model.AuditStatus(status)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate login history: %w", err)
	}

	return entries, nil
}
