package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/portfolio/backend/internal/model"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS contact_messages (
	id        INTEGER PRIMARY KEY,
	name      TEXT NOT NULL,
	email     TEXT NOT NULL,
	phone     TEXT NOT NULL DEFAULT '',
	subject   TEXT NOT NULL,
	message   TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	status    TEXT NOT NULL DEFAULT 'unread'
)`

// SQLiteContactRepository stores contact messages in a SQLite database file.
// Timestamps are kept as fixed-width ISO-8601 text so ORDER BY sorts them
// chronologically.
type SQLiteContactRepository struct {
	mu  sync.Mutex // serialises appends so COUNT(*)+1 stays unique
	db  *sql.DB
	now Clock
}

// OpenSQLiteContactRepository opens (creating if needed) the database at path.
func OpenSQLiteContactRepository(ctx context.Context, path string, now Clock) (*SQLiteContactRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection: readers queue behind a committing writer instead of
	// failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite %q: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create contact_messages: %w", err)
	}
	return &SQLiteContactRepository{db: db, now: clockOrDefault(now)}, nil
}

var _ ContactRepository = (*SQLiteContactRepository)(nil)

// Close releases the database handle.
func (r *SQLiteContactRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteContactRepository) Append(ctx context.Context, msg *model.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "sqlite begin", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&count); err != nil {
		return &StorageError{Op: "sqlite count", Err: err}
	}

	prepareAppend(msg, count, r.now)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, subject, message, timestamp, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message, msg.Timestamp.String(), msg.Status,
	)
	if err != nil {
		return &StorageError{Op: "sqlite insert", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "sqlite commit", Err: err}
	}
	return nil
}

func (r *SQLiteContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	var args []any
	query := `SELECT id, name, email, phone, subject, message, timestamp, status FROM contact_messages`

	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}

	switch opts.Sort {
	case "desc":
		query += ` ORDER BY timestamp DESC, id ASC`
	case "asc":
		query += ` ORDER BY timestamp ASC, id ASC`
	default:
		query += ` ORDER BY id ASC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Op: "sqlite list", Err: err}
	}
	defer rows.Close()

	messages := []*model.ContactMessage{}
	for rows.Next() {
		m, err := scanSQLiteContact(rows)
		if err != nil {
			return nil, &StorageError{Op: "sqlite scan", Err: err}
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "sqlite list", Err: err}
	}
	return messages, nil
}

func (r *SQLiteContactRepository) UpdateStatus(ctx context.Context, id int, status string) (*model.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&count); err != nil {
		return nil, &StorageError{Op: "sqlite count", Err: err}
	}
	if count == 0 {
		return nil, ErrNoMessages
	}

	res, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, &StorageError{Op: "sqlite update", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, subject, message, timestamp, status FROM contact_messages WHERE id = ?`, id)
	m, err := scanSQLiteContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "sqlite select", Err: err}
	}
	return m, nil
}

// Ping checks the database handle.
func (r *SQLiteContactRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteContact(row rowScanner) (*model.ContactMessage, error) {
	var m model.ContactMessage
	var ts string
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &ts, &m.Status); err != nil {
		return nil, err
	}
	parsed, err := model.ParseTimestamp(ts)
	if err != nil {
		return nil, err
	}
	m.Timestamp = parsed
	return &m, nil
}
