package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolio/backend/internal/model"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
	now  Clock
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
// A nil clock uses time.Now.
func NewPgContactRepository(pool *pgxpool.Pool, now Clock) *PgContactRepository {
	return &PgContactRepository{pool: pool, now: clockOrDefault(now)}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

const contactColumns = `id, name, email, phone, subject, message, created_at, status`

// Append inserts a contact_messages row with id COUNT(*)+1. The table lock
// keeps concurrent appends from computing the same id.
func (r *PgContactRepository) Append(ctx context.Context, msg *model.ContactMessage) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &StorageError{Op: "pg begin", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `LOCK TABLE contact_messages IN EXCLUSIVE MODE`); err != nil {
		return &StorageError{Op: "pg lock", Err: err}
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&count); err != nil {
		return &StorageError{Op: "pg count", Err: err}
	}

	prepareAppend(msg, count, r.now)
	_, err = tx.Exec(ctx,
		`INSERT INTO contact_messages (`+contactColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		msg.ID, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message, msg.Timestamp.Time, msg.Status,
	)
	if err != nil {
		return &StorageError{Op: "pg insert", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return &StorageError{Op: "pg commit", Err: err}
	}
	return nil
}

// List returns contact messages filtered by status and ordered as opts asks.
// Status "" or "all" returns all messages.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	var args []any
	query := `SELECT ` + contactColumns + ` FROM contact_messages`

	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" {
		args = append(args, status)
		query += ` WHERE status = $` + strconv.Itoa(len(args))
	}

	switch opts.Sort {
	case "desc":
		query += ` ORDER BY created_at DESC, id ASC`
	case "asc":
		query += ` ORDER BY created_at ASC, id ASC`
	default:
		query += ` ORDER BY id ASC`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Op: "pg list", Err: err}
	}
	defer rows.Close()

	messages := []*model.ContactMessage{}
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, &StorageError{Op: "pg scan", Err: err}
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "pg list", Err: err}
	}
	return messages, nil
}

// UpdateStatus changes the status of one row and returns the updated record.
func (r *PgContactRepository) UpdateStatus(ctx context.Context, id int, status string) (*model.ContactMessage, error) {
	var hasRows bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM contact_messages)`).Scan(&hasRows); err != nil {
		return nil, &StorageError{Op: "pg exists", Err: err}
	}
	if !hasRows {
		return nil, ErrNoMessages
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE contact_messages SET status = $2 WHERE id = $1 RETURNING `+contactColumns,
		id, status,
	)
	m, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "pg update", Err: err}
	}
	return m, nil
}

// Ping checks the database connection.
func (r *PgContactRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanContact(row pgx.Row) (*model.ContactMessage, error) {
	var m model.ContactMessage
	var createdAt time.Time
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &createdAt, &m.Status); err != nil {
		return nil, err
	}
	m.Timestamp = model.NewTimestamp(createdAt)
	return &m, nil
}
