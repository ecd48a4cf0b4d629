package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storyfeed/internal/dbx"
)

const (
	keyToken    = "token"
	keyUsername = "username"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, q dbx.DBTX, key string) (string, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, true, nil
}

// Get returns the stored credentials, or nil if no complete pair exists.
func (r *SQLiteRepository) Get(ctx context.Context) (*Credentials, error) {
	token, ok, err := r.get(ctx, r.db, keyToken)
	if err != nil || !ok {
		return nil, err
	}
	username, ok, err := r.get(ctx, r.db, keyUsername)
	if err != nil || !ok {
		return nil, err
	}
	return &Credentials{Token: token, Username: username}, nil
}

// Set stores both credential fields in a single transaction so a crash
// cannot leave a token without a username behind.
func (r *SQLiteRepository) Set(ctx context.Context, token, username string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range map[string]string{keyToken: token, keyUsername: username} {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO session (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, value)
			if err != nil {
				return fmt.Errorf("failed to set session[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
