package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vetdesk/vetdesk/internal/dbx"
)

// SQLiteStore keeps credentials in the client database, table
// credentials(key TEXT PRIMARY KEY, value TEXT).
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Save(ctx context.Context, creds Credentials) error {
	pairs := map[string]string{
		KeyToken:  creds.Token,
		KeyEmail:  creds.Email,
		KeyUserID: creds.UserID,
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range pairs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO credentials (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, value)
			if err != nil {
				return fmt.Errorf("failed to save credentials[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Load(ctx context.Context) (Credentials, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM credentials WHERE key IN (?, ?, ?)`,
		KeyToken, KeyEmail, KeyUserID)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to load credentials: %w", err)
	}
	defer rows.Close()

	var creds Credentials
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Credentials{}, fmt.Errorf("failed to scan credentials row: %w", err)
		}
		switch key {
		case KeyToken:
			creds.Token = value
		case KeyEmail:
			creds.Email = value
		case KeyUserID:
			creds.UserID = value
		}
	}
	if err := rows.Err(); err != nil {
		return Credentials{}, fmt.Errorf("failed to iterate credentials rows: %w", err)
	}
	return creds, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE key IN (?, ?, ?)`,
		KeyToken, KeyEmail, KeyUserID)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
