package auth

import (
	"context"
	"database/sql"
	"errors"
)

// SQLStore persists session entries in a MySQL table:
//
//	CREATE TABLE session_entries (
//	  k VARCHAR(64) PRIMARY KEY,
//	  v TEXT NOT NULL,
//	  updated_at DATETIME NOT NULL
//	);
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		"SELECT v FROM session_entries WHERE k=? LIMIT 1", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO session_entries (k, v, updated_at) VALUES (?,?,UTC_TIMESTAMP()) "+
			"ON DUPLICATE KEY UPDATE v=VALUES(v), updated_at=UTC_TIMESTAMP()",
		key, value)
	return err
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM session_entries WHERE k=?", key)
	return err
}
