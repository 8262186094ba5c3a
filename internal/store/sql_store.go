package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const createTokensTable = `
CREATE TABLE IF NOT EXISTS visitor_tokens (
	visitor_id CHAR(36) NOT NULL PRIMARY KEY,
	token TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

const createCookiesTable = `
CREATE TABLE IF NOT EXISTS visitor_cookies (
	visitor_id CHAR(36) NOT NULL PRIMARY KEY,
	cookies JSON NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// SQLStore keeps visitor tokens and API cookies in MySQL.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

// EnsureSchema creates the token and cookie tables when they do not exist yet.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, createTokensTable); err != nil {
		return fmt.Errorf("create visitor_tokens: %w", err)
	}
	if _, err := s.DB.ExecContext(ctx, createCookiesTable); err != nil {
		return fmt.Errorf("create visitor_cookies: %w", err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context, visitorID string) (string, error) {
	var token string
	err := s.DB.QueryRowContext(ctx,
		"SELECT token FROM visitor_tokens WHERE visitor_id = ?", visitorID,
	).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *SQLStore) Save(ctx context.Context, visitorID, token string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO visitor_tokens (visitor_id, token) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE token = VALUES(token)`,
		visitorID, token,
	)
	return err
}

func (s *SQLStore) Delete(ctx context.Context, visitorID string) error {
	_, err := s.DB.ExecContext(ctx, "DELETE FROM visitor_tokens WHERE visitor_id = ?", visitorID)
	return err
}

func (s *SQLStore) LoadCookies(ctx context.Context, visitorID string) ([]*http.Cookie, error) {
	var raw []byte
	err := s.DB.QueryRowContext(ctx,
		"SELECT cookies FROM visitor_cookies WHERE visitor_id = ?", visitorID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var cookies []*http.Cookie
	if err := json.Unmarshal(raw, &cookies); err != nil {
		return nil, fmt.Errorf("decode cookies of visitor %s: %w", visitorID, err)
	}
	return cookies, nil
}

func (s *SQLStore) SaveCookies(ctx context.Context, visitorID string, cookies []*http.Cookie) error {
	if cookies == nil {
		cookies = []*http.Cookie{}
	}
	raw, err := json.Marshal(cookies)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO visitor_cookies (visitor_id, cookies) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE cookies = VALUES(cookies)`,
		visitorID, string(raw),
	)
	return err
}
