// internal/adapters/out/db/document_store_pg.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"canteen/internal/domain/common"
)

// DefaultDocumentTable is used when no table name is configured.
const DefaultDocumentTable = "documents"

// DocumentStorePG implements common.DocumentRepository on a single JSONB
// table keyed by (collection, id).
type DocumentStorePG struct {
	DB    *sql.DB
	table string
}

// Compile-time check
var _ common.DocumentRepository = (*DocumentStorePG)(nil)

func NewDocumentStorePG(db *sql.DB, table string) *DocumentStorePG {
	table = strings.TrimSpace(table)
	if table == "" {
		table = DefaultDocumentTable
	}
	return &DocumentStorePG{DB: db, table: pq.QuoteIdentifier(table)}
}

// EnsureSchema creates the table when it does not exist yet.
func (s *DocumentStorePG) EnsureSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("postgres: db is nil")
	}
	q := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  collection TEXT        NOT NULL,
  id         TEXT        NOT NULL,
  data       JSONB       NOT NULL DEFAULT '{}'::jsonb,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (collection, id)
)`, s.table)
	_, err := s.DB.ExecContext(ctx, q)
	return err
}

// =======================
// Queries
// =======================

func (s *DocumentStorePG) GetAll(ctx context.Context, collection string) ([]common.Document, error) {
	if s.DB == nil {
		return nil, errors.New("postgres: db is nil")
	}
	run := GetRunner(ctx, s.DB)

	q := fmt.Sprintf(`SELECT id, data FROM %s WHERE collection = $1 ORDER BY id`, s.table)
	rows, err := run.QueryContext(ctx, q, strings.TrimSpace(collection))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []common.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// =======================
// Commands
// =======================

func (s *DocumentStorePG) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if s.DB == nil {
		return errors.New("postgres: db is nil")
	}
	c, i, err := common.CheckKey(collection, id)
	if err != nil {
		return err
	}
	payload, err := encodeData(data)
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`
INSERT INTO %s (collection, id, data, updated_at)
VALUES ($1, $2, $3::jsonb, now())
ON CONFLICT (collection, id) DO UPDATE SET
  data       = EXCLUDED.data,
  updated_at = now()`, s.table)
	_, err = GetRunner(ctx, s.DB).ExecContext(ctx, q, c, i, payload)
	return err
}

// Update merges fields into the stored object (top-level keys only).
func (s *DocumentStorePG) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if s.DB == nil {
		return errors.New("postgres: db is nil")
	}
	c, i, err := common.CheckKey(collection, id)
	if err != nil {
		return err
	}
	payload, err := encodeData(fields)
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`
UPDATE %s SET
  data       = data || $3::jsonb,
  updated_at = now()
WHERE collection = $1 AND id = $2`, s.table)
	res, err := GetRunner(ctx, s.DB).ExecContext(ctx, q, c, i, payload)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *DocumentStorePG) Delete(ctx context.Context, collection, id string) error {
	if s.DB == nil {
		return errors.New("postgres: db is nil")
	}
	c, i, err := common.CheckKey(collection, id)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`DELETE FROM %s WHERE collection = $1 AND id = $2`, s.table)
	_, err = GetRunner(ctx, s.DB).ExecContext(ctx, q, c, i)
	return err
}

// DeleteMany removes several ids of a collection in one statement.
func (s *DocumentStorePG) DeleteMany(ctx context.Context, collection string, ids []string) error {
	if s.DB == nil {
		return errors.New("postgres: db is nil")
	}
	if len(ids) == 0 {
		return nil
	}
	q := fmt.Sprintf(`DELETE FROM %s WHERE collection = $1 AND id = ANY($2)`, s.table)
	_, err := GetRunner(ctx, s.DB).ExecContext(ctx, q, strings.TrimSpace(collection), pq.Array(ids))
	return err
}

// =======================
// Helpers
// =======================

func scanDocument(s RowScanner) (common.Document, error) {
	var (
		id  string
		raw []byte
	)
	if err := s.Scan(&id, &raw); err != nil {
		return common.Document{}, err
	}
	data, err := decodeData(raw)
	if err != nil {
		return common.Document{}, fmt.Errorf("decode document %s: %w", id, err)
	}
	return common.Document{ID: id, Data: data}, nil
}

func encodeData(data map[string]any) (string, error) {
	if data == nil {
		return "{}", nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(b), nil
}

// decodeData keeps numbers as json.Number so integers survive untouched.
func decodeData(raw []byte) (map[string]any, error) {
	out := map[string]any{}
	if len(raw) == 0 {
		return out, nil
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	delete(out, "id")
	return out, nil
}
