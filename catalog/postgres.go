package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore reads the catalog from PostgreSQL: one row per scheme
// in the schemes table plus a single-row catalog_meta table carrying
// the document version. Rows are assembled into the same Document shape
// the file store serves, so the loader treats both sources identically.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed catalog store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Fetch assembles the catalog document from the database.
func (s *PostgresStore) Fetch(ctx context.Context) ([]byte, error) {
	var version string
	err := s.db.QueryRowContext(ctx, `
		SELECT version FROM catalog_meta WHERE id = 1
	`).Scan(&version)
	if err == sql.ErrNoRows {
		version = "unversioned"
	} else if err != nil {
		return nil, fmt.Errorf("failed to read catalog version: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT definition
		FROM schemes
		ORDER BY scheme_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemes: %w", err)
	}
	defer rows.Close()

	doc := Document{Version: version}
	for rows.Next() {
		var def []byte
		if err := rows.Scan(&def); err != nil {
			return nil, fmt.Errorf("failed to scan scheme row: %w", err)
		}
		doc.Schemes = append(doc.Schemes, json.RawMessage(def))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scheme rows: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble catalog document: %w", err)
	}
	return data, nil
}

// Upsert writes one scheme definition, keyed by scheme_id. Used by the
// catalog sync tooling, never by the request path.
func (s *PostgresStore) Upsert(ctx context.Context, schemeID string, definition []byte) error {
	if !json.Valid(definition) {
		return fmt.Errorf("definition for scheme %s is not valid JSON", schemeID)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schemes (scheme_id, definition, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (scheme_id)
		DO UPDATE SET definition = EXCLUDED.definition, updated_at = NOW()
	`, schemeID, definition)
	if err != nil {
		return fmt.Errorf("failed to upsert scheme %s: %w", schemeID, err)
	}
	return nil
}

// SetVersion records the catalog document version.
func (s *PostgresStore) SetVersion(ctx context.Context, version string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalog_meta (id, version, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id)
		DO UPDATE SET version = EXCLUDED.version, updated_at = NOW()
	`, version)
	if err != nil {
		return fmt.Errorf("failed to set catalog version: %w", err)
	}
	return nil
}
