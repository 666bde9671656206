package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"

	"nodeforest/pkg/models"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads records from a table shaped
//
//	<table>(id INTEGER, parent_id INTEGER NULL, content TEXT, selected INTEGER, expanded INTEGER)
//	<table>_attributes(node_id INTEGER, key TEXT, value TEXT)
//
// The database is opened read-only. A NULL parent marks a root.
type SQLiteSource struct {
	db    *sql.DB
	path  string
	table string
}

func NewSQLiteSource(path, table string) (*SQLiteSource, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &SQLiteSource{db: db, path: path, table: table}, nil
}

func (s *SQLiteSource) Name() string {
	return fmt.Sprintf("sqlite table %s in %s", s.table, s.path)
}

func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Load returns every record of the table in rowid order with its attributes.
func (s *SQLiteSource) Load(ctx context.Context) ([]*models.Node, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, fmt.Sprintf(
		"SELECT id, parent_id, content, selected, expanded FROM %s ORDER BY rowid", s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	nodes := make([]*models.Node, 0)
	byID := make(map[int]*models.Node)
	for rows.Next() {
		var (
			id       int
			parentID sql.NullInt64
			content  sql.NullString
			selected bool
			expanded bool
		)
		if err := rows.Scan(&id, &parentID, &content, &selected, &expanded); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}

		n := models.NewNode(id, int(parentID.Int64), content.String)
		n.State.Selected = selected
		n.State.Expanded = expanded
		nodes = append(nodes, n)
		byID[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nodes: %w", err)
	}

	if err := s.loadAttributes(ctx, tx, byID); err != nil {
		return nil, err
	}

	return normalise(nodes), nil
}

func (s *SQLiteSource) loadAttributes(ctx context.Context, tx *sql.Tx, byID map[int]*models.Node) error {
	attrTable := s.table + "_attributes"

	var exists int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", attrTable).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check attribute table: %w", err)
	}
	if exists == 0 {
		return nil
	}

	rows, err := tx.QueryContext(ctx, fmt.Sprintf("SELECT node_id, key, value FROM %s", attrTable))
	if err != nil {
		return fmt.Errorf("failed to query attributes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			nodeID     int
			key, value string
		)
		if err := rows.Scan(&nodeID, &key, &value); err != nil {
			return fmt.Errorf("failed to scan attribute: %w", err)
		}
		if n, ok := byID[nodeID]; ok {
			n.Extra[key] = value
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read attributes: %w", err)
	}
	return nil
}
