package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// SQLStore keeps objects in a single table of a SQLite or PostgreSQL database.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens the database and creates the objects table if needed.
func OpenSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	blobType := "BLOB"
	switch driver {
	case DriverSQLite:
	case DriverPostgres:
		blobType = "BYTEA"
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := openDB(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	ddl := `CREATE TABLE IF NOT EXISTS objects (
		object_key   TEXT PRIMARY KEY,
		content_type TEXT NOT NULL,
		body         ` + blobType + ` NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create objects table: %w", err)
	}

	return &SQLStore{db: db}, nil
}

func openDB(driver, dsn string) (*sql.DB, error) {
	if driver == DriverPostgres {
		connConfig, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, err
		}
		connConfig.Tracer = otelpgx.NewTracer()

		return stdlib.OpenDB(*connConfig), nil
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// one writer at a time; also keeps in-memory databases on a single connection
	db.SetMaxOpenConns(1)

	return db, nil
}

func (s *SQLStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	ctx, span := tracer.Start(ctx, "SQLStore.Put")
	defer span.End()

	if body == nil {
		body = []byte{}
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO objects (object_key, content_type, body) VALUES ($1, $2, $3)
		ON CONFLICT (object_key) DO UPDATE SET content_type = excluded.content_type, body = excluded.body`,
		key, contentType, body)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("put object %s: %w", key, err)
	}

	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (Object, error) {
	ctx, span := tracer.Start(ctx, "SQLStore.Get")
	defer span.End()

	obj := Object{Key: key}
	err := s.db.QueryRowContext(ctx, `SELECT content_type, body FROM objects WHERE object_key = $1`, key).
		Scan(&obj.ContentType, &obj.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return Object{}, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		return Object{}, fmt.Errorf("get object %s: %w", key, err)
	}

	return obj, nil
}

func (s *SQLStore) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "SQLStore.List")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `SELECT object_key FROM objects WHERE object_key LIKE $1 ESCAPE '\' ORDER BY object_key`,
		escapeLike(prefix)+"%")
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan object key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate object keys: %w", err)
	}

	// database collations may not sort bytewise
	slices.Sort(keys)
	return keys, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
