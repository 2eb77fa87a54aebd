// Package sqlite provides a dao.Store backed by a SQLite database file on disk.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/ecp/server/dao"
	"modernc.org/sqlite"
)

// DBFilename is the name of the database file within the storage dir.
const DBFilename = "data.db"

const sqliteConstraintCode = 19

// schema is applied in order on every open. Sources cascade with their owner.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		email TEXT NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL,
		last_logout_time INTEGER NOT NULL,
		last_login_time INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS sources (
		id TEXT NOT NULL PRIMARY KEY,
		owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE,
		name TEXT NOT NULL,
		text TEXT NOT NULL,
		created INTEGER NOT NULL,
		tokens TEXT
	);`,
}

type store struct {
	db      *sql.DB
	users   *UsersDB
	sources *SourcesDB
}

// NewDatastore opens (creating if needed) the database file in storageDir
// and makes sure every table exists. Both repositories share the one
// connection pool.
func NewDatastore(storageDir string) (dao.Store, error) {
	file := filepath.Join(storageDir, DBFilename)

	db, err := sql.Open("sqlite", file+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, wrapDBError(err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: create tables: %w", file, wrapDBError(err))
		}
	}

	return &store{
		db:      db,
		users:   &UsersDB{db: db},
		sources: &SourcesDB{db: db},
	}, nil
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Sources() dao.SourceRepository {
	return s.sources
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", DBFilename, err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// queryAll runs query and decodes every returned row with scan.
func queryAll[E any](ctx context.Context, db *sql.DB, scan func(rowScanner) (E, error), query string, args ...interface{}) ([]E, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []E
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return all, err
		}
		all = append(all, e)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}
	return all, nil
}

// execOne runs an UPDATE or DELETE of a single row by key. It gives
// dao.ErrNotFound if no row matched.
func execOne(ctx context.Context, db *sql.DB, query string, args ...interface{}) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(err)
	}
	if n < 1 {
		return dao.ErrNotFound
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		// extended result codes keep the primary code in the low byte
		primary := sqliteErr.Code() & 0xff
		if primary == sqliteConstraintCode {
			return dao.ErrConstraintViolation
		}
		if name, ok := sqlite.ErrorCodeString[sqliteErr.Code()]; ok {
			return fmt.Errorf("%s: %w", name, err)
		}
		return err
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
