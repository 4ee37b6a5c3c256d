// Package sqlite provides a band resource database on SQLite. Each string
// array is stored as one row per element, keyed by resource key and index.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dekarrin/bandbook"
	_ "modernc.org/sqlite"
)

// DB is a SQLite resource database. It implements bandbook.ResourceProvider.
//
// Its zero-value should not be used; call Open to get a DB ready for use.
type DB struct {
	db *sql.DB
}

// Open opens the resource database at path, creating it and its table if they
// do not yet exist.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, WrapDBError(err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS string_arrays (
			res_key TEXT NOT NULL,
			idx INTEGER NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (res_key, idx)
		);`)
	if err != nil {
		db.Close()
		return nil, WrapDBError(err, "create table")
	}

	return &DB{db: db}, nil
}

// StringArray returns the array stored under key, in index order. If there is
// no such array, the returned error will match bandbook.ErrResourceNotFound.
//
// An array stored with no elements is indistinguishable from one that was never
// stored.
func (rdb *DB) StringArray(key string) ([]string, error) {
	return rdb.StringArrayContext(context.Background(), key)
}

// StringArrayContext is StringArray with a Context.
func (rdb *DB) StringArrayContext(ctx context.Context, key string) ([]string, error) {
	rows, err := rdb.db.QueryContext(ctx, `
		SELECT value FROM string_arrays
		WHERE res_key = ?
		ORDER BY idx;
	`, key)
	if err != nil {
		return nil, WrapDBErrorf(err, "%q", key)
	}
	defer rows.Close()

	arr := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, WrapDBErrorf(err, "%q", key)
		}
		arr = append(arr, v)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapDBErrorf(err, "%q", key)
	}

	if len(arr) == 0 {
		return nil, bandbook.NewError(fmt.Sprintf("%q", key), bandbook.ErrResourceNotFound)
	}

	return arr, nil
}

// Put replaces the array stored under key with values. The replacement is
// atomic.
func (rdb *DB) Put(ctx context.Context, key string, values []string) error {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return WrapDBError(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM string_arrays WHERE res_key = ?;`, key)
	if err != nil {
		return WrapDBErrorf(err, "clear %q", key)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO string_arrays (res_key, idx, value)
		VALUES (?, ?, ?);
	`)
	if err != nil {
		return WrapDBError(err)
	}
	defer stmt.Close()

	for i, v := range values {
		if _, err := stmt.ExecContext(ctx, key, i, v); err != nil {
			return WrapDBErrorf(err, "insert %q[%d]", key, i)
		}
	}

	if err := tx.Commit(); err != nil {
		return WrapDBError(err, "commit")
	}
	return nil
}

// Import stores every array in res with Put.
func (rdb *DB) Import(ctx context.Context, res bandbook.Resources) error {
	for _, k := range res.Keys() {
		if err := rdb.Put(ctx, k, res[k]); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the alphabetized keys of all arrays in the database.
func (rdb *DB) Keys(ctx context.Context) ([]string, error) {
	rows, err := rdb.db.QueryContext(ctx, `SELECT DISTINCT res_key FROM string_arrays ORDER BY res_key;`)
	if err != nil {
		return nil, WrapDBError(err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, WrapDBError(err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapDBError(err)
	}

	return keys, nil
}

func (rdb *DB) Close() error {
	return rdb.db.Close()
}
