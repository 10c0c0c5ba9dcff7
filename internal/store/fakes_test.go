package store_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB records statement arguments and answers with canned rows.
type fakeDB struct {
	execTag  pgconn.CommandTag
	execErr  error
	rowScan  func(dest ...any) error
	lastArgs []any
}

func (f *fakeDB) Exec(_ context.Context, _ string, args ...interface{}) (pgconn.CommandTag, error) {
	f.lastArgs = args
	return f.execTag, f.execErr
}

func (f *fakeDB) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	panic("not used")
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...interface{}) pgx.Row {
	f.lastArgs = args
	return fakeRow{scan: f.rowScan}
}

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.scan == nil {
		return nil
	}
	return r.scan(dest...)
}
