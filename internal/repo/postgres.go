package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgStore is the Postgres implementation of Storage. Every write translates
// the application record to backend column names; every read translates the
// returned row back.
type PgStore struct {
	db     db
	photos photoBlobs
	clock  Clock
}

// NewPgStore constructs a PgStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
// blobs may be nil, in which case photo deletes only remove metadata.
func NewPgStore(db db, blobs BlobRemover, bucket string, clock Clock, log *slog.Logger) *PgStore {
	return &PgStore{
		db:     db,
		photos: photoBlobs{blobs: blobs, bucket: bucket, log: log},
		clock:  clock,
	}
}

func (s *PgStore) stamps(fields ...string) record {
	now := s.clock.Now()
	rec := record{}
	for _, f := range fields {
		rec[f] = now
	}
	return rec
}

// columns returns the sorted column names of args with their named
// placeholders. Sorting keeps the generated SQL stable.
func columns(args pgx.NamedArgs) (cols, params []string) {
	for _, k := range slices.Sorted(maps.Keys(args)) {
		cols = append(cols, pgx.Identifier{k}.Sanitize())
		params = append(params, "@"+k)
	}
	return cols, params
}

// where builds an AND-ed equality predicate over filter, which is keyed by
// application field names.
func where(filter record) (string, pgx.NamedArgs) {
	args := backendArgs(filter)
	cols, params := columns(args)
	conds := make([]string, len(cols))
	for i := range cols {
		conds[i] = cols[i] + " = " + params[i]
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// collectOne reads the first row of rows as an entity. No rows is ErrNotFound.
func collectOne[T any](rows pgx.Rows, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, backendErr(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, domain.ErrNotFound
		}
		return zero, backendErr(err)
	}
	return fromRow[T](row)
}

func collectAll[T any](rows pgx.Rows, err error) ([]T, error) {
	if err != nil {
		return nil, backendErr(err)
	}
	rowMaps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, backendErr(err)
	}
	out := make([]T, 0, len(rowMaps))
	for _, m := range rowMaps {
		v, err := fromRow[T](m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// insertRow inserts rec into table and returns the stored row.
func insertRow[T any](ctx context.Context, q db, table string, rec record) (T, error) {
	args := backendArgs(rec)
	cols, params := columns(args)
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		pgx.Identifier{table}.Sanitize(), strings.Join(cols, ", "), strings.Join(params, ", "))
	rows, err := q.Query(ctx, sql, args)
	return collectOne[T](rows, err)
}

func selectOne[T any](ctx context.Context, q db, table string, filter record) (T, error) {
	cond, args := where(filter)
	sql := "SELECT * FROM " + pgx.Identifier{table}.Sanitize() + cond + " ORDER BY id LIMIT 1"
	rows, err := q.Query(ctx, sql, args)
	return collectOne[T](rows, err)
}

func selectAll[T any](ctx context.Context, q db, table string, filter record, order string) ([]T, error) {
	cond, args := where(filter)
	sql := "SELECT * FROM " + pgx.Identifier{table}.Sanitize() + cond + " ORDER BY " + order
	rows, err := q.Query(ctx, sql, args)
	return collectAll[T](rows, err)
}

// updateRow applies only the supplied fields of patch to the row with id; a
// field supplied as null is written as NULL. Zero affected rows is ErrNotFound.
func updateRow[T any](ctx context.Context, q db, table string, id int64, patch any, stamps record) (T, error) {
	rec, err := patchRecord(patch)
	if err != nil {
		var zero T
		return zero, err
	}
	maps.Copy(rec, stamps)
	if len(rec) == 0 {
		return selectOne[T](ctx, q, table, record{"id": id})
	}
	args := backendArgs(rec)
	cols, params := columns(args)
	sets := make([]string, len(cols))
	for i := range cols {
		sets[i] = cols[i] + " = " + params[i]
	}
	args["row_id"] = id
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = @row_id RETURNING *",
		pgx.Identifier{table}.Sanitize(), strings.Join(sets, ", "))
	rows, err := q.Query(ctx, sql, args)
	return collectOne[T](rows, err)
}

// deleteRow deletes the row with id and reports whether one was removed.
func deleteRow(ctx context.Context, q db, table string, id int64) (bool, error) {
	tag, err := q.Exec(ctx, "DELETE FROM "+pgx.Identifier{table}.Sanitize()+" WHERE id = @id",
		pgx.NamedArgs{"id": id})
	if err != nil {
		return false, backendErr(err)
	}
	return tag.RowsAffected() > 0, nil
}

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// backendErr tags unique-constraint violations with domain.ErrConflict. The
// original error stays in the chain so callers can still inspect it.
func backendErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	}
	return err
}

// compile-time check: PgStore must satisfy Storage.
var _ Storage = (*PgStore)(nil)
