package postgres

import (
	"context"
	"errors"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/repository"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Query is a deferred SELECT over one table. It is built with squirrel and
// only sent to Postgres by Fetch or Count; both resolve the executor from the
// context at call time, so they join an open transaction if there is one.
type Query[T any] struct {
	pool     *pgxpool.Pool
	table    string
	columns  []string
	selected []string
	where    []sq.Sqlizer
	orderBy  []string
	limit    uint64
	offset   uint64
	paged    bool
}

// NewQuery starts a query selecting columns from table. columns also bounds
// what Narrow accepts and must cover every db-tagged field of T.
func NewQuery[T any](pool *pgxpool.Pool, table string, columns ...string) Query[T] {
	return Query[T]{pool: pool, table: table, columns: columns}
}

func (q Query[T]) Where(pred sq.Sqlizer) Query[T] {
	q.where = append(slices.Clip(q.where), pred)
	return q
}

func (q Query[T]) OrderBy(clauses ...string) Query[T] {
	q.orderBy = append(slices.Clip(q.orderBy), clauses...)
	return q
}

// Paginate applies the LIMIT/OFFSET window for p.
func (q Query[T]) Paginate(p listing.Pagination) Query[T] {
	q.limit = uint64(max(p.Limit(), 0))
	q.offset = uint64(max(p.Offset(), 0))
	q.paged = true
	return q
}

// Narrow restricts the SELECT list. Only known columns are accepted; they are
// interpolated into SQL, so anything else is refused.
func (q Query[T]) Narrow(fields []string) (listing.Source[T], bool) {
	for _, f := range fields {
		if !slices.Contains(q.columns, f) {
			return nil, false
		}
	}
	q.selected = slices.Clone(fields)
	return q, true
}

// ToSql renders the SELECT statement.
func (q Query[T]) ToSql() (string, []any, error) {
	cols := q.columns
	if len(q.selected) > 0 {
		cols = q.selected
	}
	b := q.filtered(psql.Select(cols...))
	if len(q.orderBy) > 0 {
		b = b.OrderBy(q.orderBy...)
	}
	if q.paged {
		b = b.Limit(q.limit).Offset(q.offset)
	}
	return b.ToSql()
}

// Fetch runs the query and scans every row into T. Narrowed queries leave the
// fields that were not selected at their zero value.
func (q Query[T]) Fetch(ctx context.Context) ([]T, error) {
	if err := ensurePool(q.pool); err != nil {
		return nil, err
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, errors.Join(ErrBuildQuery, err)
	}
	rows, err := getQ(ctx, q.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	scan := pgx.RowToStructByName[T]
	if len(q.selected) > 0 {
		scan = pgx.RowToStructByNameLax[T]
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return items, nil
}

// Count returns the number of rows matching the filters, ignoring order and window.
func (q Query[T]) Count(ctx context.Context) (int, error) {
	if err := ensurePool(q.pool); err != nil {
		return 0, err
	}
	sql, args, err := q.filtered(psql.Select("COUNT(*)")).ToSql()
	if err != nil {
		return 0, errors.Join(ErrBuildQuery, err)
	}
	var total int
	if err := getQ(ctx, q.pool).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, repository.MapPgError(err)
	}
	return total, nil
}

func (q Query[T]) filtered(b sq.SelectBuilder) sq.SelectBuilder {
	b = b.From(q.table)
	for _, w := range q.where {
		b = b.Where(w)
	}
	return b
}

// listPage counts the matching rows and returns the page as a deferred result.
func listPage[T any](ctx context.Context, q Query[T], p listing.Pagination) (listing.ListResult[T], error) {
	total, err := q.Count(ctx)
	if err != nil {
		return listing.ListResult[T]{}, err
	}
	return listing.FromQuery[T](q.Paginate(p), p, total), nil
}

// queryOne runs a statement expected to produce exactly one row, such as an
// INSERT ... RETURNING or a lookup by primary key.
func queryOne[T any](ctx context.Context, pool *pgxpool.Pool, b sq.Sqlizer) (T, error) {
	var zero T
	if err := ensurePool(pool); err != nil {
		return zero, err
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return zero, errors.Join(ErrBuildQuery, err)
	}
	rows, err := getQ(ctx, pool).Query(ctx, sql, args...)
	if err != nil {
		return zero, repository.MapPgError(err)
	}
	out, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, repository.ErrNotFound
		}
		return zero, repository.MapPgError(err)
	}
	return out, nil
}

func exists(ctx context.Context, pool *pgxpool.Pool, table string, id int64) (bool, error) {
	if err := ensurePool(pool); err != nil {
		return false, err
	}
	sql, args, err := psql.Select("1").From(table).Where(sq.Eq{"id": id}).Prefix("SELECT EXISTS(").Suffix(")").ToSql()
	if err != nil {
		return false, errors.Join(ErrBuildQuery, err)
	}
	var ok bool
	if err := getQ(ctx, pool).QueryRow(ctx, sql, args...).Scan(&ok); err != nil {
		return false, repository.MapPgError(err)
	}
	return ok, nil
}

var _ listing.Narrower[struct{}] = Query[struct{}]{}
