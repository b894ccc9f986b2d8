package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"fleetadmin/internal/domain"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == uniqueViolation
}

// whereClause accumulates AND-ed conditions with positional arguments.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

// eq adds "col = $n" when value is non-empty.
func (w *whereClause) eq(col, value string) {
	if value == "" {
		return
	}
	w.add(col+" = $%d", value)
}

// search adds a case-insensitive substring match over cols when term is non-empty.
func (w *whereClause) search(term string, cols ...string) {
	if term == "" || len(cols) == 0 {
		return
	}
	w.args = append(w.args, "%"+escapeLike(term)+"%")
	n := len(w.args)
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, n)
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// limit returns the LIMIT/OFFSET suffix and the full argument list for a page query.
func (w *whereClause) limit(window domain.PageWindow) (string, []any) {
	n := len(w.args)
	args := append(append([]any{}, w.args...), window.Limit, window.Offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// countRows runs SELECT COUNT(*) over table with the given filter.
func countRows(ctx context.Context, db *sql.DB, table string, where *whereClause) (int, error) {
	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+where.String(), where.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

// listPage counts matching rows and, unless the window starts past the end, fetches one page.
// scan is called once per row.
func listPage[T any](ctx context.Context, db *sql.DB, table, columns, orderBy string, where *whereClause, window domain.PageWindow, scan func(*sql.Rows) (T, error)) (domain.Page[T], error) {
	total, err := countRows(ctx, db, table, where)
	if err != nil {
		return domain.Page[T]{}, err
	}
	items := make([]T, 0)
	if total == 0 || window.Offset >= total {
		return domain.Page[T]{Items: items, Total: total}, nil
	}

	suffix, args := where.limit(window)
	query := "SELECT " + columns + " FROM " + table + where.String() + " ORDER BY " + orderBy + suffix
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Page[T]{}, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return domain.Page[T]{}, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[T]{}, err
	}
	return domain.Page[T]{Items: items, Total: total}, nil
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// execOne runs an UPDATE that must touch exactly one row.
func execOne(ctx context.Context, db *sql.DB, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
