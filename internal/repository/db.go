package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"graphql-crm/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// psql builds statements with PostgreSQL-style placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation reports whether err is a unique constraint violation.
// An empty constraint matches any unique constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching value anywhere.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// prefixPattern builds an ILIKE pattern matching values starting with value.
func prefixPattern(value string) string {
	return likeEscaper.Replace(value) + "%"
}

// applyPage adds ORDER BY, LIMIT and OFFSET to a list query. Sort fields are
// resolved through columns; the default order is appended as a tiebreaker
// so that offsets stay stable between pages.
func applyPage(qb sq.SelectBuilder, page model.PageRequest, columns map[string]string, defaultOrder ...string) (sq.SelectBuilder, error) {
	orderBy := make([]string, 0, len(page.Sort)+len(defaultOrder))
	for _, s := range page.Sort {
		column, ok := columns[s.Field]
		if !ok {
			return qb, model.NewDomainError(model.ErrCodeValidation, fmt.Sprintf("Cannot order by %q", s.Field))
		}
		if s.Descending {
			column += " DESC"
		}
		orderBy = append(orderBy, column)
	}
	orderBy = append(orderBy, defaultOrder...)
	qb = qb.OrderBy(orderBy...)

	if page.Limit > 0 {
		qb = qb.Limit(uint64(page.Limit))
	}
	if page.Offset > 0 {
		qb = qb.Offset(uint64(page.Offset))
	}

	return qb, nil
}
