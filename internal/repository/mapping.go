package repository

import (
	"errors"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes surfaced as invalid input rather than store failures.
const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// mapProduct converts one result row into a Product, reading columns by name.
// Every product read path goes through it.
func mapProduct(row pgx.CollectableRow) (model.Product, error) {
	return pgx.RowToStructByName[model.Product](row)
}

// mapCategory converts one result row into a Category, reading columns by name.
func mapCategory(row pgx.CollectableRow) (model.Category, error) {
	return pgx.RowToStructByName[model.Category](row)
}

// constraintViolation returns the PostgreSQL error when err is one of the
// integrity violations a caller can fix by changing its payload.
func constraintViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}

	switch pgErr.Code {
	case pgForeignKeyViolation, pgCheckViolation, pgNotNullViolation:
		return pgErr, true
	default:
		return nil, false
	}
}
