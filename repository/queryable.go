package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"foxyweb/service"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryable is implemented by both *pgxpool.Pool and pgx.Tx
type queryable interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// wrapError annotates err with msg and tags connectivity failures with
// service.ErrConnection so handlers can tell them apart from query errors
func wrapError(err error, msg string) error {
	if isConnectionError(err) {
		return fmt.Errorf("%s: %w: %w", msg, service.ErrConnection, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded)
}
