package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sequential human-readable identifier prefixes. Padding widths differ per
// entity type and are kept as-is for compatibility with existing rows.
const (
	CarIDPrefix      = "CT"
	UserIDPrefix     = "U"
	WalletIDPrefix   = "W"
	ContractIDPrefix = "C"

	CarIDWidth      = 3
	UserIDWidth     = 3
	WalletIDWidth   = 3
	ContractIDWidth = 4
)

const idMaxAttempts = 100

var ErrIDExhausted = errors.New("exhausted attempts to allocate a unique id")

// NextID allocates the next sequential identifier of the form
// <prefix><zero-padded number>. The read-then-check loop is a best-effort
// mitigation of races between concurrent allocations, bounded by a fixed
// attempt count; it is not a transaction-level guarantee.
func NextID(ctx context.Context, db *sql.DB, table, column, prefix string, width int) (string, error) {
	for attempt := 1; attempt <= idMaxAttempts; attempt++ {
		var last sql.NullString
		query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s DESC LIMIT 1", column, table, column)
		err := db.QueryRowContext(ctx, query).Scan(&last)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}

		next := attempt
		if last.Valid {
			n, err := strconv.Atoi(strings.TrimPrefix(last.String, prefix))
			if err != nil {
				return "", fmt.Errorf("malformed identifier %q in %s: %w", last.String, table, err)
			}
			next = n + attempt
		}

		candidate := fmt.Sprintf("%s%0*d", prefix, width, next)

		var count int
		check := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", table, column)
		if err := db.QueryRowContext(ctx, check, candidate).Scan(&count); err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}

	return "", ErrIDExhausted
}
