package rental

import "errors"

var (
	// ErrTransactionFailed wraps the underlying node or revert error of a
	// state-changing call. Never absorbed into a default value: there is no
	// safe fallback for "did the money move".
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrNodeUnavailable marks reads attempted while the node is unreachable.
	// Degradable read paths absorb it into a neutral default instead.
	ErrNodeUnavailable = errors.New("ethereum node unavailable")
)
