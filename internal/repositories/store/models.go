package store

import (
	"database/sql"
	"time"
)

type Car struct {
	ID          string
	OwnerID     string
	Make        string
	Model       string
	Year        int
	PricePerDay string
	Status      string
	CreatedAt   time.Time
}

type User struct {
	ID            string
	Name          string
	Email         string
	Role          string
	WalletAddress string
	CreatedAt     time.Time
}

type Wallet struct {
	ID        string
	UserID    string
	Address   string
	Balance   string
	CreatedAt time.Time
}

// Contract is the relational cache of an agreement. The on-chain copy stays
// authoritative for status; this row carries the human-readable ID and the
// references needed to find the agreement again.
type Contract struct {
	ID               string
	CarID            string
	OwnerID          string
	UserID           string
	AgreementAddress sql.NullString
	TxHash           sql.NullString
	RentAmount       string
	DepositAmount    string
	StartDate        time.Time
	EndDate          time.Time
	Status           string
	MetadataURI      sql.NullString
	Orphaned         bool
	CreatedAt        time.Time
}
