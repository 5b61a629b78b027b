package store

import (
	"context"
	"database/sql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS Cars (
		CarID VARCHAR(16) PRIMARY KEY,
		OwnerID VARCHAR(16) NOT NULL,
		Make VARCHAR(64) NOT NULL,
		Model VARCHAR(64) NOT NULL,
		Year INT NOT NULL,
		PricePerDay VARCHAR(64) NOT NULL,
		Status VARCHAR(32) NOT NULL DEFAULT 'available',
		CreatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS Users (
		UserID VARCHAR(16) PRIMARY KEY,
		Name VARCHAR(128) NOT NULL,
		Email VARCHAR(128) NOT NULL UNIQUE,
		Role VARCHAR(32) NOT NULL DEFAULT 'user',
		WalletAddress VARCHAR(64) NOT NULL DEFAULT '',
		CreatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS Wallets (
		WalletID VARCHAR(16) PRIMARY KEY,
		UserID VARCHAR(16) NOT NULL,
		Address VARCHAR(64) NOT NULL,
		Balance VARCHAR(64) NOT NULL DEFAULT '0',
		CreatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS Contracts (
		ContractID VARCHAR(16) PRIMARY KEY,
		CarID VARCHAR(16) NOT NULL,
		OwnerID VARCHAR(16) NOT NULL,
		UserID VARCHAR(16) NOT NULL,
		AgreementAddress VARCHAR(64),
		TxHash VARCHAR(80),
		RentAmount VARCHAR(64) NOT NULL,
		DepositAmount VARCHAR(64) NOT NULL,
		StartDate DATETIME NOT NULL,
		EndDate DATETIME NOT NULL,
		Status VARCHAR(32) NOT NULL DEFAULT 'pending',
		Orphaned TINYINT(1) NOT NULL DEFAULT 0,
		CreatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// EnsureSchema creates the tables when missing. The MetadataURI column of
// Contracts is intentionally not part of the base schema: it is added on
// demand by the pinning flow to stay compatible with databases created
// before pinning existed.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
