package store

import (
	"context"
	"database/sql"
	"errors"
)

type WalletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) Create(ctx context.Context, wallet *Wallet) error {
	if wallet.ID == "" {
		id, err := NextID(ctx, r.db, "Wallets", "WalletID", WalletIDPrefix, WalletIDWidth)
		if err != nil {
			return err
		}
		wallet.ID = id
	}
	if wallet.Balance == "" {
		wallet.Balance = "0"
	}

	query := `INSERT INTO Wallets (WalletID, UserID, Address, Balance) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, wallet.ID, wallet.UserID, wallet.Address, wallet.Balance)
	return err
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID string) (*Wallet, error) {
	wallet := &Wallet{}
	query := `SELECT WalletID, UserID, Address, Balance, CreatedAt FROM Wallets WHERE UserID = ?`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&wallet.ID, &wallet.UserID, &wallet.Address, &wallet.Balance, &wallet.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (r *WalletRepository) List(ctx context.Context) ([]Wallet, error) {
	query := `SELECT WalletID, UserID, Address, Balance, CreatedAt FROM Wallets`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wallets := []Wallet{}
	for rows.Next() {
		var wallet Wallet
		if err := rows.Scan(&wallet.ID, &wallet.UserID, &wallet.Address, &wallet.Balance, &wallet.CreatedAt); err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}
	return wallets, rows.Err()
}
