package store

import (
	"context"
	"database/sql"
	"errors"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		id, err := NextID(ctx, r.db, "Users", "UserID", UserIDPrefix, UserIDWidth)
		if err != nil {
			return err
		}
		user.ID = id
	}
	if user.Role == "" {
		user.Role = "user"
	}

	query := `INSERT INTO Users (UserID, Name, Email, Role, WalletAddress) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Role, user.WalletAddress)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	user := &User{}
	query := `SELECT UserID, Name, Email, Role, WalletAddress, CreatedAt FROM Users WHERE UserID = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.WalletAddress, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]User, error) {
	query := `SELECT UserID, Name, Email, Role, WalletAddress, CreatedAt FROM Users`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.WalletAddress, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
