package store

import (
	"context"
	"database/sql"
	"errors"
)

type CarRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) *CarRepository {
	return &CarRepository{db: db}
}

func (r *CarRepository) Create(ctx context.Context, car *Car) error {
	if car.ID == "" {
		id, err := NextID(ctx, r.db, "Cars", "CarID", CarIDPrefix, CarIDWidth)
		if err != nil {
			return err
		}
		car.ID = id
	}
	if car.Status == "" {
		car.Status = "available"
	}

	query := `INSERT INTO Cars (CarID, OwnerID, Make, Model, Year, PricePerDay, Status) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, car.ID, car.OwnerID, car.Make, car.Model, car.Year, car.PricePerDay, car.Status)
	return err
}

func (r *CarRepository) GetByID(ctx context.Context, id string) (*Car, error) {
	car := &Car{}
	query := `SELECT CarID, OwnerID, Make, Model, Year, PricePerDay, Status, CreatedAt FROM Cars WHERE CarID = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&car.ID, &car.OwnerID, &car.Make, &car.Model, &car.Year, &car.PricePerDay, &car.Status, &car.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (r *CarRepository) List(ctx context.Context) ([]Car, error) {
	query := `SELECT CarID, OwnerID, Make, Model, Year, PricePerDay, Status, CreatedAt FROM Cars`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []Car{}
	for rows.Next() {
		var car Car
		if err := rows.Scan(&car.ID, &car.OwnerID, &car.Make, &car.Model, &car.Year, &car.PricePerDay, &car.Status, &car.CreatedAt); err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func (r *CarRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE Cars SET Status = ? WHERE CarID = ?`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
