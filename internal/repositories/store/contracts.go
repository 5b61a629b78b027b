package store

import (
	"context"
	"database/sql"
	"errors"
)

type ContractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, contract *Contract) error {
	if contract.ID == "" {
		id, err := NextID(ctx, r.db, "Contracts", "ContractID", ContractIDPrefix, ContractIDWidth)
		if err != nil {
			return err
		}
		contract.ID = id
	}
	if contract.Status == "" {
		contract.Status = "pending"
	}

	query := `INSERT INTO Contracts
		(ContractID, CarID, OwnerID, UserID, AgreementAddress, TxHash, RentAmount, DepositAmount, StartDate, EndDate, Status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		contract.ID, contract.CarID, contract.OwnerID, contract.UserID,
		contract.AgreementAddress, contract.TxHash,
		contract.RentAmount, contract.DepositAmount,
		contract.StartDate, contract.EndDate, contract.Status,
	)
	return err
}

const contractColumns = `ContractID, CarID, OwnerID, UserID, AgreementAddress, TxHash, RentAmount, DepositAmount, StartDate, EndDate, Status, Orphaned, CreatedAt`

func (r *ContractRepository) scanContract(row *sql.Row) (*Contract, error) {
	contract := &Contract{}
	err := row.Scan(
		&contract.ID, &contract.CarID, &contract.OwnerID, &contract.UserID,
		&contract.AgreementAddress, &contract.TxHash,
		&contract.RentAmount, &contract.DepositAmount,
		&contract.StartDate, &contract.EndDate, &contract.Status,
		&contract.Orphaned, &contract.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id string) (*Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM Contracts WHERE ContractID = ?`
	return r.scanContract(r.db.QueryRowContext(ctx, query, id))
}

func (r *ContractRepository) GetByAddress(ctx context.Context, address string) (*Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM Contracts WHERE AgreementAddress = ?`
	return r.scanContract(r.db.QueryRowContext(ctx, query, address))
}

func (r *ContractRepository) List(ctx context.Context) ([]Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM Contracts`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := []Contract{}
	for rows.Next() {
		var contract Contract
		err := rows.Scan(
			&contract.ID, &contract.CarID, &contract.OwnerID, &contract.UserID,
			&contract.AgreementAddress, &contract.TxHash,
			&contract.RentAmount, &contract.DepositAmount,
			&contract.StartDate, &contract.EndDate, &contract.Status,
			&contract.Orphaned, &contract.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, rows.Err()
}

func (r *ContractRepository) UpdateStatus(ctx context.Context, address, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE Contracts SET Status = ? WHERE AgreementAddress = ?`, status, address)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// MySQL reports zero affected rows when the new status equals the
		// stored one, so zero alone does not mean the row is missing
		var count int
		err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Contracts WHERE AgreementAddress = ?`, address).Scan(&count)
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// SetAgreementAddress records the deployed contract address and creation tx
// hash once the chain confirms them. The address is immutable after this.
func (r *ContractRepository) SetAgreementAddress(ctx context.Context, id, address, txHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE Contracts SET AgreementAddress = ?, TxHash = ? WHERE ContractID = ? AND AgreementAddress IS NULL`,
		address, txHash, id,
	)
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

// SetCreationTx records the creation transaction hash alone, for rows whose
// deployed address could not be read from the receipt. The address stays NULL
// so the row remains eligible for SetAgreementAddress once reconciled.
func (r *ContractRepository) SetCreationTx(ctx context.Context, id, txHash string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE Contracts SET TxHash = ? WHERE ContractID = ?`, txHash, id)
	return err
}

// MarkOrphaned flags the row of an agreement that was confirmed on-chain but
// whose relational record could not be completed, so a later reconciliation
// pass can find it.
func (r *ContractRepository) MarkOrphaned(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE Contracts SET Orphaned = 1 WHERE ContractID = ?`, id)
	return err
}

// SetMetadataURI records the IPFS location of the pinned agreement metadata.
// The column is created on first use so databases provisioned before pinning
// existed keep working without a migration step.
func (r *ContractRepository) SetMetadataURI(ctx context.Context, address, uri string) error {
	if err := r.ensureMetadataColumn(ctx); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `UPDATE Contracts SET MetadataURI = ? WHERE AgreementAddress = ?`, uri, address)
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

func (r *ContractRepository) ensureMetadataColumn(ctx context.Context) error {
	var count int
	query := `SELECT COUNT(*) FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = 'Contracts' AND COLUMN_NAME = 'MetadataURI'`
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := r.db.ExecContext(ctx, `ALTER TABLE Contracts ADD COLUMN MetadataURI VARCHAR(256)`)
	return err
}
