package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractCreateAllocatesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT ContractID FROM Contracts ORDER BY ContractID DESC LIMIT 1").
		WillReturnRows(sqlmock.NewRows([]string{"ContractID"}).AddRow("C0012"))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM Contracts WHERE ContractID = \\?").
		WithArgs("C0013").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO Contracts").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewContractRepository(db)
	contract := &Contract{
		CarID:         "CT001",
		OwnerID:       "U001",
		UserID:        "U002",
		RentAmount:    "10.5",
		DepositAmount: "2",
		StartDate:     time.Now(),
		EndDate:       time.Now().Add(90 * 24 * time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), contract))

	assert.Equal(t, "C0013", contract.ID)
	assert.Equal(t, "pending", contract.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractGetByAddressNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM Contracts WHERE AgreementAddress = \\?").
		WillReturnError(sql.ErrNoRows)

	repo := NewContractRepository(db)
	_, err = repo.GetByAddress(context.Background(), "0x1111111111111111111111111111111111111111")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContractUpdateStatusMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE Contracts SET Status = \\? WHERE AgreementAddress = \\?").
		WithArgs("active", "0x2222222222222222222222222222222222222222").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM Contracts WHERE AgreementAddress = \\?").
		WithArgs("0x2222222222222222222222222222222222222222").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := NewContractRepository(db)
	err = repo.UpdateStatus(context.Background(), "0x2222222222222222222222222222222222222222", "active")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContractUpdateStatusUnchangedIsNotMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	addr := "0x2222222222222222222222222222222222222222"

	// same status: MySQL reports zero affected rows even though the row exists
	mock.ExpectExec("UPDATE Contracts SET Status = \\? WHERE AgreementAddress = \\?").
		WithArgs("active", addr).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM Contracts WHERE AgreementAddress = \\?").
		WithArgs(addr).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := NewContractRepository(db)
	assert.NoError(t, repo.UpdateStatus(context.Background(), addr, "active"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractSetCreationTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE Contracts SET TxHash = \\? WHERE ContractID = \\?").
		WithArgs("0xcafe", "C0001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewContractRepository(db)
	assert.NoError(t, repo.SetCreationTx(context.Background(), "C0001", "0xcafe"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetMetadataURIAddsColumnOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	addr := "0x3333333333333333333333333333333333333333"

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM information_schema.COLUMNS").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("ALTER TABLE Contracts ADD COLUMN MetadataURI").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE Contracts SET MetadataURI = \\? WHERE AgreementAddress = \\?").
		WithArgs("ipfs://QmTest", addr).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewContractRepository(db)
	require.NoError(t, repo.SetMetadataURI(context.Background(), addr, "ipfs://QmTest"))

	// second call sees the column and skips the ALTER
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM information_schema.COLUMNS").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("UPDATE Contracts SET MetadataURI = \\? WHERE AgreementAddress = \\?").
		WithArgs("ipfs://QmOther", addr).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetMetadataURI(context.Background(), addr, "ipfs://QmOther"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkOrphaned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE Contracts SET Orphaned = 1 WHERE ContractID = \\?").
		WithArgs("C0001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewContractRepository(db)
	assert.NoError(t, repo.MarkOrphaned(context.Background(), "C0001"))
}

func TestCarCreateDefaultsStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT CarID FROM Cars ORDER BY CarID DESC LIMIT 1").
		WillReturnRows(sqlmock.NewRows([]string{"CarID"}))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM Cars WHERE CarID = \\?").
		WithArgs("CT001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO Cars").
		WithArgs("CT001", "U001", "Toyota", "Corolla", 2021, "25", "available").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewCarRepository(db)
	car := &Car{OwnerID: "U001", Make: "Toyota", Model: "Corolla", Year: 2021, PricePerDay: "25"}
	require.NoError(t, repo.Create(context.Background(), car))

	assert.Equal(t, "CT001", car.ID)
	assert.Equal(t, "available", car.Status)
}
