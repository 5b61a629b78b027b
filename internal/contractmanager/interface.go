package contractmanager

import (
	"context"

	"gitlab.com/cptmarket/rental-router/internal/documents"
	"gitlab.com/cptmarket/rental-router/internal/pinning"
	"gitlab.com/cptmarket/rental-router/internal/repositories/rental"
	"gitlab.com/cptmarket/rental-router/internal/repositories/store"
)

// RentalGateway is the slice of the contract client the orchestrator needs.
type RentalGateway interface {
	CreateAgreement(ctx context.Context, userAddr, tokenAddr, vehicleID, rentAmount, depositAmount string, privKey string) (*rental.CreateAgreementResult, error)
	SignAgreementAsOwner(ctx context.Context, agreementAddr string, privKey string) (*rental.TxResult, error)
	MakePayment(ctx context.Context, agreementAddr, amount string, privKey string) (*rental.TxResult, error)
	CompleteAgreement(ctx context.Context, agreementAddr string, privKey string) (*rental.TxResult, error)
	CancelAgreement(ctx context.Context, agreementAddr string, privKey string) (*rental.TxResult, error)
	GetAgreementInfo(ctx context.Context, agreementAddr string) (*rental.AgreementInfo, error)
	GetPaymentHistory(ctx context.Context, agreementAddr string) ([]rental.Payment, error)
}

// ContractStore is the relational cache of agreements.
type ContractStore interface {
	Create(ctx context.Context, contract *store.Contract) error
	GetByID(ctx context.Context, id string) (*store.Contract, error)
	GetByAddress(ctx context.Context, address string) (*store.Contract, error)
	List(ctx context.Context) ([]store.Contract, error)
	SetAgreementAddress(ctx context.Context, id, address, txHash string) error
	SetCreationTx(ctx context.Context, id, txHash string) error
	UpdateStatus(ctx context.Context, address, status string) error
	MarkOrphaned(ctx context.Context, id string) error
	SetMetadataURI(ctx context.Context, address, uri string) error
}

type DocumentGenerator interface {
	GenerateAgreementPDF(doc documents.AgreementDocument) (*documents.GeneratedFile, error)
}

type Pinner interface {
	PinFile(ctx context.Context, path string) (*pinning.PinResult, error)
	PinJSON(ctx context.Context, content interface{}) (*pinning.PinResult, error)
}
