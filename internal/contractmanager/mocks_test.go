package contractmanager

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/cptmarket/rental-router/internal/documents"
	"gitlab.com/cptmarket/rental-router/internal/pinning"
	"gitlab.com/cptmarket/rental-router/internal/repositories/rental"
	"gitlab.com/cptmarket/rental-router/internal/repositories/store"
)

type gatewayMock struct {
	CreateAgreementFunc      func(ctx context.Context, userAddr, tokenAddr, vehicleID, rentAmount, depositAmount string, privKey string) (*rental.CreateAgreementResult, error)
	SignAgreementAsOwnerFunc func(ctx context.Context, agreementAddr string, privKey string) (*rental.TxResult, error)
	MakePaymentFunc          func(ctx context.Context, agreementAddr, amount string, privKey string) (*rental.TxResult, error)
	CompleteAgreementFunc    func(ctx context.Context, agreementAddr string, privKey string) (*rental.TxResult, error)
	CancelAgreementFunc      func(ctx context.Context, agreementAddr string, privKey string) (*rental.TxResult, error)
	GetAgreementInfoFunc     func(ctx context.Context, agreementAddr string) (*rental.AgreementInfo, error)
	GetPaymentHistoryFunc    func(ctx context.Context, agreementAddr string) ([]rental.Payment, error)

	CompleteCalledTimes int
	CancelCalledTimes   int
}

func confirmedTx() *rental.TxResult {
	return &rental.TxResult{TxHash: common.HexToHash("0xbeef"), BlockNumber: 7, GasUsed: 21000, Status: rental.TxStatusConfirmed}
}

func (m *gatewayMock) CreateAgreement(ctx context.Context, userAddr, tokenAddr, vehicleID, rentAmount, depositAmount string, privKey string) (*rental.CreateAgreementResult, error) {
	if m.CreateAgreementFunc != nil {
		return m.CreateAgreementFunc(ctx, userAddr, tokenAddr, vehicleID, rentAmount, depositAmount, privKey)
	}
	return &rental.CreateAgreementResult{
		TxHash:           common.HexToHash("0xcafe"),
		BlockNumber:      42,
		GasUsed:          100000,
		AgreementAddress: common.HexToAddress("0x4444444444444444444444444444444444444444"),
	}, nil
}

func (m *gatewayMock) SignAgreementAsOwner(ctx context.Context, agreementAddr string, privKey string) (*rental.TxResult, error) {
	if m.SignAgreementAsOwnerFunc != nil {
		return m.SignAgreementAsOwnerFunc(ctx, agreementAddr, privKey)
	}
	return confirmedTx(), nil
}

func (m *gatewayMock) MakePayment(ctx context.Context, agreementAddr, amount string, privKey string) (*rental.TxResult, error) {
	if m.MakePaymentFunc != nil {
		return m.MakePaymentFunc(ctx, agreementAddr, amount, privKey)
	}
	return confirmedTx(), nil
}

func (m *gatewayMock) CompleteAgreement(ctx context.Context, agreementAddr string, privKey string) (*rental.TxResult, error) {
	m.CompleteCalledTimes++
	if m.CompleteAgreementFunc != nil {
		return m.CompleteAgreementFunc(ctx, agreementAddr, privKey)
	}
	return confirmedTx(), nil
}

func (m *gatewayMock) CancelAgreement(ctx context.Context, agreementAddr string, privKey string) (*rental.TxResult, error) {
	m.CancelCalledTimes++
	if m.CancelAgreementFunc != nil {
		return m.CancelAgreementFunc(ctx, agreementAddr, privKey)
	}
	return confirmedTx(), nil
}

func (m *gatewayMock) GetAgreementInfo(ctx context.Context, agreementAddr string) (*rental.AgreementInfo, error) {
	if m.GetAgreementInfoFunc != nil {
		return m.GetAgreementInfoFunc(ctx, agreementAddr)
	}
	return &rental.AgreementInfo{Status: rental.AgreementStatusActive}, nil
}

func (m *gatewayMock) GetPaymentHistory(ctx context.Context, agreementAddr string) ([]rental.Payment, error) {
	if m.GetPaymentHistoryFunc != nil {
		return m.GetPaymentHistoryFunc(ctx, agreementAddr)
	}
	return []rental.Payment{}, nil
}

type contractStoreMock struct {
	CreateFunc              func(ctx context.Context, contract *store.Contract) error
	GetByIDFunc             func(ctx context.Context, id string) (*store.Contract, error)
	GetByAddressFunc        func(ctx context.Context, address string) (*store.Contract, error)
	SetAgreementAddressFunc func(ctx context.Context, id, address, txHash string) error
	SetCreationTxFunc       func(ctx context.Context, id, txHash string) error
	UpdateStatusFunc        func(ctx context.Context, address, status string) error
	MarkOrphanedFunc        func(ctx context.Context, id string) error
	SetMetadataURIFunc      func(ctx context.Context, address, uri string) error

	MarkOrphanedCalledTimes int
	CreationTxs             []string
	UpdatedStatuses         []string
	MetadataURIs            []string
}

func (m *contractStoreMock) Create(ctx context.Context, contract *store.Contract) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, contract)
	}
	contract.ID = "C0001"
	contract.Status = "pending"
	return nil
}

func (m *contractStoreMock) GetByID(ctx context.Context, id string) (*store.Contract, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *contractStoreMock) GetByAddress(ctx context.Context, address string) (*store.Contract, error) {
	if m.GetByAddressFunc != nil {
		return m.GetByAddressFunc(ctx, address)
	}
	return nil, store.ErrNotFound
}

func (m *contractStoreMock) List(ctx context.Context) ([]store.Contract, error) {
	return []store.Contract{}, nil
}

func (m *contractStoreMock) SetAgreementAddress(ctx context.Context, id, address, txHash string) error {
	if m.SetAgreementAddressFunc != nil {
		return m.SetAgreementAddressFunc(ctx, id, address, txHash)
	}
	return nil
}

func (m *contractStoreMock) SetCreationTx(ctx context.Context, id, txHash string) error {
	m.CreationTxs = append(m.CreationTxs, txHash)
	if m.SetCreationTxFunc != nil {
		return m.SetCreationTxFunc(ctx, id, txHash)
	}
	return nil
}

func (m *contractStoreMock) UpdateStatus(ctx context.Context, address, status string) error {
	m.UpdatedStatuses = append(m.UpdatedStatuses, status)
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, address, status)
	}
	return nil
}

func (m *contractStoreMock) MarkOrphaned(ctx context.Context, id string) error {
	m.MarkOrphanedCalledTimes++
	if m.MarkOrphanedFunc != nil {
		return m.MarkOrphanedFunc(ctx, id)
	}
	return nil
}

func (m *contractStoreMock) SetMetadataURI(ctx context.Context, address, uri string) error {
	m.MetadataURIs = append(m.MetadataURIs, uri)
	if m.SetMetadataURIFunc != nil {
		return m.SetMetadataURIFunc(ctx, address, uri)
	}
	return nil
}

type docsMock struct {
	GenerateFunc func(doc documents.AgreementDocument) (*documents.GeneratedFile, error)

	GenerateCalledTimes int
}

func (m *docsMock) GenerateAgreementPDF(doc documents.AgreementDocument) (*documents.GeneratedFile, error) {
	m.GenerateCalledTimes++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(doc)
	}
	return &documents.GeneratedFile{Path: filepath.Join(os.TempDir(), "agreement-mock.pdf"), Size: 1024}, nil
}

type pinnerMock struct {
	PinFileFunc func(ctx context.Context, path string) (*pinning.PinResult, error)
	PinJSONFunc func(ctx context.Context, content interface{}) (*pinning.PinResult, error)

	PinFileCalledTimes int
}

func (m *pinnerMock) PinFile(ctx context.Context, path string) (*pinning.PinResult, error) {
	m.PinFileCalledTimes++
	if m.PinFileFunc != nil {
		return m.PinFileFunc(ctx, path)
	}
	return &pinning.PinResult{CID: "QmMockCID", URL: "https://gateway.test/ipfs/QmMockCID"}, nil
}

func (m *pinnerMock) PinJSON(ctx context.Context, content interface{}) (*pinning.PinResult, error) {
	if m.PinJSONFunc != nil {
		return m.PinJSONFunc(ctx, content)
	}
	return &pinning.PinResult{CID: "QmMockCID", URL: "https://gateway.test/ipfs/QmMockCID"}, nil
}
