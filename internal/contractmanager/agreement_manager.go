package contractmanager

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/cptmarket/rental-router/internal/documents"
	"gitlab.com/cptmarket/rental-router/internal/interfaces"
	"gitlab.com/cptmarket/rental-router/internal/lib"
	"gitlab.com/cptmarket/rental-router/internal/repositories/rental"
	"gitlab.com/cptmarket/rental-router/internal/repositories/store"
)

// CreateAgreementParams are the caller-supplied terms of a new agreement.
type CreateAgreementParams struct {
	CarID         string
	OwnerID       string
	UserID        string
	UserAddress   string
	VehicleID     string
	RentAmount    string
	DepositAmount string
	StartDate     time.Time
	EndDate       time.Time
}

// AgreementManager drives the agreement lifecycle: it submits transactions
// through the contract gateway, keeps the relational cache in step, and
// archives completed agreements. The chain stays authoritative for status;
// the store row is a cache that may lag.
type AgreementManager struct {
	// config
	tokenAddr string

	// deps
	gateway   RentalGateway
	contracts ContractStore
	docs      DocumentGenerator
	pinner    Pinner
	wallet    *rental.Wallet
	log       interfaces.ILogger
}

func NewAgreementManager(tokenAddr string, gateway RentalGateway, contracts ContractStore, docs DocumentGenerator, pinner Pinner, wallet *rental.Wallet, log interfaces.ILogger) *AgreementManager {
	return &AgreementManager{
		tokenAddr: tokenAddr,
		gateway:   gateway,
		contracts: contracts,
		docs:      docs,
		pinner:    pinner,
		wallet:    wallet,
		log:       log,
	}
}

// CreateAgreement persists a pending row, deploys the agreement through the
// factory and records the resulting address. A store failure after the chain
// confirmed the creation is surfaced as ErrOrphanedAgreement: the agreement
// exists and money may have moved, so the error must not look retryable.
func (m *AgreementManager) CreateAgreement(ctx context.Context, params CreateAgreementParams) (*store.Contract, error) {
	if _, err := lib.ValidateAddr(params.UserAddress); err != nil {
		return nil, err
	}

	contract := &store.Contract{
		CarID:         params.CarID,
		OwnerID:       params.OwnerID,
		UserID:        params.UserID,
		RentAmount:    params.RentAmount,
		DepositAmount: params.DepositAmount,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
	}
	if err := m.contracts.Create(ctx, contract); err != nil {
		return nil, err
	}

	result, err := m.gateway.CreateAgreement(ctx, params.UserAddress, m.tokenAddr, params.VehicleID, params.RentAmount, params.DepositAmount, m.wallet.GetPrivateKey())
	if err != nil {
		return nil, err
	}

	if result.AgreementAddress == (common.Address{}) {
		// The creation tx confirmed but the receipt carried no creation
		// event, so the deployed address is unknown. Keep the tx hash,
		// leave the address unset and flag the row so reconciliation can
		// recover the address later.
		if txErr := m.contracts.SetCreationTx(ctx, contract.ID, result.TxHash.Hex()); txErr != nil {
			m.log.Errorf("failed to record creation tx for agreement %s: %s", contract.ID, txErr)
		}
		if markErr := m.contracts.MarkOrphaned(ctx, contract.ID); markErr != nil {
			m.log.Errorf("failed to mark agreement %s orphaned: %s", contract.ID, markErr)
		}
		return nil, lib.WrapError(ErrOrphanedAgreement, fmt.Errorf("tx %s confirmed without an agreement address", result.TxHash.Hex()))
	}

	m.log.Infof("agreement %s created on-chain at %s (tx %s)", contract.ID, result.AgreementAddress.Hex(), result.TxHash.Hex())

	addr := result.AgreementAddress.Hex()
	if err := m.contracts.SetAgreementAddress(ctx, contract.ID, addr, result.TxHash.Hex()); err != nil {
		if markErr := m.contracts.MarkOrphaned(ctx, contract.ID); markErr != nil {
			m.log.Errorf("failed to mark agreement %s orphaned: %s", contract.ID, markErr)
		}
		return nil, lib.WrapError(ErrOrphanedAgreement, fmt.Errorf("agreement %s tx %s: %w", addr, result.TxHash.Hex(), err))
	}

	contract.AgreementAddress = nullString(addr)
	contract.TxHash = nullString(result.TxHash.Hex())
	return contract, nil
}

// SignAgreement signs the agreement with the operator wallet.
func (m *AgreementManager) SignAgreement(ctx context.Context, agreementAddr string) (*rental.TxResult, error) {
	return m.gateway.SignAgreementAsOwner(ctx, agreementAddr, m.wallet.GetPrivateKey())
}

// MakePayment submits one installment. The first confirmed payment moves the
// agreement out of pending on-chain, so the cached status follows it.
func (m *AgreementManager) MakePayment(ctx context.Context, agreementAddr, amount string) (*rental.TxResult, error) {
	result, err := m.gateway.MakePayment(ctx, agreementAddr, amount, m.wallet.GetPrivateKey())
	if err != nil {
		return nil, err
	}
	m.cacheStatus(ctx, agreementAddr)
	return result, nil
}

// CompleteAgreement transitions an active agreement to completed and archives
// it. Archival (PDF render, pin, metadata link) is best-effort: the chain
// transition already happened and must be reported regardless.
func (m *AgreementManager) CompleteAgreement(ctx context.Context, agreementAddr string) (*rental.TxResult, error) {
	if err := m.guardTerminal(ctx, agreementAddr); err != nil {
		return nil, err
	}

	result, err := m.gateway.CompleteAgreement(ctx, agreementAddr, m.wallet.GetPrivateKey())
	if err != nil {
		return nil, err
	}

	m.cacheStatus(ctx, agreementAddr)
	m.archiveAgreement(ctx, agreementAddr)
	return result, nil
}

// CancelAgreement transitions the agreement to cancelled.
func (m *AgreementManager) CancelAgreement(ctx context.Context, agreementAddr string) (*rental.TxResult, error) {
	if err := m.guardTerminal(ctx, agreementAddr); err != nil {
		return nil, err
	}

	result, err := m.gateway.CancelAgreement(ctx, agreementAddr, m.wallet.GetPrivateKey())
	if err != nil {
		return nil, err
	}

	m.cacheStatus(ctx, agreementAddr)
	return result, nil
}

// ListContracts returns the relational view of all agreements. Statuses here
// are cached and may lag the chain.
func (m *AgreementManager) ListContracts(ctx context.Context) ([]store.Contract, error) {
	return m.contracts.List(ctx)
}

// GetStatus returns the live on-chain snapshot.
func (m *AgreementManager) GetStatus(ctx context.Context, agreementAddr string) (*rental.AgreementInfo, error) {
	return m.gateway.GetAgreementInfo(ctx, agreementAddr)
}

// GetPaymentHistory replays the agreement's payment events.
func (m *AgreementManager) GetPaymentHistory(ctx context.Context, agreementAddr string) ([]rental.Payment, error) {
	return m.gateway.GetPaymentHistory(ctx, agreementAddr)
}

// PinMetadata pins arbitrary agreement metadata as JSON and links the
// resulting URI to the contract row. Either the contract ID or the agreement
// address identifies the row.
func (m *AgreementManager) PinMetadata(ctx context.Context, contractID, agreementAddr string, metadata interface{}) (string, string, error) {
	if agreementAddr == "" && contractID != "" {
		contract, err := m.contracts.GetByID(ctx, contractID)
		if err != nil {
			return "", "", err
		}
		agreementAddr = contract.AgreementAddress.String
	}

	result, err := m.pinner.PinJSON(ctx, metadata)
	if err != nil {
		return "", "", err
	}

	uri := "ipfs://" + result.CID
	if agreementAddr != "" {
		if err := m.contracts.SetMetadataURI(ctx, agreementAddr, uri); err != nil {
			m.log.Warnf("pinned metadata %s but could not link it to %s: %s", result.CID, agreementAddr, err)
		}
	}

	return result.CID, uri, nil
}

// guardTerminal rejects transitions out of a terminal state before spending
// gas on a transaction the contract would revert anyway. An unreadable status
// is not a reason to block: the chain itself enforces the real guard.
func (m *AgreementManager) guardTerminal(ctx context.Context, agreementAddr string) error {
	info, err := m.gateway.GetAgreementInfo(ctx, agreementAddr)
	if err != nil {
		return nil
	}
	if info.Status.IsTerminal() {
		return lib.WrapError(rental.ErrTransactionFailed, fmt.Errorf("agreement already %s", info.Status))
	}
	return nil
}

// cacheStatus refreshes the store's status copy from the chain, best-effort.
func (m *AgreementManager) cacheStatus(ctx context.Context, agreementAddr string) {
	info, err := m.gateway.GetAgreementInfo(ctx, agreementAddr)
	if err != nil {
		m.log.Warnf("could not read agreement %s for status cache: %s", agreementAddr, err)
		return
	}
	if err := m.contracts.UpdateStatus(ctx, agreementAddr, info.Status.String()); err != nil {
		m.log.Warnf("could not cache status %s for agreement %s: %s", info.Status, agreementAddr, err)
	}
}

func (m *AgreementManager) archiveAgreement(ctx context.Context, agreementAddr string) {
	info, err := m.gateway.GetAgreementInfo(ctx, agreementAddr)
	if err != nil {
		m.log.Warnf("archive skipped, agreement %s unreadable: %s", agreementAddr, err)
		return
	}

	contractID := ""
	if contract, err := m.contracts.GetByAddress(ctx, agreementAddr); err == nil {
		contractID = contract.ID
	}

	file, err := m.docs.GenerateAgreementPDF(documents.AgreementDocument{
		ContractID:       contractID,
		AgreementAddress: agreementAddr,
		OwnerAddress:     info.Owner.Hex(),
		UserAddress:      info.User.Hex(),
		VehicleID:        info.VehicleID,
		RentAmount:       info.RentAmount,
		DepositAmount:    info.DepositAmount,
		StartDate:        info.StartsAt,
		EndDate:          info.EndsAt,
		Installments:     installmentCount(info.StartsAt, info.EndsAt),
	})
	if err != nil {
		m.log.Warnf("archive skipped, document render failed for %s: %s", agreementAddr, err)
		return
	}
	defer func() {
		if err := os.Remove(file.Path); err != nil {
			m.log.Warnf("could not remove archived document %s: %s", file.Path, err)
		}
	}()

	pinned, err := m.pinner.PinFile(ctx, file.Path)
	if err != nil {
		m.log.Warnf("archive pin failed for %s: %s", agreementAddr, err)
		return
	}

	uri := "ipfs://" + pinned.CID
	if err := m.contracts.SetMetadataURI(ctx, agreementAddr, uri); err != nil {
		m.log.Warnf("pinned archive %s but could not link it to %s: %s", pinned.CID, agreementAddr, err)
		return
	}

	m.log.Infof("agreement %s archived: %s (%d bytes)", agreementAddr, uri, file.Size)
}

// installmentCount derives the quarterly installment count from the rental
// term, never less than one.
func installmentCount(start, end time.Time) int {
	if !end.After(start) {
		return 1
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	count := (months + 2) / 3
	if count < 1 {
		count = 1
	}
	return count
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
