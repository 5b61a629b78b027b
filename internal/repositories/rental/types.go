package rental

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// AgreementStatus mirrors the on-chain status field of a rental agreement.
// The numeric value matches the contract's enum ordinal.
type AgreementStatus uint8

const (
	AgreementStatusPending AgreementStatus = iota
	AgreementStatusActive
	AgreementStatusCompleted
	AgreementStatusCancelled
)

func (s AgreementStatus) String() string {
	switch s {
	case AgreementStatusPending:
		return "pending"
	case AgreementStatusActive:
		return "active"
	case AgreementStatusCompleted:
		return "completed"
	case AgreementStatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// IsTerminal reports whether no further status transition is possible
func (s AgreementStatus) IsTerminal() bool {
	return s == AgreementStatusCompleted || s == AgreementStatusCancelled
}

// AgreementInfo is a snapshot of the on-chain agreement state. Amounts are
// decimal CPT strings, converted back from the fixed-point representation.
type AgreementInfo struct {
	Address       common.Address
	Owner         common.Address
	User          common.Address
	VehicleID     string
	RentAmount    string
	DepositAmount string
	StartsAt      time.Time
	EndsAt        time.Time
	Status        AgreementStatus
	OwnerSigned   bool
	UserSigned    bool
}

// Payment is an installment observed in the agreement's event log. It is
// never stored locally; history queries replay the chain every time.
type Payment struct {
	Payer       common.Address
	Amount      string
	PaidAt      time.Time
	TxHash      common.Hash
	BlockNumber uint64
}

type CreateAgreementResult struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	// AgreementAddress is the zero address when the AgreementCreated event
	// was missing from the confirmation receipt
	AgreementAddress common.Address
}

type TxResult struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	Status      string
}

const TxStatusConfirmed = "confirmed"

type GasPrice struct {
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}
