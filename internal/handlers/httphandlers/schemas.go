package httphandlers

import "time"

type CreateAgreementRequest struct {
	CarID         string    `json:"carId" binding:"required"`
	OwnerID       string    `json:"ownerId" binding:"required"`
	UserID        string    `json:"userId" binding:"required"`
	UserAddress   string    `json:"userAddress" binding:"required"`
	VehicleID     string    `json:"vehicleId" binding:"required"`
	RentAmount    string    `json:"rentAmount" binding:"required"`
	DepositAmount string    `json:"depositAmount" binding:"required"`
	StartDate     time.Time `json:"startDate" binding:"required"`
	EndDate       time.Time `json:"endDate" binding:"required"`
}

type PaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type PinAgreementRequest struct {
	ContractID      string      `json:"contractId"`
	ContractAddress string      `json:"contractAddress"`
	Metadata        interface{} `json:"metadata" binding:"required"`
}

type CreateCarRequest struct {
	OwnerID     string `json:"ownerId" binding:"required"`
	Make        string `json:"make" binding:"required"`
	Model       string `json:"model" binding:"required"`
	Year        int    `json:"year" binding:"required"`
	PricePerDay string `json:"pricePerDay" binding:"required"`
	Status      string `json:"status"`
}

type CreateUserRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Role          string `json:"role"`
	WalletAddress string `json:"walletAddress"`
}

type CreateWalletRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Address string `json:"address" binding:"required"`
	Balance string `json:"balance"`
}

type ContractResponse struct {
	ContractID       string `json:"contractId"`
	CarID            string `json:"carId"`
	OwnerID          string `json:"ownerId"`
	UserID           string `json:"userId"`
	AgreementAddress string `json:"agreementAddress,omitempty"`
	TxHash           string `json:"txHash,omitempty"`
	RentAmount       string `json:"rentAmount"`
	DepositAmount    string `json:"depositAmount"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Status           string `json:"status"`
}

type TxResponse struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
	Status      string `json:"status"`
}

type AgreementResponse struct {
	Address       string `json:"address"`
	Owner         string `json:"owner"`
	User          string `json:"user"`
	VehicleID     string `json:"vehicleId"`
	RentAmount    string `json:"rentAmount"`
	DepositAmount string `json:"depositAmount"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Status        string `json:"status"`
	OwnerSigned   bool   `json:"ownerSigned"`
	UserSigned    bool   `json:"userSigned"`
}

type PaymentResponse struct {
	Payer       string `json:"payer"`
	Amount      string `json:"amount"`
	PaidAt      string `json:"paidAt"`
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
}

type GasPriceResponse struct {
	GasPrice             string `json:"gasPrice"`
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
}
