package httphandlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"gitlab.com/cptmarket/rental-router/internal/contractmanager"
	"gitlab.com/cptmarket/rental-router/internal/repositories/rental"
	"gitlab.com/cptmarket/rental-router/internal/repositories/store"
	"golang.org/x/exp/slices"
)

const dateLayout = "2006-01-02"

func (h *HTTPHandler) CreateAgreement(ctx *gin.Context) {
	var req CreateAgreementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	contract, err := h.orchestrator.CreateAgreement(ctx.Request.Context(), contractmanager.CreateAgreementParams{
		CarID:         req.CarID,
		OwnerID:       req.OwnerID,
		UserID:        req.UserID,
		UserAddress:   req.UserAddress,
		VehicleID:     req.VehicleID,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	})
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "contract": mapContract(contract)})
}

func (h *HTTPHandler) GetAgreement(ctx *gin.Context) {
	info, err := h.orchestrator.GetStatus(ctx.Request.Context(), ctx.Param("address"))
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{"success": true, "agreement": mapAgreement(info)})
}

func (h *HTTPHandler) GetPayments(ctx *gin.Context) {
	payments, err := h.orchestrator.GetPaymentHistory(ctx.Request.Context(), ctx.Param("address"))
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}

	data := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		data = append(data, PaymentResponse{
			Payer:       payment.Payer.Hex(),
			Amount:      payment.Amount,
			PaidAt:      payment.PaidAt.UTC().Format(time.RFC3339),
			TxHash:      payment.TxHash.Hex(),
			BlockNumber: payment.BlockNumber,
		})
	}

	slices.SortStableFunc(data, func(a PaymentResponse, b PaymentResponse) bool {
		return a.BlockNumber < b.BlockNumber
	})

	ctx.JSON(200, gin.H{"success": true, "payments": data})
}

func (h *HTTPHandler) SignAgreement(ctx *gin.Context) {
	result, err := h.orchestrator.SignAgreement(ctx.Request.Context(), ctx.Param("address"))
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"success": true, "tx": mapTx(result)})
}

func (h *HTTPHandler) MakePayment(ctx *gin.Context) {
	var req PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.orchestrator.MakePayment(ctx.Request.Context(), ctx.Param("address"), req.Amount)
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"success": true, "tx": mapTx(result)})
}

func (h *HTTPHandler) CompleteAgreement(ctx *gin.Context) {
	result, err := h.orchestrator.CompleteAgreement(ctx.Request.Context(), ctx.Param("address"))
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"success": true, "tx": mapTx(result)})
}

func (h *HTTPHandler) CancelAgreement(ctx *gin.Context) {
	result, err := h.orchestrator.CancelAgreement(ctx.Request.Context(), ctx.Param("address"))
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"success": true, "tx": mapTx(result)})
}

func (h *HTTPHandler) GetContracts(ctx *gin.Context) {
	contracts, err := h.orchestrator.ListContracts(ctx.Request.Context())
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}

	data := make([]ContractResponse, 0, len(contracts))
	for i := range contracts {
		data = append(data, mapContract(&contracts[i]))
	}

	slices.SortStableFunc(data, func(a ContractResponse, b ContractResponse) bool {
		return a.ContractID < b.ContractID
	})

	ctx.JSON(200, gin.H{"success": true, "contracts": data})
}

func (h *HTTPHandler) GetTransactionReceipt(ctx *gin.Context) {
	hash := ctx.Param("hash")
	if len(hash) != 66 || !strings.HasPrefix(hash, "0x") {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "malformed transaction hash"})
		return
	}

	receipt, err := h.chain.GetTransactionReceipt(ctx.Request.Context(), common.HexToHash(hash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "transaction not found"})
			return
		}
		h.abortWithError(ctx, err)
		return
	}
	if receipt == nil {
		ctx.JSON(200, gin.H{"success": true, "receipt": nil})
		return
	}

	status := "reverted"
	if receipt.Status == types.ReceiptStatusSuccessful {
		status = "confirmed"
	}
	ctx.JSON(200, gin.H{"success": true, "receipt": gin.H{
		"status":      status,
		"blockNumber": receipt.BlockNumber.Uint64(),
		"gasUsed":     receipt.GasUsed,
	}})
}

func (h *HTTPHandler) GetBalance(ctx *gin.Context) {
	addr := ctx.Param("address")
	balance, err := h.chain.BalanceOf(ctx.Request.Context(), addr)
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"success": true, "address": addr, "balance": balance})
}

func (h *HTTPHandler) GetGasPrice(ctx *gin.Context) {
	price := h.chain.GetGasPrice(ctx.Request.Context())
	if price == nil {
		ctx.JSON(200, gin.H{"success": true, "gasPrice": nil})
		return
	}

	res := GasPriceResponse{GasPrice: price.GasPrice.String()}
	if price.MaxFeePerGas != nil {
		res.MaxFeePerGas = price.MaxFeePerGas.String()
	}
	if price.MaxPriorityFeePerGas != nil {
		res.MaxPriorityFeePerGas = price.MaxPriorityFeePerGas.String()
	}
	ctx.JSON(200, gin.H{"success": true, "gasPrice": res})
}

func mapTx(result *rental.TxResult) TxResponse {
	return TxResponse{
		TxHash:      result.TxHash.Hex(),
		BlockNumber: result.BlockNumber,
		GasUsed:     result.GasUsed,
		Status:      result.Status,
	}
}

func mapContract(contract *store.Contract) ContractResponse {
	return ContractResponse{
		ContractID:       contract.ID,
		CarID:            contract.CarID,
		OwnerID:          contract.OwnerID,
		UserID:           contract.UserID,
		AgreementAddress: contract.AgreementAddress.String,
		TxHash:           contract.TxHash.String,
		RentAmount:       contract.RentAmount,
		DepositAmount:    contract.DepositAmount,
		StartDate:        contract.StartDate.UTC().Format(dateLayout),
		EndDate:          contract.EndDate.UTC().Format(dateLayout),
		Status:           contract.Status,
	}
}

func mapAgreement(info *rental.AgreementInfo) AgreementResponse {
	return AgreementResponse{
		Address:       info.Address.Hex(),
		Owner:         info.Owner.Hex(),
		User:          info.User.Hex(),
		VehicleID:     info.VehicleID,
		RentAmount:    info.RentAmount,
		DepositAmount: info.DepositAmount,
		StartDate:     info.StartsAt.UTC().Format(dateLayout),
		EndDate:       info.EndsAt.UTC().Format(dateLayout),
		Status:        info.Status.String(),
		OwnerSigned:   info.OwnerSigned,
		UserSigned:    info.UserSigned,
	}
}
