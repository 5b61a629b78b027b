package httphandlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"gitlab.com/cptmarket/rental-router/internal/config"
	"gitlab.com/cptmarket/rental-router/internal/contractmanager"
	"gitlab.com/cptmarket/rental-router/internal/interfaces"
	"gitlab.com/cptmarket/rental-router/internal/lib"
	"gitlab.com/cptmarket/rental-router/internal/pinning"
	"gitlab.com/cptmarket/rental-router/internal/repositories/rental"
	"gitlab.com/cptmarket/rental-router/internal/repositories/store"
)

// Orchestrator is the agreement lifecycle surface the router exposes.
type Orchestrator interface {
	CreateAgreement(ctx context.Context, params contractmanager.CreateAgreementParams) (*store.Contract, error)
	SignAgreement(ctx context.Context, agreementAddr string) (*rental.TxResult, error)
	MakePayment(ctx context.Context, agreementAddr, amount string) (*rental.TxResult, error)
	CompleteAgreement(ctx context.Context, agreementAddr string) (*rental.TxResult, error)
	CancelAgreement(ctx context.Context, agreementAddr string) (*rental.TxResult, error)
	GetStatus(ctx context.Context, agreementAddr string) (*rental.AgreementInfo, error)
	GetPaymentHistory(ctx context.Context, agreementAddr string) ([]rental.Payment, error)
	ListContracts(ctx context.Context) ([]store.Contract, error)
	PinMetadata(ctx context.Context, contractID, agreementAddr string, metadata interface{}) (string, string, error)
}

// ChainReader covers the degradable read-only chain queries.
type ChainReader interface {
	BalanceOf(ctx context.Context, addr string) (string, error)
	GetGasPrice(ctx context.Context) *rental.GasPrice
	GetTransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type CarStore interface {
	Create(ctx context.Context, car *store.Car) error
	GetByID(ctx context.Context, id string) (*store.Car, error)
	List(ctx context.Context) ([]store.Car, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type UserStore interface {
	Create(ctx context.Context, user *store.User) error
	GetByID(ctx context.Context, id string) (*store.User, error)
	List(ctx context.Context) ([]store.User, error)
}

type WalletStore interface {
	Create(ctx context.Context, wallet *store.Wallet) error
	GetByUserID(ctx context.Context, userID string) (*store.Wallet, error)
	List(ctx context.Context) ([]store.Wallet, error)
}

// DBPinger reports relational store connectivity for the health endpoint.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

type HTTPHandler struct {
	orchestrator Orchestrator
	chain        ChainReader
	cars         CarStore
	users        UserStore
	wallets      WalletStore
	db           DBPinger
	log          interfaces.ILogger
}

func NewHTTPHandler(orchestrator Orchestrator, chain ChainReader, cars CarStore, users UserStore, wallets WalletStore, db DBPinger, log interfaces.ILogger) *gin.Engine {
	handl := &HTTPHandler{
		orchestrator: orchestrator,
		chain:        chain,
		cars:         cars,
		users:        users,
		wallets:      wallets,
		db:           db,
		log:          log,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	api.GET("/health", handl.HealthCheck)

	api.POST("/agreements", handl.CreateAgreement)
	api.GET("/contracts", handl.GetContracts)
	api.GET("/agreements/:address", handl.GetAgreement)
	api.GET("/agreements/:address/payments", handl.GetPayments)
	api.POST("/agreements/:address/sign", handl.SignAgreement)
	api.POST("/agreements/:address/pay", handl.MakePayment)
	api.POST("/agreements/:address/complete", handl.CompleteAgreement)
	api.POST("/agreements/:address/cancel", handl.CancelAgreement)

	api.GET("/balance/:address", handl.GetBalance)
	api.GET("/gas-price", handl.GetGasPrice)
	api.GET("/tx/:hash", handl.GetTransactionReceipt)

	api.POST("/ipfs/pinAgreement", handl.PinAgreement)

	api.GET("/cars", handl.GetCars)
	api.GET("/cars/:id", handl.GetCar)
	api.POST("/cars", handl.CreateCar)
	api.PUT("/cars/:id/status", handl.UpdateCarStatus)
	api.GET("/users", handl.GetUsers)
	api.GET("/users/:id", handl.GetUser)
	api.POST("/users", handl.CreateUser)
	api.GET("/wallets", handl.GetWallets)
	api.GET("/wallets/:userId", handl.GetWalletByUser)
	api.POST("/wallets", handl.CreateWallet)

	err := r.SetTrustedProxies(nil)
	if err != nil {
		panic(err)
	}

	return r
}

func (h *HTTPHandler) HealthCheck(ctx *gin.Context) {
	database := "connected"
	if err := h.db.PingContext(ctx.Request.Context()); err != nil {
		database = "disconnected"
	}

	ctx.JSON(200, gin.H{
		"success":   true,
		"message":   "rental router is running",
		"version":   config.BuildVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}

// abortWithError maps the error taxonomy onto HTTP statuses and emits the
// uniform error body.
func (h *HTTPHandler) abortWithError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, lib.ErrInvalidAddress), errors.Is(err, lib.ErrInvalidAmount):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, rental.ErrTransactionFailed), errors.Is(err, pinning.ErrUploadFailed):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		h.log.Errorf("request %s failed: %s", ctx.FullPath(), err)
	}

	ctx.JSON(status, gin.H{"success": false, "error": err.Error()})
}
