package httphandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.com/cptmarket/rental-router/internal/repositories/store"
	"golang.org/x/exp/slices"
)

func (h *HTTPHandler) GetCars(ctx *gin.Context) {
	cars, err := h.cars.List(ctx.Request.Context())
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}

	slices.SortStableFunc(cars, func(a store.Car, b store.Car) bool {
		return a.ID < b.ID
	})

	ctx.JSON(200, gin.H{"success": true, "cars": cars})
}

func (h *HTTPHandler) GetCar(ctx *gin.Context) {
	car, err := h.cars.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"success": true, "car": car})
}

func (h *HTTPHandler) CreateCar(ctx *gin.Context) {
	var req CreateCarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	car := &store.Car{
		OwnerID:     req.OwnerID,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		PricePerDay: req.PricePerDay,
		Status:      req.Status,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.cars.Create(ctx.Request.Context(), car); err != nil {
		h.abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "car": car})
}

func (h *HTTPHandler) UpdateCarStatus(ctx *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=available rented maintenance"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.cars.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req.Status); err != nil {
		h.abortWithError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"success": true})
}

func (h *HTTPHandler) GetUsers(ctx *gin.Context) {
	users, err := h.users.List(ctx.Request.Context())
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}

	slices.SortStableFunc(users, func(a store.User, b store.User) bool {
		return a.ID < b.ID
	})

	ctx.JSON(200, gin.H{"success": true, "users": users})
}

func (h *HTTPHandler) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	user := &store.User{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		WalletAddress: req.WalletAddress,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.users.Create(ctx.Request.Context(), user); err != nil {
		h.abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

func (h *HTTPHandler) GetUser(ctx *gin.Context) {
	user, err := h.users.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"success": true, "user": user})
}

func (h *HTTPHandler) GetWalletByUser(ctx *gin.Context) {
	wallet, err := h.wallets.GetByUserID(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"success": true, "wallet": wallet})
}

func (h *HTTPHandler) GetWallets(ctx *gin.Context) {
	wallets, err := h.wallets.List(ctx.Request.Context())
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}

	slices.SortStableFunc(wallets, func(a store.Wallet, b store.Wallet) bool {
		return a.ID < b.ID
	})

	ctx.JSON(200, gin.H{"success": true, "wallets": wallets})
}

func (h *HTTPHandler) CreateWallet(ctx *gin.Context) {
	var req CreateWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	wallet := &store.Wallet{
		UserID:    req.UserID,
		Address:   req.Address,
		Balance:   req.Balance,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.wallets.Create(ctx.Request.Context(), wallet); err != nil {
		h.abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "wallet": wallet})
}
