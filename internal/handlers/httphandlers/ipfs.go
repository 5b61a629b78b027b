package httphandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) PinAgreement(ctx *gin.Context) {
	var req PinAgreementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	cid, uri, err := h.orchestrator.PinMetadata(ctx.Request.Context(), req.ContractID, req.ContractAddress, req.Metadata)
	if err != nil {
		h.abortWithError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{"success": true, "ipfs": cid, "uri": uri})
}
