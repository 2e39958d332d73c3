package api

import (
	"net/http"
	"strconv"
	"time"

	"arenapix-be/internal/openpix"
	"arenapix-be/internal/payment"

	"github.com/gin-gonic/gin"
)

// PixHandler exposes admin operations against the payment provider:
// sub-account management and transaction auditing.
type PixHandler struct {
	gateway payment.Gateway
}

func NewPixHandler(gateway payment.Gateway) *PixHandler {
	return &PixHandler{gateway: gateway}
}

func (h *PixHandler) ListSubAccounts(c *gin.Context) {
	accounts, err := h.gateway.GetSubAccounts(c.Request.Context())
	if err != nil {
		status, msg := mapGatewayError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subaccounts": accounts})
}

type subAccountRequest struct {
	Name   string `json:"name" binding:"required"`
	PixKey string `json:"pix_key" binding:"required"`
}

func (h *PixHandler) CreateSubAccount(c *gin.Context) {
	var req subAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.gateway.CreateSubAccount(c.Request.Context(), req.Name, req.PixKey)
	if err != nil {
		status, msg := mapGatewayError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *PixHandler) UpdateSubAccount(c *gin.Context) {
	pixKey := c.Param("pixKey")

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.gateway.UpdateSubAccount(c.Request.Context(), pixKey, req.Name)
	if err != nil {
		status, msg := mapGatewayError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *PixHandler) DeleteSubAccount(c *gin.Context) {
	if err := h.gateway.DeleteSubAccount(c.Request.Context(), c.Param("pixKey")); err != nil {
		status, msg := mapGatewayError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subaccount deleted"})
}

func (h *PixHandler) GetCharge(c *gin.Context) {
	charge, err := h.gateway.GetCharge(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := mapGatewayError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, charge)
}

func (h *PixHandler) ListTransactions(c *gin.Context) {
	var opts openpix.ListTransactionsOptions

	if start := c.Query("start"); start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
			return
		}
		opts.Start = &t
	}
	if end := c.Query("end"); end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
			return
		}
		opts.End = &t
	}
	opts.Charge = c.Query("charge")
	opts.PixQrCode = c.Query("pixQrCode")
	opts.Withdrawal = c.Query("withdrawal")
	if skip := c.Query("skip"); skip != "" {
		n, err := strconv.Atoi(skip)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skip"})
			return
		}
		opts.Skip = n
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		opts.Limit = n
	}

	page, err := h.gateway.ListTransactions(c.Request.Context(), opts)
	if err != nil {
		status, msg := mapGatewayError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, page)
}
