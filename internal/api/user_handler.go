package api

import (
	"errors"
	"net/http"

	"arenapix-be/internal/middleware"
	"arenapix-be/internal/openpix"
	"arenapix-be/internal/user"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  gin.H{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role},
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role},
	})
}

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role, "pix_key": u.PixKey,
	})
}

type paymentSettingsRequest struct {
	PixKey string `json:"pix_key" binding:"required"`
}

// SavePaymentSettings registers the seller's Pix key and ensures the provider
// sub-account exists.
func (h *UserHandler) SavePaymentSettings(c *gin.Context) {
	var req paymentSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.svc.SavePaymentSettings(c.Request.Context(), middleware.CurrentUserID(c), req.PixKey)
	if err != nil {
		status, msg := mapGatewayError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sub_account": account})
}

func (h *UserHandler) Balance(c *gin.Context) {
	balance, err := h.svc.GetBalance(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, user.ErrNoPixKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no pix key configured"})
			return
		}
		status, msg := mapGatewayError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

type withdrawRequest struct {
	Value *int64 `json:"value"` // centavos; omit to withdraw the full balance
}

func (h *UserHandler) Withdraw(c *gin.Context) {
	// No body at all means "withdraw everything".
	var req withdrawRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	tx, err := h.svc.Withdraw(c.Request.Context(), middleware.CurrentUserID(c), req.Value)
	if err != nil {
		if errors.Is(err, user.ErrNoPixKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no pix key configured"})
			return
		}
		status, msg := mapGatewayError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// mapGatewayError turns provider error kinds into HTTP responses without
// leaking raw provider bodies to clients.
func mapGatewayError(err error) (int, string) {
	var apiErr *openpix.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case openpix.KindNotFound:
			return http.StatusNotFound, "not found at payment provider"
		case openpix.KindConflict:
			return http.StatusConflict, "pix key already registered"
		case openpix.KindUnauthorized:
			return http.StatusBadGateway, "payment provider rejected credentials"
		}
		return http.StatusBadGateway, "payment provider error"
	}
	return http.StatusInternalServerError, "internal error"
}
