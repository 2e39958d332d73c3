package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"arenapix-be/internal/middleware"
	"arenapix-be/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Checkout turns the cart into an order with a Pix charge. The client renders
// the BR-code/QR image from the response and polls or waits for the webhook.
func (h *OrderHandler) Checkout(c *gin.Context) {
	o, err := h.svc.Checkout(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrCartEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		case errors.Is(err, order.ErrSellerWithoutPixKey):
			c.JSON(http.StatusConflict, gin.H{"error": "seller has no pix key configured"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, orderResponse(o))
}

func (h *OrderHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	page, _ := strconv.Atoi(c.Query("page"))

	filter := order.Filter{Status: c.Query("status")}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.DateTo = &t
		}
	}

	orders, err := h.svc.GetOrders(c.Request.Context(), middleware.CurrentUserID(c), filter, limit, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}

	out := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.svc.GetOrderDetail(c.Request.Context(), middleware.CurrentUserID(c), orderID, middleware.IsAdmin(c))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse(o))
}

// Sync re-reads the provider charge and refreshes the local status. Used by
// the confirmation screen while the webhook has not yet arrived.
func (h *OrderHandler) Sync(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.svc.SyncStatus(c.Request.Context(), middleware.CurrentUserID(c), orderID)
	if err != nil {
		if errors.Is(err, order.ErrNoTransaction) {
			c.JSON(http.StatusConflict, gin.H{"error": "order has no payment"})
			return
		}
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse(o))
}

func writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, order.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func orderResponse(o *order.Order) gin.H {
	resp := gin.H{
		"id":         o.ID,
		"total":      o.Total,
		"status":     o.Status,
		"created_at": o.CreatedAt.Format(time.RFC3339),
		"updated_at": o.UpdatedAt.Format(time.RFC3339),
	}
	if o.TransactionID != nil {
		resp["id_transacao"] = *o.TransactionID
	}
	if o.BrCode != "" {
		resp["br_code"] = o.BrCode
		resp["qr_code_image"] = o.QRCodeImage
	}
	if len(o.Items) > 0 {
		items := make([]gin.H, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, gin.H{
				"product_id":   item.ProductID,
				"product_name": item.ProductName,
				"quantity":     item.Quantity,
				"price":        item.Price,
			})
		}
		resp["items"] = items
	}
	return resp
}
