package http

import (
	"net/http"
	"strconv"
	"time"

	"shop-service/internal/models"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type placeOrderInput struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address"`
	BuyingType string `json:"buying_type" binding:"required"`
	Comment    string `json:"comment"`
	OrderDate  string `json:"order_date"` // YYYY-MM-DD, по умолчанию сегодня
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart id"})
		return
	}
	var in placeOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	var orderDate time.Time
	if in.OrderDate != "" {
		orderDate, err = time.Parse("2006-01-02", in.OrderDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order_date, expected YYYY-MM-DD"})
			return
		}
	}

	ord, err := h.svc.PlaceOrder(c.Request.Context(), service.PlaceOrderInput{
		CartID:     cartID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Phone:      in.Phone,
		Address:    in.Address,
		BuyingType: models.BuyingType(in.BuyingType),
		Comment:    in.Comment,
		OrderDate:  orderDate,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderView(ord))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	ord, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderView(ord))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	f := service.OrderListFilter{}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if s := c.Query("status"); s != "" {
		status := models.OrderStatus(s)
		f.Status = &status
	}
	if v := c.Query("customer_id"); v != "" {
		customerID, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return
		}
		f.CustomerID = &customerID
	}

	orders, total, err := h.svc.ListOrders(c.Request.Context(), f)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	out := make([]orderView, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderView(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out, "total": total})
}

type advanceStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var in advanceStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	ord, err := h.svc.AdvanceStatus(c.Request.Context(), id, models.OrderStatus(in.Status))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderView(ord))
}
