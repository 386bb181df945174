package http

import (
	"net/http"

	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	svc service.CustomerService
}

func NewCustomerHandler(svc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) Profile(c *gin.Context) {
	cust, err := h.svc.GetOrCreate(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerView(cust))
}

type contactInput struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *CustomerHandler) UpdateContact(c *gin.Context) {
	var in contactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	cust, err := h.svc.UpdateContact(c.Request.Context(), in.Phone, in.Address)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerView(cust))
}
