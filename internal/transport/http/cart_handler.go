package http

import (
	"net/http"

	"shop-service/internal/models"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	svc service.CartService
}

func NewCartHandler(svc service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

// CurrentCart отдаёт активную корзину текущего покупателя, создавая её при
// первом обращении.
func (h *CartHandler) CurrentCart(c *gin.Context) {
	cart, err := h.svc.GetOrCreateCart(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func (h *CartHandler) CreateAnonymousCart(c *gin.Context) {
	cart, err := h.svc.CreateAnonymousCart(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCartView(cart))
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart id"})
		return
	}
	cart, err := h.svc.GetCart(c.Request.Context(), cartID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

type cartItemInput struct {
	ProductKind string    `json:"product_kind" binding:"required"`
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	Quantity    uint32    `json:"quantity" binding:"required"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart id"})
		return
	}
	var in cartItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	cart, err := h.svc.AddItem(c.Request.Context(), cartID, models.ProductKind(in.ProductKind), in.ProductID, in.Quantity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart id"})
		return
	}
	var in cartItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	cart, err := h.svc.ChangeQuantity(c.Request.Context(), cartID, models.ProductKind(in.ProductKind), in.ProductID, in.Quantity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart id"})
		return
	}
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	kind := models.ProductKind(c.Param("kind"))

	cart, err := h.svc.RemoveItem(c.Request.Context(), cartID, kind, productID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func (h *CartHandler) Recalculate(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart id"})
		return
	}
	cart, err := h.svc.Recalculate(c.Request.Context(), cartID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}
