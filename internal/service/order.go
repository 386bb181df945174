package service

import (
	"context"
	"time"

	"shop-service/internal/models"

	"github.com/google/uuid"
)

type PlaceOrderInput struct {
	CartID     uuid.UUID
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	BuyingType models.BuyingType
	Comment    string
	OrderDate  time.Time
}

type OrderListFilter struct {
	CustomerID *uuid.UUID
	Status     *models.OrderStatus
	Limit      int
	Offset     int
}

type OrderService interface {
	// PlaceOrder оформляет заказ из корзины: корзина помечается in_order и
	// становится архивом, заказ стартует в статусе new.
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)
	// AdvanceStatus двигает заказ строго по цепочке
	// new → in_progress → ready → completed. Только для персонала.
	AdvanceStatus(ctx context.Context, orderID uuid.UUID, next models.OrderStatus) (*models.Order, error)
}

// nextOrderStatus задаёт линейный жизненный цикл; пропуски и откаты запрещены.
var nextOrderStatus = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusNew:        models.OrderStatusInProgress,
	models.OrderStatusInProgress: models.OrderStatusReady,
	models.OrderStatusReady:      models.OrderStatusCompleted,
}
