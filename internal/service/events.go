package service

import (
	"context"
	"time"

	"shop-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderPlacedEvent struct {
	OrderID       uuid.UUID         `json:"order_id"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	CartID        uuid.UUID         `json:"cart_id"`
	TotalProducts uint32            `json:"total_products"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
	BuyingType    models.BuyingType `json:"buying_type"`
	OrderDate     time.Time         `json:"order_date"`
	CreatedAt     time.Time         `json:"created_at"`
}

type OrderStatusChangedEvent struct {
	OrderID   uuid.UUID          `json:"order_id"`
	From      models.OrderStatus `json:"from"`
	To        models.OrderStatus `json:"to"`
	ChangedAt time.Time          `json:"changed_at"`
}

type EventBus interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}
