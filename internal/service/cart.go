package service

import (
	"context"

	"shop-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartService interface {
	// GetOrCreateCart возвращает активную (in_order=false) корзину текущего
	// покупателя, создавая её и самого покупателя при первом обращении.
	GetOrCreateCart(ctx context.Context) (*models.Cart, error)
	// CreateAnonymousCart создаёт корзину без владельца; дальше она
	// адресуется по id.
	CreateAnonymousCart(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error)

	// AddItem добавляет товар или увеличивает количество существующей
	// позиции. Повторный вызов с тем же товаром накапливает количество —
	// это намеренно не идемпотентная операция.
	AddItem(ctx context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID, quantity uint32) (*models.Cart, error)
	// RemoveItem удаляет позицию. Отсутствующая позиция — ошибка
	// ErrCartItemNotFound, а не тихий no-op.
	RemoveItem(ctx context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID) (*models.Cart, error)
	ChangeQuantity(ctx context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID, quantity uint32) (*models.Cart, error)
	// Recalculate обновляет цены позиций по текущим ценам каталога и
	// пересчитывает итоги. Вызов после каждой мутации и один пакетный
	// вызов дают одинаковый результат.
	Recalculate(ctx context.Context, cartID uuid.UUID) (*models.Cart, error)
}

// recalcTotals — единственная точка истины для инвариантов корзины:
// total_products = Σ quantity, total_price = Σ total_price позиций.
func decimalFromUint(q uint32) decimal.Decimal { return decimal.NewFromInt(int64(q)) }

func recalcTotals(items []models.CartItem) (uint32, decimal.Decimal) {
	var totalProducts uint32
	totalPrice := decimal.Zero
	for i := range items {
		totalProducts += items[i].Quantity
		totalPrice = totalPrice.Add(items[i].TotalPrice)
	}
	return totalProducts, totalPrice
}
