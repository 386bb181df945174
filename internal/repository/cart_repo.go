package repository

import (
	"context"
	"errors"
	"shop-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo interface {
	Create(ctx context.Context, c *models.Cart) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	// GetByIDForUpdate берёт строку корзины под SELECT ... FOR UPDATE, чтобы
	// read-modify-write итогов не терял конкурентные обновления.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	GetActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error)
	UpdateTotals(ctx context.Context, id uuid.UUID, totalProducts uint32, totalPrice decimal.Decimal) error
	MarkInOrder(ctx context.Context, id uuid.UUID) error
	SetOwner(ctx context.Context, id, ownerID uuid.UUID) error

	WithTx(ctx context.Context, fn func(carts CartRepo, items CartItemRepo, orders OrderRepo) error) error
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) CartRepo { return &cartRepo{db: db} }

func (r *cartRepo) Create(ctx context.Context, c *models.Cart) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cartRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).Preload("Items").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *cartRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// Items грузим отдельным запросом: Preload вместе с FOR UPDATE лочил бы
	// и строки товаров.
	if err := r.db.WithContext(ctx).Where("cart_id = ?", id).Order("created_at ASC").Find(&c.Items).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cartRepo) GetActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).Preload("Items").
		Where("owner_id = ? AND in_order = false", ownerID).
		Order("created_at DESC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *cartRepo) UpdateTotals(ctx context.Context, id uuid.UUID, totalProducts uint32, totalPrice decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&models.Cart{}).Where("id = ?", id).Updates(map[string]any{
		"total_products": totalProducts,
		"total_price":    totalPrice,
	}).Error
}

func (r *cartRepo) MarkInOrder(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Cart{}).Where("id = ?", id).Update("in_order", true).Error
}

func (r *cartRepo) SetOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Cart{}).Where("id = ?", id).Updates(map[string]any{
		"owner_id":           ownerID,
		"for_anonymous_user": false,
	}).Error
}

func (r *cartRepo) WithTx(ctx context.Context, fn func(carts CartRepo, items CartItemRepo, orders OrderRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&cartRepo{db: tx}, &cartItemRepo{db: tx}, &orderRepo{db: tx})
	})
}
