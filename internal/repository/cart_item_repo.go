package repository

import (
	"context"
	"errors"
	"shop-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItemRepo interface {
	Create(ctx context.Context, item *models.CartItem) error
	GetByCartAndProduct(ctx context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID) (*models.CartItem, error)
	ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	UpdateAmounts(ctx context.Context, id uuid.UUID, quantity uint32, unitPrice, totalPrice decimal.Decimal) error
	DeleteByCartAndProduct(ctx context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID) (int64, error)
	DeleteByCart(ctx context.Context, cartID uuid.UUID) (int64, error)
}

type cartItemRepo struct{ db *gorm.DB }

func NewCartItemRepo(db *gorm.DB) CartItemRepo { return &cartItemRepo{db: db} }

func (r *cartItemRepo) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartItemRepo) GetByCartAndProduct(ctx context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_kind = ? AND product_id = ?", cartID, kind, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *cartItemRepo) ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *cartItemRepo) UpdateAmounts(ctx context.Context, id uuid.UUID, quantity uint32, unitPrice, totalPrice decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).Updates(map[string]any{
		"quantity":    quantity,
		"unit_price":  unitPrice,
		"total_price": totalPrice,
	}).Error
}

func (r *cartItemRepo) DeleteByCartAndProduct(ctx context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_kind = ? AND product_id = ?", cartID, kind, productID).
		Delete(&models.CartItem{})
	return tx.RowsAffected, tx.Error
}

func (r *cartItemRepo) DeleteByCart(ctx context.Context, cartID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{})
	return tx.RowsAffected, tx.Error
}
