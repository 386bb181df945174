package repository

import (
	"context"
	"errors"
	"shop-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SmartphoneRepo interface {
	Create(ctx context.Context, s *models.Smartphone) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Smartphone, error)
	GetBySlug(ctx context.Context, slug string) (*models.Smartphone, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Smartphone, int64, error)
	Latest(ctx context.Context, limit int) ([]models.Smartphone, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SlugTaken(ctx context.Context, slug string, exceptID *uuid.UUID) (bool, error)
}

type smartphoneRepo struct{ db *gorm.DB }

func NewSmartphoneRepo(db *gorm.DB) SmartphoneRepo { return &smartphoneRepo{db: db} }

func (r *smartphoneRepo) Create(ctx context.Context, s *models.Smartphone) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *smartphoneRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Smartphone{}).Where("id = ?", id).Updates(fields).Error
}

func (r *smartphoneRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Smartphone, error) {
	var s models.Smartphone
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *smartphoneRepo) GetBySlug(ctx context.Context, slug string) (*models.Smartphone, error) {
	var s models.Smartphone
	err := r.db.WithContext(ctx).First(&s, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *smartphoneRepo) List(ctx context.Context, f ProductListFilter) ([]models.Smartphone, int64, error) {
	q := applyProductFilter(r.db.WithContext(ctx).Model(&models.Smartphone{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.Smartphone
	err := q.Order("created_at DESC").Limit(listLimit(f.Limit)).Offset(listOffset(f.Offset)).Find(&list).Error
	return list, total, err
}

func (r *smartphoneRepo) Latest(ctx context.Context, limit int) ([]models.Smartphone, error) {
	var list []models.Smartphone
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(listLimit(limit)).Find(&list).Error
	return list, err
}

func (r *smartphoneRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Smartphone{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *smartphoneRepo) SlugTaken(ctx context.Context, slug string, exceptID *uuid.UUID) (bool, error) {
	return slugTaken(ctx, r.db, &models.Smartphone{}, slug, exceptID)
}
