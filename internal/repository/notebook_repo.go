package repository

import (
	"context"
	"errors"
	"shop-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductListFilter struct {
	CategoryID *uuid.UUID
	Query      string // по title/slug
	Limit      int
	Offset     int
}

type NotebookRepo interface {
	Create(ctx context.Context, n *models.Notebook) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notebook, error)
	GetBySlug(ctx context.Context, slug string) (*models.Notebook, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Notebook, int64, error)
	Latest(ctx context.Context, limit int) ([]models.Notebook, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SlugTaken(ctx context.Context, slug string, exceptID *uuid.UUID) (bool, error)
}

type notebookRepo struct{ db *gorm.DB }

func NewNotebookRepo(db *gorm.DB) NotebookRepo { return &notebookRepo{db: db} }

func (r *notebookRepo) Create(ctx context.Context, n *models.Notebook) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notebookRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Notebook{}).Where("id = ?", id).Updates(fields).Error
}

func (r *notebookRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Notebook, error) {
	var n models.Notebook
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &n, err
}

func (r *notebookRepo) GetBySlug(ctx context.Context, slug string) (*models.Notebook, error) {
	var n models.Notebook
	err := r.db.WithContext(ctx).First(&n, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &n, err
}

func (r *notebookRepo) List(ctx context.Context, f ProductListFilter) ([]models.Notebook, int64, error) {
	q := applyProductFilter(r.db.WithContext(ctx).Model(&models.Notebook{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.Notebook
	err := q.Order("created_at DESC").Limit(listLimit(f.Limit)).Offset(listOffset(f.Offset)).Find(&list).Error
	return list, total, err
}

func (r *notebookRepo) Latest(ctx context.Context, limit int) ([]models.Notebook, error) {
	var list []models.Notebook
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(listLimit(limit)).Find(&list).Error
	return list, err
}

func (r *notebookRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Notebook{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *notebookRepo) SlugTaken(ctx context.Context, slug string, exceptID *uuid.UUID) (bool, error) {
	return slugTaken(ctx, r.db, &models.Notebook{}, slug, exceptID)
}

func applyProductFilter(q *gorm.DB, f ProductListFilter) *gorm.DB {
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Query != "" {
		q = q.Where("lower(title) LIKE lower(?) OR lower(slug) LIKE lower(?)", "%"+f.Query+"%", "%"+f.Query+"%")
	}
	return q
}

func slugTaken(ctx context.Context, db *gorm.DB, model any, slug string, exceptID *uuid.UUID) (bool, error) {
	q := db.WithContext(ctx).Model(model).Where("slug = ?", slug)
	if exceptID != nil {
		q = q.Where("id <> ?", *exceptID)
	}
	var cnt int64
	err := q.Count(&cnt).Error
	return cnt > 0, err
}

func listLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}

func listOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
