package service

import (
	"context"

	"shop-service/internal/models"
	"shop-service/internal/repository"

	"github.com/google/uuid"
)

// ProductSource — хранилище одного варианта товара. Резолвер собирает
// источники в реестр, и слой корзины/заказов работает с любым
// зарегистрированным вариантом, не зная его конкретного типа.
type ProductSource interface {
	Kind() models.ProductKind
	GetByID(ctx context.Context, id uuid.UUID) (models.Product, error)
	GetBySlug(ctx context.Context, slug string) (models.Product, error)
	Latest(ctx context.Context, limit int) ([]models.Product, error)
}

type Resolver struct {
	sources map[models.ProductKind]ProductSource
	order   []models.ProductKind // порядок регистрации, для стабильных выборок
}

func NewResolver(sources ...ProductSource) *Resolver {
	r := &Resolver{sources: make(map[models.ProductKind]ProductSource)}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

func (r *Resolver) Register(s ProductSource) {
	if _, ok := r.sources[s.Kind()]; !ok {
		r.order = append(r.order, s.Kind())
	}
	r.sources[s.Kind()] = s
}

func (r *Resolver) Source(kind models.ProductKind) (ProductSource, error) {
	s, ok := r.sources[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return s, nil
}

func (r *Resolver) Kinds() []models.ProductKind {
	kinds := make([]models.ProductKind, len(r.order))
	copy(kinds, r.order)
	return kinds
}

func (r *Resolver) Resolve(ctx context.Context, kind models.ProductKind, id uuid.UUID) (models.Product, error) {
	s, err := r.Source(kind)
	if err != nil {
		return nil, err
	}
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (r *Resolver) ResolveBySlug(ctx context.Context, kind models.ProductKind, slug string) (models.Product, error) {
	s, err := r.Source(kind)
	if err != nil {
		return nil, err
	}
	p, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Адаптеры gorm-репозиториев под ProductSource.

type notebookSource struct{ repo repository.NotebookRepo }

func NewNotebookSource(repo repository.NotebookRepo) ProductSource {
	return &notebookSource{repo: repo}
}

func (s *notebookSource) Kind() models.ProductKind { return models.KindNotebook }

func (s *notebookSource) GetByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil || n == nil {
		return nil, err
	}
	return n, nil
}

func (s *notebookSource) GetBySlug(ctx context.Context, slug string) (models.Product, error) {
	n, err := s.repo.GetBySlug(ctx, slug)
	if err != nil || n == nil {
		return nil, err
	}
	return n, nil
}

func (s *notebookSource) Latest(ctx context.Context, limit int) ([]models.Product, error) {
	rows, err := s.repo.Latest(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i])
	}
	return out, nil
}

type smartphoneSource struct{ repo repository.SmartphoneRepo }

func NewSmartphoneSource(repo repository.SmartphoneRepo) ProductSource {
	return &smartphoneSource{repo: repo}
}

func (s *smartphoneSource) Kind() models.ProductKind { return models.KindSmartphone }

func (s *smartphoneSource) GetByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return p, nil
}

func (s *smartphoneSource) GetBySlug(ctx context.Context, slug string) (models.Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil || p == nil {
		return nil, err
	}
	return p, nil
}

func (s *smartphoneSource) Latest(ctx context.Context, limit int) ([]models.Product, error) {
	rows, err := s.repo.Latest(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i])
	}
	return out, nil
}
