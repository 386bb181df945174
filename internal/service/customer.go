package service

import (
	"context"

	"shop-service/internal/models"
	"shop-service/internal/repository"
)

type CustomerService interface {
	// GetOrCreate возвращает профиль покупателя текущего пользователя.
	GetOrCreate(ctx context.Context) (*models.Customer, error)
	UpdateContact(ctx context.Context, phone, address string) (*models.Customer, error)
}

type customerService struct {
	repo *repository.Repository
}

func NewCustomerService(repo *repository.Repository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) GetOrCreate(ctx context.Context) (*models.Customer, error) {
	return ensureCustomer(ctx, s.repo.Customers)
}

func (s *customerService) UpdateContact(ctx context.Context, phone, address string) (*models.Customer, error) {
	c, err := ensureCustomer(ctx, s.repo.Customers)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Customers.UpdateContact(ctx, c.ID, phone, address); err != nil {
		return nil, err
	}
	return s.repo.Customers.GetByID(ctx, c.ID)
}
