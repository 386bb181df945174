package service

import (
	"context"
	"time"

	"shop-service/internal/models"
	"shop-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type orderService struct {
	repo   *repository.Repository
	events EventBus
	log    *zap.Logger
	now    func() time.Time
}

func NewOrderService(repo *repository.Repository, events EventBus, log *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	customer, err := ensureCustomer(ctx, s.repo.Customers)
	if err != nil {
		return nil, err
	}

	switch in.BuyingType {
	case models.BuyingTypeSelf, models.BuyingTypeDelivery:
	default:
		return nil, ErrInvalidBuyingType
	}

	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = s.now()
	}

	var (
		order *models.Order
		cart  *models.Cart
	)

	err = s.repo.Carts.WithTx(ctx, func(carts repository.CartRepo, items repository.CartItemRepo, orders repository.OrderRepo) error {
		cart, err = carts.GetByIDForUpdate(ctx, in.CartID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartNotFound
		}
		if cart.InOrder {
			return ErrCartLocked
		}
		if cart.OwnerID != nil && *cart.OwnerID != customer.ID {
			return ErrForbidden
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		// анонимная корзина на оформлении закрепляется за покупателем
		if cart.OwnerID == nil {
			if err := carts.SetOwner(ctx, cart.ID, customer.ID); err != nil {
				return err
			}
		}

		order = &models.Order{
			CustomerID: customer.ID,
			CartID:     cart.ID,
			FirstName:  in.FirstName,
			LastName:   in.LastName,
			Phone:      in.Phone,
			Address:    in.Address,
			Status:     models.OrderStatusNew,
			BuyingType: in.BuyingType,
			Comment:    in.Comment,
			OrderDate:  orderDate,
		}
		if err := orders.Create(ctx, order); err != nil {
			return err
		}

		// корзина становится архивом заказа, дальнейшие мутации запрещены
		return carts.MarkInOrder(ctx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Заказ оформлен",
		zap.String("order_id", order.ID.String()),
		zap.String("cart_id", cart.ID.String()),
	)

	if s.events != nil {
		_ = s.events.PublishOrderPlaced(ctx, OrderPlacedEvent{
			OrderID:       order.ID,
			CustomerID:    order.CustomerID,
			CartID:        cart.ID,
			TotalProducts: cart.TotalProducts,
			TotalPrice:    cart.TotalPrice,
			BuyingType:    order.BuyingType,
			OrderDate:     order.OrderDate,
			CreatedAt:     s.now(),
		})
	}

	return s.repo.Orders.GetByID(ctx, order.ID)
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	_, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var ord *models.Order
	if role == RoleStaff {
		ord, err = s.repo.Orders.GetByID(ctx, id)
	} else {
		var customer *models.Customer
		customer, err = ensureCustomer(ctx, s.repo.Customers)
		if err != nil {
			return nil, err
		}
		ord, err = s.repo.Orders.GetByIDForCustomer(ctx, id, customer.ID)
	}
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	_, role, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}

	if role != RoleStaff {
		customer, err := ensureCustomer(ctx, s.repo.Customers)
		if err != nil {
			return nil, 0, err
		}
		f.CustomerID = &customer.ID
	}

	ordersPtr, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{
		CustomerID: f.CustomerID,
		Status:     f.Status,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

func (s *orderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, next models.OrderStatus) (*models.Order, error) {
	_, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if role != RoleStaff {
		return nil, ErrForbidden
	}

	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	allowed, ok := nextOrderStatus[ord.Status]
	if !ok || next != allowed {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.Orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}

	s.log.Info("Статус заказа изменён",
		zap.String("order_id", orderID.String()),
		zap.String("from", string(ord.Status)),
		zap.String("to", string(next)),
	)

	if s.events != nil {
		_ = s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
			OrderID:   orderID,
			From:      ord.Status,
			To:        next,
			ChangedAt: s.now(),
		})
	}

	return s.repo.Orders.GetByID(ctx, orderID)
}
