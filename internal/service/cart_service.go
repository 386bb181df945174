package service

import (
	"context"

	"shop-service/internal/models"
	"shop-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type cartService struct {
	repo     *repository.Repository
	resolver *Resolver
	log      *zap.Logger
}

func NewCartService(repo *repository.Repository, resolver *Resolver, log *zap.Logger) CartService {
	return &cartService{
		repo:     repo,
		resolver: resolver,
		log:      log,
	}
}

// ensureCustomer находит или создаёт запись покупателя для аутентифицированного
// пользователя.
func ensureCustomer(ctx context.Context, customers repository.CustomerRepo) (*models.Customer, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	c, err := customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	c = &models.Customer{UserID: userID}
	if err := customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// checkCartAccess: корзина с владельцем доступна только ему; анонимная
// корзина адресуется по id и открыта предъявителю.
func checkCartAccess(ctx context.Context, cart *models.Cart, customers repository.CustomerRepo) error {
	if cart.OwnerID == nil {
		return nil
	}
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return err
	}
	if role == RoleStaff {
		return nil
	}
	c, err := customers.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil || c.ID != *cart.OwnerID {
		return ErrForbidden
	}
	return nil
}

func (s *cartService) GetOrCreateCart(ctx context.Context) (*models.Cart, error) {
	customer, err := ensureCustomer(ctx, s.repo.Customers)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.Carts.GetActiveByOwner(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = &models.Cart{OwnerID: &customer.ID}
	if err := s.repo.Carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	s.log.Info("Создана корзина покупателя", zap.String("cart_id", cart.ID.String()))
	return cart, nil
}

func (s *cartService) CreateAnonymousCart(ctx context.Context) (*models.Cart, error) {
	cart := &models.Cart{ForAnonymousUser: true}
	if err := s.repo.Carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	cart, err := s.repo.Carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if err := checkCartAccess(ctx, cart, s.repo.Customers); err != nil {
		return nil, err
	}
	return cart, nil
}

// mutateCart выполняет мутацию под блокировкой строки корзины и завершает её
// пересчётом итогов.
func (s *cartService) mutateCart(ctx context.Context, cartID uuid.UUID, fn func(cart *models.Cart, items repository.CartItemRepo) error) (*models.Cart, error) {
	var result *models.Cart

	err := s.repo.Carts.WithTx(ctx, func(carts repository.CartRepo, items repository.CartItemRepo, _ repository.OrderRepo) error {
		cart, err := carts.GetByIDForUpdate(ctx, cartID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartNotFound
		}
		if err := checkCartAccess(ctx, cart, s.repo.Customers); err != nil {
			return err
		}
		if cart.InOrder {
			return ErrCartLocked
		}

		if err := fn(cart, items); err != nil {
			return err
		}

		rows, err := items.ListByCart(ctx, cartID)
		if err != nil {
			return err
		}
		totalProducts, totalPrice := recalcTotals(rows)
		if err := carts.UpdateTotals(ctx, cartID, totalProducts, totalPrice); err != nil {
			return err
		}

		cart.Items = rows
		cart.TotalProducts = totalProducts
		cart.TotalPrice = totalPrice
		result = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *cartService) AddItem(ctx context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID, quantity uint32) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	product, err := s.resolver.Resolve(ctx, kind, productID)
	if err != nil {
		return nil, err
	}

	return s.mutateCart(ctx, cartID, func(cart *models.Cart, items repository.CartItemRepo) error {
		item, err := items.GetByCartAndProduct(ctx, cartID, kind, productID)
		if err != nil {
			return err
		}

		price := product.GetPrice()
		if item == nil {
			return items.Create(ctx, &models.CartItem{
				CartID:      cartID,
				ProductKind: kind,
				ProductID:   productID,
				Quantity:    quantity,
				UnitPrice:   price,
				TotalPrice:  price.Mul(decimalFromUint(quantity)),
			})
		}

		newQty := item.Quantity + quantity
		return items.UpdateAmounts(ctx, item.ID, newQty, price, price.Mul(decimalFromUint(newQty)))
	})
}

func (s *cartService) RemoveItem(ctx context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID) (*models.Cart, error) {
	if _, err := s.resolver.Source(kind); err != nil {
		return nil, err
	}

	return s.mutateCart(ctx, cartID, func(cart *models.Cart, items repository.CartItemRepo) error {
		deleted, err := items.DeleteByCartAndProduct(ctx, cartID, kind, productID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return ErrCartItemNotFound
		}
		return nil
	})
}

func (s *cartService) ChangeQuantity(ctx context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID, quantity uint32) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	product, err := s.resolver.Resolve(ctx, kind, productID)
	if err != nil {
		return nil, err
	}

	return s.mutateCart(ctx, cartID, func(cart *models.Cart, items repository.CartItemRepo) error {
		item, err := items.GetByCartAndProduct(ctx, cartID, kind, productID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrCartItemNotFound
		}
		price := product.GetPrice()
		return items.UpdateAmounts(ctx, item.ID, quantity, price, price.Mul(decimalFromUint(quantity)))
	})
}

func (s *cartService) Recalculate(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	return s.mutateCart(ctx, cartID, func(cart *models.Cart, items repository.CartItemRepo) error {
		rows, err := items.ListByCart(ctx, cartID)
		if err != nil {
			return err
		}
		for i := range rows {
			product, err := s.resolver.Resolve(ctx, rows[i].ProductKind, rows[i].ProductID)
			if err != nil {
				return err
			}
			price := product.GetPrice()
			total := price.Mul(decimalFromUint(rows[i].Quantity))
			if !price.Equal(rows[i].UnitPrice) || !total.Equal(rows[i].TotalPrice) {
				if err := items.UpdateAmounts(ctx, rows[i].ID, rows[i].Quantity, price, total); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
