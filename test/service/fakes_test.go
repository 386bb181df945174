package service_test

import (
	"context"
	"strings"
	"time"

	"shop-service/internal/models"
	"shop-service/internal/repository"
	"shop-service/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Стейтфул-фейки вместо базы: хранят всё в памяти, поведение повторяет
// gorm-репозитории (nil при отсутствии записи, подгрузка позиций корзины).

type memStore struct {
	customers []*models.Customer
	carts     map[uuid.UUID]*models.Cart
	items     []*models.CartItem
	orders    map[uuid.UUID]*models.Order

	categories  []*models.Category
	notebooks   []*models.Notebook
	smartphones []*models.Smartphone
}

func newMemStore() *memStore {
	return &memStore{
		carts:  map[uuid.UUID]*models.Cart{},
		orders: map[uuid.UUID]*models.Order{},
	}
}

func newTestRepository(st *memStore) *repository.Repository {
	return &repository.Repository{
		Categories:  &fakeCategoryRepo{st: st},
		Notebooks:   &fakeNotebookRepo{st: st},
		Smartphones: &fakeSmartphoneRepo{st: st},
		Customers:   &fakeCustomerRepo{st: st},
		Carts:       &fakeCartRepo{st: st},
		CartItems:   &fakeCartItemRepo{st: st},
		Orders:      &fakeOrderRepo{st: st},
	}
}

// --- customers ---

type fakeCustomerRepo struct{ st *memStore }

func (r *fakeCustomerRepo) Create(_ context.Context, c *models.Customer) error {
	c.ID = uuid.New()
	r.st.customers = append(r.st.customers, c)
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	for _, c := range r.st.customers {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Customer, error) {
	for _, c := range r.st.customers {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) UpdateContact(_ context.Context, id uuid.UUID, phone, address string) error {
	for _, c := range r.st.customers {
		if c.ID == id {
			c.Phone, c.Address = phone, address
		}
	}
	return nil
}

// --- carts ---

type fakeCartRepo struct{ st *memStore }

func (r *fakeCartRepo) loadItems(cartID uuid.UUID) []models.CartItem {
	var out []models.CartItem
	for _, it := range r.st.items {
		if it.CartID == cartID {
			out = append(out, *it)
		}
	}
	return out
}

func (r *fakeCartRepo) Create(_ context.Context, c *models.Cart) error {
	c.ID = uuid.New()
	cp := *c
	r.st.carts[c.ID] = &cp
	return nil
}

func (r *fakeCartRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Cart, error) {
	c, ok := r.st.carts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = r.loadItems(id)
	return &cp, nil
}

func (r *fakeCartRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeCartRepo) GetActiveByOwner(_ context.Context, ownerID uuid.UUID) (*models.Cart, error) {
	for _, c := range r.st.carts {
		if c.OwnerID != nil && *c.OwnerID == ownerID && !c.InOrder {
			cp := *c
			cp.Items = r.loadItems(c.ID)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) UpdateTotals(_ context.Context, id uuid.UUID, totalProducts uint32, totalPrice decimal.Decimal) error {
	if c, ok := r.st.carts[id]; ok {
		c.TotalProducts, c.TotalPrice = totalProducts, totalPrice
	}
	return nil
}

func (r *fakeCartRepo) MarkInOrder(_ context.Context, id uuid.UUID) error {
	if c, ok := r.st.carts[id]; ok {
		c.InOrder = true
	}
	return nil
}

func (r *fakeCartRepo) SetOwner(_ context.Context, id, ownerID uuid.UUID) error {
	if c, ok := r.st.carts[id]; ok {
		owner := ownerID
		c.OwnerID = &owner
		c.ForAnonymousUser = false
	}
	return nil
}

func (r *fakeCartRepo) WithTx(_ context.Context, fn func(carts repository.CartRepo, items repository.CartItemRepo, orders repository.OrderRepo) error) error {
	return fn(r, &fakeCartItemRepo{st: r.st}, &fakeOrderRepo{st: r.st})
}

// --- cart items ---

type fakeCartItemRepo struct{ st *memStore }

func (r *fakeCartItemRepo) Create(_ context.Context, item *models.CartItem) error {
	item.ID = uuid.New()
	cp := *item
	r.st.items = append(r.st.items, &cp)
	return nil
}

func (r *fakeCartItemRepo) GetByCartAndProduct(_ context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID) (*models.CartItem, error) {
	for _, it := range r.st.items {
		if it.CartID == cartID && it.ProductKind == kind && it.ProductID == productID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCartItemRepo) ListByCart(_ context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, it := range r.st.items {
		if it.CartID == cartID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeCartItemRepo) UpdateAmounts(_ context.Context, id uuid.UUID, quantity uint32, unitPrice, totalPrice decimal.Decimal) error {
	for _, it := range r.st.items {
		if it.ID == id {
			it.Quantity, it.UnitPrice, it.TotalPrice = quantity, unitPrice, totalPrice
		}
	}
	return nil
}

func (r *fakeCartItemRepo) DeleteByCartAndProduct(_ context.Context, cartID uuid.UUID, kind models.ProductKind, productID uuid.UUID) (int64, error) {
	var kept []*models.CartItem
	var deleted int64
	for _, it := range r.st.items {
		if it.CartID == cartID && it.ProductKind == kind && it.ProductID == productID {
			deleted++
			continue
		}
		kept = append(kept, it)
	}
	r.st.items = kept
	return deleted, nil
}

func (r *fakeCartItemRepo) DeleteByCart(_ context.Context, cartID uuid.UUID) (int64, error) {
	var kept []*models.CartItem
	var deleted int64
	for _, it := range r.st.items {
		if it.CartID == cartID {
			deleted++
			continue
		}
		kept = append(kept, it)
	}
	r.st.items = kept
	return deleted, nil
}

// --- orders ---

type fakeOrderRepo struct{ st *memStore }

func (r *fakeOrderRepo) attachCart(o *models.Order) {
	if c, ok := r.st.carts[o.CartID]; ok {
		cp := *c
		cp.Items = (&fakeCartRepo{st: r.st}).loadItems(c.ID)
		o.Cart = &cp
	}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *models.Order) error {
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	cp := *o
	r.st.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	o, ok := r.st.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	r.attachCart(&cp)
	return &cp, nil
}

func (r *fakeOrderRepo) GetByIDForCustomer(ctx context.Context, id, customerID uuid.UUID) (*models.Order, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil || o == nil || o.CustomerID != customerID {
		return nil, err
	}
	return o, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.OrderStatus) error {
	if o, ok := r.st.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	var out []*models.Order
	for _, o := range r.st.orders {
		if f.CustomerID != nil && o.CustomerID != *f.CustomerID {
			continue
		}
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		cp := *o
		r.attachCart(&cp)
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ExistsByCart(_ context.Context, cartID uuid.UUID) (bool, error) {
	for _, o := range r.st.orders {
		if o.CartID == cartID {
			return true, nil
		}
	}
	return false, nil
}

// --- categories ---

type fakeCategoryRepo struct{ st *memStore }

func (r *fakeCategoryRepo) Create(_ context.Context, c *models.Category) error {
	c.ID = uuid.New()
	r.st.categories = append(r.st.categories, c)
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	for _, c := range r.st.categories {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range r.st.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]models.Category, error) {
	out := make([]models.Category, 0, len(r.st.categories))
	for _, c := range r.st.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) error {
	for _, c := range r.st.categories {
		if c.ID == id {
			if v, ok := fields["title"].(string); ok {
				c.Title = v
			}
			if v, ok := fields["slug"].(string); ok {
				c.Slug = v
			}
		}
	}
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for i, c := range r.st.categories {
		if c.ID == id {
			r.st.categories = append(r.st.categories[:i], r.st.categories[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) SlugTaken(_ context.Context, slug string, exceptID *uuid.UUID) (bool, error) {
	for _, c := range r.st.categories {
		if c.Slug == slug && (exceptID == nil || c.ID != *exceptID) {
			return true, nil
		}
	}
	return false, nil
}

// --- notebooks ---

type fakeNotebookRepo struct{ st *memStore }

func (r *fakeNotebookRepo) Create(_ context.Context, n *models.Notebook) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now().Add(time.Duration(len(r.st.notebooks)) * time.Millisecond)
	r.st.notebooks = append(r.st.notebooks, n)
	return nil
}

func (r *fakeNotebookRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	for _, n := range r.st.notebooks {
		if n.ID != id {
			continue
		}
		if v, ok := fields["title"].(string); ok {
			n.Title = v
		}
		if v, ok := fields["slug"].(string); ok {
			n.Slug = v
		}
		if v, ok := fields["description"].(string); ok {
			n.Description = v
		}
		if v, ok := fields["image_path"].(string); ok {
			n.ImagePath = v
		}
		if v, ok := fields["price"].(decimal.Decimal); ok {
			n.Price = v
		}
		if v, ok := fields["category_id"].(uuid.UUID); ok {
			n.CategoryID = v
		}
		if v, ok := fields["ram"].(string); ok {
			n.RAM = v
		}
	}
	return nil
}

func (r *fakeNotebookRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Notebook, error) {
	for _, n := range r.st.notebooks {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeNotebookRepo) GetBySlug(_ context.Context, slug string) (*models.Notebook, error) {
	for _, n := range r.st.notebooks {
		if n.Slug == slug {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeNotebookRepo) List(_ context.Context, f repository.ProductListFilter) ([]models.Notebook, int64, error) {
	var out []models.Notebook
	for _, n := range r.st.notebooks {
		if f.CategoryID != nil && n.CategoryID != *f.CategoryID {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(n.Title), strings.ToLower(f.Query)) {
			continue
		}
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotebookRepo) Latest(_ context.Context, limit int) ([]models.Notebook, error) {
	var out []models.Notebook
	for i := len(r.st.notebooks) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.st.notebooks[i])
	}
	return out, nil
}

func (r *fakeNotebookRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for i, n := range r.st.notebooks {
		if n.ID == id {
			r.st.notebooks = append(r.st.notebooks[:i], r.st.notebooks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotebookRepo) SlugTaken(_ context.Context, slug string, exceptID *uuid.UUID) (bool, error) {
	for _, n := range r.st.notebooks {
		if n.Slug == slug && (exceptID == nil || n.ID != *exceptID) {
			return true, nil
		}
	}
	return false, nil
}

// --- smartphones ---

type fakeSmartphoneRepo struct{ st *memStore }

func (r *fakeSmartphoneRepo) Create(_ context.Context, s *models.Smartphone) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now().Add(time.Duration(len(r.st.smartphones)) * time.Millisecond)
	r.st.smartphones = append(r.st.smartphones, s)
	return nil
}

func (r *fakeSmartphoneRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	for _, s := range r.st.smartphones {
		if s.ID != id {
			continue
		}
		if v, ok := fields["title"].(string); ok {
			s.Title = v
		}
		if v, ok := fields["slug"].(string); ok {
			s.Slug = v
		}
		if v, ok := fields["price"].(decimal.Decimal); ok {
			s.Price = v
		}
	}
	return nil
}

func (r *fakeSmartphoneRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Smartphone, error) {
	for _, s := range r.st.smartphones {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSmartphoneRepo) GetBySlug(_ context.Context, slug string) (*models.Smartphone, error) {
	for _, s := range r.st.smartphones {
		if s.Slug == slug {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSmartphoneRepo) List(_ context.Context, f repository.ProductListFilter) ([]models.Smartphone, int64, error) {
	var out []models.Smartphone
	for _, s := range r.st.smartphones {
		if f.CategoryID != nil && s.CategoryID != *f.CategoryID {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(s.Title), strings.ToLower(f.Query)) {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSmartphoneRepo) Latest(_ context.Context, limit int) ([]models.Smartphone, error) {
	var out []models.Smartphone
	for i := len(r.st.smartphones) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.st.smartphones[i])
	}
	return out, nil
}

func (r *fakeSmartphoneRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for i, s := range r.st.smartphones {
		if s.ID == id {
			r.st.smartphones = append(r.st.smartphones[:i], r.st.smartphones[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSmartphoneRepo) SlugTaken(_ context.Context, slug string, exceptID *uuid.UUID) (bool, error) {
	for _, s := range r.st.smartphones {
		if s.Slug == slug && (exceptID == nil || s.ID != *exceptID) {
			return true, nil
		}
	}
	return false, nil
}

// --- источник товаров для резолвера ---

type stubProduct struct {
	id    uuid.UUID
	kind  models.ProductKind
	slug  string
	price decimal.Decimal
}

func (p stubProduct) GetID() uuid.UUID          { return p.id }
func (p stubProduct) Kind() models.ProductKind  { return p.kind }
func (p stubProduct) GetCategoryID() uuid.UUID  { return uuid.Nil }
func (p stubProduct) GetTitle() string          { return p.slug }
func (p stubProduct) GetSlug() string           { return p.slug }
func (p stubProduct) GetPrice() decimal.Decimal { return p.price }
func (p stubProduct) GetImagePath() string      { return p.slug + ".png" }

type stubSource struct {
	kind models.ProductKind
	list []*stubProduct
}

func newStubSource(kind models.ProductKind) *stubSource {
	return &stubSource{kind: kind}
}

func (s *stubSource) add(slug, price string) uuid.UUID {
	p := &stubProduct{id: uuid.New(), kind: s.kind, slug: slug, price: decimal.RequireFromString(price)}
	s.list = append(s.list, p)
	return p.id
}

func (s *stubSource) setPrice(id uuid.UUID, price string) {
	for _, p := range s.list {
		if p.id == id {
			p.price = decimal.RequireFromString(price)
		}
	}
}

func (s *stubSource) Kind() models.ProductKind { return s.kind }

func (s *stubSource) GetByID(_ context.Context, id uuid.UUID) (models.Product, error) {
	for _, p := range s.list {
		if p.id == id {
			return *p, nil
		}
	}
	return nil, nil
}

func (s *stubSource) GetBySlug(_ context.Context, slug string) (models.Product, error) {
	for _, p := range s.list {
		if p.slug == slug {
			return *p, nil
		}
	}
	return nil, nil
}

func (s *stubSource) Latest(_ context.Context, limit int) ([]models.Product, error) {
	var out []models.Product
	for i := len(s.list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *s.list[i])
	}
	return out, nil
}

// --- шина событий ---

type fakeBus struct {
	placed        []service.OrderPlacedEvent
	statusChanged []service.OrderStatusChangedEvent
}

func (b *fakeBus) PublishOrderPlaced(_ context.Context, e service.OrderPlacedEvent) error {
	b.placed = append(b.placed, e)
	return nil
}

func (b *fakeBus) PublishOrderStatusChanged(_ context.Context, e service.OrderStatusChangedEvent) error {
	b.statusChanged = append(b.statusChanged, e)
	return nil
}
