package http

import (
	"time"

	"shop-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read-only проекции для JSON-ответов; доменные модели наружу не отдаём.

type categoryView struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

func toCategoryView(c models.Category) categoryView {
	return categoryView{ID: c.ID, Title: c.Title, Slug: c.Slug}
}

type productView struct {
	ID          uuid.UUID         `json:"id"`
	Kind        string            `json:"kind"`
	CategoryID  uuid.UUID         `json:"category_id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	Image       string            `json:"image"`
	Specs       map[string]string `json:"specs,omitempty"`
}

func toProductView(p models.Product) productView {
	v := productView{
		ID:         p.GetID(),
		Kind:       string(p.Kind()),
		CategoryID: p.GetCategoryID(),
		Title:      p.GetTitle(),
		Slug:       p.GetSlug(),
		Price:      p.GetPrice(),
		Image:      p.GetImagePath(),
	}

	switch t := p.(type) {
	case *models.Notebook:
		v.Description = t.Description
		v.Specs = notebookSpecs(t)
	case models.Notebook:
		v.Description = t.Description
		v.Specs = notebookSpecs(&t)
	case *models.Smartphone:
		v.Description = t.Description
		v.Specs = smartphoneSpecs(t)
	case models.Smartphone:
		v.Description = t.Description
		v.Specs = smartphoneSpecs(&t)
	}
	return v
}

func notebookSpecs(n *models.Notebook) map[string]string {
	return map[string]string{
		"diagonal":            n.Diagonal,
		"display_type":        n.DisplayType,
		"processor_freq":      n.ProcessorFreq,
		"ram":                 n.RAM,
		"video":               n.Video,
		"time_without_charge": n.TimeWithoutCharge,
	}
}

func smartphoneSpecs(s *models.Smartphone) map[string]string {
	specs := map[string]string{
		"diagonal":     s.Diagonal,
		"display_type": s.DisplayType,
		"resolution":   s.Resolution,
		"accum_volume": s.AccumVolume,
		"ram":          s.RAM,
		"main_cam_mp":  s.MainCamMP,
		"front_cam_mp": s.FrontCamMP,
	}
	if s.SD {
		specs["sd"] = "true"
		specs["sd_volume_max"] = s.SDVolumeMax
	} else {
		specs["sd"] = "false"
	}
	return specs
}

type cartItemView struct {
	ProductKind string          `json:"product_kind"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    uint32          `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type cartView struct {
	ID               uuid.UUID       `json:"id"`
	OwnerID          *uuid.UUID      `json:"owner_id,omitempty"`
	TotalProducts    uint32          `json:"total_products"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	InOrder          bool            `json:"in_order"`
	ForAnonymousUser bool            `json:"for_anonymous_user"`
	Items            []cartItemView  `json:"items"`
}

func toCartView(c *models.Cart) cartView {
	items := make([]cartItemView, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemView{
			ProductKind: string(it.ProductKind),
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return cartView{
		ID:               c.ID,
		OwnerID:          c.OwnerID,
		TotalProducts:    c.TotalProducts,
		TotalPrice:       c.TotalPrice,
		InOrder:          c.InOrder,
		ForAnonymousUser: c.ForAnonymousUser,
		Items:            items,
	}
}

type orderView struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	CartID     uuid.UUID `json:"cart_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address,omitempty"`
	Status     string    `json:"status"`
	BuyingType string    `json:"buying_type"`
	Comment    string    `json:"comment,omitempty"`
	OrderDate  string    `json:"order_date"`
	CreatedAt  time.Time `json:"created_at"`
	Cart       *cartView `json:"cart,omitempty"`
}

func toOrderView(o *models.Order) orderView {
	v := orderView{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		CartID:     o.CartID,
		FirstName:  o.FirstName,
		LastName:   o.LastName,
		Phone:      o.Phone,
		Address:    o.Address,
		Status:     string(o.Status),
		BuyingType: string(o.BuyingType),
		Comment:    o.Comment,
		OrderDate:  o.OrderDate.Format("2006-01-02"),
		CreatedAt:  o.CreatedAt,
	}
	if o.Cart != nil {
		cv := toCartView(o.Cart)
		v.Cart = &cv
	}
	return v
}

type customerView struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	Phone   string    `json:"phone,omitempty"`
	Address string    `json:"address,omitempty"`
}

func toCustomerView(c *models.Customer) customerView {
	return customerView{ID: c.ID, UserID: c.UserID, Phone: c.Phone, Address: c.Address}
}
