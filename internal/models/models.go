package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductKind — тег варианта товара. Новые варианты регистрируются в резолвере,
// корзина и заказы про конкретные типы ничего не знают.
type ProductKind string

const (
	KindNotebook   ProductKind = "notebook"
	KindSmartphone ProductKind = "smartphone"
)

// Product — набор возможностей, который нужен корзине и заказам от любого
// варианта товара.
type Product interface {
	GetID() uuid.UUID
	Kind() ProductKind
	GetCategoryID() uuid.UUID
	GetTitle() string
	GetSlug() string
	GetPrice() decimal.Decimal
	GetImagePath() string
}

type Category struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title string    `gorm:"type:text;not null"`
	Slug  string    `gorm:"type:text;not null;uniqueIndex"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (Category) TableName() string { return "categories" }

// ProductBase — общие поля всех вариантов, встраиваются в таблицу каждого.
type ProductBase struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:text;not null"`
	Slug        string          `gorm:"type:text;not null;uniqueIndex"`
	ImagePath   string          `gorm:"type:text;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(9,2);not null"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (p ProductBase) GetID() uuid.UUID          { return p.ID }
func (p ProductBase) GetCategoryID() uuid.UUID  { return p.CategoryID }
func (p ProductBase) GetTitle() string          { return p.Title }
func (p ProductBase) GetSlug() string           { return p.Slug }
func (p ProductBase) GetPrice() decimal.Decimal { return p.Price }
func (p ProductBase) GetImagePath() string      { return p.ImagePath }

type Notebook struct {
	ProductBase `gorm:"embedded"`

	Diagonal          string `gorm:"type:text;not null"`
	DisplayType       string `gorm:"type:text;not null"`
	ProcessorFreq     string `gorm:"type:text;not null"`
	RAM               string `gorm:"type:text;not null"`
	Video             string `gorm:"type:text;not null"`
	TimeWithoutCharge string `gorm:"type:text;not null"`
}

func (Notebook) TableName() string { return "notebooks" }
func (Notebook) Kind() ProductKind { return KindNotebook }

type Smartphone struct {
	ProductBase `gorm:"embedded"`

	Diagonal    string `gorm:"type:text;not null"`
	DisplayType string `gorm:"type:text;not null"`
	Resolution  string `gorm:"type:text;not null"`
	AccumVolume string `gorm:"type:text;not null"`
	RAM         string `gorm:"type:text;not null"`
	SD          bool   `gorm:"not null;default:false"`
	SDVolumeMax string `gorm:"type:text"`
	MainCamMP   string `gorm:"type:text;not null"`
	FrontCamMP  string `gorm:"type:text;not null"`
}

func (Smartphone) TableName() string { return "smartphones" }
func (Smartphone) Kind() ProductKind { return KindSmartphone }

type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Phone   string    `gorm:"type:text"`
	Address string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Customer) TableName() string { return "customers" }

type Cart struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID          *uuid.UUID      `gorm:"type:uuid;index"` // nil у анонимной корзины
	TotalProducts    uint32          `gorm:"not null;default:0"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(9,2);not null;default:0"`
	InOrder          bool            `gorm:"not null;default:false;index"`
	ForAnonymousUser bool            `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (Cart) TableName() string { return "carts" }

// CartItem ссылается на товар обобщённо, парой (product_kind, product_id).
// total_price — производное поле: quantity × unit_price, пересчитывается
// при каждой мутации.
type CartItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CartID      uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:ux_cart_items_cart_product"`
	ProductKind ProductKind     `gorm:"type:text;not null;uniqueIndex:ux_cart_items_cart_product"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_cart_product"`
	Quantity    uint32          `gorm:"type:int;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(9,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(9,2);not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (CartItem) TableName() string { return "cart_items" }

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
)

type BuyingType string

const (
	BuyingTypeSelf     BuyingType = "self"
	BuyingTypeDelivery BuyingType = "delivery"
)

// Order замораживает корзину на момент оформления: корзина помечается
// in_order и больше не мутирует, заказ ссылается на неё напрямую.
type Order struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID   `gorm:"type:uuid;not null;index"`
	CartID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	FirstName  string      `gorm:"type:text;not null"`
	LastName   string      `gorm:"type:text;not null"`
	Phone      string      `gorm:"type:text;not null"`
	Address    string      `gorm:"type:text"`
	Status     OrderStatus `gorm:"type:text;not null;default:'new';index"`
	BuyingType BuyingType  `gorm:"type:text;not null;default:'self'"`
	Comment    string      `gorm:"type:text"`
	OrderDate  time.Time   `gorm:"type:date;not null"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Cart *Cart `gorm:"foreignKey:CartID"`
}

func (Order) TableName() string { return "orders" }
