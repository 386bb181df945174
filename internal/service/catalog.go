package service

import (
	"context"

	"shop-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Границы допустимого изображения товара. Нарушение отклоняется,
// автоматической коррекции нет.
const (
	MinImageDimension = 200
	MaxImageDimension = 2000
	MaxImageBytes     = 3 << 20 // 3 MiB
)

type ImageUpload struct {
	Filename string
	Data     []byte
}

type CategoryInput struct {
	Title string
	Slug  string
}

type ProductInput struct {
	CategoryID  uuid.UUID
	Title       string
	Slug        string
	Description string
	Price       decimal.Decimal
	Image       ImageUpload
}

type NotebookInput struct {
	ProductInput

	Diagonal          string
	DisplayType       string
	ProcessorFreq     string
	RAM               string
	Video             string
	TimeWithoutCharge string
}

type SmartphoneInput struct {
	ProductInput

	Diagonal    string
	DisplayType string
	Resolution  string
	AccumVolume string
	RAM         string
	SD          bool
	SDVolumeMax string
	MainCamMP   string
	FrontCamMP  string
}

// ProductPatch — частичное обновление общих полей; nil-поле не трогается.
// Новая картинка проходит ту же валидацию, что и при создании.
type ProductPatch struct {
	CategoryID  *uuid.UUID
	Title       *string
	Slug        *string
	Description *string
	Price       *decimal.Decimal
	Image       *ImageUpload
	Specs       map[string]string // вариантные поля, ключи в snake_case колонок
}

type ProductListInput struct {
	CategorySlug string
	Query        string
	Limit        int
	Offset       int
}

type CategoryDetail struct {
	Category models.Category
	Products []models.Product
}

type CatalogService interface {
	CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, slug string) (*CategoryDetail, error)

	CreateNotebook(ctx context.Context, in NotebookInput) (*models.Notebook, error)
	CreateSmartphone(ctx context.Context, in SmartphoneInput) (*models.Smartphone, error)
	UpdateProduct(ctx context.Context, kind models.ProductKind, id uuid.UUID, patch ProductPatch) (models.Product, error)
	DeleteProduct(ctx context.Context, kind models.ProductKind, id uuid.UUID) (bool, error)
	GetProduct(ctx context.Context, kind models.ProductKind, slug string) (models.Product, error)
	GetProductByID(ctx context.Context, kind models.ProductKind, id uuid.UUID) (models.Product, error)

	ListNotebooks(ctx context.Context, in ProductListInput) ([]models.Notebook, int64, error)
	ListSmartphones(ctx context.Context, in ProductListInput) ([]models.Smartphone, int64, error)

	// LatestProducts собирает свежие товары по всем зарегистрированным
	// вариантам; respectTo поднимает указанный вариант в начало выдачи.
	LatestProducts(ctx context.Context, limit int, respectTo models.ProductKind) ([]models.Product, error)
}
