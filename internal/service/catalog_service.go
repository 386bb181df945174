package service

import (
	"context"
	"strings"

	"shop-service/internal/models"
	"shop-service/internal/repository"
	"shop-service/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type catalogService struct {
	repo     *repository.Repository
	resolver *Resolver
	images   storage.ImageStore
	log      *zap.Logger
}

func NewCatalogService(repo *repository.Repository, resolver *Resolver, images storage.ImageStore, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:     repo,
		resolver: resolver,
		images:   images,
		log:      log,
	}
}

// validateImage проверяет размер файла и разрешение до записи блоба.
func validateImage(img ImageUpload) error {
	if len(img.Data) == 0 {
		return ErrImageInvalid
	}
	if len(img.Data) > MaxImageBytes {
		return ErrImageTooLarge
	}
	w, h, err := storage.Dimensions(img.Data)
	if err != nil {
		return ErrImageInvalid
	}
	if w < MinImageDimension || h < MinImageDimension ||
		w > MaxImageDimension || h > MaxImageDimension {
		return ErrImageResolution
	}
	return nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func (s *catalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	slug := normalizeSlug(in.Slug)
	taken, err := s.repo.Categories.SlugTaken(ctx, slug, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	cat := &models.Category{Title: in.Title, Slug: slug}
	if err := s.repo.Categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	s.log.Info("Категория создана", zap.String("slug", cat.Slug))
	return cat, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	cat, err := s.repo.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	slug := normalizeSlug(in.Slug)
	taken, err := s.repo.Categories.SlugTaken(ctx, slug, &id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	if err := s.repo.Categories.Update(ctx, id, map[string]any{"title": in.Title, "slug": slug}); err != nil {
		return nil, err
	}
	return s.repo.Categories.GetByID(ctx, id)
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Categories.Delete(ctx, id)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.Categories.List(ctx)
}

func (s *catalogService) GetCategory(ctx context.Context, slug string) (*CategoryDetail, error) {
	cat, err := s.repo.Categories.GetBySlug(ctx, normalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	// товары категории по всем вариантам
	f := repository.ProductListFilter{CategoryID: &cat.ID, Limit: 100}
	notebooks, _, err := s.repo.Notebooks.List(ctx, f)
	if err != nil {
		return nil, err
	}
	smartphones, _, err := s.repo.Smartphones.List(ctx, f)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(notebooks)+len(smartphones))
	for i := range notebooks {
		products = append(products, notebooks[i])
	}
	for i := range smartphones {
		products = append(products, smartphones[i])
	}

	return &CategoryDetail{Category: *cat, Products: products}, nil
}

func (s *catalogService) prepareProduct(ctx context.Context, in ProductInput, slugTaken func(context.Context, string, *uuid.UUID) (bool, error)) (string, string, error) {
	cat, err := s.repo.Categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return "", "", err
	}
	if cat == nil {
		return "", "", ErrCategoryNotFound
	}

	slug := normalizeSlug(in.Slug)
	taken, err := slugTaken(ctx, slug, nil)
	if err != nil {
		return "", "", err
	}
	if taken {
		return "", "", ErrSlugTaken
	}

	if err := validateImage(in.Image); err != nil {
		return "", "", err
	}
	imagePath, err := s.images.Store(ctx, in.Image.Filename, in.Image.Data)
	if err != nil {
		return "", "", err
	}
	return slug, imagePath, nil
}

func (s *catalogService) CreateNotebook(ctx context.Context, in NotebookInput) (*models.Notebook, error) {
	slug, imagePath, err := s.prepareProduct(ctx, in.ProductInput, s.repo.Notebooks.SlugTaken)
	if err != nil {
		return nil, err
	}

	n := &models.Notebook{
		ProductBase: models.ProductBase{
			CategoryID:  in.CategoryID,
			Title:       in.Title,
			Slug:        slug,
			ImagePath:   imagePath,
			Description: in.Description,
			Price:       in.Price,
		},
		Diagonal:          in.Diagonal,
		DisplayType:       in.DisplayType,
		ProcessorFreq:     in.ProcessorFreq,
		RAM:               in.RAM,
		Video:             in.Video,
		TimeWithoutCharge: in.TimeWithoutCharge,
	}
	if err := s.repo.Notebooks.Create(ctx, n); err != nil {
		return nil, err
	}
	s.log.Info("Товар создан", zap.String("kind", string(models.KindNotebook)), zap.String("slug", n.Slug))
	return n, nil
}

func (s *catalogService) CreateSmartphone(ctx context.Context, in SmartphoneInput) (*models.Smartphone, error) {
	slug, imagePath, err := s.prepareProduct(ctx, in.ProductInput, s.repo.Smartphones.SlugTaken)
	if err != nil {
		return nil, err
	}

	sp := &models.Smartphone{
		ProductBase: models.ProductBase{
			CategoryID:  in.CategoryID,
			Title:       in.Title,
			Slug:        slug,
			ImagePath:   imagePath,
			Description: in.Description,
			Price:       in.Price,
		},
		Diagonal:    in.Diagonal,
		DisplayType: in.DisplayType,
		Resolution:  in.Resolution,
		AccumVolume: in.AccumVolume,
		RAM:         in.RAM,
		SD:          in.SD,
		SDVolumeMax: in.SDVolumeMax,
		MainCamMP:   in.MainCamMP,
		FrontCamMP:  in.FrontCamMP,
	}
	if err := s.repo.Smartphones.Create(ctx, sp); err != nil {
		return nil, err
	}
	s.log.Info("Товар создан", zap.String("kind", string(models.KindSmartphone)), zap.String("slug", sp.Slug))
	return sp, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, kind models.ProductKind, id uuid.UUID, patch ProductPatch) (models.Product, error) {
	var (
		updateFields func(context.Context, uuid.UUID, map[string]any) error
		slugTaken    func(context.Context, string, *uuid.UUID) (bool, error)
	)
	switch kind {
	case models.KindNotebook:
		updateFields = s.repo.Notebooks.UpdateFields
		slugTaken = s.repo.Notebooks.SlugTaken
	case models.KindSmartphone:
		updateFields = s.repo.Smartphones.UpdateFields
		slugTaken = s.repo.Smartphones.SlugTaken
	default:
		return nil, ErrUnknownKind
	}

	if _, err := s.resolver.Resolve(ctx, kind, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if patch.CategoryID != nil {
		cat, err := s.repo.Categories.GetByID(ctx, *patch.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, ErrCategoryNotFound
		}
		fields["category_id"] = *patch.CategoryID
	}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Slug != nil {
		slug := normalizeSlug(*patch.Slug)
		taken, err := slugTaken(ctx, slug, &id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugTaken
		}
		fields["slug"] = slug
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.Image != nil {
		if err := validateImage(*patch.Image); err != nil {
			return nil, err
		}
		imagePath, err := s.images.Store(ctx, patch.Image.Filename, patch.Image.Data)
		if err != nil {
			return nil, err
		}
		fields["image_path"] = imagePath
	}
	for col, val := range patch.Specs {
		fields[col] = val
	}

	if err := updateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.resolver.Resolve(ctx, kind, id)
}

func (s *catalogService) DeleteProduct(ctx context.Context, kind models.ProductKind, id uuid.UUID) (bool, error) {
	switch kind {
	case models.KindNotebook:
		return s.repo.Notebooks.Delete(ctx, id)
	case models.KindSmartphone:
		return s.repo.Smartphones.Delete(ctx, id)
	default:
		return false, ErrUnknownKind
	}
}

func (s *catalogService) GetProduct(ctx context.Context, kind models.ProductKind, slug string) (models.Product, error) {
	return s.resolver.ResolveBySlug(ctx, kind, normalizeSlug(slug))
}

func (s *catalogService) GetProductByID(ctx context.Context, kind models.ProductKind, id uuid.UUID) (models.Product, error) {
	return s.resolver.Resolve(ctx, kind, id)
}

func (s *catalogService) ListNotebooks(ctx context.Context, in ProductListInput) ([]models.Notebook, int64, error) {
	f, err := s.listFilter(ctx, in)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.Notebooks.List(ctx, f)
}

func (s *catalogService) ListSmartphones(ctx context.Context, in ProductListInput) ([]models.Smartphone, int64, error) {
	f, err := s.listFilter(ctx, in)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.Smartphones.List(ctx, f)
}

func (s *catalogService) listFilter(ctx context.Context, in ProductListInput) (repository.ProductListFilter, error) {
	f := repository.ProductListFilter{Query: in.Query, Limit: in.Limit, Offset: in.Offset}
	if in.CategorySlug != "" {
		cat, err := s.repo.Categories.GetBySlug(ctx, normalizeSlug(in.CategorySlug))
		if err != nil {
			return f, err
		}
		if cat == nil {
			return f, ErrCategoryNotFound
		}
		f.CategoryID = &cat.ID
	}
	return f, nil
}

func (s *catalogService) LatestProducts(ctx context.Context, limit int, respectTo models.ProductKind) ([]models.Product, error) {
	if limit <= 0 {
		limit = 6
	}

	kinds := s.resolver.Kinds()
	if respectTo != "" {
		if _, err := s.resolver.Source(respectTo); err != nil {
			return nil, err
		}
		// приоритетный вариант идёт первым
		reordered := []models.ProductKind{respectTo}
		for _, k := range kinds {
			if k != respectTo {
				reordered = append(reordered, k)
			}
		}
		kinds = reordered
	}

	var out []models.Product
	for _, kind := range kinds {
		src, err := s.resolver.Source(kind)
		if err != nil {
			return nil, err
		}
		latest, err := src.Latest(ctx, limit)
		if err != nil {
			return nil, err
		}
		out = append(out, latest...)
		if len(out) >= limit {
			return out[:limit], nil
		}
	}
	return out, nil
}
