package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"shop-service/internal/models"
	"shop-service/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type memImageStore struct{ stored int }

func (s *memImageStore) Store(_ context.Context, filename string, _ []byte) (string, error) {
	s.stored++
	return "stored_" + filename, nil
}

type catalogEnv struct {
	svc    service.CatalogService
	st     *memStore
	images *memImageStore
	phones *stubSource
}

func newCatalogEnv() *catalogEnv {
	st := newMemStore()
	repo := newTestRepository(st)
	images := &memImageStore{}
	phones := newStubSource(models.KindSmartphone)
	resolver := service.NewResolver(
		service.NewNotebookSource(repo.Notebooks),
		phones,
	)
	return &catalogEnv{
		svc:    service.NewCatalogService(repo, resolver, images, zap.NewNop()),
		st:     st,
		images: images,
		phones: phones,
	}
}

func (e *catalogEnv) category(t *testing.T, title, slug string) *models.Category {
	t.Helper()
	cat, err := e.svc.CreateCategory(context.Background(), service.CategoryInput{Title: title, Slug: slug})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	return cat
}

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func notebookInput(cat *models.Category, slug string, img []byte) service.NotebookInput {
	return service.NotebookInput{
		ProductInput: service.ProductInput{
			CategoryID:  cat.ID,
			Title:       "Ноутбук",
			Slug:        slug,
			Description: "описание",
			Price:       decimal.RequireFromString("50000.00"),
			Image:       service.ImageUpload{Filename: slug + ".png", Data: img},
		},
		Diagonal:          "15.6",
		DisplayType:       "IPS",
		ProcessorFreq:     "2.6 GHz",
		RAM:               "16 GB",
		Video:             "RTX 4060",
		TimeWithoutCharge: "8 h",
	}
}

func TestCatalogService_CreateNotebook(t *testing.T) {
	env := newCatalogEnv()
	ctx := context.Background()
	cat := env.category(t, "Ноутбуки", "notebooks")

	n, err := env.svc.CreateNotebook(ctx, notebookInput(cat, "MacBook-Pro", makePNG(t, 800, 600)))
	if err != nil {
		t.Fatalf("CreateNotebook: %v", err)
	}
	if n.Slug != "macbook-pro" {
		t.Fatalf("slug must be normalized, got %q", n.Slug)
	}
	if n.ImagePath != "stored_MacBook-Pro.png" {
		t.Fatalf("image not stored: %q", n.ImagePath)
	}
	if env.images.stored != 1 {
		t.Fatalf("expected 1 stored image got %d", env.images.stored)
	}

	got, err := env.svc.GetProduct(ctx, models.KindNotebook, "MacBook-Pro")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.GetID() != n.ID {
		t.Fatalf("GetProduct returned wrong product")
	}

	// занятый slug отклоняется
	if _, err := env.svc.CreateNotebook(ctx, notebookInput(cat, "macbook-pro", makePNG(t, 800, 600))); !errors.Is(err, service.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken got %v", err)
	}
}

func TestCatalogService_ImageValidation(t *testing.T) {
	env := newCatalogEnv()
	ctx := context.Background()
	cat := env.category(t, "Ноутбуки", "notebooks")

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"too narrow", makePNG(t, 199, 500), service.ErrImageResolution},
		{"too short", makePNG(t, 500, 199), service.ErrImageResolution},
		{"too wide", makePNG(t, 2001, 500), service.ErrImageResolution},
		{"min bound ok", makePNG(t, 200, 200), nil},
		{"not an image", []byte("definitely not a png"), service.ErrImageInvalid},
		{"empty", nil, service.ErrImageInvalid},
		{"oversized", make([]byte, service.MaxImageBytes+1), service.ErrImageTooLarge},
	}
	for i, tc := range cases {
		slug := "nb-" + uuid.NewString()[:8]
		_, err := env.svc.CreateNotebook(ctx, notebookInput(cat, slug, tc.data))
		if tc.want == nil {
			if err != nil {
				t.Fatalf("case %d (%s): unexpected error %v", i, tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("case %d (%s): expected %v got %v", i, tc.name, tc.want, err)
		}
	}
}

func TestCatalogService_CreateNotebook_CategoryMissing(t *testing.T) {
	env := newCatalogEnv()
	missing := &models.Category{ID: uuid.New()}

	_, err := env.svc.CreateNotebook(context.Background(), notebookInput(missing, "nb", makePNG(t, 300, 300)))
	if !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound got %v", err)
	}
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	env := newCatalogEnv()
	ctx := context.Background()
	cat := env.category(t, "Ноутбуки", "notebooks")

	n, err := env.svc.CreateNotebook(ctx, notebookInput(cat, "thinkpad", makePNG(t, 640, 480)))
	if err != nil {
		t.Fatalf("CreateNotebook: %v", err)
	}

	price := decimal.RequireFromString("44999.90")
	ram := "32 GB"
	got, err := env.svc.UpdateProduct(ctx, models.KindNotebook, n.ID, service.ProductPatch{
		Price: &price,
		Specs: map[string]string{"ram": ram},
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if !got.GetPrice().Equal(price) {
		t.Fatalf("price not updated: %s", got.GetPrice())
	}
	if nb, ok := got.(*models.Notebook); !ok || nb.RAM != ram {
		t.Fatalf("spec field not updated: %+v", got)
	}

	if _, err := env.svc.UpdateProduct(ctx, models.ProductKind("fridge"), n.ID, service.ProductPatch{}); !errors.Is(err, service.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind got %v", err)
	}
	if _, err := env.svc.UpdateProduct(ctx, models.KindNotebook, uuid.New(), service.ProductPatch{}); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound got %v", err)
	}
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	env := newCatalogEnv()
	ctx := context.Background()
	cat := env.category(t, "Ноутбуки", "notebooks")

	n, err := env.svc.CreateNotebook(ctx, notebookInput(cat, "asus", makePNG(t, 300, 300)))
	if err != nil {
		t.Fatalf("CreateNotebook: %v", err)
	}

	deleted, err := env.svc.DeleteProduct(ctx, models.KindNotebook, n.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteProduct: deleted=%v err=%v", deleted, err)
	}
	if _, err := env.svc.GetProduct(ctx, models.KindNotebook, "asus"); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound got %v", err)
	}
}

func TestCatalogService_GetCategory(t *testing.T) {
	env := newCatalogEnv()
	ctx := context.Background()
	cat := env.category(t, "Ноутбуки", "notebooks")

	if _, err := env.svc.CreateNotebook(ctx, notebookInput(cat, "dell", makePNG(t, 300, 300))); err != nil {
		t.Fatalf("CreateNotebook: %v", err)
	}

	detail, err := env.svc.GetCategory(ctx, "notebooks")
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if len(detail.Products) != 1 || detail.Products[0].GetSlug() != "dell" {
		t.Fatalf("category products mismatch: %+v", detail.Products)
	}

	if _, err := env.svc.GetCategory(ctx, "no-such"); !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound got %v", err)
	}
}

func TestCatalogService_LatestProducts_RespectTo(t *testing.T) {
	env := newCatalogEnv()
	ctx := context.Background()
	cat := env.category(t, "Техника", "tech")

	if _, err := env.svc.CreateNotebook(ctx, notebookInput(cat, "hp", makePNG(t, 300, 300))); err != nil {
		t.Fatalf("CreateNotebook: %v", err)
	}
	env.phones.add("iphone", "99990.00")

	// без respect_to первым идёт вариант, зарегистрированный раньше
	out, err := env.svc.LatestProducts(ctx, 10, "")
	if err != nil {
		t.Fatalf("LatestProducts: %v", err)
	}
	if len(out) != 2 || out[0].Kind() != models.KindNotebook {
		t.Fatalf("default order mismatch: %+v", out)
	}

	// respect_to поднимает указанный вариант в начало
	out, err = env.svc.LatestProducts(ctx, 10, models.KindSmartphone)
	if err != nil {
		t.Fatalf("LatestProducts respect_to: %v", err)
	}
	if out[0].Kind() != models.KindSmartphone {
		t.Fatalf("respect_to ignored: first kind %s", out[0].Kind())
	}

	if _, err := env.svc.LatestProducts(ctx, 10, models.ProductKind("fridge")); !errors.Is(err, service.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind got %v", err)
	}
}
