package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"shop-service/internal/cache"
	"shop-service/internal/models"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	svc      service.CatalogService
	cache    *cache.RedisClient // nil — кэш выключен
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewCatalogHandler(svc service.CatalogService, rc *cache.RedisClient, cacheTTL time.Duration, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, cache: rc, cacheTTL: cacheTTL, log: log}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	out := make([]categoryView, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoryView(cat))
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	detail, err := h.svc.GetCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	products := make([]productView, 0, len(detail.Products))
	for _, p := range detail.Products {
		products = append(products, toProductView(p))
	}
	c.JSON(http.StatusOK, gin.H{
		"category": toCategoryView(detail.Category),
		"products": products,
	})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	kind := models.ProductKind(c.Param("kind"))
	slug := c.Param("slug")
	ctx := c.Request.Context()

	if h.cache != nil {
		if data, err := h.cache.GetProduct(ctx, kind, slug); err == nil && len(data) > 0 {
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
	}

	p, err := h.svc.GetProduct(ctx, kind, slug)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	view := toProductView(p)
	if h.cache != nil {
		if data, err := json.Marshal(view); err == nil {
			if err := h.cache.SetProduct(ctx, kind, slug, data, h.cacheTTL); err != nil {
				h.log.Warn("Не удалось закэшировать товар", zap.Error(err))
			}
		}
	}
	c.JSON(http.StatusOK, view)
}

func (h *CatalogHandler) LatestProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	respectTo := models.ProductKind(c.Query("respect_to"))

	products, err := h.svc.LatestProducts(c.Request.Context(), limit, respectTo)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

type categoryInput struct {
	Title string `json:"title" binding:"required"`
	Slug  string `json:"slug" binding:"required"`
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	cat, err := h.svc.CreateCategory(c.Request.Context(), service.CategoryInput{Title: in.Title, Slug: in.Slug})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryView(*cat))
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	cat, err := h.svc.UpdateCategory(c.Request.Context(), id, service.CategoryInput{Title: in.Title, Slug: in.Slug})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryView(*cat))
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}
	deleted, err := h.svc.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// readImage вытаскивает файл из multipart-формы. Лимит на чтение чуть выше
// валидационного, чтобы сервис увидел превышение и ответил своей ошибкой.
func readImage(c *gin.Context) (service.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return service.ImageUpload{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return service.ImageUpload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxImageBytes+1))
	if err != nil {
		return service.ImageUpload{}, err
	}
	return service.ImageUpload{Filename: fh.Filename, Data: data}, nil
}

func productInputFromForm(c *gin.Context) (service.ProductInput, error) {
	categoryID, err := uuid.Parse(c.PostForm("category_id"))
	if err != nil {
		return service.ProductInput{}, err
	}
	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		return service.ProductInput{}, err
	}
	img, err := readImage(c)
	if err != nil {
		return service.ProductInput{}, err
	}
	return service.ProductInput{
		CategoryID:  categoryID,
		Title:       c.PostForm("title"),
		Slug:        c.PostForm("slug"),
		Description: c.PostForm("description"),
		Price:       price,
		Image:       img,
	}, nil
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	kind := models.ProductKind(c.Param("kind"))

	base, err := productInputFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	var (
		product models.Product
		svcErr  error
	)
	switch kind {
	case models.KindNotebook:
		product, svcErr = h.svc.CreateNotebook(c.Request.Context(), service.NotebookInput{
			ProductInput:      base,
			Diagonal:          c.PostForm("diagonal"),
			DisplayType:       c.PostForm("display_type"),
			ProcessorFreq:     c.PostForm("processor_freq"),
			RAM:               c.PostForm("ram"),
			Video:             c.PostForm("video"),
			TimeWithoutCharge: c.PostForm("time_without_charge"),
		})
	case models.KindSmartphone:
		product, svcErr = h.svc.CreateSmartphone(c.Request.Context(), service.SmartphoneInput{
			ProductInput: base,
			Diagonal:     c.PostForm("diagonal"),
			DisplayType:  c.PostForm("display_type"),
			Resolution:   c.PostForm("resolution"),
			AccumVolume:  c.PostForm("accum_volume"),
			RAM:          c.PostForm("ram"),
			SD:           c.PostForm("sd") == "true",
			SDVolumeMax:  c.PostForm("sd_volume_max"),
			MainCamMP:    c.PostForm("main_cam_mp"),
			FrontCamMP:   c.PostForm("front_cam_mp"),
		})
	default:
		abortWithServiceError(c, service.ErrUnknownKind)
		return
	}
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, toProductView(product))
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	kind := models.ProductKind(c.Param("kind"))
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	patch := service.ProductPatch{Specs: map[string]string{}}

	setIfPresent := func(field string, dst **string) {
		if v, ok := c.GetPostForm(field); ok {
			val := v
			*dst = &val
		}
	}
	setIfPresent("title", &patch.Title)
	setIfPresent("slug", &patch.Slug)
	setIfPresent("description", &patch.Description)

	if v, ok := c.GetPostForm("category_id"); ok {
		catID, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		patch.CategoryID = &catID
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		patch.Price = &price
	}
	for _, field := range specFormFields(kind) {
		if v, ok := c.GetPostForm(field); ok {
			patch.Specs[field] = v
		}
	}
	if _, err := c.FormFile("image"); err == nil {
		img, err := readImage(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image"})
			return
		}
		patch.Image = &img
	}

	// нужен старый slug для сброса кэша
	var oldSlug string
	if h.cache != nil {
		if p, err := h.svc.GetProductByID(c.Request.Context(), kind, id); err == nil {
			oldSlug = p.GetSlug()
		}
	}

	product, err := h.svc.UpdateProduct(c.Request.Context(), kind, id, patch)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if h.cache != nil {
		ctx := c.Request.Context()
		if oldSlug != "" && oldSlug != product.GetSlug() {
			_ = h.cache.InvalidateProduct(ctx, kind, oldSlug)
		}
		_ = h.cache.InvalidateProduct(ctx, kind, product.GetSlug())
	}
	c.JSON(http.StatusOK, toProductView(product))
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	kind := models.ProductKind(c.Param("kind"))
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var slug string
	if h.cache != nil {
		if p, err := h.svc.GetProductByID(c.Request.Context(), kind, id); err == nil {
			slug = p.GetSlug()
		}
	}

	deleted, err := h.svc.DeleteProduct(c.Request.Context(), kind, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if h.cache != nil && slug != "" {
		_ = h.cache.InvalidateProduct(c.Request.Context(), kind, slug)
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func specFormFields(kind models.ProductKind) []string {
	switch kind {
	case models.KindNotebook:
		return []string{"diagonal", "display_type", "processor_freq", "ram", "video", "time_without_charge"}
	case models.KindSmartphone:
		return []string{"diagonal", "display_type", "resolution", "accum_volume", "ram", "sd_volume_max", "main_cam_mp", "front_cam_mp"}
	default:
		return nil
	}
}
