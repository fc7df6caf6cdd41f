package handler

import (
	"net/http"

	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CatalogHandler struct {
	catalog   service.CatalogServiceInterface
	validator *validator.Validate
}

func NewCatalogHandler(catalog service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalog:   catalog,
		validator: newValidator(),
	}
}

// ===================== Categories =====================

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	category, err := h.catalog.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	category, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateCategoryRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	category, err := h.catalog.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.DeleteResult{Success: true})
}

// ===================== Products =====================

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// ListProducts handles GET /api/v1/products with an optional category_id filter.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	categoryID, err := queryID(c, "category_id")
	if err != nil {
		badRequest(c, err.Error(), nil)
		return
	}

	var products []entity.Product
	if categoryID != nil {
		products, err = h.catalog.ListProductsByCategory(c.Request.Context(), *categoryID)
	} else {
		products, err = h.catalog.ListProducts(c.Request.Context())
	}
	if err != nil {
		writeError(c, err)
		return
	}
	if products == nil {
		products = []entity.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateProductRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.DeleteResult{Success: true})
}

// UpdateStock handles PATCH /api/v1/products/:id/stock
func (h *CatalogHandler) UpdateStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateStockRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.ProductID = id

	product, err := h.catalog.UpdateStock(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
