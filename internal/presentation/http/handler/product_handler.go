package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/application/service"
	"github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/internal/presentation/http/dto/request"
	"github.com/minimart/pos-api/internal/presentation/http/dto/response"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:       req.Name,
		Code:       req.Code,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		Stock:      req.Stock,
		StockAlert: req.StockAlert,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created", product)
}

// Get handles retrieving a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", product)
}

// GetByCode handles the till's barcode lookup
func (h *ProductHandler) GetByCode(c *gin.Context) {
	product, err := h.productService.GetProductByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		StockAlert: req.StockAlert,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Restock handles atomic stock adjustments
func (h *ProductHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.RestockProduct(c.Request.Context(), id, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted", product)
}

// List handles listing products with filtering
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: paginationFromQuery(filter.Page, filter.PerPage),
		Search:     filter.Search,
		LowStock:   filter.LowStock,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	if filter.CategoryID != "" {
		categoryID, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		params.CategoryID = &categoryID
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved", result)
}

// LowStock handles listing products at or below their alert threshold
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved", products)
}
