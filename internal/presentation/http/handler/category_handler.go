package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/application/service"
	"github.com/minimart/pos-api/internal/presentation/http/dto/request"
	"github.com/minimart/pos-api/internal/presentation/http/dto/response"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create handles category creation
func (h *CategoryHandler) Create(c *gin.Context) {
	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &service.CreateCategoryInput{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created", category)
}

// Get handles retrieving a category
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category retrieved", category)
}

// Update handles updating a category
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req request.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, &service.UpdateCategoryInput{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated", category)
}

// Delete handles deleting a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing categories
func (h *CategoryHandler) List(c *gin.Context) {
	var filter struct {
		Search  string `form:"search"`
		Page    int    `form:"page"`
		PerPage int    `form:"per_page"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.categoryService.ListCategories(c.Request.Context(),
		paginationFromQuery(filter.Page, filter.PerPage), filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Categories retrieved", result)
}
