package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/application/service"
	"github.com/minimart/pos-api/internal/presentation/http/dto/request"
	"github.com/minimart/pos-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer registry HTTP requests. There is no
// create endpoint: customers are registered when their first sale is
// recorded.
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Get handles retrieving a customer by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved", customer)
}

// GetByNo handles retrieving a customer by their number ("USR0042")
func (h *CustomerHandler) GetByNo(c *gin.Context) {
	customer, err := h.customerService.GetCustomerByNo(c.Request.Context(), c.Param("no"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved", customer)
}

// Update handles correcting a customer's contact details
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, &service.UpdateCustomerInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated", customer)
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	var filter struct {
		Search  string `form:"search"`
		Page    int    `form:"page"`
		PerPage int    `form:"per_page"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(),
		paginationFromQuery(filter.Page, filter.PerPage), filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved", result)
}

// Sales handles listing a customer's purchase history
func (h *CustomerHandler) Sales(c *gin.Context) {
	var filter struct {
		Page    int `form:"page"`
		PerPage int `form:"per_page"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.customerService.GetCustomerSales(c.Request.Context(), c.Param("no"),
		paginationFromQuery(filter.Page, filter.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customer sales retrieved", result)
}
