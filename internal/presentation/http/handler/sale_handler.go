package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minimart/pos-api/internal/application/service"
	"github.com/minimart/pos-api/internal/domain/enum"
	"github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/internal/presentation/http/dto/request"
	"github.com/minimart/pos-api/internal/presentation/http/dto/response"
)

// SaleHandler handles checkout and sale query HTTP requests
type SaleHandler struct {
	saleService    *service.SaleService
	cartService    *service.CartService
	printerService *service.PrinterService
	receiptService *service.ReceiptService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(
	saleService *service.SaleService,
	cartService *service.CartService,
	printerService *service.PrinterService,
	receiptService *service.ReceiptService,
) *SaleHandler {
	return &SaleHandler{
		saleService:    saleService,
		cartService:    cartService,
		printerService: printerService,
		receiptService: receiptService,
	}
}

// Record handles a direct checkout with an explicit item list
func (h *SaleHandler) Record(c *gin.Context) {
	var req request.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items := make([]service.SaleItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.SaleItemInput{ProductCode: item.ProductCode, Quantity: item.Quantity}
	}

	sale, err := h.saleService.RecordSale(c.Request.Context(), &service.RecordSaleInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		BagCharge:     req.BagCharge,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded", sale)
}

// CheckoutCart handles recording a sale from an open cart session. The cart
// is closed once the sale commits.
func (h *SaleHandler) CheckoutCart(c *gin.Context) {
	cartID := c.Param("id")

	var req request.CheckoutCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, bagCharge, err := h.cartService.Checkout(cartID)
	if err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.saleService.RecordSale(c.Request.Context(), &service.RecordSaleInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		BagCharge:     bagCharge,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cartService.CloseCart(cartID)
	response.Created(c, "Sale recorded", sale)
}

// Get handles retrieving a sale by its bill number
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("billNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved", sale)
}

// List handles listing sales with filtering
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: paginationFromQuery(filter.Page, filter.PerPage),
		Search:     filter.Search,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	if filter.PaymentMethod != "" {
		var method enum.PaymentMethod
		if err := method.UnmarshalJSON([]byte(`"` + filter.PaymentMethod + `"`)); err != nil {
			response.BadRequest(c, "Invalid payment method")
			return
		}
		params.PaymentMethod = &method
	}

	if filter.DateFrom != "" {
		from, err := time.Parse("2006-01-02", filter.DateFrom)
		if err != nil {
			response.BadRequest(c, "Invalid date_from, expected YYYY-MM-DD")
			return
		}
		params.DateFrom = &from
	}

	if filter.DateTo != "" {
		to, err := time.Parse("2006-01-02", filter.DateTo)
		if err != nil {
			response.BadRequest(c, "Invalid date_to, expected YYYY-MM-DD")
			return
		}
		// inclusive end of day
		to = to.Add(24*time.Hour - time.Nanosecond)
		params.DateTo = &to
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved", result)
}

// NextNumbers reports the next bill and customer numbers for till displays
func (h *SaleHandler) NextNumbers(c *gin.Context) {
	numbers, err := h.saleService.PeekNextNumbers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next numbers retrieved", numbers)
}

// Receipt handles downloading a sale's bill as PDF
func (h *SaleHandler) Receipt(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("billNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	pdf, err := h.receiptService.GeneratePDF(c.Request.Context(), sale)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=bill-"+c.Param("billNo")+".pdf")
	c.Data(200, "application/pdf", pdf)
}

// Print handles reprinting a sale's receipt on the thermal printer
func (h *SaleHandler) Print(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("billNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	receipt, err := h.printerService.PrintSaleReceipt(c.Request.Context(), sale)
	if err != nil {
		// Return the receipt data anyway so the till can show it
		response.OK(c, "Printer unavailable, receipt returned as data", receipt)
		return
	}

	response.OK(c, "Receipt printed", receipt)
}
