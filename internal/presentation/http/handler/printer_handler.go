package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/minimart/pos-api/internal/application/service"
	"github.com/minimart/pos-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer status and test HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Status handles retrieving printer status
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// Test handles sending a test page to the printer
func (h *PrinterHandler) Test(c *gin.Context) {
	receipt, err := h.printerService.TestPrint()
	if err != nil {
		// Return the test receipt so the caller can inspect what would print
		response.OK(c, "Printer unavailable, test receipt returned as data", receipt)
		return
	}

	response.OK(c, "Test page printed", receipt)
}
