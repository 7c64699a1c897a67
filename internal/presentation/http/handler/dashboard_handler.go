package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minimart/pos-api/internal/application/service"
	"github.com/minimart/pos-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles the dashboard landing payload
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved", stats)
}

// SalesByCategory handles the per-category sales report
func (h *DashboardHandler) SalesByCategory(c *gin.Context) {
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	results, err := h.dashboardService.GetSalesByCategory(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales by category retrieved", results)
}

// TopProducts handles the best sellers report
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.BadRequest(c, "Invalid limit")
			return
		}
		limit = n
	}

	results, err := h.dashboardService.GetTopProducts(c.Request.Context(), limit, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top products retrieved", results)
}

// parseWindow reads optional from/to query params (YYYY-MM-DD). It writes
// the error response itself and returns ok=false on bad input.
func parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	var from, to time.Time

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid from, expected YYYY-MM-DD")
			return from, to, false
		}
		from = parsed
	}

	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid to, expected YYYY-MM-DD")
			return from, to, false
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	return from, to, true
}
