package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/minimart/pos-api/internal/application/service"
	"github.com/minimart/pos-api/internal/presentation/http/dto/request"
	"github.com/minimart/pos-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles store settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles retrieving the store settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved", settings)
}

// Update handles updating the store settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		StoreName:         req.StoreName,
		Address:           req.Address,
		Phone:             req.Phone,
		TaxID:             req.TaxID,
		ReceiptFooter:     req.ReceiptFooter,
		LoyaltyEnabled:    req.LoyaltyEnabled,
		LoyaltyPercent:    req.LoyaltyPercent,
		LoyaltyMatchPhone: req.LoyaltyMatchPhone,
		LoyaltyMatchName:  req.LoyaltyMatchName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated", settings)
}
