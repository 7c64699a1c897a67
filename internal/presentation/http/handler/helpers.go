package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// IsAdmin checks if the requester holds the admin role
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == entity.RoleAdmin
}

// paginationFromQuery builds pagination params from page/per_page values,
// falling back to defaults
func paginationFromQuery(page, perPage int) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	if page > 0 {
		params.Page = page
	}
	if perPage > 0 {
		params.PerPage = perPage
	}
	return params
}
