package repository

import (
	"context"

	"github.com/minimart/pos-api/internal/domain/entity"
)

// SettingsRepository defines the interface for store settings access.
// The store keeps a single settings row; Get creates it with defaults
// when missing.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Update(ctx context.Context, settings *entity.StoreSettings) error
}
