package repository

import (
	"context"
	"errors"

	"github.com/minimart/pos-api/internal/domain/entity"
	domainRepo "github.com/minimart/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new store settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row, creating it with column defaults
// when it does not exist yet
func (r *settingsRepository) Get(ctx context.Context) (*entity.StoreSettings, error) {
	var settings entity.StoreSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = entity.StoreSettings{}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return r.Get(ctx)
	}
	return &settings, err
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.StoreSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
