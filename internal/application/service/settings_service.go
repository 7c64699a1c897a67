package service

import (
	"context"

	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/pkg/apperror"
)

// SettingsService manages the single store settings row
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the store settings
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.StoreSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents the update settings input. Nil fields are
// left untouched.
type UpdateSettingsInput struct {
	StoreName         *string
	Address           *string
	Phone             *string
	TaxID             *string
	ReceiptFooter     *string
	LoyaltyEnabled    *bool
	LoyaltyPercent    *int
	LoyaltyMatchPhone *bool
	LoyaltyMatchName  *bool
}

// UpdateSettings updates the store settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.StoreName != nil && *input.StoreName != "" {
		settings.StoreName = *input.StoreName
	}
	if input.Address != nil {
		settings.Address = *input.Address
	}
	if input.Phone != nil {
		settings.Phone = *input.Phone
	}
	if input.TaxID != nil {
		settings.TaxID = *input.TaxID
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = *input.ReceiptFooter
	}
	if input.LoyaltyEnabled != nil {
		settings.LoyaltyEnabled = *input.LoyaltyEnabled
	}
	if input.LoyaltyPercent != nil {
		if *input.LoyaltyPercent < 0 || *input.LoyaltyPercent > 100 {
			return nil, apperror.NewBadRequestError("Loyalty percent must be between 0 and 100")
		}
		settings.LoyaltyPercent = *input.LoyaltyPercent
	}
	if input.LoyaltyMatchPhone != nil {
		settings.LoyaltyMatchPhone = *input.LoyaltyMatchPhone
	}
	if input.LoyaltyMatchName != nil {
		settings.LoyaltyMatchName = *input.LoyaltyMatchName
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
