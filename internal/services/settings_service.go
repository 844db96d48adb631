package services

import (
	"context"
	"fmt"

	"relay-messenger/internal/domain/settings"
	"relay-messenger/internal/repository"
	relay_errors "relay-messenger/pkg/errors"
)

type SettingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the user's settings, creating the default row on first access.
func (s *SettingsService) Get(ctx context.Context, userID int64) (settings.UserSettings, error) {
	if userID == 0 {
		return settings.UserSettings{}, fmt.Errorf("%w: user_id is required", relay_errors.ErrInvalidInput)
	}
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *SettingsService) Update(ctx context.Context, userID int64, patch settings.Patch) (settings.UserSettings, error) {
	if userID == 0 {
		return settings.UserSettings{}, fmt.Errorf("%w: user_id is required", relay_errors.ErrInvalidInput)
	}
	if len(patch.Columns()) == 0 {
		return settings.UserSettings{}, fmt.Errorf("%w: no settings fields to update", relay_errors.ErrInvalidInput)
	}
	return s.repo.Upsert(ctx, userID, patch)
}
