package services

import (
	"context"
	"testing"

	"relay-messenger/internal/domain/settings"
	"relay-messenger/internal/repository/repotest"
	relay_errors "relay-messenger/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_GetCreatesDefaultsOnce(t *testing.T) {
	repo := repotest.NewSettingsRepo()
	svc := NewSettingsService(repo)

	first, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.UserID)
	assert.True(t, first.MessageSound)
	assert.False(t, first.DarkTheme)
	assert.False(t, first.TwoFactorAuth)
	assert.False(t, first.AutoAnswer)

	second, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.Rows())
}

func TestSettingsService_UpdateAppliesOnlySuppliedFields(t *testing.T) {
	repo := repotest.NewSettingsRepo()
	svc := NewSettingsService(repo)

	updated, err := svc.Update(context.Background(), 5, settings.Patch{settings.FieldDarkTheme: true})
	require.NoError(t, err)
	assert.True(t, updated.DarkTheme)
	assert.True(t, updated.MessageSound)

	updated, err = svc.Update(context.Background(), 5, settings.Patch{settings.FieldMessageSound: false})
	require.NoError(t, err)
	assert.True(t, updated.DarkTheme)
	assert.False(t, updated.MessageSound)
}

func TestSettingsService_UpdateWithoutKnownFieldsLeavesNoRow(t *testing.T) {
	repo := repotest.NewSettingsRepo()
	svc := NewSettingsService(repo)

	_, err := svc.Update(context.Background(), 5, settings.Patch{})
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)

	_, err = svc.Update(context.Background(), 5, settings.Patch{settings.Field("font_size"): true})
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)
	assert.Zero(t, repo.Rows())

	_, err = svc.Update(context.Background(), 0, settings.Patch{settings.FieldDarkTheme: true})
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)

	_, err = svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)
}
