package repository

import (
	"context"
	"time"

	"relay-messenger/internal/domain/settings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresSettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

func insertSettingsIfMissing(tx *gorm.DB, row *settings.UserSettings) (bool, error) {
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresSettingsRepository) GetOrCreate(ctx context.Context, userID int64) (settings.UserSettings, error) {
	var stored settings.UserSettings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := settings.Defaults(userID)
		row.UpdatedAt = time.Now()
		if _, err := insertSettingsIfMissing(tx, &row); err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).First(&stored).Error
	})
	if err != nil {
		return settings.UserSettings{}, translateError(err, "user")
	}
	return stored, nil
}

// Upsert creates the row with the patch already applied, or updates only the
// patched columns of an existing row.
func (r *PostgresSettingsRepository) Upsert(ctx context.Context, userID int64, patch settings.Patch) (settings.UserSettings, error) {
	var stored settings.UserSettings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		row := settings.Defaults(userID)
		row.Apply(patch)
		row.UpdatedAt = now

		inserted, err := insertSettingsIfMissing(tx, &row)
		if err != nil {
			return err
		}
		if !inserted {
			cols := patch.Columns()
			cols["updated_at"] = now
			if err := tx.Model(&settings.UserSettings{}).
				Where("user_id = ?", userID).
				Updates(cols).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).First(&stored).Error
	})
	if err != nil {
		return settings.UserSettings{}, translateError(err, "user")
	}
	return stored, nil
}
