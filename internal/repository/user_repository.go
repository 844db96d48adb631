package repository

import (
	"context"
	"fmt"
	"time"

	"relay-messenger/internal/domain/user"
	relay_errors "relay-messenger/pkg/errors"

	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return fmt.Errorf("%w: a user with this phone already exists", relay_errors.ErrAlreadyExists)
		}
		return res.Error
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return user.User{}, translateError(err, "user")
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByPhone(ctx context.Context, phone string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&u).Error
	if err != nil {
		return user.User{}, translateError(err, "user")
	}
	return u, nil
}

func (r *PostgresUserRepository) MarkOnline(ctx context.Context, id int64, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_online": true, "last_seen": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user not found", relay_errors.ErrNotFound)
	}
	return nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id int64, patch user.ProfilePatch) (user.User, error) {
	cols := patch.Columns()
	if len(cols) == 0 {
		return user.User{}, fmt.Errorf("%w: no profile fields to update", relay_errors.ErrInvalidInput)
	}

	var updated user.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&user.User{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		return user.User{}, translateError(err, "user")
	}
	return updated, nil
}

func (r *PostgresUserRepository) ListExcept(ctx context.Context, id int64) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", id).
		Order("name ASC, id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
