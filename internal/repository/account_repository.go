package repository

import (
	"context"
	"fmt"

	"github.com/farellandr/dealhub/internal/models"
	"gorm.io/gorm"
)

// AccountRepository looks up subscribers and staff members.
type AccountRepository struct {
	DB *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{
		DB: db,
	}
}

func (r *AccountRepository) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	found, err := first(r.DB.WithContext(ctx).Where("id = ?", id), &user)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (r *AccountRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	found, err := first(r.DB.WithContext(ctx).Where("email = ?", email), &user)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (r *AccountRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	var staff models.Staff
	found, err := first(r.DB.WithContext(ctx).Preload("Role").Where("email = ?", email), &staff)
	if err != nil {
		return nil, fmt.Errorf("find staff by email: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &staff, nil
}

func (r *AccountRepository) FindRole(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	found, err := first(r.DB.WithContext(ctx).Where("name = ?", name), &role)
	if err != nil {
		return nil, fmt.Errorf("find role %q: %w", name, err)
	}
	if !found {
		return nil, nil
	}
	return &role, nil
}

func (r *AccountRepository) CreateStaff(ctx context.Context, staff *models.Staff) error {
	if err := r.DB.WithContext(ctx).Create(staff).Error; err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}
