package repositories

import (
	"DentalClinic/cache"
	"DentalClinic/models"
	"DentalClinic/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	UserCacheExpiry = 7 * 24 * time.Hour
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUsersByRole(ctx context.Context, role string) ([]models.User, error)
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
	CountByRole(ctx context.Context) ([]models.RoleCount, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) (bool, error)
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUserRepository(db *gorm.DB, cache *cache.Cache) UserRepository {
	return &userRepository{db: db, cache: cache}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translateError(err))
	}
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cacheKey := r.getUserCacheKey(id)
	var user models.User
	if found, err := r.cache.GetJSON(ctx, cacheKey, &user); err != nil {
		utils.Logger.Debug().Err(err).Str("key", cacheKey).Msg("cache read failed")
	} else if found {
		return &user, nil
	}

	err := r.db.WithContext(ctx).
		Preload("Role", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, description")
		}).
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, user, UserCacheExpiry); err != nil {
		utils.Logger.Debug().Err(err).Str("key", cacheKey).Msg("cache write failed")
	}
	return &user, nil
}

// GetUserByUsername always reads the database; the cached copy has no password hash.
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Role", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, description")
		}).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("Role", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, description")
		}).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) GetUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("Role").
		Where("\"Role\".name = ?", role).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return users, nil
}

func (r *userRepository) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var role models.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}

func (r *userRepository) CountByRole(ctx context.Context) ([]models.RoleCount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var counts []models.RoleCount
	err := r.db.WithContext(ctx).
		Table("roles").
		Select("roles.name AS role, COUNT(users.id) AS count").
		Joins("LEFT JOIN users ON users.role_id = roles.id").
		Group("roles.name").
		Order("roles.name").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return counts, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// the cached copy carries neither the password nor role_id, so only the
	// profile columns are written
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"username":   user.Username,
		"phone":      user.Phone,
		"image":      user.Image,
		"role_id":    user.Role.ID,
		"updated_at": user.UpdatedAt,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update user: %w", translateError(err))
	}
	r.deleteUserCache(ctx, user.ID)
	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete user: %w", res.Error)
	}
	r.deleteUserCache(ctx, id)
	return res.RowsAffected > 0, nil
}

func (r *userRepository) deleteUserCache(ctx context.Context, id string) {
	if err := r.cache.Delete(ctx, r.getUserCacheKey(id)); err != nil {
		utils.Logger.Debug().Err(err).Str("user_id", id).Msg("cache invalidation failed")
	}
}

func (r *userRepository) getUserCacheKey(identifier string) string {
	return fmt.Sprintf("user_cache:%s", identifier)
}
