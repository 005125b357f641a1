package services

import (
	"DentalClinic/models"
	"DentalClinic/repositories"
	"DentalClinic/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type UserService struct {
	users  UserStore
	locker Locker
	now    func() time.Time
}

func NewUserService(users UserStore, locker Locker) *UserService {
	return &UserService{users: users, locker: locker, now: time.Now}
}

// Login checks the password and issues an access token for the user.
func (s *UserService) Login(ctx context.Context, in models.LoginInput) (string, *models.User, error) {
	if in.Username == "" || in.Password == "" {
		return "", nil, NewValidationError(errors.New("username and password are required"))
	}
	user, err := s.users.GetUserByUsername(ctx, in.Username)
	if err != nil {
		return "", nil, NewInternalError("failed to log in", err)
	}
	if user == nil || !utils.CheckPassword(user.Password, in.Password) {
		return "", nil, NewUnauthorizedError("Invalid username or password")
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role.Name)
	if err != nil {
		return "", nil, NewInternalError("failed to issue token", err)
	}
	return token, user, nil
}

func (s *UserService) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := utils.ValidateUserInput(in); err != nil {
		return nil, NewValidationError(err)
	}

	release, err := s.locker.Acquire(ctx, fmt.Sprintf("user_lock:%s", in.Username))
	if err != nil {
		return nil, NewInternalError("failed to create user", err)
	}
	defer release()

	role, err := s.loadRole(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, NewInternalError("failed to hash password", err)
	}

	now := s.now()
	user := &models.User{
		ID:        uuid.New().String(),
		Username:  in.Username,
		Phone:     in.Phone,
		Password:  hashed,
		RoleID:    role.ID,
		Role:      *role,
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("Username or phone already registered")
		}
		return nil, NewInternalError("failed to create user", err)
	}
	return user, nil
}

func (s *UserService) loadRole(ctx context.Context, name string) (*models.Role, error) {
	if err := utils.ValidateRole(name); err != nil {
		return nil, NewValidationError(fmt.Errorf("role: %w", err))
	}
	role, err := s.users.GetRoleByName(ctx, name)
	if err != nil {
		return nil, NewInternalError("failed to load role", err)
	}
	if role == nil {
		return nil, NewValidationError(fmt.Errorf("role %s is not seeded", name))
	}
	return role, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, NewNotFoundError("User not found")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list users", err)
	}
	return users, nil
}

func (s *UserService) ListDoctors(ctx context.Context) ([]models.User, error) {
	doctors, err := s.users.GetUsersByRole(ctx, models.RoleDoctor)
	if err != nil {
		return nil, NewInternalError("failed to list doctors", err)
	}
	return doctors, nil
}

func (s *UserService) CountByRole(ctx context.Context) ([]models.RoleCount, error) {
	counts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, NewInternalError("failed to count users", err)
	}
	return counts, nil
}

// UpdateUser changes the profile fields. Snapshots of the user already stored
// on records keep the old username.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	release, err := s.locker.Acquire(ctx, fmt.Sprintf("user_lock:%s", id))
	if err != nil {
		return nil, NewInternalError("failed to update user", err)
	}
	defer release()

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Image != nil {
		user.Image = *patch.Image
	}
	if patch.Role != nil {
		role, err := s.loadRole(ctx, *patch.Role)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
		user.Role = *role
	}
	if err := utils.ValidateUser(*user); err != nil {
		return nil, NewValidationError(err)
	}

	user.UpdatedAt = s.now()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("Username or phone already registered")
		}
		return nil, NewInternalError("failed to update user", err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	deleted, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		return NewInternalError("failed to delete user", err)
	}
	if !deleted {
		return NewNotFoundError("User not found")
	}
	return nil
}
