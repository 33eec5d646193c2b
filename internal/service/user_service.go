package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"useradmin/internal/cache"
	"useradmin/internal/errors"
	"useradmin/internal/model"
	"useradmin/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes domain operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, name, email string) (*model.User, error)
	UpdateUser(ctx context.Context, id, name, email string) (*model.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

type userService struct {
	repo      repository.UserRepository
	cache     *cache.Client
	validator *EmailValidator
}

// NewUserService builds a UserService with repository and cache. cache may be nil.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache, validator: NewEmailValidator()}
}

func (s *userService) cacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	_ = s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

// CreateUser validates input, stores a new user under a fresh id and returns it.
func (s *userService) CreateUser(ctx context.Context, name, email string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrNameRequired
	}
	if err := s.validator.ValidateEmail(email); err != nil {
		return nil, err
	}

	user := &model.User{Name: name, Email: email}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial update: empty name or email keeps the stored value.
func (s *userService) UpdateUser(ctx context.Context, id, name, email string) (*model.User, error) {
	if email != "" {
		if err := s.validator.ValidateEmail(email); err != nil {
			return nil, err
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) (bool, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("delete user %s: %w", id, err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return true, nil
}
