package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/query"
	"ai-worker-console/internal/repository"
	"ai-worker-console/internal/ws"
	"ai-worker-console/pkg/validator"

	"github.com/samber/lo"
)

type UserService interface {
	ListUsers(opts UserListOptions) ([]model.User, error)
	GetUser(id string) (*model.User, error)
	CreateUser(req *CreateUserRequest, actor string) (*model.User, error)
	UpdateUser(id string, req *UpdateUserRequest, actor string) (*model.User, error)
	DeleteUser(id, actor string) error
	ToggleActive(id, actor string) (*model.User, error)
	GetStats() (*UserStats, error)
}

type UserListOptions struct {
	Query  string
	Status string
	Role   string
}

type CreateUserRequest struct {
	Name       string         `json:"name" validate:"required"`
	Email      string         `json:"email" validate:"required,email"`
	Department string         `json:"department"`
	Role       model.UserRole `json:"role" validate:"required,oneof=admin manager operator"`
	Password   string         `json:"password" validate:"omitempty,min=6"` // Optional, without it the account can't log in
}

type UpdateUserRequest struct {
	Name       string            `json:"name" validate:"required"`
	Email      string            `json:"email" validate:"required,email"`
	Department string            `json:"department"`
	Role       model.UserRole    `json:"role" validate:"required,oneof=admin manager operator"`
	Status     *model.UserStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Password   *string           `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
}

type UserStats struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByRole   map[string]int `json:"by_role"`
}

type userService struct {
	userRepo repository.Store[model.User]
	bus      *ws.Bus
}

func NewUserService(userRepo repository.Store[model.User], bus *ws.Bus) UserService {
	return &userService{userRepo: userRepo, bus: bus}
}

func (s *userService) ListUsers(opts UserListOptions) ([]model.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	return query.Apply(users,
		query.Search(opts.Query, func(u model.User) []string { return []string{u.Name, u.Email} }),
		query.Category(opts.Status, func(u model.User) string { return string(u.Status) }),
		query.Category(opts.Role, func(u model.User) string { return string(u.Role) }),
	), nil
}

func (s *userService) GetUser(id string) (*model.User, error) {
	user, err := s.userRepo.Get(id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) CreateUser(req *CreateUserRequest, actor string) (*model.User, error) {
	// 1. Validate request
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	// 2. Check if email already exists
	if _, err := findUserByEmail(s.userRepo, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	// 3. Build user
	user := model.User{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Role:       req.Role,
		Status:     model.UserActive,
	}
	user.StampCreated(actor, time.Now())

	// 4. Set password
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	// 5. Save
	created, err := s.userRepo.Add(user)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ws.NewEvent(ws.EntityUser, ws.ActionCreated, created.ID, actor,
		fmt.Sprintf("%s created user '%s'", actor, created.Name)))
	return created, nil
}

func (s *userService) UpdateUser(id string, req *UpdateUserRequest, actor string) (*model.User, error) {
	// 1. Validate request
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	// 2. Check if email is being taken by another user
	if existing, err := findUserByEmail(s.userRepo, req.Email); err == nil {
		if existing.ID != id {
			return nil, ErrEmailExists
		}
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	// 3. Hash outside the store lock
	var hashed string
	if req.Password != nil && *req.Password != "" {
		var u model.User
		if err := u.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
		hashed = u.Password
	}

	// 4. Apply
	updated, err := s.userRepo.Update(id, func(u *model.User) error {
		u.Name = req.Name
		u.Email = req.Email
		u.Department = req.Department
		u.Role = req.Role
		if req.Status != nil {
			u.Status = *req.Status
		}
		if hashed != "" {
			u.Password = hashed
		}
		u.StampUpdated(actor, time.Now())
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	s.bus.Publish(ws.NewEvent(ws.EntityUser, ws.ActionUpdated, id, actor,
		fmt.Sprintf("%s updated user '%s'", actor, updated.Name)))
	return updated, nil
}

// DeleteUser removes the user; the mapping service drops the user's system assignments
func (s *userService) DeleteUser(id, actor string) error {
	removed, err := s.userRepo.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrUserNotFound
	}

	s.bus.Publish(ws.NewEvent(ws.EntityUser, ws.ActionDeleted, id, actor,
		fmt.Sprintf("%s deleted user %s", actor, id)))
	return nil
}

func (s *userService) ToggleActive(id, actor string) (*model.User, error) {
	updated, err := s.userRepo.Update(id, func(u *model.User) error {
		if u.IsActive() {
			u.Status = model.UserInactive
		} else {
			u.Status = model.UserActive
		}
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	s.bus.Publish(ws.NewEvent(ws.EntityUser, ws.ActionToggled, id, actor,
		fmt.Sprintf("%s set user '%s' %s", actor, updated.Name, updated.Status)))
	return updated, nil
}

func (s *userService) GetStats() (*UserStats, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	active := lo.CountBy(users, func(u model.User) bool { return u.IsActive() })
	return &UserStats{
		Total:    len(users),
		Active:   active,
		Inactive: len(users) - active,
		ByRole:   lo.CountValuesBy(users, func(u model.User) string { return string(u.Role) }),
	}, nil
}

// findUserByEmail matches emails case-insensitively
func findUserByEmail(userRepo repository.Store[model.User], email string) (*model.User, error) {
	users, err := userRepo.List()
	if err != nil {
		return nil, err
	}
	user, ok := lo.Find(users, func(u model.User) bool { return strings.EqualFold(u.Email, email) })
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
