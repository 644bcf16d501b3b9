// Package domain
package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the stored credential and profile record. Password holds the bcrypt hash.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Bio       string     `json:"bio"`
	Role      string     `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"-"`
}

// UserResponse is the public profile returned to clients.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserResponses(users []*User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

type UserSaveRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"omitempty,min=6,max=100"`
	Bio      string `json:"bio" validate:"max=500"`
}

type UserRepository interface {
	List(ctx context.Context, opts ListOptions) ([]*User, int64, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, userID int64) error
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}

type UserService interface {
	List(ctx context.Context, opts ListOptions) (*ListResult[*User], error)
	Get(ctx context.Context, userID int64) (*User, error)
	Create(ctx context.Context, req UserSaveRequest) (*User, error)
	Update(ctx context.Context, req UserSaveRequest, userID int64) (*User, error)
	Delete(ctx context.Context, userID int64) error
}
