// Package user implements profile management on top of the user store.
package user

import (
	"context"
	"fmt"

	"userhub/internal/core/auth"
	"userhub/internal/domain"
	"userhub/internal/event"
	"userhub/internal/logger"
)

type Service struct {
	repo   domain.UserRepository
	hasher domain.PasswordHasher
	bus    *event.Bus
	log    logger.Logger
}

func NewService(repo domain.UserRepository, hasher domain.PasswordHasher, bus *event.Bus, log logger.Logger) domain.UserService {
	return &Service{
		repo:   repo,
		hasher: hasher,
		bus:    bus,
		log:    log,
	}
}

func (s *Service) List(ctx context.Context, opts domain.ListOptions) (*domain.ListResult[*domain.User], error) {
	opts = opts.Normalize()

	users, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &domain.ListResult[*domain.User]{
		Data: users,
		Meta: domain.ListMeta{
			Page:  opts.Page,
			Limit: opts.Limit,
			Total: total,
		},
	}, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Create stores a user on behalf of an operator. Without a password the
// account gets a random one and cannot log in until it is changed.
func (s *Service) Create(ctx context.Context, req domain.UserSaveRequest) (*domain.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	var hashedPwd string
	if req.Password != "" {
		hashedPwd, err = s.hasher.Hash(req.Password)
	} else {
		hashedPwd, err = auth.RandomPasswordHash(s.hasher)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPwd,
		Bio:      req.Bio,
		Role:     domain.RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user: created", "user_id", user.ID)
	s.publish(domain.EventUserCreated{UserID: user.ID, Email: user.Email})

	return user, nil
}

func (s *Service) Update(ctx context.Context, req domain.UserSaveRequest, userID int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		exists, err := s.repo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, domain.ErrEmailAlreadyExists
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Bio = req.Bio

	if req.Password != "" {
		hashedPwd, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashedPwd
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user: updated", "user_id", user.ID)

	return user, nil
}

func (s *Service) Delete(ctx context.Context, userID int64) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.log.Info("user: deleted", "user_id", userID)
	s.publish(domain.EventUserDeleted{UserID: userID})

	return nil
}

func (s *Service) publish(e any) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
