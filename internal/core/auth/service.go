// Package auth implements registration and login.
package auth

import (
	"context"
	"errors"
	"fmt"

	"userhub/internal/domain"
	"userhub/internal/event"
	"userhub/internal/logger"
)

// dummyPassword is hashed once so unknown emails pay the same bcrypt cost as
// wrong passwords.
const dummyPassword = "userhub-timing-equalizer"

type service struct {
	repo    domain.UserRepository
	tokens  domain.TokenIssuer
	hasher  domain.PasswordHasher
	limiter domain.LoginLimiter
	bus     *event.Bus
	log     logger.Logger

	dummyHash string
}

type Option func(*service)

func WithLimiter(l domain.LoginLimiter) Option {
	return func(s *service) { s.limiter = l }
}

func WithBus(b *event.Bus) Option {
	return func(s *service) { s.bus = b }
}

func NewService(
	repo domain.UserRepository,
	tokens domain.TokenIssuer,
	hasher domain.PasswordHasher,
	log logger.Logger,
	opts ...Option,
) (domain.AuthService, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	s := &service{
		repo:      repo,
		tokens:    tokens,
		hasher:    hasher,
		log:       log,
		dummyHash: dummyHash,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashedPwd, err := s.hasher.Hash(req.Password)
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

	// The store's unique index decides concurrent registrations of one email.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	res, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("auth: user registered", "user_id", user.ID)
	if s.bus != nil {
		s.bus.Publish(domain.EventUserRegistered{UserID: user.ID, Email: user.Email})
	}

	return res, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	if s.limiter != nil {
		if err := s.limiter.Check(ctx, req.Email); err != nil {
			if errors.Is(err, domain.ErrTooManyAttempts) {
				return nil, err
			}
			s.log.Warn("auth: login limiter unavailable", "error", err)
		}
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	hash := s.dummyHash
	if user != nil {
		hash = user.Password
	}

	cmpErr := s.hasher.Compare(hash, req.Password)
	if user == nil || cmpErr != nil {
		if cmpErr != nil && !errors.Is(cmpErr, domain.ErrInvalidCredentials) {
			s.log.Error("auth: password compare failed", "error", cmpErr)
		}
		s.recordFailure(ctx, req.Email)
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, req.Email); err != nil {
			s.log.Warn("auth: failed to reset login limiter", "error", err)
		}
	}

	res, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("auth: user logged in", "user_id", user.ID)

	return res, nil
}

func (s *service) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Fail(ctx, email); err != nil && !errors.Is(err, domain.ErrTooManyAttempts) {
		s.log.Warn("auth: failed to record login failure", "error", err)
	}
}

func (s *service) issue(user *domain.User) (*domain.AuthResponse, error) {
	tokenString, err := s.tokens.Issue(user.Email, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.AuthResponse{
		Token:     tokenString,
		TokenType: domain.TokenTypeBearer,
		User:      domain.NewUserResponse(user),
	}, nil
}
