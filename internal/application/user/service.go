// Package user provides the application layer for user management
package user

import (
	"context"
	"errors"

	"github.com/smartmealplanner/backend/internal/application/common"
	"github.com/smartmealplanner/backend/internal/domain/user"
	"github.com/smartmealplanner/backend/internal/infrastructure/monitoring"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	"go.uber.org/zap"
)

// credentialsError is returned for every token that does not resolve to a user
const credentialsError = "Could not validate credentials"

var _ inbound.UserService = (*UserService)(nil)

// UserService implements user management use cases
type UserService struct {
	userRepo outbound.UserRepository
	auth     *security.AuthService
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo outbound.UserRepository,
	auth *security.AuthService,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		metrics:  metrics,
		logger:   logger.Named("user-service"),
	}
}

// Register creates a new user account
func (s *UserService) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.UserDTO, error) {
	s.logger.Info("Registering new user", zap.String("username", cmd.Username))

	if _, err := s.userRepo.FindByUsername(ctx, cmd.Username); err == nil {
		return nil, apperrors.NewUsernameAlreadyExistsError(cmd.Username)
	} else if !errors.Is(err, outbound.ErrNotFound) {
		return nil, common.RepositoryError(err, "User", "look up username")
	}

	if _, err := s.userRepo.FindByEmail(ctx, cmd.Email); err == nil {
		return nil, apperrors.NewEmailAlreadyExistsError(cmd.Email)
	} else if !errors.Is(err, outbound.ErrNotFound) {
		return nil, common.RepositoryError(err, "User", "look up email")
	}

	hash, err := s.auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to hash password")
	}

	newUser, err := user.NewUser(cmd.Username, cmd.Email, hash)
	if err != nil {
		return nil, common.DomainError(err)
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		// a concurrent registration can still win the unique index
		var dup *outbound.DuplicateError
		if errors.As(err, &dup) {
			if dup.Field == "email" {
				return nil, apperrors.NewEmailAlreadyExistsError(cmd.Email)
			}
			return nil, apperrors.NewUsernameAlreadyExistsError(cmd.Username)
		}
		return nil, common.RepositoryError(err, "User", "create user")
	}

	s.logger.Info("User registered successfully",
		zap.String("user_id", newUser.ID.String()),
		zap.String("username", newUser.Username),
	)

	dto := toDTO(newUser)
	return &dto, nil
}

// Login authenticates a user and issues an access token
func (s *UserService) Login(ctx context.Context, cmd inbound.LoginCommand) (*inbound.TokenDTO, error) {
	s.logger.Info("User login attempt", zap.String("username", cmd.Username))

	u, err := s.userRepo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewInvalidCredentialsError()
		}
		return nil, common.RepositoryError(err, "User", "look up username")
	}

	if err := s.auth.VerifyPassword(u.HashedPassword, cmd.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("username", cmd.Username))
		return nil, apperrors.NewInvalidCredentialsError()
	}

	if !u.IsActive {
		return nil, apperrors.NewInactiveUserError()
	}

	token, err := s.auth.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to issue token")
	}

	if count, err := s.userRepo.CountActive(ctx); err != nil {
		s.logger.Warn("Failed to count active users", zap.Error(err))
	} else {
		s.metrics.SetActiveUsers(count)
	}

	return &inbound.TokenDTO{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.auth.Expiration().Seconds()),
	}, nil
}

// Authenticate resolves a bearer token to its active user
func (s *UserService) Authenticate(ctx context.Context, token string) (*inbound.UserDTO, error) {
	claims, err := s.auth.ValidateToken(token)
	if err != nil {
		s.logger.Debug("Token validation failed", zap.Error(err))
		return nil, apperrors.NewUnauthorizedError(credentialsError)
	}

	u, err := s.userRepo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError(credentialsError)
		}
		return nil, common.RepositoryError(err, "User", "look up username")
	}

	if !u.IsActive {
		return nil, apperrors.NewInactiveUserError()
	}

	dto := toDTO(u)
	return &dto, nil
}

func toDTO(u *user.User) inbound.UserDTO {
	return inbound.UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
