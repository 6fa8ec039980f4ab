package user

import (
	"context"
	"net/http"
	"testing"

	"github.com/smartmealplanner/backend/internal/infrastructure/config"
	"github.com/smartmealplanner/backend/internal/infrastructure/monitoring"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	"github.com/smartmealplanner/backend/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// UserServiceTestSuite tests registration, login and token authentication
type UserServiceTestSuite struct {
	suite.Suite
	repos   *testutils.Repositories
	auth    *security.AuthService
	service *UserService
	ctx     context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.repos = testutils.NewRepositories(s.T())
	s.auth = security.NewAuthService(&config.Config{
		Auth: config.AuthConfig{
			SecretKey:                "test-secret",
			Algorithm:                "HS256",
			AccessTokenExpireMinutes: 30,
			BCryptCost:               4,
		},
	}, zap.NewNop())
	s.service = NewUserService(s.repos.Users, s.auth, monitoring.NewMetrics(), zap.NewNop())
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) register(username, email string) *inbound.UserDTO {
	dto, err := s.service.Register(s.ctx, inbound.RegisterCommand{
		Username: username,
		Email:    email,
		Password: "supersecret",
	})
	require.NoError(s.T(), err)
	return dto
}

func (s *UserServiceTestSuite) TestRegister() {
	dto := s.register("chef", "chef@example.com")

	assert.Equal(s.T(), "chef", dto.Username)
	assert.Equal(s.T(), "chef@example.com", dto.Email)
	assert.True(s.T(), dto.IsActive)

	stored, err := s.repos.Users.FindByUsername(s.ctx, "chef")
	require.NoError(s.T(), err)
	assert.NotEqual(s.T(), "supersecret", stored.HashedPassword)
}

func (s *UserServiceTestSuite) TestRegisterDuplicates() {
	s.register("chef", "chef@example.com")

	_, err := s.service.Register(s.ctx, inbound.RegisterCommand{
		Username: "chef", Email: "other@example.com", Password: "supersecret",
	})
	require.Error(s.T(), err)
	assert.True(s.T(), apperrors.Is(err, apperrors.CodeUsernameAlreadyExists))
	assert.Contains(s.T(), err.Error(), "already registered")

	_, err = s.service.Register(s.ctx, inbound.RegisterCommand{
		Username: "sous", Email: "chef@example.com", Password: "supersecret",
	})
	require.Error(s.T(), err)
	appErr, ok := apperrors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), apperrors.CodeEmailAlreadyExists, appErr.Code)
	assert.Equal(s.T(), http.StatusBadRequest, appErr.StatusCode())
	assert.Equal(s.T(), "Email already registered", appErr.Message)
}

func (s *UserServiceTestSuite) TestLogin() {
	s.register("chef", "chef@example.com")

	token, err := s.service.Login(s.ctx, inbound.LoginCommand{Username: "chef", Password: "supersecret"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "bearer", token.TokenType)
	assert.Equal(s.T(), int64(1800), token.ExpiresIn)

	me, err := s.service.Authenticate(s.ctx, token.AccessToken)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "chef", me.Username)
}

func (s *UserServiceTestSuite) TestLoginWrongPassword() {
	s.register("chef", "chef@example.com")

	_, err := s.service.Login(s.ctx, inbound.LoginCommand{Username: "chef", Password: "wrong-password"})
	appErr, ok := apperrors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), http.StatusUnauthorized, appErr.StatusCode())
	assert.Equal(s.T(), "Incorrect username or password", appErr.Message)

	_, err = s.service.Login(s.ctx, inbound.LoginCommand{Username: "nobody", Password: "supersecret"})
	assert.True(s.T(), apperrors.Is(err, apperrors.CodeInvalidCredentials))
}

func (s *UserServiceTestSuite) TestLoginInactiveUser() {
	s.register("chef", "chef@example.com")
	u, err := s.repos.Users.FindByUsername(s.ctx, "chef")
	require.NoError(s.T(), err)
	u.Deactivate()
	require.NoError(s.T(), s.repos.Users.Update(s.ctx, u))

	_, err = s.service.Login(s.ctx, inbound.LoginCommand{Username: "chef", Password: "supersecret"})
	appErr, ok := apperrors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), http.StatusBadRequest, appErr.StatusCode())
	assert.Equal(s.T(), "Inactive user", appErr.Message)
}

func (s *UserServiceTestSuite) TestAuthenticateRejectsBadTokens() {
	_, err := s.service.Authenticate(s.ctx, "garbage")
	appErr, ok := apperrors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), http.StatusUnauthorized, appErr.StatusCode())
	assert.Equal(s.T(), "Could not validate credentials", appErr.Message)

	// valid signature for a user that does not exist
	token, err := s.auth.GenerateAccessToken(testutils.NewUserFactory().Build(s.T()).ID, "ghost")
	require.NoError(s.T(), err)
	_, err = s.service.Authenticate(s.ctx, token)
	assert.True(s.T(), apperrors.Is(err, apperrors.CodeUnauthorized))
}

// TestUserServiceSuite runs the user service test suite
func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
