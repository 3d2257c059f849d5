package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"darf/internal/config"
	"darf/internal/domain"
	"darf/internal/repository/memory"
	"darf/internal/service"
	"darf/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-key-for-unit-tests",
		AccessTokenExpiry: 15 * time.Minute,
		Issuer:            "darf-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig(), nil)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "operator@test.com",
		PasswordHash: hashPassword("password123"),
		FullName:     "Test Operator",
		Role:         domain.RoleOperator,
		IsActive:     true,
	}
	userRepo.On("GetByEmail", mock.Anything, "operator@test.com").Return(user, nil)

	token, err := svc.Login(context.Background(), service.LoginInput{Email: "operator@test.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleOperator, claims.Role)

	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_Failures(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig(), nil)

	active := &domain.User{ID: uuid.New(), Email: "a@test.com", PasswordHash: hashPassword("password123"), IsActive: true}
	inactive := &domain.User{ID: uuid.New(), Email: "b@test.com", PasswordHash: hashPassword("password123")}
	userRepo.On("GetByEmail", mock.Anything, "a@test.com").Return(active, nil)
	userRepo.On("GetByEmail", mock.Anything, "b@test.com").Return(inactive, nil)
	userRepo.On("GetByEmail", mock.Anything, "nobody@test.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "a@test.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), service.LoginInput{Email: "b@test.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)

	_, err = svc.Login(context.Background(), service.LoginInput{Email: "nobody@test.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Register(t *testing.T) {
	svc := service.NewAuthService(memory.NewUserRepo(), testJWTConfig(), nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, service.RegisterInput{
		Email:    " New@Test.com ",
		Password: "password123",
		FullName: "New Operator",
		Role:     domain.RoleOperator,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@test.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))

	_, err = svc.Login(ctx, service.LoginInput{Email: "new@test.com", Password: "password123"})
	assert.NoError(t, err)

	_, err = svc.Register(ctx, service.RegisterInput{Email: "NEW@test.com", Password: "password123", FullName: "x", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = svc.Register(ctx, service.RegisterInput{Email: "c@test.com", Password: "password123", FullName: "x", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestAuthService_ValidateToken_Rejects(t *testing.T) {
	cfg := testJWTConfig()
	svc := service.NewAuthService(new(mocks.MockUserRepo), cfg, nil)

	sign := func(secret string, claims *service.Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	base := func() *service.Claims {
		return &service.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    cfg.Issuer,
				Audience:  jwt.ClaimStrings{"access"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
			UserID: uuid.New(),
			Role:   domain.RoleAdmin,
		}
	}

	_, err := svc.ValidateToken(sign(cfg.Secret, base()))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(sign("another-secret", base()))
	assert.Error(t, err)

	expired := base()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	_, err = svc.ValidateToken(sign(cfg.Secret, expired))
	assert.Error(t, err)

	refresh := base()
	refresh.Audience = jwt.ClaimStrings{"refresh"}
	_, err = svc.ValidateToken(sign(cfg.Secret, refresh))
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
