package services_test

import (
	"log"
	"os"
	"testing"
	"time"

	"filedrop/internal/apperrors"
	"filedrop/internal/models"
	"filedrop/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	hash, salt, err := services.HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.NotEmpty(t, salt)
	// The stored salt is the prefix segment of the digest.
	assert.Equal(t, hash[:len(salt)], salt)
	assert.True(t, services.CheckPassword("password123", hash))
	assert.False(t, services.CheckPassword("wrongpassword", hash))

	// A fresh salt is generated for every call.
	hash2, salt2, err := services.HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
	assert.NotEqual(t, salt, salt2)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Test successful registration
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, apperrors.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created := args.Get(0).(*models.User)
		assert.Equal(t, "testuser", created.Username)
		assert.Equal(t, "test@example.com", created.Email)
		// The stored hash must verify against the submitted password and
		// never equal the plaintext.
		assert.NotEqual(t, "password123", created.PasswordHash)
		assert.True(t, services.CheckPassword("password123", created.PasswordHash))
		assert.NotEmpty(t, created.Salt)
	}).Return(nil).Once()

	user, err := authService.RegisterUser("testuser", "test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotNil(t, user)
	mockRepo.AssertExpectations(t)

	// Test email already registered: the store is untouched.
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser("testuser", "test@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hash, salt, err := services.HashPassword("password123")
	assert.NoError(t, err)
	user := &models.User{
		ID:           "user-123",
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: hash,
		Salt:         salt,
	}

	// Test successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	loggedIn, token, err := authService.LoginUser("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	// The embedded subject equals the user's id and the token verifies
	// immediately afterward.
	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, errWrongPass := authService.LoginUser("test@example.com", "wrongpassword")
	assert.ErrorIs(t, errWrongPass, apperrors.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (unknown email): identical error.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()
	_, _, errNoUser := authService.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, errNoUser, apperrors.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Test valid token issued by the service
	validToken, err := authService.IssueToken("user-123")
	assert.NoError(t, err)
	claims, err := authService.ValidateToken(validToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Test token signed with a different secret
	otherService := services.NewAuthService(mockRepo, "other_secret")
	otherToken, err := otherService.IssueToken("user-123")
	assert.NoError(t, err)
	_, err = authService.ValidateToken(otherToken)
	assert.Error(t, err)

	// Test expired token
	expired := signedTokenAt(t, testJWTSecret, "user-123", time.Now().Add(-time.Hour))
	_, err = authService.ValidateToken(expired)
	assert.Error(t, err)

	// Boundary: a token is rejected at or after its exact expiry instant.
	boundary := signedTokenAt(t, testJWTSecret, "user-123", time.Now())
	_, err = authService.ValidateToken(boundary)
	assert.Error(t, err)
}

// signedTokenAt crafts a token with the service's claims shape and the given
// expiry, issued 24 hours before it.
func signedTokenAt(t *testing.T, secret, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := &services.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}
