package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/tracker/internal/application/adapter"
	"github.com/finance-tracker/tracker/internal/domain/entity"
	domainerror "github.com/finance-tracker/tracker/internal/domain/error"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) VerifyPassword(hashedPassword, password string) error {
	return m.Called(hashedPassword, password).Error(0)
}

func (m *mockPasswordService) ValidatePasswordStrength(password string) error {
	return m.Called(password).Error(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, userID uuid.UUID, email string) (string, *adapter.TokenClaims, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*adapter.TokenClaims), args.Error(2)
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adapter.TokenClaims), args.Error(1)
}

func (m *mockTokenService) RevokeAccessToken(ctx context.Context, claims *adapter.TokenClaims) error {
	return m.Called(ctx, claims).Error(0)
}

func authErrorCode(t *testing.T, err error) domainerror.AuthErrorCode {
	t.Helper()
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr), "expected an AuthError, got %v", err)
	return authErr.Code
}

func TestRegisterUser_Success(t *testing.T) {
	users := &mockUserRepository{}
	passwords := &mockPasswordService{}
	tokens := &mockTokenService{}
	claims := &adapter.TokenClaims{TokenID: "jti", ExpiresAt: time.Now().Add(time.Hour)}

	passwords.On("ValidatePasswordStrength", "secret1").Return(nil)
	users.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(false, nil)
	passwords.On("HashPassword", "secret1").Return("hashed", nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "ana@example.com" && u.PasswordHash == "hashed"
	})).Return(nil)
	tokens.On("GenerateAccessToken", mock.Anything, mock.Anything, "ana@example.com").Return("signed", claims, nil)

	out, err := NewRegisterUserUseCase(users, passwords, tokens).Execute(context.Background(), RegisterUserInput{
		Email:    "  Ana@Example.com ",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed", out.AccessToken)
	assert.Equal(t, "ana@example.com", out.User.Email)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestRegisterUser_Rejections(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		_, err := NewRegisterUserUseCase(&mockUserRepository{}, &mockPasswordService{}, &mockTokenService{}).
			Execute(context.Background(), RegisterUserInput{Email: "ana@example.com"})
		assert.Equal(t, domainerror.ErrCodeMissingFields, authErrorCode(t, err))
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewRegisterUserUseCase(&mockUserRepository{}, &mockPasswordService{}, &mockTokenService{}).
			Execute(context.Background(), RegisterUserInput{Email: "ana", Password: "secret1"})
		assert.Equal(t, domainerror.ErrCodeInvalidEmail, authErrorCode(t, err))
	})

	t.Run("weak password", func(t *testing.T) {
		passwords := &mockPasswordService{}
		passwords.On("ValidatePasswordStrength", "123").Return(errors.New("too short"))

		_, err := NewRegisterUserUseCase(&mockUserRepository{}, passwords, &mockTokenService{}).
			Execute(context.Background(), RegisterUserInput{Email: "ana@example.com", Password: "123"})
		assert.Equal(t, domainerror.ErrCodeWeakPassword, authErrorCode(t, err))
	})

	t.Run("email taken", func(t *testing.T) {
		users := &mockUserRepository{}
		passwords := &mockPasswordService{}
		passwords.On("ValidatePasswordStrength", mock.Anything).Return(nil)
		users.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(true, nil)

		_, err := NewRegisterUserUseCase(users, passwords, &mockTokenService{}).
			Execute(context.Background(), RegisterUserInput{Email: "ana@example.com", Password: "secret1"})
		assert.Equal(t, domainerror.ErrCodeEmailExists, authErrorCode(t, err))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("email taken between check and insert", func(t *testing.T) {
		users := &mockUserRepository{}
		passwords := &mockPasswordService{}
		tokens := &mockTokenService{}
		passwords.On("ValidatePasswordStrength", mock.Anything).Return(nil)
		passwords.On("HashPassword", mock.Anything).Return("hashed", nil)
		users.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(false, nil)
		users.On("Create", mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: ana@example.com", domainerror.ErrEmailAlreadyExists))

		_, err := NewRegisterUserUseCase(users, passwords, tokens).
			Execute(context.Background(), RegisterUserInput{Email: "ana@example.com", Password: "secret1"})
		assert.Equal(t, domainerror.ErrCodeEmailExists, authErrorCode(t, err))
		assert.ErrorIs(t, err, domainerror.ErrEmailAlreadyExists)
		tokens.AssertNotCalled(t, "GenerateAccessToken", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLoginUser(t *testing.T) {
	user := entity.NewUser("ana@example.com", "hashed")

	t.Run("valid credentials", func(t *testing.T) {
		users := &mockUserRepository{}
		passwords := &mockPasswordService{}
		tokens := &mockTokenService{}
		users.On("FindByEmail", mock.Anything, "ana@example.com").Return(user, nil)
		passwords.On("VerifyPassword", "hashed", "secret1").Return(nil)
		tokens.On("GenerateAccessToken", mock.Anything, user.ID, user.Email).Return("signed", &adapter.TokenClaims{UserID: user.ID}, nil)

		out, err := NewLoginUserUseCase(users, passwords, tokens).
			Execute(context.Background(), LoginUserInput{Email: "ANA@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "signed", out.AccessToken)
		assert.Equal(t, user.ID, out.User.ID)
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		users := &mockUserRepository{}
		passwords := &mockPasswordService{}
		users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, domainerror.ErrUserNotFound)
		users.On("FindByEmail", mock.Anything, "ana@example.com").Return(user, nil)
		passwords.On("VerifyPassword", "hashed", "wrong1").Return(errors.New("mismatch"))

		uc := NewLoginUserUseCase(users, passwords, &mockTokenService{})
		_, unknownErr := uc.Execute(context.Background(), LoginUserInput{Email: "nobody@example.com", Password: "secret1"})
		_, wrongErr := uc.Execute(context.Background(), LoginUserInput{Email: "ana@example.com", Password: "wrong1"})

		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authErrorCode(t, unknownErr))
		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authErrorCode(t, wrongErr))
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})
}

func TestLogoutUser_RevocationFailureIsNotFatal(t *testing.T) {
	tokens := &mockTokenService{}
	claims := &adapter.TokenClaims{UserID: uuid.New(), TokenID: "jti"}
	tokens.On("RevokeAccessToken", mock.Anything, claims).Return(errors.New("redis down"))

	out, err := NewLogoutUserUseCase(tokens).Execute(context.Background(), LogoutUserInput{Claims: claims})

	require.NoError(t, err)
	assert.Equal(t, "Successfully logged out", out.Message)
	tokens.AssertExpectations(t)
}
