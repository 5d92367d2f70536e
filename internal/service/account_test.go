package service

import (
	"context"
	"testing"

	"github.com/rwalia/estatehub-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func signUpTestAccount(t *testing.T, svc *DefaultService) {
	t.Helper()

	resp, err := svc.SignUp(context.Background(), models.SignUpRequest{
		Role:      "builder",
		Username:  "b1",
		Password:  "secret123",
		Email:     "b1@example.com",
		FirstName: "Bala",
		LastName:  "Iyer",
		Contact:   "9800000000",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
}

func TestSignUpStoresBcryptHash(t *testing.T) {
	svc, repo := newTestService()
	signUpTestAccount(t, svc)

	account, err := repo.GetAccountByUsername(context.Background(), "b1")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.NotEqual(t, "secret123", account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret123")))
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	signUpTestAccount(t, svc)

	_, err := svc.SignUp(context.Background(), models.SignUpRequest{
		Role:      "builder",
		Username:  "other",
		Password:  "x12345",
		Email:     "b1@example.com",
		FirstName: "A",
		LastName:  "B",
		Contact:   "1",
	})
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestLoginGenericFailure(t *testing.T) {
	svc, _ := newTestService()
	signUpTestAccount(t, svc)
	ctx := context.Background()

	// Wrong password and unknown user both yield the same sentinel
	_, err := svc.Login(ctx, models.LoginRequest{Role: "builder", Username: "b1", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Role: "builder", Username: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Same credentials under the wrong role fail too
	_, err = svc.Login(ctx, models.LoginRequest{Role: "buyer", Username: "b1", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUnifiedLoginByEmailCaseInsensitive(t *testing.T) {
	svc, _ := newTestService()
	signUpTestAccount(t, svc)

	resp, err := svc.UnifiedLogin(context.Background(), models.UnifiedLoginRequest{
		Username: "B1@Example.COM",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "b1", resp.Username)
	assert.Equal(t, "builder", resp.Role)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Login successful! Welcome, Bala.", resp.Message)
}

func TestRoleLoginOmitsRole(t *testing.T) {
	svc, _ := newTestService()
	signUpTestAccount(t, svc)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Role:     "builder",
		Username: "b1",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Role)
}

func TestUpdateAccountPartial(t *testing.T) {
	svc, repo := newTestService()
	signUpTestAccount(t, svc)
	ctx := context.Background()

	_, err := svc.UpdateAccount(ctx, models.UpdateAccountRequest{
		Username: "b1",
		Phone:    "9811111111",
	})
	require.NoError(t, err)

	account, err := repo.GetAccountByUsername(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "9811111111", account.Contact)
	assert.Equal(t, "Bala", account.FirstName)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, _ := newTestService()
	signUpTestAccount(t, svc)
	ctx := context.Background()

	_, err := svc.ChangePassword(ctx, models.ChangePasswordRequest{
		Username:        "b1",
		CurrentPassword: "wrong",
		NewPassword:     "newpass456",
	})
	assert.ErrorIs(t, err, ErrAuth)

	_, err = svc.ChangePassword(ctx, models.ChangePasswordRequest{
		Username:        "b1",
		CurrentPassword: "secret123",
		NewPassword:     "newpass456",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Role: "builder", Username: "b1", Password: "newpass456"})
	assert.NoError(t, err)
}
