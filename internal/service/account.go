package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rwalia/estatehub-server/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// SignUp registers a new account. The (role, username-or-email) pair must be
// unique; passwords are stored as bcrypt hashes.
func (s *DefaultService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.StatusResponse, error) {
	if req.Role == "" || req.Username == "" || req.Password == "" || req.Email == "" ||
		req.FirstName == "" || req.LastName == "" || req.Contact == "" {
		return nil, fmt.Errorf("%w: missing required signup fields", ErrValidation)
	}

	exists, err := s.repo.AccountExists(ctx, req.Role, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: error checking account existence: %v", ErrStore, err)
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Role:         req.Role,
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Contact:      req.Contact,
		CreatedDate:  time.Now().Format("2006-01-02"),
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("%w: error saving account: %v", ErrStore, err)
	}

	return &models.StatusResponse{
		Success: true,
		Message: "Account created successfully! You can now login.",
	}, nil
}

// Login authenticates a (role, username, password) triple. Failures are
// generic so the response reveals nothing about which part was wrong.
func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if req.Role == "" || req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: missing username, password, or role", ErrValidation)
	}

	account, err := s.repo.GetAccountByRoleAndUsername(ctx, req.Role, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading account: %v", ErrStore, err)
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(account, false)
}

// UnifiedLogin authenticates against either the username or the email
// address, case-insensitively, and detects the account's role.
func (s *DefaultService) UnifiedLogin(ctx context.Context, req models.UnifiedLoginRequest) (*models.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: missing username/email or password", ErrValidation)
	}

	account, err := s.repo.FindAccountByIdentifier(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading account: %v", ErrStore, err)
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(account, true)
}

// UpdateAccount overwrites the provided profile fields; empty fields keep
// their stored value.
func (s *DefaultService) UpdateAccount(ctx context.Context, req models.UpdateAccountRequest) (*models.StatusResponse, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}

	account, err := s.repo.GetAccountByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading account: %v", ErrStore, err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	if req.FirstName != "" {
		account.FirstName = req.FirstName
	}
	if req.LastName != "" {
		account.LastName = req.LastName
	}
	if req.Email != "" {
		account.Email = req.Email
	}
	if req.Phone != "" {
		account.Contact = req.Phone
	}

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("%w: error saving account: %v", ErrStore, err)
	}

	s.logAction(ctx, ActionUpdateProfile, req.Username, "Updated profile information")

	return &models.StatusResponse{
		Success: true,
		Message: "Profile updated successfully.",
	}, nil
}

// ChangePassword verifies the current password before storing a fresh hash of
// the new one.
func (s *DefaultService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.StatusResponse, error) {
	if req.Username == "" || req.CurrentPassword == "" || req.NewPassword == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	account, err := s.repo.GetAccountByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading account: %v", ErrStore, err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return nil, fmt.Errorf("%w: current password is incorrect", ErrAuth)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	account.PasswordHash = string(hashedPassword)

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("%w: error saving account: %v", ErrStore, err)
	}

	s.logAction(ctx, ActionChangePassword, req.Username, "Password changed successfully")

	return &models.StatusResponse{
		Success: true,
		Message: "Password changed successfully.",
	}, nil
}

func (s *DefaultService) authResponse(account *models.Account, includeRole bool) (*models.AuthResponse, error) {
	token, err := s.generateJWT(account)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	resp := &models.AuthResponse{
		Success:   true,
		Message:   fmt.Sprintf("Login successful! Welcome, %s.", account.FirstName),
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Username:  account.Username,
		Email:     account.Email,
		Contact:   account.Contact,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}
	if includeRole {
		resp.Role = account.Role
	}
	return resp, nil
}
