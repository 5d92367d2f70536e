package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rwalia/estatehub-server/internal/models"
	"github.com/rwalia/estatehub-server/internal/repository"
	"go.uber.org/zap"
)

// Service defines all the business logic operations
type Service interface {
	// Accounts
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.StatusResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	UnifiedLogin(ctx context.Context, req models.UnifiedLoginRequest) (*models.AuthResponse, error)
	UpdateAccount(ctx context.Context, req models.UpdateAccountRequest) (*models.StatusResponse, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.StatusResponse, error)

	// Listing lifecycle
	CreateListing(ctx context.Context, req models.CreateListingRequest) (*models.CreateListingResponse, error)
	UpdateListingCore(ctx context.Context, originalTimestamp string, updates map[string]any) (*models.UpdateResponse, error)
	UpdateProfileData(ctx context.Context, req models.UpdateProfileDataRequest) (*models.UpdateResponse, error)
	SoftDeleteListing(ctx context.Context, originalTimestamp, builderUsername string) (*models.StatusResponse, error)
	GetMergedListing(ctx context.Context, timestamp string) (map[string]any, error)
	GetListingsByBuilder(ctx context.Context, builderUsername string) ([]models.Listing, error)
	GetProfileChangeLog(ctx context.Context, listingTimestamp string) ([]models.ProfileChangeLogEntry, error)

	// Amenity catalog
	ListAmenities(ctx context.Context) []models.AmenityDescriptor
	AddAmenityIfAbsent(ctx context.Context, amenity models.AmenityDescriptor) bool

	// Media
	RecordMediaUpload(ctx context.Context, listingTimestamp, editorUsername string, filenames []string)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	log           *zap.Logger
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, log *zap.Logger, jwtSecret string) *DefaultService {
	return &DefaultService{
		repo:          repo,
		log:           log,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
	}
}

// generateJWT issues a session token for a logged-in account.
func (s *DefaultService) generateJWT(account *models.Account) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub":  account.Username,
		"role": account.Role,
		"exp":  expirationTime.Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
