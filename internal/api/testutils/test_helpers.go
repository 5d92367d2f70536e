package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rwalia/estatehub-server/internal/api"
	"github.com/rwalia/estatehub-server/internal/models"
	"github.com/rwalia/estatehub-server/internal/repository"
	"github.com/rwalia/estatehub-server/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key"

// TestContext holds all dependencies for tests
type TestContext struct {
	Router      *gin.Engine
	Repository  *repository.MemoryRepository
	Service     service.Service
	JWTSecret   []byte
	TestUserJWT string
}

// SetupTestContext builds a full router on top of the in-memory repository.
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	repo := repository.NewMemoryRepository()
	svc := service.NewDefaultService(repo, zap.NewNop(), testJWTSecret)

	cache := api.NewListingCache(nil, 0) // no Redis in tests
	handler := api.NewHandler(svc, zap.NewNop(), cache, t.TempDir())

	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(testJWTSecret))
		c.Next()
	})

	handler.SetupRoutes(router)

	token := createTestAccount(t, repo)

	return &TestContext{
		Router:      router,
		Repository:  repo,
		Service:     svc,
		JWTSecret:   []byte(testJWTSecret),
		TestUserJWT: token,
	}
}

// createTestAccount seeds one builder account and returns a valid JWT for it.
func createTestAccount(t *testing.T, repo repository.Repository) string {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)

	account := &models.Account{
		Role:         "builder",
		Username:     "b1",
		PasswordHash: string(hashedPassword),
		Email:        "b1@example.com",
		FirstName:    "Bala",
		LastName:     "Iyer",
		Contact:      "9876543210",
		CreatedDate:  time.Now().Format("2006-01-02"),
	}
	require.NoError(t, repo.CreateAccount(context.Background(), account))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  account.Username,
		"role": account.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	return tokenString
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// PerformMultipartRequest uploads files plus form fields to the router.
func PerformMultipartRequest(r http.Handler, path string, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}
	for name, content := range files {
		part, _ := writer.CreateFormFile("files", name)
		_, _ = part.Write(content)
	}
	_ = writer.Close()

	req, _ := http.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}

// DecodeBody unmarshals a recorded JSON response into a generic map.
func DecodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
