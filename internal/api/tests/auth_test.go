package tests

import (
	"net/http"
	"testing"

	"github.com/rwalia/estatehub-server/internal/api/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpAndUnifiedLogin(t *testing.T) {
	tc := testutils.SetupTestContext(t)

	signup := map[string]string{
		"role":      "consultant",
		"username":  "carol",
		"password":  "supersecret1",
		"email":     "Carol@Example.com",
		"firstname": "Carol",
		"lastname":  "Nair",
		"contact":   "9000000001",
	}
	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/signup", signup, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := testutils.DecodeBody(t, w)
	assert.Equal(t, true, body["success"])

	// Login with the username
	w = testutils.PerformRequest(tc.Router, http.MethodPost, "/unified-login", map[string]string{
		"username": "carol",
		"password": "supersecret1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = testutils.DecodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "consultant", body["role"])
	assert.NotEmpty(t, body["token"])

	// Login with the email in a different casing
	w = testutils.PerformRequest(tc.Router, http.MethodPost, "/unified-login", map[string]string{
		"username": "carol@example.com",
		"password": "supersecret1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = testutils.DecodeBody(t, w)
	assert.Equal(t, true, body["success"])
}

func TestUnifiedLoginGenericFailure(t *testing.T) {
	tc := testutils.SetupTestContext(t)

	// Wrong password and unknown identifier produce the same generic message
	wrongPassword := testutils.PerformRequest(tc.Router, http.MethodPost, "/unified-login", map[string]string{
		"username": "b1",
		"password": "not-the-password",
	}, nil)
	unknownUser := testutils.PerformRequest(tc.Router, http.MethodPost, "/unified-login", map[string]string{
		"username": "nobody",
		"password": "whatever",
	}, nil)

	require.Equal(t, http.StatusOK, wrongPassword.Code)
	require.Equal(t, http.StatusOK, unknownUser.Code)

	bodyA := testutils.DecodeBody(t, wrongPassword)
	bodyB := testutils.DecodeBody(t, unknownUser)
	assert.Equal(t, false, bodyA["success"])
	assert.Equal(t, false, bodyB["success"])
	assert.Equal(t, bodyA["message"], bodyB["message"])
}

func TestSignUpDuplicate(t *testing.T) {
	tc := testutils.SetupTestContext(t)

	signup := map[string]string{
		"role":      "builder",
		"username":  "b1", // already seeded by the test context
		"password":  "supersecret1",
		"email":     "other@example.com",
		"firstname": "Other",
		"lastname":  "Builder",
		"contact":   "9000000002",
	}
	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/signup", signup, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := testutils.DecodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Username or Email already in use.", body["message"])
}

func TestRoleLogin(t *testing.T) {
	tc := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/login", map[string]string{
		"role":     "builder",
		"username": "b1",
		"password": "testpassword",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := testutils.DecodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "b1", body["username"])

	// Same credentials under the wrong role fail
	w = testutils.PerformRequest(tc.Router, http.MethodPost, "/login", map[string]string{
		"role":     "consultant",
		"username": "b1",
		"password": "testpassword",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = testutils.DecodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestChangePassword(t *testing.T) {
	tc := testutils.SetupTestContext(t)

	// No token
	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/change_password", map[string]string{
		"username":         "b1",
		"current_password": "testpassword",
		"new_password":     "brandnewpass1",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong current password
	w = testutils.PerformRequest(tc.Router, http.MethodPost, "/change_password", map[string]string{
		"username":         "b1",
		"current_password": "wrongpassword",
		"new_password":     "brandnewpass1",
	}, testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct current password
	w = testutils.PerformRequest(tc.Router, http.MethodPost, "/change_password", map[string]string{
		"username":         "b1",
		"current_password": "testpassword",
		"new_password":     "brandnewpass1",
	}, testutils.AuthHeaders(tc.TestUserJWT))
	require.Equal(t, http.StatusOK, w.Code)

	// The new password works for login
	w = testutils.PerformRequest(tc.Router, http.MethodPost, "/unified-login", map[string]string{
		"username": "b1",
		"password": "brandnewpass1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := testutils.DecodeBody(t, w)
	assert.Equal(t, true, body["success"])
}

func TestUpdateUser(t *testing.T) {
	tc := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/update_user", map[string]string{
		"username": "b1",
		"phone":    "9999999999",
	}, testutils.AuthHeaders(tc.TestUserJWT))
	require.Equal(t, http.StatusOK, w.Code)

	// Untouched fields keep their values
	w = testutils.PerformRequest(tc.Router, http.MethodPost, "/unified-login", map[string]string{
		"username": "b1",
		"password": "testpassword",
	}, nil)
	body := testutils.DecodeBody(t, w)
	assert.Equal(t, "9999999999", body["contact"])
	assert.Equal(t, "Bala", body["firstname"])

	// Unknown user
	w = testutils.PerformRequest(tc.Router, http.MethodPost, "/update_user", map[string]string{
		"username": "ghost",
		"phone":    "1",
	}, testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
