package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/lindo/claim-system-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful login",
			request: map[string]string{
				"userName": "loginuser",
				"password": "correctpassword",
			},
			setup: func() {
				user, _ := testutil.NewUserBuilder().
					WithUsername("loginuser").
					WithPassword("correctpassword").
					Build(t, ts.DB.DB)
				role := testutil.CreateRole(t, ts.DB.DB, "Lecturer")
				testutil.AssignRoles(t, ts.DB.DB, user.ID, role.ID)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.True(t, result.Success)
				assert.NotEmpty(t, result.SessionID)
				require.NotNil(t, result.User)
				assert.Equal(t, "loginuser", result.User.Username)
				assert.Equal(t, []string{"Lecturer"}, result.User.Roles)
			},
		},
		{
			name: "wrong password",
			request: map[string]string{
				"userName": "loginuser",
				"password": "wrongpassword",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("loginuser").
					WithPassword("correctpassword").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertFailureMessage(t, resp, http.StatusUnauthorized, "Password is invalid")
			},
		},
		{
			name: "unknown username",
			request: map[string]string{
				"userName": "nobody",
				"password": "anypassword",
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertFailureMessage(t, resp, http.StatusUnauthorized, "Username is invalid")
			},
		},
		{
			name: "missing password",
			request: map[string]string{
				"userName": "loginuser",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty request body",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := postJSON(t, ts.APIURL("/login"), tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_ValidateSession(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("valid session", func(t *testing.T) {
		ts.DB.Truncate(t)
		user, password := testutil.NewUserBuilder().Build(t, ts.DB.DB)
		sessionID := testutil.LoginSession(t, ts, user.Username, password)

		resp := postJSON(t, ts.APIURL("/validate"), map[string]string{"sessionId": sessionID})
		defer resp.Body.Close()

		var result testutil.AuthResponse
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertJSONResponse(t, resp, &result)
		assert.True(t, result.Success)
		assert.Equal(t, "Session is valid", result.Message)
		require.NotNil(t, result.User)
		assert.Equal(t, user.Username, result.User.Username)
	})

	t.Run("unknown session", func(t *testing.T) {
		ts.DB.Truncate(t)

		resp := postJSON(t, ts.APIURL("/validate"), map[string]string{"sessionId": "deadbeef"})
		defer resp.Body.Close()

		testutil.AssertFailureMessage(t, resp, http.StatusUnauthorized, "Session not found")
	})

	t.Run("expired session", func(t *testing.T) {
		ts.DB.Truncate(t)
		user, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
		session := testutil.NewSessionBuilder(user.ID).Expired().Build(t, ts.DB.DB)

		resp := postJSON(t, ts.APIURL("/validate"), map[string]string{"sessionId": session.ID})
		defer resp.Body.Close()

		testutil.AssertFailureMessage(t, resp, http.StatusUnauthorized, "Session has expired")
	})

	t.Run("missing session id", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/validate"), map[string]string{})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("active session logs out once", func(t *testing.T) {
		ts.DB.Truncate(t)
		user, password := testutil.NewUserBuilder().Build(t, ts.DB.DB)
		sessionID := testutil.LoginSession(t, ts, user.Username, password)

		resp := postJSON(t, ts.APIURL("/logout"), map[string]string{"sessionId": sessionID})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		// The session no longer validates.
		check := postJSON(t, ts.APIURL("/validate"), map[string]string{"sessionId": sessionID})
		defer check.Body.Close()
		testutil.AssertStatusCode(t, check, http.StatusUnauthorized)

		// A repeat logout fails.
		again := postJSON(t, ts.APIURL("/logout"), map[string]string{"sessionId": sessionID})
		defer again.Body.Close()
		testutil.AssertStatusCode(t, again, http.StatusBadRequest)
	})

	t.Run("unknown session fails", func(t *testing.T) {
		ts.DB.Truncate(t)

		resp := postJSON(t, ts.APIURL("/logout"), map[string]string{"sessionId": "nosuchsession"})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}
