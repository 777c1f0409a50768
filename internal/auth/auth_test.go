package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfield/crmd/internal/auth"
)

const testSecret = "test-secret"

func TestMintParse(t *testing.T) {
	token, err := auth.Mint(testSecret, "tenant-1", "user-1", "Ada", time.Hour)
	require.NoError(t, err)

	claims, err := auth.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := auth.Mint(testSecret, "tenant-1", "user-1", "", time.Hour)
	require.NoError(t, err)

	_, err = auth.Parse("other-secret", token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	token, err := auth.Mint(testSecret, "tenant-1", "user-1", "", -time.Minute)
	require.NoError(t, err)

	_, err = auth.Parse(testSecret, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	var gotTenant string

	handler := auth.Middleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant = auth.TenantID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	type testCase struct {
		name       string
		authHeader func(t *testing.T) string
		wantStatus int
		wantTenant string
	}

	tests := []testCase{
		{
			name: "ValidToken",
			authHeader: func(t *testing.T) string {
				token, err := auth.Mint(testSecret, "tenant-9", "user-1", "", time.Hour)
				require.NoError(t, err)
				return "Bearer " + token
			},
			wantStatus: http.StatusOK,
			wantTenant: "tenant-9",
		},
		{
			name:       "MissingHeader",
			authHeader: func(t *testing.T) string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Garbage",
			authHeader: func(t *testing.T) string { return "Bearer not-a-token" },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTenant = ""

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if h := tt.authHeader(t); h != "" {
				req.Header.Set("Authorization", h)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantTenant, gotTenant)
		})
	}
}
