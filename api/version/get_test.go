package version

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		deps         *types.Dependencies
		path         string
		expectedBody map[string]interface{}
	}{
		{
			name: "build info from dependencies",
			deps: &types.Dependencies{Build: types.BuildInfo{Version: "1.2.3", GitCommit: "abc123", BuildTime: "2024-06-01"}},
			path: "/version",
			expectedBody: map[string]interface{}{
				"name":       "Clipper API",
				"version":    "1.2.3",
				"git_commit": "abc123",
				"status":     "running",
			},
		},
		{
			name: "root without dependencies",
			path: "/",
			expectedBody: map[string]interface{}{
				"name":    "Clipper API",
				"version": "dev",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			RegisterRoutes(router, tt.deps)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			for key, expectedValue := range tt.expectedBody {
				assert.Equal(t, expectedValue, response[key], "Key: %s", key)
			}
		})
	}
}
