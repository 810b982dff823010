package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/GloryMsasalaga/django-voice/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupDeps      func(t *testing.T) *types.Dependencies
		expectedStatus int
		expectedDB     string
	}{
		{
			name: "healthy with database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"), false)
				require.NoError(t, err)
				t.Cleanup(func() { _ = db.Close() })
				return &types.Dependencies{DB: db}
			},
			expectedStatus: http.StatusOK,
			expectedDB:     "healthy",
		},
		{
			name: "healthy without database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				return &types.Dependencies{}
			},
			expectedStatus: http.StatusOK,
			expectedDB:     "not configured",
		},
		{
			name: "unhealthy with closed database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"), false)
				require.NoError(t, err)
				sqlDB, err := db.DB.DB()
				require.NoError(t, err)
				sqlDB.Close()
				return &types.Dependencies{DB: db}
			},
			expectedStatus: http.StatusOK,
			expectedDB:     "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

			Get(tt.setupDeps(t))(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "ok", body["status"])

			dbStatus, ok := body["database"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.expectedDB, dbStatus["status"])
		})
	}
}
