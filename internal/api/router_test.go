package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/crimewatch/crimewatch-backend-go/internal/analysis"
	"github.com/crimewatch/crimewatch-backend-go/internal/config"
	"github.com/crimewatch/crimewatch-backend-go/internal/database"
	"github.com/crimewatch/crimewatch-backend-go/internal/handler"
	"github.com/crimewatch/crimewatch-backend-go/internal/repository"
	"github.com/crimewatch/crimewatch-backend-go/internal/service"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:             ":0",
		JWTSecret:        "test-secret",
		AdminUser:        "admin",
		AdminPassword:    "hunter2",
		AnalysisSeed:     42,
		DefaultCenterLat: 13.0827,
		DefaultCenterLng: 80.2707,
	}

	incidentRepo := repository.NewIncidentRepository(db)
	runRepo := repository.NewAnalysisRunRepository(db)
	engine := analysis.NewEngine(analysis.Options{
		Seed:             cfg.AnalysisSeed,
		DefaultCenterLat: cfg.DefaultCenterLat,
		DefaultCenterLng: cfg.DefaultCenterLng,
	})
	incidentService := service.NewIncidentService(incidentRepo)
	analysisService := service.NewAnalysisService(engine, incidentRepo, runRepo)

	return SetupRouter(cfg, Handlers{
		Auth:     handler.NewAuthHandler(cfg),
		Incident: handler.NewIncidentHandler(incidentService),
		Analysis: handler.NewAnalysisHandler(analysisService),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"username":"admin","password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Token)
	return body.Data.Token
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"username":"admin","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateIncidentRequiresAuth(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/incidents",
		`{"crime_type":"theft"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIncidentLifecycle(t *testing.T) {
	router := testRouter(t)
	token := login(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/incidents",
		`{"crime_type":"Theft","latitude":13.05,"longitude":80.25,"date":"2024-01-15","time":"20:00"}`, token)
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Data struct {
			ID        string `json:"id"`
			CrimeType string `json:"crime_type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Data.ID)
	assert.Equal(t, "theft", created.Data.CrimeType)

	w = doJSON(t, router, http.MethodGet, "/api/v1/incidents?limit=10", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Data.ID)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestCreateIncidentValidation(t *testing.T) {
	router := testRouter(t)
	token := login(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/incidents",
		`{"crime_type":""}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/incidents",
		`{"crime_type":"theft","latitude":95.0}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzePatternsInline(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/analysis/patterns",
		`{"incidents":[
			{"crime_type":"theft","latitude":13.05,"longitude":80.25,"date":"2024-01-15","time":"20:00"},
			{"crime_type":"theft","latitude":13.05,"longitude":80.25,"date":"2024-01-15","time":"20:00"},
			{"crime_type":"theft","latitude":13.05,"longitude":80.25,"date":"2024-01-15","time":"20:00"}
		]}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			TotalIncidents  int `json:"total_incidents"`
			SpatialClusters struct {
				NoisePoints int `json:"noise_points"`
			} `json:"spatial_clusters"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.TotalIncidents)
	assert.Equal(t, 3, body.Data.SpatialClusters.NoisePoints)
}

func TestAnalysisRunLifecycle(t *testing.T) {
	router := testRouter(t)
	token := login(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/incidents",
		`{"crime_type":"theft","latitude":13.05,"longitude":80.25,"date":"2024-01-15","time":"20:00"}`, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/analysis/runs", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Data struct {
			RunID          string `json:"run_id"`
			TotalIncidents int    `json:"total_incidents"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.RunID)
	assert.Equal(t, 1, created.Data.TotalIncidents)

	w = doJSON(t, router, http.MethodGet, "/api/v1/analysis/runs/"+created.Data.RunID, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Data.RunID)

	w = doJSON(t, router, http.MethodGet, "/api/v1/analysis/runs/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
