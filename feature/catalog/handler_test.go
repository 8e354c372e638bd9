package catalog

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	handler := NewHandler(newTestService(db), zap.NewNop())
	handler.RegisterRoutes(app)
	return app
}

func decodeBody(t *testing.T, body io.Reader, out any) {
	t.Helper()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestHandleStatus(t *testing.T) {
	db := setupServiceDB(t, "handler_status")
	app := newTestApp(db)

	resp, err := app.Test(httptest.NewRequest("GET", "/catalog/status", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status StagingStatus
	decodeBody(t, resp.Body, &status)
	assert.Equal(t, "actors", status.Role)
	assert.Equal(t, "temp_actors_titles", status.Table)
	assert.False(t, status.Exists)
}

func TestHandleStatusUnknownRole(t *testing.T) {
	db := setupServiceDB(t, "handler_status_role")
	app := newTestApp(db)

	resp, err := app.Test(httptest.NewRequest("GET", "/catalog/status?role=writers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStagingAndProcessEndpoints(t *testing.T) {
	db := setupServiceDB(t, "handler_pipeline")
	require.NoError(t, db.Create(&models.Title{Code: "s1"}).Error)
	require.NoError(t, db.Create(&exportTitle{ShowID: "s1", Cast: "Alice, Bob", Director: "Dora"}).Error)

	app := newTestApp(db)

	resp, err := app.Test(httptest.NewRequest("POST", "/catalog/staging?role=actors", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var build map[string]any
	decodeBody(t, resp.Body, &build)
	assert.EqualValues(t, 2, build["staging_rows"])

	resp, err = app.Test(httptest.NewRequest("POST", "/catalog/process?role=actors&batch_size=10", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary map[string]any
	decodeBody(t, resp.Body, &summary)
	assert.EqualValues(t, 2, summary["created"])
	assert.EqualValues(t, 0, summary["failed"])

	resp, err = app.Test(httptest.NewRequest("GET", "/catalog/runs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var runs struct {
		Summary []map[string]any `json:"summary"`
		Latest  []map[string]any `json:"latest"`
	}
	decodeBody(t, resp.Body, &runs)
	assert.Len(t, runs.Summary, 2)
	assert.Len(t, runs.Latest, 2)
}

func TestProcessEndpointWithoutStaging(t *testing.T) {
	db := setupServiceDB(t, "handler_nostaging")
	app := newTestApp(db)

	resp, err := app.Test(httptest.NewRequest("POST", "/catalog/process", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestHandleSchema(t *testing.T) {
	db := setupServiceDB(t, "handler_schema")
	app := newTestApp(db)

	resp, err := app.Test(httptest.NewRequest("GET", "/catalog/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reports []map[string]any
	decodeBody(t, resp.Body, &reports)
	assert.Len(t, reports, 7)
}
