package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"antrian/internal/logger"
	"antrian/internal/metrics"
)

func TestRequestLogger_RecordsHandlerErrors(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logger.NewWithWriter("info", &buf)))
	e.Use(metrics.Middleware())
	e.GET("/api/layanan", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusConflict, "layanan already exists")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layanan", nil))
	require.Equal(t, http.StatusConflict, rec.Code)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "warning", line["level"])
	assert.EqualValues(t, http.StatusConflict, line["status"])
	assert.Contains(t, line["error"], "layanan already exists")

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "info", line["level"])
}
