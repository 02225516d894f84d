package prometheus

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRequests(t *testing.T) {
	m := NewMetrics("docket", prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/registries/:id", func(c echo.Context) error {
		if c.Param("id") == "404" {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{})
	})

	for _, id := range []string{"1", "2", "404"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/registries/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/registries/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/registries/:id", "404")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StatusCategoryTotal.WithLabelValues("2xx", "GET", "/api/registries/:id")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusCategoryTotal.WithLabelValues("4xx", "GET", "/api/registries/:id")))
}

func TestMiddleware_UsesHTTPErrorCode(t *testing.T) {
	m := NewMetrics("docket", prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusServiceUnavailable)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusCategoryTotal.WithLabelValues("5xx", "GET", "/fail")))
}

func TestMiddleware_PlainErrorCountsAsServerError(t *testing.T) {
	m := NewMetrics("docket", prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/allregistries", func(c echo.Context) error {
		return errors.New("template: no such template")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/allregistries", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/allregistries", "500")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/allregistries", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusCategoryTotal.WithLabelValues("5xx", "GET", "/allregistries")))
}

func TestRecordOperationAndTrackDB(t *testing.T) {
	m := NewMetrics("docket", prometheus.NewRegistry())

	m.RecordOperation("registry", "create", "success")
	m.RecordOperation("registry", "create", "success")
	m.TrackDBOperation("registry", "insert")(time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntityOperationsTotal.WithLabelValues("registry", "create", "success")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.DBOperationDuration))
}

func TestHandler_ExposesPrefixedMetrics(t *testing.T) {
	m := NewMetrics("docket", prometheus.NewRegistry())
	m.RecordOperation("registry", "delete", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "docket_entity_operations_total")
}

func TestStatusCategory(t *testing.T) {
	assert.Equal(t, "2xx", statusCategory(204))
	assert.Equal(t, "4xx", statusCategory(400))
	assert.Equal(t, "5xx", statusCategory(500))
	assert.Equal(t, "", statusCategory(302))
}
