package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.RecordRequest("GET", 200, time.Second)
	m.RecordTransfer(DirectionUpload, 10)
	m.TransferStart()
	m.TransferEnd()
	assert.Nil(t, m.Registry())
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecord(t *testing.T) {
	m := New()
	m.RecordRequest("PUT", 201, 10*time.Millisecond)
	m.RecordRequest("PUT", 201, 10*time.Millisecond)
	m.RecordTransfer(DirectionUpload, 5000)
	m.RecordTransfer(DirectionDownload, 0)
	m.TransferStart()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("PUT", "201")))
	assert.Equal(t, float64(5000), testutil.ToFloat64(m.transferBytes.WithLabelValues(DirectionUpload)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.inflight))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "sdwebdav_requests_total"))
}

func TestIndependentRegistry(t *testing.T) {
	a := New()
	b := New()
	a.RecordTransfer(DirectionDownload, 1)
	assert.Equal(t, float64(0), testutil.ToFloat64(b.transferBytes.WithLabelValues(DirectionDownload)))
}
