package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Click()
	m.Click()
	m.ClickFailed()
	m.Purchase("attributed")
	m.Purchase("unattributed")
	m.Purchase("attributed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.clicks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.clickErrors))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.purchases.WithLabelValues("attributed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.purchases.WithLabelValues("unattributed")))
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Click()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "adtrack_clicks_total 1")
}
