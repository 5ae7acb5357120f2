package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveOperation(t *testing.T) {
	r := NewRecorder()

	r.ObserveOperation("post", "RECEIPT", OutcomeSuccess, 20*time.Millisecond)
	r.ObserveOperation("post", "RECEIPT", OutcomeSuccess, 30*time.Millisecond)
	r.ObserveOperation("cancel", "ISSUE", OutcomeRejected, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.operations.WithLabelValues("post", "RECEIPT", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("cancel", "ISSUE", OutcomeRejected)))
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
}

func TestRecorder_LedgerEntries(t *testing.T) {
	r := NewRecorder()
	r.AddLedgerEntries("IN", 3)
	r.AddLedgerEntries("OUT", 0)

	assert.Equal(t, 3.0, testutil.ToFloat64(r.ledgerEntries.WithLabelValues("IN")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.ledgerEntries))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveOperation("post", "ISSUE", OutcomeError, time.Second)
		r.AddLedgerEntries("OUT", 1)
	})
}

func TestRecorder_HandlerAndMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRecorder()

	router := gin.New()
	router.Use(r.GinMiddleware())
	router.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(r.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping/42", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "/ping/:id", "204")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
