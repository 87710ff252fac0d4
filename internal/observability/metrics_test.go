package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveProviderCall(t *testing.T) {
	success := ProviderCallsTotal.WithLabelValues("test_op", OutcomeSuccess)
	failure := ProviderCallsTotal.WithLabelValues("test_op", OutcomeError)
	beforeOK := testutil.ToFloat64(success)
	beforeErr := testutil.ToFloat64(failure)

	ObserveProviderCall("test_op", 10*time.Millisecond, nil)
	ObserveProviderCall("test_op", 10*time.Millisecond, errors.New("boom"))
	ObserveProviderCall("test_op", 10*time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(success) - beforeOK; got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(failure) - beforeErr; got != 2 {
		t.Fatalf("expected 2 errors, got %v", got)
	}
}

func TestObserveNotification_EmptyTopic(t *testing.T) {
	c := NotificationsReceivedTotal.WithLabelValues("unknown")
	before := testutil.ToFloat64(c)
	ObserveNotification("")
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Fatalf("expected unknown topic increment, got %v", got)
	}
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/payment/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	c := HTTPRequestsTotal.WithLabelValues("/payment/:id", http.MethodGet, "200")
	before := testutil.ToFloat64(c)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payment/123", nil))

	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Fatalf("expected route template label, got delta %v", got)
	}
}
