package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/arjohnson15/workoutapp/internal/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func gatherValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		var total float64
		for _, m := range f.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
		return total
	}
	return 0
}

type panicRecTestHandler struct {
	panic  bool
	called bool
}

func (p *panicRecTestHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	p.called = true
	if p.panic {
		panic("YOLO")
	}
	w.WriteHeader(http.StatusNoContent)
}

func Test_panicRecoveryMiddleware_nonPanic(t *testing.T) {
	m, reg := metrics.NewTestManagerAndRegistry()
	next := &panicRecTestHandler{}

	rr := httptest.NewRecorder()
	PanicRecovery(m)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, next.called)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, float64(0), gatherValue(t, reg, "workoutapp_test_handle_request_panic"))
}

func Test_panicRecoveryMiddleware_panic(t *testing.T) {
	m, reg := metrics.NewTestManagerAndRegistry()
	next := &panicRecTestHandler{panic: true}

	rr := httptest.NewRecorder()
	PanicRecovery(m)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, next.called)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Server error"}`, rr.Body.String())
	assert.Equal(t, float64(1), gatherValue(t, reg, "workoutapp_test_handle_request_panic"))
}

func TestRequestMetrics(t *testing.T) {
	m, reg := metrics.NewTestManagerAndRegistry()
	handler := RequestMetrics(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/", "/", "/missing"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(3), gatherValue(t, reg, "workoutapp_test_request"))
	assert.Equal(t, float64(3), gatherValue(t, reg, "workoutapp_test_request_duration_seconds"))
	assert.Equal(t, float64(0), gatherValue(t, reg, "workoutapp_test_current_requests"))

	families, err := reg.Gather()
	require.NoError(t, err)
	statuses := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "workoutapp_test_request" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "status" {
					statuses[label.GetValue()] += metric.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{"200": 2, "404": 1}, statuses)
}

func TestLogRequest_PassesThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	LogRequest()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

type testRequestRateLimiter struct {
	// key to remaining allowance
	Limits map[string]int
	err    error
}

func (l *testRequestRateLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	if l.err != nil {
		return nil, l.err
	}
	res := &redis_rate.Result{Limit: limit, RetryAfter: 1500 * time.Millisecond}
	if l.Limits[key] == 0 {
		return res, nil
	}
	res.Allowed = 1
	res.RetryAfter = -1
	l.Limits[key]--
	return res, nil
}

func TestRateLimit(t *testing.T) {
	m, reg := metrics.NewTestManagerAndRegistry()
	limiter := &testRequestRateLimiter{Limits: map[string]int{"login:10.0.0.1": 2}}
	handler := RateLimit(limiter, "login", 2, m)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, serve("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, serve("10.0.0.1:5001").Code)

	rejected := serve("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rejected.Code)
	assert.Equal(t, "2", rejected.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many requests"}`, rejected.Body.String())

	assert.Equal(t, http.StatusTooManyRequests, serve("10.0.0.2:5000").Code)
	assert.Equal(t, float64(2), gatherValue(t, reg, "workoutapp_test_logins_rate_limited"))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &testRequestRateLimiter{err: errors.New("redis down")}
	rr := httptest.NewRecorder()
	RateLimit(limiter, "login", 5, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
