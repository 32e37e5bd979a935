package worker

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/safaribooking/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, router *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRouter_RecentAudit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &MockAuditStore{}
	router := NewRouter(New(audit, &MockNotifier{}, time.Hour), nil)

	recorded := time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)
	audit.On("Recent", mock.Anything, 2).Return([]repository.AuditEntry{
		{ID: 9, EventType: "booking_created", Entity: "booking", EntityID: "42", Payload: []byte(`{"booking_number":"BK123456"}`), OccurredAt: recorded, RecordedAt: recorded},
		{ID: 8, EventType: "guest_deleted", Entity: "guest", EntityID: "7", OccurredAt: recorded, RecordedAt: recorded},
	}, nil).Once()

	w := serve(t, router, "/audit?limit=2")

	require.Equal(t, http.StatusOK, w.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "booking_created", body[0]["event_type"])
	assert.Equal(t, map[string]any{"booking_number": "BK123456"}, body[0]["payload"])
	assert.NotContains(t, body[1], "payload")
	audit.AssertExpectations(t)
}

func TestRouter_RecentAuditLimits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &MockAuditStore{}
	router := NewRouter(New(audit, &MockNotifier{}, time.Hour), nil)

	audit.On("Recent", mock.Anything, defaultAuditLimit).Return([]repository.AuditEntry{}, nil).Once()
	audit.On("Recent", mock.Anything, maxAuditLimit).Return([]repository.AuditEntry{}, nil).Once()

	w := serve(t, router, "/audit")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	assert.Equal(t, http.StatusOK, serve(t, router, "/audit?limit=10000").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, router, "/audit?limit=abc").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, router, "/audit?limit=0").Code)
	audit.AssertExpectations(t)
}

func TestRouter_RecentAuditStoreError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &MockAuditStore{}
	router := NewRouter(New(audit, &MockNotifier{}, time.Hour), nil)

	audit.On("Recent", mock.Anything, defaultAuditLimit).Return(nil, errors.New("db down")).Once()

	w := serve(t, router, "/audit")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("safari_up 1\n"))
	})
	router := NewRouter(New(&MockAuditStore{}, &MockNotifier{}, time.Hour), metrics)

	assert.Equal(t, http.StatusOK, serve(t, router, "/health").Code)
	w := serve(t, router, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "safari_up 1")
}
