package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/safaribooking/internal/auth"
	"github.com/Domenick1991/safaribooking/internal/cache"
	"github.com/Domenick1991/safaribooking/internal/metrics"
	"github.com/Domenick1991/safaribooking/internal/service/booking"
	"github.com/Domenick1991/safaribooking/internal/service/catalog"
	"github.com/Domenick1991/safaribooking/internal/service/reports"
	"github.com/Domenick1991/safaribooking/internal/service/users"
	"github.com/Domenick1991/safaribooking/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	router *gin.Engine
	store  *store.Store
	token  string
}

func newTestServer(t *testing.T, authEnabled bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(store.WithPasswordCost(bcrypt.MinCost))
	require.NoError(t, err)

	userService := users.NewUserService(st.Users, auth.NewTokens("router-test", time.Hour), cache.NewMemorySessions())
	router := NewRouter(Services{
		Catalog:  catalog.NewServices(st, nil, ""),
		Bookings: booking.NewBookingService(st, nil, ""),
		Users:    userService,
		Auth:     userService,
		Reports:  reports.NewReportService(st),
	}, RouterOptions{AuthEnabled: authEnabled, Metrics: metrics.New()})

	return &testServer{router: router, store: st}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		raw, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, true)

	w := srv.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_AuthFlow(t *testing.T) {
	srv := newTestServer(t, true)

	w := srv.do(http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, decodeError(t, w).RequestID)

	w = srv.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "password"})
	require.Equal(t, http.StatusOK, w.Code)
	var session users.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	srv.token = session.Token

	w = srv.do(http.MethodGet, "/api/bookings", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = srv.do(http.MethodGet, "/api/bookings", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_BookingLifecycle(t *testing.T) {
	srv := newTestServer(t, false)

	w := srv.do(http.MethodPost, "/api/bookings", map[string]any{
		"guest_id":         "1",
		"excursion_id":     "2",
		"tour_date":        "2024-02-28",
		"number_of_guests": 2,
		"total_price":      240,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID            string `json:"id"`
		BookingNumber string `json:"booking_number"`
		Status        string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Regexp(t, `^BK\d{6}$`, created.BookingNumber)
	assert.Equal(t, "pending", created.Status)

	w = srv.do(http.MethodGet, "/api/bookings/by-month?month=2&year=2024", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var feb []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feb))
	assert.Len(t, feb, 3)

	w = srv.do(http.MethodPut, "/api/bookings/"+created.ID, map[string]any{"status": "confirmed", "payment_status": "paid"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(http.MethodPost, "/api/payments", map[string]any{
		"booking_id":   created.ID,
		"amount":       240,
		"payment_date": "2024-02-20",
		"method":       "cash",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = srv.do(http.MethodGet, "/api/bookings/"+created.ID+"/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var payments []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payments))
	assert.Len(t, payments, 1)

	w = srv.do(http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "930", summary["total_revenue"])
	assert.EqualValues(t, 3, summary["total_bookings"])

	w = srv.do(http.MethodDelete, "/api/bookings/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = srv.do(http.MethodGet, "/api/bookings/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CatalogAndUsers(t *testing.T) {
	srv := newTestServer(t, false)

	w := srv.do(http.MethodGet, "/api/vehicles?q=hilux", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var vehicles []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vehicles))
	require.Len(t, vehicles, 1)
	assert.Equal(t, "KEN-002", vehicles[0]["registration_number"])

	w = srv.do(http.MethodPost, "/api/users", map[string]string{"username": "admin", "password": "x", "confirm_password": "x"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.do(http.MethodPut, "/api/users/2/password", map[string]string{
		"current_password": "password123",
		"new_password":     "safari2024",
		"confirm_password": "safari2024",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, srv.store.Users.Authenticate("manager", "safari2024"))

	w = srv.do(http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestRouter_ReportsAndExport(t *testing.T) {
	srv := newTestServer(t, false)

	w := srv.do(http.MethodGet, "/api/dashboard?year=2024", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(http.MethodGet, "/api/reports?year=2024", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(http.MethodGet, "/api/reports/export?format=pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")

	w = srv.do(http.MethodGet, "/api/reports/export?format=csv", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_MetricsAndNoRoute(t *testing.T) {
	srv := newTestServer(t, false)

	srv.do(http.MethodGet, "/api/guests", nil)
	w := srv.do(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeError(t, w).Code)

	w = srv.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/api/guests"`)
}
