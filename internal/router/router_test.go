package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api/trip"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ResolveTrip(ctx context.Context, freeText string) (*types.TripResponse, error) {
	args := m.Called(ctx, freeText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripResponse), args.Error(1)
}

func (m *MockService) ApplyFilters(ctx context.Context, params types.TripParameters) (*types.TripResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripResponse), args.Error(1)
}

func setupRouterTest(rpm int) (http.Handler, *MockService) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := new(MockService)
	r := SetupRouter(&Config{
		TripHandler:       trip.NewHandlerImpl(svc, logger),
		RequestsPerMinute: rpm,
	})
	return r, svc
}

func TestRouter_Ping(t *testing.T) {
	r, _ := setupRouterTest(0)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestRouter_ResolveRoute(t *testing.T) {
	r, svc := setupRouterTest(0)
	svc.On("ResolveTrip", mock.Anything, "a weekend in Porto").
		Return(&types.TripResponse{ID: uuid.New()}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/resolve", strings.NewReader(`{"prompt":"a weekend in Porto"}`))
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r, _ := setupRouterTest(0)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/trips/resolve", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	r, svc := setupRouterTest(1)
	svc.On("ResolveTrip", mock.Anything, mock.Anything).Return(&types.TripResponse{ID: uuid.New()}, nil)

	send := func() int {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/resolve", strings.NewReader(`{"prompt":"x"}`))
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestRouter_SwaggerDoc(t *testing.T) {
	r, _ := setupRouterTest(0)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/trips/resolve")
}
