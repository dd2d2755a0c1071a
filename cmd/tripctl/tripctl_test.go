package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

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

func run(t *testing.T, svc *MockService, stdin string, args ...string) (string, error) {
	t.Helper()
	factory := func(context.Context, bool) (trip.Service, func(), error) {
		return svc, func() {}, nil
	}
	cmd := newRootCmd(factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestResolveCommand_JoinsArgs(t *testing.T) {
	svc := new(MockService)
	id := uuid.New()
	svc.On("ResolveTrip", mock.Anything, "two days in Porto").Return(&types.TripResponse{ID: id}, nil)

	out, err := run(t, svc, "", "resolve", "two", "days", "in", "Porto")
	require.NoError(t, err)

	var resp types.TripResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, id, resp.ID)
	svc.AssertExpectations(t)
}

func TestResolveCommand_RequiresText(t *testing.T) {
	_, err := run(t, new(MockService), "", "resolve")
	assert.Error(t, err)
}

func TestPlanCommand_FromFileWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"locations":["Porto"],"budget":"low","no_of_people":1}`), 0o600))

	svc := new(MockService)
	svc.On("ApplyFilters", mock.Anything, mock.MatchedBy(func(p types.TripParameters) bool {
		return p.Duration == types.DefaultDuration && p.ModeOfTransport == types.ModeWalking && p.Origin == "Porto"
	})).Return(&types.TripResponse{ID: uuid.New()}, nil)

	_, err := run(t, svc, "", "plan", "--params", path, "--defaults", "--compact")
	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestPlanCommand_FromStdinRejectsInvalid(t *testing.T) {
	svc := new(MockService)

	_, err := run(t, svc, `{"locations":["Porto"]}`, "plan", "--params", "-")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	svc.AssertNotCalled(t, "ApplyFilters", mock.Anything, mock.Anything)
}

func TestPlanCommand_RequiresParamsFlag(t *testing.T) {
	_, err := run(t, new(MockService), "", "plan")
	assert.Error(t, err)
}
