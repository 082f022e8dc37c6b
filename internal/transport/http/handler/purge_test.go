package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPurgeSvc struct{ mock.Mock }

func (m *mockPurgeSvc) RunCycle(ctx context.Context, now time.Time) (*domain.PurgeReport, error) {
	args := m.Called(ctx, now)
	if r, _ := args.Get(0).(*domain.PurgeReport); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestPurgeRun_EnumerationFailure(t *testing.T) {
	svc := &mockPurgeSvc{}
	svc.On("RunCycle", mock.Anything, mock.Anything).Return(nil, errors.New("enumerate purge candidates: table missing"))
	h := NewPurgeHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/purge/run", nil)
	rr := httptest.NewRecorder()
	h.Run(rr, r)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestPurgeRun_ReportsPartialFailures(t *testing.T) {
	svc := &mockPurgeSvc{}
	report := &domain.PurgeReport{
		ProcessedAt:    time.Now().UTC(),
		TotalProcessed: 2,
		Results: []domain.PurgeResult{
			{UserID: "u1", Success: true},
			{UserID: "u2", Success: false, Error: "delete profile: conditional write conflict"},
		},
	}
	svc.On("RunCycle", mock.Anything, mock.Anything).Return(report, nil)
	h := NewPurgeHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/purge/run", nil)
	rr := httptest.NewRecorder()
	h.Run(rr, r)

	// Per-user failures are part of the report, not an HTTP error.
	assert.Equal(t, http.StatusOK, rr.Code)
	var resp domain.PurgeReport
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 2, resp.TotalProcessed)
	require.Len(t, resp.Results, 2)
	assert.False(t, resp.Results[1].Success)
	assert.Contains(t, resp.Results[1].Error, "delete profile")
	svc.AssertExpectations(t)
}
