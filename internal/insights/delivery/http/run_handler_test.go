package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-social-insights/internal/entity"
	"go-social-insights/internal/insights/dto"
	"go-social-insights/internal/insights/service"
	"go-social-insights/pkg/logger"
)

type stubRunService struct {
	run     *entity.AnalysisRun
	runs    []entity.AnalysisRun
	err     error
	getErr  error
	listErr error
}

func (s *stubRunService) TriggerRun(ctx context.Context) (*entity.AnalysisRun, error) {
	return s.run, s.err
}

func (s *stubRunService) GetRun(ctx context.Context, id uint) (*entity.AnalysisRun, error) {
	return s.run, s.getErr
}

func (s *stubRunService) ListRuns(ctx context.Context) ([]entity.AnalysisRun, error) {
	return s.runs, s.listErr
}

func TestTriggerRun_Created(t *testing.T) {
	svc := &stubRunService{run: &entity.AnalysisRun{
		ID:            1,
		Status:        entity.RunStatusCompleted,
		PostsAnalyzed: 4,
		StartedAt:     time.Now(),
	}}
	h := NewRunHandler(svc, logger.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.TriggerRun(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 4, resp.PostsAnalyzed)
}

func TestTriggerRun_ConflictWhenRunInProgress(t *testing.T) {
	svc := &stubRunService{err: service.ErrRunInProgress}
	h := NewRunHandler(svc, logger.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.TriggerRun(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetRunByID_NotFound(t *testing.T) {
	svc := &stubRunService{getErr: gorm.ErrRecordNotFound}
	h := NewRunHandler(svc, logger.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, h.GetRunByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRunByID_InvalidID(t *testing.T) {
	h := NewRunHandler(&stubRunService{}, logger.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.GetRunByID(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAllRuns(t *testing.T) {
	svc := &stubRunService{runs: []entity.AnalysisRun{
		{ID: 2, Status: entity.RunStatusCompleted, StartedAt: time.Now()},
		{ID: 1, Status: entity.RunStatusFailed, StartedAt: time.Now()},
	}}
	h := NewRunHandler(svc, logger.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetAllRuns(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, uint(2), resp[0].ID)
}
