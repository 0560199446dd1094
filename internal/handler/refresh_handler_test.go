package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

func newTestRouter(refresher Refresher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewRefreshHandler(refresher).Register(r)
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHandleUpdate(t *testing.T) {
	tests := []struct {
		name       string
		report     *domain.RunReport
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "success",
			report:     &domain.RunReport{RunID: "run-1", Status: domain.RunStatusSucceeded, TabsWritten: 2},
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"message":      "Schedule updated successfully",
				"run_id":       "run-1",
				"status":       "succeeded",
				"tabs_written": float64(2),
			},
		},
		{
			name:       "failure",
			report:     &domain.RunReport{RunID: "run-2", Status: domain.RunStatusFailed},
			err:        errors.New("failed to read tracker tab ABC Tracker: quota exceeded"),
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]any{
				"error":   "Failed to update schedule",
				"message": "failed to read tracker tab ABC Tracker: quota exceeded",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			refresher := NewMockRefresher(ctrl)
			refresher.EXPECT().Run(gomock.Any()).Return(tt.report, tt.err)

			w := serve(newTestRouter(refresher), http.MethodPost, "/schedule/update")

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
			}
			for key, want := range tt.wantBody {
				if body[key] != want {
					t.Errorf("body[%q] = %v, want %v", key, body[key], want)
				}
			}
		})
	}
}

func TestHandleSchedulerRun(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "success", wantStatus: http.StatusOK, wantBody: "Scheduler ran successfully."},
		{name: "failure", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantBody: "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			refresher := NewMockRefresher(ctrl)
			refresher.EXPECT().Run(gomock.Any()).Return(&domain.RunReport{}, tt.err)

			w := serve(newTestRouter(refresher), http.MethodPost, "/scheduler/run")

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandleStatus(t *testing.T) {
	tests := []struct {
		name       string
		report     *domain.RunReport
		err        error
		wantStatus int
	}{
		{name: "latest report", report: &domain.RunReport{RunID: "run-1"}, wantStatus: http.StatusOK},
		{name: "no report yet", err: domain.ErrReportNotFound, wantStatus: http.StatusNotFound},
		{name: "store failure", err: errors.New("redis down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			refresher := NewMockRefresher(ctrl)
			refresher.EXPECT().LatestReport(gomock.Any()).Return(tt.report, tt.err)

			w := serve(newTestRouter(refresher), http.MethodGet, "/schedule/status")

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
