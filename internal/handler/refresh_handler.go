package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

const (
	updateSuccessMessage    = "Schedule updated successfully"
	updateFailureMessage    = "Failed to update schedule"
	schedulerSuccessMessage = "Scheduler ran successfully."
)

//go:generate mockgen -source=refresh_handler.go -destination=refresh_handler_mock.go -package=handler

// Refresher runs the full refresh and exposes its last report.
type Refresher interface {
	Run(ctx context.Context) (*domain.RunReport, error)
	LatestReport(ctx context.Context) (*domain.RunReport, error)
}

type RefreshHandler struct {
	refresher Refresher
}

func NewRefreshHandler(refresher Refresher) *RefreshHandler {
	return &RefreshHandler{
		refresher: refresher,
	}
}

type updateResponse struct {
	Message string `json:"message"`
	*domain.RunReport
}

// HandleUpdate serves POST /schedule/update.
func (h *RefreshHandler) HandleUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	slog.InfoContext(ctx, "handling schedule update request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)

	report, err := h.refresher.Run(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   updateFailureMessage,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updateResponse{
		Message:   updateSuccessMessage,
		RunReport: report,
	})
}

// HandleSchedulerRun serves POST /scheduler/run, the plain-text endpoint polled by
// the external scheduler.
func (h *RefreshHandler) HandleSchedulerRun(c *gin.Context) {
	ctx := c.Request.Context()

	slog.InfoContext(ctx, "handling scheduler trigger",
		slog.String("path", c.Request.URL.Path),
	)

	if _, err := h.refresher.Run(ctx); err != nil {
		c.String(http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	c.String(http.StatusOK, schedulerSuccessMessage)
}

// HandleStatus serves GET /schedule/status.
func (h *RefreshHandler) HandleStatus(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.refresher.LatestReport(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no refresh has been recorded"})
			return
		}
		slog.ErrorContext(ctx, "failed to load run report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Register mounts the refresh routes on r.
func (h *RefreshHandler) Register(r gin.IRouter) {
	r.POST("/schedule/update", h.HandleUpdate)
	r.POST("/scheduler/run", h.HandleSchedulerRun)
	r.GET("/schedule/status", h.HandleStatus)
}
