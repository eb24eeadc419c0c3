package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/tracker/internal/application/session"
	"github.com/finance-tracker/tracker/internal/application/usecase/dashboard"
	domainerror "github.com/finance-tracker/tracker/internal/domain/error"
	"github.com/finance-tracker/tracker/internal/integration/entrypoint/dto"
)

const (
	defaultStreamKeepAlive = 25 * time.Second

	// maxComputeBodyBytes caps a compute request body. A full batch of
	// records fits well below it.
	maxComputeBodyBytes = 4 << 20
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	computeUseCase *dashboard.ComputeSummaryUseCase
	sessions       SessionManager
	keepAlive      time.Duration
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	computeUseCase *dashboard.ComputeSummaryUseCase,
	sessions SessionManager,
	keepAlive time.Duration,
) *DashboardController {
	if keepAlive <= 0 {
		keepAlive = defaultStreamKeepAlive
	}
	return &DashboardController{
		computeUseCase: computeUseCase,
		sessions:       sessions,
		keepAlive:      keepAlive,
	}
}

// Summary handles GET /dashboard/summary requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	sess, ok := acquireSession(ctx, c.sessions, userID)
	if !ok {
		return
	}

	view, err := sess.Summary(ctx.Request.Context())
	if err != nil {
		handleSessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSessionSummaryResponse(view))
}

// Stream handles GET /dashboard/stream requests.
// It sends a "summary" event after every recompute of the user's session
// and a "keepalive" event when nothing happened for a while. The stream
// ends when the client goes away or the session is closed.
func (c *DashboardController) Stream(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	sess, ok := acquireSession(ctx, c.sessions, userID)
	if !ok {
		return
	}

	updates, release := sess.Watch()
	defer release()

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")

	if view := sess.Snapshot(); view.TransactionSeq > 0 {
		ctx.SSEvent("summary", toSessionSummaryResponse(view))
	}

	keepAlive := time.NewTicker(c.keepAlive)
	defer keepAlive.Stop()

	done := ctx.Request.Context().Done()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case view, ok := <-updates:
			if !ok {
				ctx.SSEvent("closed", gin.H{"reason": "session closed"})
				return false
			}
			ctx.SSEvent("summary", toSessionSummaryResponse(view))
			return true
		case t := <-keepAlive.C:
			ctx.SSEvent("keepalive", t.UTC().Format(time.RFC3339))
			return true
		case <-done:
			return false
		}
	})

	slog.Debug("summary stream ended", "user_id", userID)
}

// Compute handles POST /dashboard/compute requests.
// The summary is computed over the posted records only.
func (c *DashboardController) Compute(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxComputeBodyBytes)

	var req dto.ComputeSummaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
				Error: "Request body is too large",
				Code:  string(domainerror.ErrCodeTooManyRecords),
			})
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidBatch),
		})
		return
	}

	output, err := c.computeUseCase.Execute(ctx.Request.Context(), dashboard.ComputeSummaryInput{
		Records:       req.ToRaw(),
		ReferenceDate: req.ReferenceDate,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ComputeSummaryResponse{
		Summary: dto.ToSummaryResponse(output.Summary),
		Issues:  dto.ToIssueResponses(output.Issues),
	})
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		status := http.StatusBadRequest
		switch dashErr.Code {
		case domainerror.ErrCodeTooManyRecords:
			status = http.StatusRequestEntityTooLarge
		case domainerror.ErrCodeDashboardInternalError:
			status = http.StatusInternalServerError
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	slog.Error("dashboard request failed", "error", err)

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func toSessionSummaryResponse(view session.View) dto.SessionSummaryResponse {
	response := dto.SessionSummaryResponse{
		Summary:        dto.ToSummaryResponse(view.Summary),
		TransactionSeq: view.TransactionSeq,
		UpdatedAt:      view.UpdatedAt,
	}
	if view.LastError != nil {
		response.LastError = view.LastError.Error()
	}
	return response
}
