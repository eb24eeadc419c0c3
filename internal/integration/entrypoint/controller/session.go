package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/tracker/internal/application/session"
	domainerror "github.com/finance-tracker/tracker/internal/domain/error"
	"github.com/finance-tracker/tracker/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/tracker/internal/integration/entrypoint/middleware"
)

// SessionManager opens and closes the live sessions of users.
type SessionManager interface {
	Open(ctx context.Context, userID uuid.UUID) (*session.Session, error)
	Acquire(ctx context.Context, userID uuid.UUID) (*session.Session, error)
	Close(userID uuid.UUID) bool
}

// requireUserID returns the authenticated user or writes a 401.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// acquireSession returns the user's session, opening it after a restart.
func acquireSession(ctx *gin.Context, sessions SessionManager, userID uuid.UUID) (*session.Session, bool) {
	sess, err := sessions.Acquire(ctx.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to acquire session", "user_id", userID, "error", err)
		handleSessionError(ctx, err)
		return nil, false
	}
	return sess, true
}

// handleSessionError maps session and feed errors to HTTP responses.
func handleSessionError(ctx *gin.Context, err error) {
	var feedErr *domainerror.FeedError
	if errors.As(err, &feedErr) {
		status := http.StatusServiceUnavailable
		switch feedErr.Code {
		case domainerror.ErrCodeSessionClosed:
			status = http.StatusConflict
		case domainerror.ErrCodeSnapshotNotReady:
			ctx.Header("Retry-After", "1")
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: feedErr.Message,
			Code:  string(feedErr.Code),
		})
		return
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Request cancelled",
		})
		return
	}

	ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
		Error: "Live data is unavailable",
	})
}
