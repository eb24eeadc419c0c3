package auth

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/tracker/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	Claims *adapter.TokenClaims
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute performs the user logout by revoking the access token.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	// The session is closed regardless, so a failed revocation is only logged
	if err := uc.tokenService.RevokeAccessToken(ctx, input.Claims); err != nil {
		slog.Warn("failed to revoke access token",
			"user_id", input.Claims.UserID,
			"error", err,
		)
	}

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
