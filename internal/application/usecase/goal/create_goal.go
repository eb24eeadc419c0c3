package goal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/tracker/internal/application/adapter"
	"github.com/finance-tracker/tracker/internal/domain/entity"
	domainerror "github.com/finance-tracker/tracker/internal/domain/error"
	"github.com/finance-tracker/tracker/internal/domain/valueobject"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID       uuid.UUID
	Name         string
	TargetValue  decimal.Decimal
	CurrentValue decimal.Decimal
	Deadline     string // Optional, YYYY-MM-DD
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal     *entity.Goal
	Progress entity.GoalProgress
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	notifier adapter.ChangeNotifier
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, notifier adapter.ChangeNotifier) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		notifier: notifier,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"name is required",
			nil,
		)
	}

	if !input.TargetValue.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetValue,
			"target value must be greater than zero",
			domainerror.ErrInvalidTargetValue,
		)
	}

	if input.CurrentValue.IsNegative() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidCurrentValue,
			"current value cannot be negative",
			domainerror.ErrInvalidCurrentValue,
		)
	}

	if !valueobject.IsStorableAmount(input.TargetValue) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetValue,
			fmt.Sprintf("target value must have at most two decimal places and be below %s", valueobject.MaxAmount),
			domainerror.ErrInvalidTargetValue,
		)
	}
	if !valueobject.IsStorableAmount(input.CurrentValue) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidCurrentValue,
			fmt.Sprintf("current value must have at most two decimal places and be below %s", valueobject.MaxAmount),
			domainerror.ErrInvalidCurrentValue,
		)
	}

	var deadline *time.Time
	if raw := strings.TrimSpace(input.Deadline); raw != "" {
		parsed, err := time.Parse(valueobject.ISODateLayout, raw)
		if err != nil {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidGoalDeadline,
				"deadline must be a date in YYYY-MM-DD format",
				domainerror.ErrInvalidGoalDeadline,
			)
		}
		deadline = &parsed
	}

	goal := entity.NewGoal(input.UserID, name, input.TargetValue, input.CurrentValue, deadline)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalWriteFailed,
			"failed to save goal",
			fmt.Errorf("failed to create goal: %w", err),
		)
	}

	if err := uc.notifier.Notify(ctx, adapter.CollectionGoals, input.UserID); err != nil {
		slog.Warn("failed to publish goal change",
			"user_id", input.UserID,
			"goal_id", goal.ID,
			"error", err,
		)
	}

	return &CreateGoalOutput{
		Goal:     goal,
		Progress: Progress(*goal),
	}, nil
}
