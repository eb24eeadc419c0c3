package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/tracker/internal/domain/entity"
	"github.com/finance-tracker/tracker/internal/domain/valueobject"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name         string          `json:"name"`
	TargetValue  decimal.Decimal `json:"target_value"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Deadline     string          `json:"deadline,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	TargetValue     AmountResponse `json:"target_value"`
	CurrentValue    AmountResponse `json:"current_value"`
	Deadline        *string        `json:"deadline"`
	DeadlineDisplay string         `json:"deadline_display"`
	Percent         string         `json:"percent"`
	Completed       bool           `json:"completed"`
	CreatedAt       time.Time      `json:"created_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
	Seq   uint64         `json:"seq"`
}

// ToGoalResponse converts a goal and its progress to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal, progress entity.GoalProgress) GoalResponse {
	response := GoalResponse{
		ID:              g.ID.String(),
		Name:            g.Name,
		TargetValue:     ToAmountResponse(g.TargetValue),
		CurrentValue:    ToAmountResponse(g.CurrentValue),
		DeadlineDisplay: valueobject.FormatDate(g.Deadline),
		Percent:         progress.Percent.String(),
		Completed:       progress.Completed,
		CreatedAt:       g.CreatedAt,
	}

	if g.Deadline != nil && !g.Deadline.IsZero() {
		deadline := g.Deadline.Format(valueobject.ISODateLayout)
		response.Deadline = &deadline
	}

	return response
}

// ToGoalListResponse converts goals in their given order.
func ToGoalListResponse(goals []entity.GoalWithProgress, seq uint64) GoalListResponse {
	items := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		items = append(items, ToGoalResponse(&goals[i].Goal, goals[i].Progress))
	}

	return GoalListResponse{
		Goals: items,
		Seq:   seq,
	}
}
