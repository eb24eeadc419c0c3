// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal represents a savings objective of a user.
type Goal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	TargetValue  decimal.Decimal
	CurrentValue decimal.Decimal
	Deadline     *time.Time
	CreatedAt    time.Time
}

// NewGoal creates a new Goal entity.
func NewGoal(userID uuid.UUID, name string, targetValue, currentValue decimal.Decimal, deadline *time.Time) *Goal {
	if deadline != nil {
		day := CalendarDate(*deadline)
		deadline = &day
	}

	return &Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		TargetValue:  targetValue,
		CurrentValue: currentValue,
		Deadline:     deadline,
		CreatedAt:    time.Now().UTC(),
	}
}

// GoalProgress is the derived completion state of a goal.
// Percent is clamped to [0, 100].
type GoalProgress struct {
	Percent   decimal.Decimal
	Completed bool
}

// GoalWithProgress pairs a goal with its computed progress.
type GoalWithProgress struct {
	Goal     Goal
	Progress GoalProgress
}
