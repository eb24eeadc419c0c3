// Package goal contains goal-related use cases.
package goal

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/tracker/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Progress returns how far a goal is from its target.
//
// Percent is current/target*100 clamped to [0, 100]. A goal without a
// positive target has zero progress and is never completed.
func Progress(goal entity.Goal) entity.GoalProgress {
	if !goal.TargetValue.IsPositive() {
		return entity.GoalProgress{Percent: decimal.Zero}
	}

	percent := goal.CurrentValue.Mul(hundred).Div(goal.TargetValue)
	if percent.GreaterThan(hundred) {
		percent = hundred
	}
	if percent.IsNegative() {
		percent = decimal.Zero
	}

	return entity.GoalProgress{
		Percent:   percent,
		Completed: percent.GreaterThanOrEqual(hundred),
	}
}

// WithProgress pairs every goal with its progress, keeping the input order.
func WithProgress(goals []entity.Goal) []entity.GoalWithProgress {
	out := make([]entity.GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, entity.GoalWithProgress{Goal: g, Progress: Progress(g)})
	}
	return out
}
