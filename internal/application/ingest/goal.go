package ingest

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/tracker/internal/domain/entity"
)

// RawGoal is a goal record as stored, before validation.
type RawGoal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         *string
	TargetValue  any
	CurrentValue any
	Deadline     any
	CreatedAt    time.Time
}

// Goal converts a raw record into a Goal. A missing deadline is not an issue.
func Goal(raw RawGoal) (entity.Goal, []Issue) {
	var issues []Issue
	id := raw.ID.String()
	note := func(field, reason string) {
		issues = append(issues, Issue{RecordID: id, Field: field, Reason: reason})
	}

	name, ok := textOrPlaceholder(raw.Name)
	if !ok {
		note("name", ReasonMissing)
	}

	target, reason := parseAmount(raw.TargetValue)
	if reason != "" {
		note("target_value", reason)
	}

	current, reason := parseAmount(raw.CurrentValue)
	if reason != "" {
		note("current_value", reason)
	}

	var deadline *time.Time
	if raw.Deadline != nil {
		deadline, reason = parseDate(raw.Deadline)
		if reason != "" && reason != ReasonMissing {
			note("deadline", reason)
		}
	}

	return entity.Goal{
		ID:           raw.ID,
		UserID:       raw.UserID,
		Name:         name,
		TargetValue:  target,
		CurrentValue: current,
		Deadline:     deadline,
		CreatedAt:    raw.CreatedAt,
	}, issues
}

// Goals converts a batch, preserving input order.
func Goals(raws []RawGoal) ([]entity.Goal, []Issue) {
	goals := make([]entity.Goal, 0, len(raws))
	var issues []Issue

	for _, raw := range raws {
		goal, goalIssues := Goal(raw)
		goals = append(goals, goal)
		issues = append(issues, goalIssues...)
	}

	return goals, issues
}
