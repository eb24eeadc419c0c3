// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/tracker/internal/application/ingest"
	"github.com/finance-tracker/tracker/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name         *string             `gorm:"type:varchar(100)"`
	TargetValue  decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	CurrentValue decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	Deadline     *time.Time          `gorm:"type:date"`
	CreatedAt    time.Time           `gorm:"not null;index"`
	UpdatedAt    time.Time           `gorm:"not null"`
	DeletedAt    gorm.DeletedAt      `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
// Absent values read as zero; use ToRaw when the record has to be checked.
func (m *GoalModel) ToEntity() *entity.Goal {
	name := entity.PlaceholderText
	if m.Name != nil {
		name = *m.Name
	}

	return &entity.Goal{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         name,
		TargetValue:  m.TargetValue.Decimal,
		CurrentValue: m.CurrentValue.Decimal,
		Deadline:     m.Deadline,
		CreatedAt:    m.CreatedAt,
	}
}

// ToRaw converts a GoalModel to an unvalidated record.
func (m *GoalModel) ToRaw() ingest.RawGoal {
	raw := ingest.RawGoal{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		TargetValue:  m.TargetValue,
		CurrentValue: m.CurrentValue,
		CreatedAt:    m.CreatedAt,
	}
	if m.Deadline != nil {
		raw.Deadline = *m.Deadline
	}
	return raw
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	name := goal.Name

	return &GoalModel{
		ID:           goal.ID,
		UserID:       goal.UserID,
		Name:         &name,
		TargetValue:  decimal.NewNullDecimal(goal.TargetValue),
		CurrentValue: decimal.NewNullDecimal(goal.CurrentValue),
		Deadline:     goal.Deadline,
		CreatedAt:    goal.CreatedAt,
		UpdatedAt:    goal.CreatedAt,
	}
}
