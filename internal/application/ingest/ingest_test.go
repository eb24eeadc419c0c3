package ingest

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/tracker/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func hasIssue(issues []Issue, field, reason string) bool {
	for _, issue := range issues {
		if issue.Field == field && issue.Reason == reason {
			return true
		}
	}
	return false
}

func TestTransaction_WellFormed(t *testing.T) {
	raw := RawTransaction{
		ID:          uuid.New(),
		Type:        "expense",
		Category:    strPtr(" Food "),
		Description: strPtr("Groceries"),
		Value:       decimal.RequireFromString("42.50"),
		Date:        "2026-10-03",
	}

	tx, issues := Transaction(raw)

	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
	if tx.Type != entity.TransactionTypeExpense {
		t.Errorf("expected expense, got %s", tx.Type)
	}
	if tx.Category != "Food" {
		t.Errorf("expected trimmed category Food, got %q", tx.Category)
	}
	if !tx.Value.Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("expected value 42.5, got %s", tx.Value)
	}
	if tx.Date == nil || tx.Date.Format("2006-01-02") != "2026-10-03" {
		t.Errorf("expected date 2026-10-03, got %v", tx.Date)
	}
}

func TestTransaction_Placeholders(t *testing.T) {
	tx, issues := Transaction(RawTransaction{ID: uuid.New(), Type: "income", Value: 10.0, Date: "2026-01-01"})

	if tx.Category != entity.PlaceholderText {
		t.Errorf("expected placeholder category, got %q", tx.Category)
	}
	if tx.Description != entity.PlaceholderText {
		t.Errorf("expected placeholder description, got %q", tx.Description)
	}
	if !hasIssue(issues, "category", ReasonMissing) {
		t.Errorf("expected missing category issue, got %v", issues)
	}
	if hasIssue(issues, "description", ReasonMissing) {
		t.Error("expected missing description not to be reported")
	}
}

func TestTransaction_TypeAliases(t *testing.T) {
	tests := []struct {
		raw      string
		expected entity.TransactionType
		known    bool
	}{
		{"income", entity.TransactionTypeIncome, true},
		{"Entrada", entity.TransactionTypeIncome, true},
		{"expense", entity.TransactionTypeExpense, true},
		{"saida", entity.TransactionTypeExpense, true},
		{"saída", entity.TransactionTypeExpense, true},
		{"transfer", entity.TransactionType("transfer"), false},
		{"", entity.TransactionType(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, known := ParseTransactionType(tt.raw)
			if got != tt.expected || known != tt.known {
				t.Errorf("expected (%s, %v), got (%s, %v)", tt.expected, tt.known, got, known)
			}
		})
	}
}

func TestTransaction_ValueCoercion(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
		reason   string
	}{
		{"nil", nil, "0", ReasonMissing},
		{"empty string", "  ", "0", ReasonMissing},
		{"comma decimal", "12,34", "12.34", ""},
		{"json number", json.Number("300"), "300", ""},
		{"garbage", "abc", "0", ReasonNotANumber},
		{"negative", -5.0, "0", ReasonNegative},
		{"NaN", math.NaN(), "0", ReasonNotANumber},
		{"int", 7, "7", ""},
		{"invalid null decimal", decimal.NullDecimal{}, "0", ReasonMissing},
		{"unsupported type", true, "0", ReasonNotANumber},
		{"sub-cent is rounded", "0,005", "0.01", ""},
		{"huge exponent", json.Number("1e30000000"), "0", ReasonOutOfRange},
		{"above column range", "10000000000000", "0", ReasonOutOfRange},
		{"huge float", 1e300, "0", ReasonOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, issues := Transaction(RawTransaction{
				ID:       uuid.New(),
				Type:     "income",
				Category: strPtr("Salary"),
				Value:    tt.value,
				Date:     "2026-01-01",
			})

			if !tx.Value.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("expected value %s, got %s", tt.expected, tx.Value)
			}
			if tt.reason == "" && len(issues) != 0 {
				t.Errorf("expected no issues, got %v", issues)
			}
			if tt.reason != "" && !hasIssue(issues, "value", tt.reason) {
				t.Errorf("expected value issue %q, got %v", tt.reason, issues)
			}
		})
	}
}

func TestTransaction_DateCoercion(t *testing.T) {
	afternoon := time.Date(2026, time.May, 9, 23, 30, 0, 0, time.UTC)
	var nilTime *time.Time

	tests := []struct {
		name     string
		date     any
		expected string
		reason   string
	}{
		{"time value keeps calendar day", afternoon, "2026-05-09", ""},
		{"pointer", &afternoon, "2026-05-09", ""},
		{"nil pointer", nilTime, "", ReasonMissing},
		{"zero time", time.Time{}, "", ReasonMissing},
		{"iso date", "2026-05-09", "2026-05-09", ""},
		{"rfc3339", "2026-05-09T10:00:00Z", "2026-05-09", ""},
		{"garbage", "09/05/2026", "", ReasonNotADate},
		{"number", 12345, "", ReasonNotADate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, issues := Transaction(RawTransaction{
				ID:       uuid.New(),
				Type:     "income",
				Category: strPtr("Salary"),
				Value:    1.0,
				Date:     tt.date,
			})

			if tt.expected == "" {
				if tx.Date != nil {
					t.Errorf("expected no date, got %v", tx.Date)
				}
				if !hasIssue(issues, "date", tt.reason) {
					t.Errorf("expected date issue %q, got %v", tt.reason, issues)
				}
				return
			}

			if tx.Date == nil {
				t.Fatal("expected a date, got nil")
			}
			if got := tx.Date.Format("2006-01-02"); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTransactions_KeepsOrderAndCollectsIssues(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	records, issues := Transactions([]RawTransaction{
		{ID: first, Type: "income", Category: strPtr("A"), Value: "1", Date: "2026-01-01"},
		{ID: second, Type: "bogus", Category: strPtr("B"), Value: "x", Date: nil},
	})

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != first || records[1].ID != second {
		t.Error("expected input order to be preserved")
	}
	if len(issues) != 3 {
		t.Errorf("expected 3 issues (type, value, date), got %d: %v", len(issues), issues)
	}
}

func TestGoal(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		goal, issues := Goal(RawGoal{
			ID:           uuid.New(),
			Name:         strPtr("Trip"),
			TargetValue:  "1000",
			CurrentValue: decimal.NewFromInt(250),
			Deadline:     "2027-01-31",
		})

		if len(issues) != 0 {
			t.Fatalf("expected no issues, got %v", issues)
		}
		if goal.Name != "Trip" {
			t.Errorf("expected name Trip, got %s", goal.Name)
		}
		if goal.Deadline == nil || goal.Deadline.Format("2006-01-02") != "2027-01-31" {
			t.Errorf("expected deadline 2027-01-31, got %v", goal.Deadline)
		}
	})

	t.Run("missing fields are coerced", func(t *testing.T) {
		goal, issues := Goal(RawGoal{ID: uuid.New()})

		if goal.Name != entity.PlaceholderText {
			t.Errorf("expected placeholder name, got %q", goal.Name)
		}
		if !goal.TargetValue.IsZero() || !goal.CurrentValue.IsZero() {
			t.Errorf("expected zero values, got %s / %s", goal.TargetValue, goal.CurrentValue)
		}
		if goal.Deadline != nil {
			t.Errorf("expected no deadline, got %v", goal.Deadline)
		}
		if !hasIssue(issues, "target_value", ReasonMissing) || !hasIssue(issues, "current_value", ReasonMissing) {
			t.Errorf("expected value issues, got %v", issues)
		}
		if hasIssue(issues, "deadline", ReasonMissing) {
			t.Error("expected absent deadline not to be reported")
		}
	})
}
