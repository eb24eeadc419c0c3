// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/tracker/internal/domain/entity"
	"github.com/finance-tracker/tracker/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// ComputeSummary derives every dashboard metric from a full set of records
// in a single pass.
//
// The current month is the calendar month of reference, in reference's own
// location. Totals cover all records; monthly figures only cover dated ones.
// Records of unknown type are counted but never summed.
//
// Ties for the top expense category and the largest single expense go to
// whichever reached the maximum first in input order.
func ComputeSummary(records []entity.Transaction, reference time.Time) entity.Summary {
	current := valueobject.MonthOf(reference)
	previous := current.Previous()

	summary := entity.Summary{
		ReferenceDate:       reference,
		CurrentMonth:        current,
		PreviousMonth:       previous,
		TotalIncome:         decimal.Zero,
		TotalExpense:        decimal.Zero,
		CurrentMonthIncome:  decimal.Zero,
		CurrentMonthExpense: decimal.Zero,
		TransactionCount:    len(records),
	}

	previousIncome := decimal.Zero
	previousExpense := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for i := range records {
		tx := &records[i]
		if !tx.HasDate() {
			summary.UndatedCount++
		}

		switch tx.Type {
		case entity.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Value)
			if !tx.HasDate() {
				continue
			}
			if current.Contains(*tx.Date) {
				summary.CurrentMonthIncome = summary.CurrentMonthIncome.Add(tx.Value)
			} else if previous.Contains(*tx.Date) {
				previousIncome = previousIncome.Add(tx.Value)
			}

		case entity.TransactionTypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(tx.Value)
			if !tx.HasDate() {
				continue
			}
			if previous.Contains(*tx.Date) {
				previousExpense = previousExpense.Add(tx.Value)
				continue
			}
			if !current.Contains(*tx.Date) {
				continue
			}

			summary.CurrentMonthExpense = summary.CurrentMonthExpense.Add(tx.Value)

			total := byCategory[tx.Category].Add(tx.Value)
			byCategory[tx.Category] = total
			top := &summary.TopExpenseCategory
			if !top.Found || total.GreaterThan(top.Total) {
				*top = entity.CategoryTotal{Category: tx.Category, Total: total, Found: true}
			}

			largest := &summary.LargestSingleExpense
			if !largest.Found || tx.Value.GreaterThan(largest.Value) {
				*largest = entity.ExpenseHighlight{
					TransactionID: tx.ID,
					Category:      tx.Category,
					Description:   tx.Description,
					Value:         tx.Value,
					Date:          tx.Date,
					Found:         true,
				}
			}
		}
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	summary.CurrentMonthSaving = summary.CurrentMonthIncome.Sub(summary.CurrentMonthExpense)
	summary.PreviousMonthSaving = previousIncome.Sub(previousExpense)
	summary.MonthOverMonthChange = PercentChange(summary.CurrentMonthSaving, summary.PreviousMonthSaving)

	return summary
}

// PercentChange returns (current - previous) / |previous| * 100.
// It is unavailable when previous is zero.
func PercentChange(current, previous decimal.Decimal) entity.PercentChange {
	if previous.IsZero() {
		return entity.PercentChange{}
	}
	return entity.PercentChange{
		Value:     current.Sub(previous).Mul(hundred).Div(previous.Abs()),
		Available: true,
	}
}
