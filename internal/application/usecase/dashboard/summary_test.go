package dashboard

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/tracker/internal/domain/entity"
)

var reference = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func tx(txType entity.TransactionType, value string, date *time.Time, category string) entity.Transaction {
	return entity.Transaction{
		ID:          uuid.New(),
		Type:        txType,
		Category:    category,
		Description: entity.PlaceholderText,
		Value:       decimal.RequireFromString(value),
		Date:        date,
	}
}

func income(value string, date *time.Time) entity.Transaction {
	return tx(entity.TransactionTypeIncome, value, date, "Salary")
}

func expense(value string, date *time.Time, category string) entity.Transaction {
	return tx(entity.TransactionTypeExpense, value, date, category)
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, expected string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(expected)) {
		t.Errorf("expected %s %s, got %s", name, expected, got)
	}
}

func TestComputeSummary_MonthScenario(t *testing.T) {
	records := []entity.Transaction{
		income("1000", day(2026, time.October, 1)),
		expense("300", day(2026, time.October, 2), "Food"),
		expense("200", day(2026, time.October, 3), "Food"),
		expense("150", day(2026, time.October, 4), "Rent"),
	}

	summary := ComputeSummary(records, reference)

	assertDecimal(t, "current month income", summary.CurrentMonthIncome, "1000")
	assertDecimal(t, "current month expense", summary.CurrentMonthExpense, "650")
	assertDecimal(t, "current month saving", summary.CurrentMonthSaving, "350")

	if summary.TopExpenseCategory.String() != "Food@500" {
		t.Errorf("expected top category Food@500, got %s", summary.TopExpenseCategory)
	}
	if summary.LargestSingleExpense.TransactionID != records[1].ID {
		t.Errorf("expected largest expense to be the 300 Food one, got %s", summary.LargestSingleExpense)
	}
	if summary.LargestSingleExpense.String() != "Food@300" {
		t.Errorf("expected largest expense Food@300, got %s", summary.LargestSingleExpense)
	}
	if summary.TransactionCount != 4 {
		t.Errorf("expected 4 transactions, got %d", summary.TransactionCount)
	}
}

func TestComputeSummary_Empty(t *testing.T) {
	summary := ComputeSummary(nil, reference)

	for name, value := range map[string]decimal.Decimal{
		"total income":          summary.TotalIncome,
		"total expense":         summary.TotalExpense,
		"balance":               summary.Balance,
		"current month income":  summary.CurrentMonthIncome,
		"current month expense": summary.CurrentMonthExpense,
		"current month saving":  summary.CurrentMonthSaving,
		"previous month saving": summary.PreviousMonthSaving,
	} {
		assertDecimal(t, name, value, "0")
	}

	if summary.TransactionCount != 0 {
		t.Errorf("expected 0 transactions, got %d", summary.TransactionCount)
	}
	if summary.MonthOverMonthChange.String() != entity.NoDataLabel {
		t.Errorf("expected %q, got %q", entity.NoDataLabel, summary.MonthOverMonthChange)
	}
	if summary.TopExpenseCategory.String() != entity.NoneLabel {
		t.Errorf("expected %q, got %q", entity.NoneLabel, summary.TopExpenseCategory)
	}
	if summary.LargestSingleExpense.String() != entity.NoneLabel {
		t.Errorf("expected %q, got %q", entity.NoneLabel, summary.LargestSingleExpense)
	}
}

func TestComputeSummary_BalanceIsExact(t *testing.T) {
	records := []entity.Transaction{
		income("0.1", day(2026, time.January, 1)),
		income("0.2", nil),
		expense("0.3", day(2025, time.March, 9), "Misc"),
		income("1234.56", day(2026, time.October, 2)),
		expense("999.99", day(2026, time.October, 2), "Rent"),
	}

	summary := ComputeSummary(records, reference)

	if !summary.TotalIncome.Sub(summary.TotalExpense).Equal(summary.Balance) {
		t.Errorf("expected balance %s to equal income - expense", summary.Balance)
	}
	assertDecimal(t, "balance", summary.Balance, "234.57")
}

func TestComputeSummary_OrderIndependent(t *testing.T) {
	records := []entity.Transaction{
		income("5000", day(2026, time.October, 5)),
		income("4200", day(2026, time.September, 5)),
		expense("120.50", day(2026, time.October, 6), "Food"),
		expense("800", day(2026, time.October, 1), "Rent"),
		expense("75", day(2026, time.September, 20), "Food"),
		expense("33.10", nil, "Fun"),
		expense("410", day(2026, time.October, 28), "Travel"),
		tx(entity.TransactionType("transfer"), "99", day(2026, time.October, 2), "Other"),
	}

	expected := ComputeSummary(records, reference)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		shuffled := make([]entity.Transaction, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := ComputeSummary(shuffled, reference)

		if !got.Balance.Equal(expected.Balance) ||
			!got.CurrentMonthSaving.Equal(expected.CurrentMonthSaving) ||
			!got.PreviousMonthSaving.Equal(expected.PreviousMonthSaving) ||
			got.MonthOverMonthChange.String() != expected.MonthOverMonthChange.String() ||
			got.TopExpenseCategory.String() != expected.TopExpenseCategory.String() ||
			got.LargestSingleExpense.TransactionID != expected.LargestSingleExpense.TransactionID ||
			got.TransactionCount != expected.TransactionCount ||
			got.UndatedCount != expected.UndatedCount {
			t.Fatalf("permutation %d changed the summary: expected %+v, got %+v", i, expected, got)
		}
	}
}

func TestComputeSummary_PreviousMonthAcrossYear(t *testing.T) {
	january := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	records := []entity.Transaction{
		income("1000", day(2025, time.December, 5)),
		expense("600", day(2025, time.December, 20), "Food"),
		income("1000", day(2026, time.January, 5)),
		expense("400", day(2026, time.January, 6), "Food"),
		income("9999", day(2025, time.January, 5)),
	}

	summary := ComputeSummary(records, january)

	assertDecimal(t, "previous month saving", summary.PreviousMonthSaving, "400")
	assertDecimal(t, "current month saving", summary.CurrentMonthSaving, "600")
	if got := summary.MonthOverMonthChange.String(); got != "+50.0%" {
		t.Errorf("expected +50.0%%, got %s", got)
	}
	if summary.PreviousMonth.String() != "2025-12" {
		t.Errorf("expected previous month 2025-12, got %s", summary.PreviousMonth)
	}
}

func TestComputeSummary_MonthOverMonthChange(t *testing.T) {
	tests := []struct {
		name     string
		records  []entity.Transaction
		expected string
	}{
		{
			name: "no data when previous saving is zero",
			records: []entity.Transaction{
				income("200", day(2026, time.October, 1)),
			},
			expected: entity.NoDataLabel,
		},
		{
			name: "no data when previous month nets to zero",
			records: []entity.Transaction{
				income("100", day(2026, time.September, 1)),
				expense("100", day(2026, time.September, 2), "Food"),
				income("200", day(2026, time.October, 1)),
			},
			expected: entity.NoDataLabel,
		},
		{
			name: "decrease is negative",
			records: []entity.Transaction{
				income("400", day(2026, time.September, 1)),
				income("100", day(2026, time.October, 1)),
			},
			expected: "-75.0%",
		},
		{
			name: "improvement over a negative month is positive",
			records: []entity.Transaction{
				expense("200", day(2026, time.September, 1), "Rent"),
				income("100", day(2026, time.October, 1)),
			},
			expected: "+150.0%",
		},
		{
			name: "unchanged",
			records: []entity.Transaction{
				income("100", day(2026, time.September, 1)),
				income("100", day(2026, time.October, 1)),
			},
			expected: "0.0%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := ComputeSummary(tt.records, reference)
			if got := summary.MonthOverMonthChange.String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestComputeSummary_UndatedAndUnknownRecords(t *testing.T) {
	records := []entity.Transaction{
		income("100", nil),
		expense("40", nil, "Food"),
		tx(entity.TransactionType("transfer"), "500", day(2026, time.October, 3), "Other"),
		expense("10", day(2026, time.October, 3), "Food"),
	}

	summary := ComputeSummary(records, reference)

	assertDecimal(t, "total income", summary.TotalIncome, "100")
	assertDecimal(t, "total expense", summary.TotalExpense, "50")
	assertDecimal(t, "current month expense", summary.CurrentMonthExpense, "10")
	if summary.TransactionCount != 4 {
		t.Errorf("expected unknown types to be counted, got %d", summary.TransactionCount)
	}
	if summary.UndatedCount != 2 {
		t.Errorf("expected 2 undated records, got %d", summary.UndatedCount)
	}
	if summary.TopExpenseCategory.String() != "Food@10" {
		t.Errorf("expected undated expenses to be left out of the top category, got %s", summary.TopExpenseCategory)
	}
}

func TestComputeSummary_TieBreakFirstSeen(t *testing.T) {
	records := []entity.Transaction{
		expense("100", day(2026, time.October, 1), "Rent"),
		expense("60", day(2026, time.October, 2), "Food"),
		expense("40", day(2026, time.October, 3), "Food"),
		expense("100", day(2026, time.October, 4), "Travel"),
	}

	summary := ComputeSummary(records, reference)

	if summary.TopExpenseCategory.Category != "Rent" {
		t.Errorf("expected Rent to keep the top spot on a tie, got %s", summary.TopExpenseCategory)
	}
	if summary.LargestSingleExpense.TransactionID != records[0].ID {
		t.Errorf("expected the first 100 expense to win the tie, got %s", summary.LargestSingleExpense)
	}
}

func TestComputeSummary_UsesReferenceLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	// 2026-11-01 01:00 UTC is still October 31st in Sao Paulo.
	ref := time.Date(2026, time.November, 1, 1, 0, 0, 0, time.UTC).In(saoPaulo)

	summary := ComputeSummary([]entity.Transaction{
		income("10", day(2026, time.October, 31)),
	}, ref)

	assertDecimal(t, "current month income", summary.CurrentMonthIncome, "10")
}
