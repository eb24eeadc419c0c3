package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/tracker/internal/application/ingest"
	domainerror "github.com/finance-tracker/tracker/internal/domain/error"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func TestComputeSummaryUseCase_DefaultsToToday(t *testing.T) {
	uc := NewComputeSummaryUseCase(time.UTC, fixedClock(reference))

	out, err := uc.Execute(context.Background(), ComputeSummaryInput{
		Records: []ingest.RawTransaction{
			{ID: uuid.New(), Type: "entrada", Value: "1000", Date: "2026-10-01"},
			{ID: uuid.New(), Type: "saida", Value: "250,50", Date: "2026-10-02"},
			{ID: uuid.New(), Type: "saida", Value: "x", Date: nil},
		},
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := out.Summary.CurrentMonthSaving.String(); got != "749.5" {
		t.Errorf("expected current month saving 749.5, got %s", got)
	}
	if out.Summary.TransactionCount != 3 {
		t.Errorf("expected 3 transactions, got %d", out.Summary.TransactionCount)
	}
	// missing category x3, bad value, missing date
	if len(out.Issues) != 5 {
		t.Errorf("expected 5 issues, got %d: %v", len(out.Issues), out.Issues)
	}
}

func TestComputeSummaryUseCase_ReferenceDate(t *testing.T) {
	uc := NewComputeSummaryUseCase(time.UTC, fixedClock(reference))

	out, err := uc.Execute(context.Background(), ComputeSummaryInput{
		Records: []ingest.RawTransaction{
			{ID: uuid.New(), Type: "income", Value: 10.0, Date: "2026-03-05"},
		},
		ReferenceDate: "2026-03-31",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Summary.CurrentMonth.String() != "2026-03" {
		t.Errorf("expected current month 2026-03, got %s", out.Summary.CurrentMonth)
	}
	if got := out.Summary.CurrentMonthIncome.String(); got != "10" {
		t.Errorf("expected current month income 10, got %s", got)
	}
}

func TestComputeSummaryUseCase_OutOfRangeAmounts(t *testing.T) {
	uc := NewComputeSummaryUseCase(time.UTC, fixedClock(reference))
	huge := uuid.New()

	start := time.Now()
	out, err := uc.Execute(context.Background(), ComputeSummaryInput{
		Records: []ingest.RawTransaction{
			{ID: huge, Type: "income", Category: strPtr("Salary"), Value: json.Number("1e30000000"), Date: "2026-10-01"},
			{ID: uuid.New(), Type: "income", Category: strPtr("Salary"), Value: "0.01", Date: "2026-10-02"},
			{ID: uuid.New(), Type: "expense", Category: strPtr("Food"), Value: "1e-30000000", Date: "2026-10-03"},
		},
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed > time.Second {
		t.Errorf("expected the batch to be computed quickly, took %s", elapsed)
	}
	assertDecimal(t, "total income", out.Summary.TotalIncome, "0.01")
	assertDecimal(t, "total expense", out.Summary.TotalExpense, "0")
	if out.Summary.TransactionCount != 3 {
		t.Errorf("expected 3 transactions, got %d", out.Summary.TransactionCount)
	}

	found := false
	for _, issue := range out.Issues {
		if issue.RecordID == huge.String() && issue.Field == "value" && issue.Reason == ingest.ReasonOutOfRange {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an out of range issue for %s, got %v", huge, out.Issues)
	}
}

func TestComputeSummaryUseCase_Rejections(t *testing.T) {
	uc := NewComputeSummaryUseCase(time.UTC, fixedClock(reference))

	t.Run("bad reference date", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ComputeSummaryInput{ReferenceDate: "31/03/2026"})

		var dashErr *domainerror.DashboardError
		if !errors.As(err, &dashErr) || dashErr.Code != domainerror.ErrCodeInvalidReferenceDate {
			t.Errorf("expected %s, got %v", domainerror.ErrCodeInvalidReferenceDate, err)
		}
	})

	t.Run("batch too large", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ComputeSummaryInput{
			Records: make([]ingest.RawTransaction, MaxComputeRecords+1),
		})

		if !errors.Is(err, domainerror.ErrTooManyRecords) {
			t.Errorf("expected ErrTooManyRecords, got %v", err)
		}
	})
}
