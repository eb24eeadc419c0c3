package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finance-tracker/tracker/internal/application/ingest"
	"github.com/finance-tracker/tracker/internal/domain/entity"
	domainerror "github.com/finance-tracker/tracker/internal/domain/error"
	"github.com/finance-tracker/tracker/internal/domain/valueobject"
)

// MaxComputeRecords caps the batch accepted by ComputeSummaryUseCase.
const MaxComputeRecords = 10000

// ComputeSummaryInput represents the input for an ad-hoc summary computation.
type ComputeSummaryInput struct {
	Records       []ingest.RawTransaction
	ReferenceDate string // Optional, YYYY-MM-DD; defaults to today
}

// ComputeSummaryOutput represents the output of an ad-hoc summary computation.
type ComputeSummaryOutput struct {
	Summary entity.Summary
	Issues  []ingest.Issue
}

// ComputeSummaryUseCase computes a summary over records supplied by the caller
// without touching any stored data.
type ComputeSummaryUseCase struct {
	location *time.Location
	now      func() time.Time
}

// NewComputeSummaryUseCase creates a new ComputeSummaryUseCase instance.
// The current month is resolved in location.
func NewComputeSummaryUseCase(location *time.Location, now func() time.Time) *ComputeSummaryUseCase {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &ComputeSummaryUseCase{
		location: location,
		now:      now,
	}
}

// Execute performs the computation.
func (uc *ComputeSummaryUseCase) Execute(ctx context.Context, input ComputeSummaryInput) (*ComputeSummaryOutput, error) {
	if len(input.Records) > MaxComputeRecords {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeTooManyRecords,
			fmt.Sprintf("at most %d records can be computed at once", MaxComputeRecords),
			domainerror.ErrTooManyRecords,
		)
	}

	reference := uc.now().In(uc.location)
	if raw := strings.TrimSpace(input.ReferenceDate); raw != "" {
		parsed, err := time.ParseInLocation(valueobject.ISODateLayout, raw, uc.location)
		if err != nil {
			return nil, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidReferenceDate,
				"reference date must be in YYYY-MM-DD format",
				domainerror.ErrInvalidReferenceDate,
			)
		}
		reference = parsed
	}

	records, issues := ingest.Transactions(input.Records)
	if len(issues) > 0 {
		slog.DebugContext(ctx, "coerced malformed records",
			"records", len(records),
			"issues", len(issues),
		)
	}

	return &ComputeSummaryOutput{
		Summary: ComputeSummary(records, reference),
		Issues:  issues,
	}, nil
}
