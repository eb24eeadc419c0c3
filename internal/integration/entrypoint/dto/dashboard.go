package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/tracker/internal/application/ingest"
	"github.com/finance-tracker/tracker/internal/domain/entity"
	"github.com/finance-tracker/tracker/internal/domain/valueobject"
)

// SummaryResponse represents the dashboard summary in API responses.
type SummaryResponse struct {
	ReferenceDate     string `json:"reference_date"`
	CurrentMonth      string `json:"current_month"`
	CurrentMonthLabel string `json:"current_month_label"`
	PreviousMonth     string `json:"previous_month"`

	TotalIncome  AmountResponse `json:"total_income"`
	TotalExpense AmountResponse `json:"total_expense"`
	Balance      AmountResponse `json:"balance"`

	CurrentMonthIncome  AmountResponse `json:"current_month_income"`
	CurrentMonthExpense AmountResponse `json:"current_month_expense"`
	CurrentMonthSaving  AmountResponse `json:"current_month_saving"`
	PreviousMonthSaving AmountResponse `json:"previous_month_saving"`

	MonthOverMonthChange string                 `json:"month_over_month_change"`
	TopExpenseCategory   CategoryTotalResponse  `json:"top_expense_category"`
	LargestSingleExpense LargestExpenseResponse `json:"largest_single_expense"`

	TransactionCount int `json:"transaction_count"`
	UndatedCount     int `json:"undated_count"`
}

// CategoryTotalResponse represents the top expense category.
type CategoryTotalResponse struct {
	Found    bool            `json:"found"`
	Label    string          `json:"label"`
	Category string          `json:"category,omitempty"`
	Total    *AmountResponse `json:"total,omitempty"`
}

// LargestExpenseResponse represents the largest single expense.
type LargestExpenseResponse struct {
	Found         bool            `json:"found"`
	Label         string          `json:"label"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	Value         *AmountResponse `json:"value,omitempty"`
	DateDisplay   string          `json:"date_display,omitempty"`
}

// SessionSummaryResponse is a session summary along with its freshness.
type SessionSummaryResponse struct {
	Summary        SummaryResponse `json:"summary"`
	TransactionSeq uint64          `json:"seq"`
	UpdatedAt      time.Time       `json:"updated_at"`
	LastError      string          `json:"last_error,omitempty"`
}

// ComputeSummaryRequest represents the request body for an ad-hoc computation.
type ComputeSummaryRequest struct {
	ReferenceDate string                  `json:"reference_date,omitempty"`
	Transactions  []RawTransactionRequest `json:"transactions"`
}

// RawTransactionRequest is a transaction record in whatever shape the client holds it.
type RawTransactionRequest struct {
	ID          string   `json:"id,omitempty"`
	Type        string   `json:"type"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Value       RawValue `json:"value"`
	Date        RawValue `json:"date"`
}

// ComputeSummaryResponse represents the response of an ad-hoc computation.
type ComputeSummaryResponse struct {
	Summary SummaryResponse `json:"summary"`
	Issues  []IssueResponse `json:"issues"`
}

// IssueResponse describes a field that was coerced during ingestion.
type IssueResponse struct {
	RecordID string `json:"record_id"`
	Field    string `json:"field"`
	Reason   string `json:"reason"`
}

// ToRaw converts the request records. Records without a usable ID get a
// fresh one so that issues can still point at them.
func (r ComputeSummaryRequest) ToRaw() []ingest.RawTransaction {
	raws := make([]ingest.RawTransaction, 0, len(r.Transactions))
	for _, t := range r.Transactions {
		id, err := uuid.Parse(t.ID)
		if err != nil {
			id = uuid.New()
		}
		raws = append(raws, ingest.RawTransaction{
			ID:          id,
			Type:        t.Type,
			Category:    t.Category,
			Description: t.Description,
			Value:       t.Value.Value(),
			Date:        t.Date.Value(),
		})
	}
	return raws
}

// ToSummaryResponse converts a domain Summary to a SummaryResponse DTO.
func ToSummaryResponse(s entity.Summary) SummaryResponse {
	response := SummaryResponse{
		ReferenceDate:        s.ReferenceDate.Format(valueobject.ISODateLayout),
		CurrentMonth:         s.CurrentMonth.String(),
		CurrentMonthLabel:    s.CurrentMonth.Label(),
		PreviousMonth:        s.PreviousMonth.String(),
		TotalIncome:          ToAmountResponse(s.TotalIncome),
		TotalExpense:         ToAmountResponse(s.TotalExpense),
		Balance:              ToAmountResponse(s.Balance),
		CurrentMonthIncome:   ToAmountResponse(s.CurrentMonthIncome),
		CurrentMonthExpense:  ToAmountResponse(s.CurrentMonthExpense),
		CurrentMonthSaving:   ToAmountResponse(s.CurrentMonthSaving),
		PreviousMonthSaving:  ToAmountResponse(s.PreviousMonthSaving),
		MonthOverMonthChange: s.MonthOverMonthChange.String(),
		TopExpenseCategory: CategoryTotalResponse{
			Found: s.TopExpenseCategory.Found,
			Label: s.TopExpenseCategory.String(),
		},
		LargestSingleExpense: LargestExpenseResponse{
			Found: s.LargestSingleExpense.Found,
			Label: s.LargestSingleExpense.String(),
		},
		TransactionCount: s.TransactionCount,
		UndatedCount:     s.UndatedCount,
	}

	if top := s.TopExpenseCategory; top.Found {
		total := ToAmountResponse(top.Total)
		response.TopExpenseCategory.Category = top.Category
		response.TopExpenseCategory.Total = &total
	}

	if largest := s.LargestSingleExpense; largest.Found {
		value := ToAmountResponse(largest.Value)
		response.LargestSingleExpense.TransactionID = largest.TransactionID.String()
		response.LargestSingleExpense.Category = largest.Category
		response.LargestSingleExpense.Description = largest.Description
		response.LargestSingleExpense.Value = &value
		response.LargestSingleExpense.DateDisplay = valueobject.FormatDate(largest.Date)
	}

	return response
}

// ToIssueResponses converts ingestion issues.
func ToIssueResponses(issues []ingest.Issue) []IssueResponse {
	responses := make([]IssueResponse, 0, len(issues))
	for _, issue := range issues {
		responses = append(responses, IssueResponse{
			RecordID: issue.RecordID,
			Field:    issue.Field,
			Reason:   issue.Reason,
		})
	}
	return responses
}
