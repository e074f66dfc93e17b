package dto

import (
	"time"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// ReportPeriodParams bounds a reporting query.
type ReportPeriodParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// CategoryTotalResponse is one row of the category totals report.
type CategoryTotalResponse struct {
	CategoryID   string `json:"categoryID"`
	CategoryName string `json:"categoryName"`
	TotalInCents int64  `json:"totalInCents"`
}

// CategoryTotalsResponse is the category totals report.
type CategoryTotalsResponse struct {
	From   time.Time               `json:"from"`
	To     time.Time               `json:"to"`
	Totals []CategoryTotalResponse `json:"totals"`
}

// ToCategoryTotalsResponse converts domain aggregates.
func ToCategoryTotalsResponse(from, to time.Time, totals []domain.CategoryTotal) CategoryTotalsResponse {
	rows := make([]CategoryTotalResponse, len(totals))
	for i, t := range totals {
		rows[i] = CategoryTotalResponse{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			TotalInCents: t.TotalInCents,
		}
	}
	return CategoryTotalsResponse{From: from, To: to, Totals: rows}
}
