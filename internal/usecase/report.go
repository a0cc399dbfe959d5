package usecase

import (
	"sort"
	"time"

	"villa-rental/internal/data/entity"
	"villa-rental/internal/dto/response"
	"villa-rental/pkg/apperror"
)

// monthRange maps the accepted report ranges to inclusive month bounds
func monthRange(r string) (start, end int, err error) {
	switch r {
	case "1-6":
		return 1, 6, nil
	case "7-12":
		return 7, 12, nil
	default:
		return 0, 0, apperror.Validation("Invalid range. Use '1-6' or '7-12'.", map[string]string{
			"range": "Must be one of: 1-6, 7-12",
		})
	}
}

// buildMonthlyReport names each bucket and adds the grand total. Only months
// that have payments appear, in ascending order.
func buildMonthlyReport(r string, totals []entity.MonthlyTotal) *response.MonthlyReport {
	report := &response.MonthlyReport{
		Range:  r,
		Months: make([]response.MonthlyPayment, 0, len(totals)),
	}

	for _, t := range totals {
		if t.Month < 1 || t.Month > 12 {
			continue
		}
		report.Months = append(report.Months, response.MonthlyPayment{
			Month:     t.Month,
			MonthName: time.Month(t.Month).String(),
			Total:     t.Total,
			Count:     t.Count,
		})
		report.GrandTotal += t.Total
	}

	sort.Slice(report.Months, func(i, j int) bool {
		return report.Months[i].Month < report.Months[j].Month
	})

	return report
}
