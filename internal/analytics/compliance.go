package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

const (
	RatingExcellent = "excellent"
	RatingGood      = "good"
	RatingModerate  = "moderate"

	maxScore = 100
)

// VendorScore содержит оценку соответствия по одному поставщику.
type VendorScore struct {
	Vendor models.Vendor `json:"vendor"`
	Score  int           `json:"score"`
	Rating string        `json:"rating"`
}

// ComplianceReport содержит итоговую оценку готовности к аудиту.
type ComplianceReport struct {
	Score          int           `json:"score"`
	Vendors        []VendorScore `json:"vendors"`
	CompletedItems int           `json:"completedItems"`
	TotalItems     int           `json:"totalItems"`
}

// ComplianceScore строит эвристическую оценку 0..100 по утилизации поставщиков
// и незакрытым пунктам чек-листа. Без поставщиков среднее считается равным 100.
func (e *Engine) ComplianceScore(licenses []models.License, checklist []models.ChecklistItem) ComplianceReport {
	stats := e.VendorComparison(licenses)

	vendors := make([]VendorScore, 0, len(stats))
	sum := int64(0)
	for _, s := range stats {
		score := e.vendorScore(s)
		sum += int64(score)
		vendors = append(vendors, VendorScore{
			Vendor: s.Vendor,
			Score:  score,
			Rating: rating(score),
		})
	}

	avg := decimal.NewFromInt(maxScore)
	if len(vendors) > 0 {
		avg = decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(vendors))))
	}

	completed := 0
	for _, item := range checklist {
		if item.Completed {
			completed++
		}
	}
	incomplete := len(checklist) - completed
	penalty := decimal.NewFromInt(int64(e.policy.IncompleteItemPenalty * incomplete))

	overall := avg.Sub(penalty)
	if overall.IsNegative() {
		overall = decimal.Zero
	}

	return ComplianceReport{
		Score:          int(roundHalfUp(overall)),
		Vendors:        vendors,
		CompletedItems: completed,
		TotalItems:     len(checklist),
	}
}

func (e *Engine) vendorScore(s VendorStats) int {
	score := maxScore
	if s.AvgUtilization < e.policy.UnderutilizedBelow {
		score -= e.policy.LowUtilizationPenalty
	}
	if s.TotalLicenses > e.policy.LargeFleetAbove {
		score -= e.policy.LargeFleetPenalty
	}
	return max(score, 0)
}

func rating(score int) string {
	switch {
	case score >= 90:
		return RatingExcellent
	case score >= 80:
		return RatingGood
	default:
		return RatingModerate
	}
}
