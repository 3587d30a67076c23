package analytics

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// CostSummary содержит итоговую сводку затрат.
type CostSummary struct {
	TotalCost        float64 `json:"totalCost"`
	TotalLicenses    int     `json:"totalLicenses"`
	AvgUtilization   int     `json:"avgUtilization"`
	PotentialSavings int64   `json:"potentialSavings"`
}

// VendorUsage описывает использование по одному поставщику.
type VendorUsage struct {
	Count     int     `json:"count"`
	TotalCost float64 `json:"totalCost"`
	AvgUsage  int     `json:"avgUsage"`
}

// VendorTrend связывает поставщика с его использованием.
type VendorTrend struct {
	Vendor models.Vendor
	VendorUsage
}

// UsageTrends хранит использование по поставщикам в порядке первого появления.
// В JSON кодируется объектом, ключи которого идут в том же порядке.
type UsageTrends []VendorTrend

// Get возвращает использование поставщика.
func (t UsageTrends) Get(vendor models.Vendor) (VendorUsage, bool) {
	for _, tr := range t {
		if tr.Vendor == vendor {
			return tr.VendorUsage, true
		}
	}
	return VendorUsage{}, false
}

// MarshalJSON кодирует тренды объектом {"<vendor>": VendorUsage, ...}.
func (t UsageTrends) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tr := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(tr.Vendor))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(tr.VendorUsage)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// VendorStats описывает строку сравнения поставщиков.
type VendorStats struct {
	Vendor         models.Vendor `json:"vendor"`
	TotalLicenses  int           `json:"totalLicenses"`
	TotalCost      float64       `json:"totalCost"`
	AvgUtilization int           `json:"avgUtilization"`
}

// Opportunities содержит счётчики возможностей оптимизации.
type Opportunities struct {
	Underutilized int `json:"underutilized"`
	ExpiringSoon  int `json:"expiringSoon"`
	Inactive      int `json:"inactive"`
	HighCost      int `json:"highCost"`
}

// ExpiringLicense описывает лицензию, продление которой наступит в пределах окна.
type ExpiringLicense struct {
	License  models.License `json:"license"`
	DaysLeft int            `json:"daysLeft"`
}

// Engine вычисляет агрегаты по правилам Policy.
type Engine struct {
	policy Policy
}

// New создаёт Engine с заданной политикой.
func New(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Policy возвращает политику, с которой работает Engine.
func (e *Engine) Policy() Policy {
	return e.policy
}

// CostSummary считает общую стоимость, среднюю утилизацию и потенциальную экономию.
// Для пустого набора средняя утилизация равна 0.
func (e *Engine) CostSummary(licenses []models.License) CostSummary {
	total := decimal.Zero
	savings := decimal.Zero
	rate := decimal.NewFromFloat(e.policy.ReclaimRate)
	var usageSum int64

	for _, lic := range licenses {
		cost := decimal.NewFromFloat(lic.Cost)
		total = total.Add(cost)
		usageSum += int64(lic.Usage)
		if e.underutilized(lic) {
			savings = savings.Add(cost.Mul(rate))
		}
	}

	return CostSummary{
		TotalCost:        total.InexactFloat64(),
		TotalLicenses:    len(licenses),
		AvgUtilization:   mean(usageSum, len(licenses)),
		PotentialSavings: roundHalfUp(savings),
	}
}

// UsageTrends группирует лицензии по поставщику в порядке первого появления.
// Попадают только встреченные поставщики.
func (e *Engine) UsageTrends(licenses []models.License) UsageTrends {
	groups := groupByVendor(licenses)
	trends := make(UsageTrends, 0, len(groups))
	for _, g := range groups {
		trends = append(trends, VendorTrend{
			Vendor: g.vendor,
			VendorUsage: VendorUsage{
				Count:     g.count,
				TotalCost: g.cost.InexactFloat64(),
				AvgUsage:  mean(g.usageSum, g.count),
			},
		})
	}
	return trends
}

// VendorComparison возвращает статистику поставщиков в порядке первого появления.
func (e *Engine) VendorComparison(licenses []models.License) []VendorStats {
	groups := groupByVendor(licenses)
	result := make([]VendorStats, 0, len(groups))
	for _, g := range groups {
		result = append(result, VendorStats{
			Vendor:         g.vendor,
			TotalLicenses:  g.count,
			TotalCost:      g.cost.InexactFloat64(),
			AvgUtilization: mean(g.usageSum, g.count),
		})
	}
	return result
}

// Opportunities считает четыре независимых счётчика относительно момента now.
func (e *Engine) Opportunities(licenses []models.License, now time.Time) Opportunities {
	var res Opportunities
	highCost := decimal.NewFromFloat(e.policy.HighCostAbove)
	for _, lic := range licenses {
		if e.underutilized(lic) {
			res.Underutilized++
		}
		if e.expiringSoon(lic, now) {
			res.ExpiringSoon++
		}
		if lic.Status == models.StatusInactive {
			res.Inactive++
		}
		if decimal.NewFromFloat(lic.Cost).GreaterThan(highCost) {
			res.HighCost++
		}
	}
	return res
}

// ExpiringSoon возвращает лицензии, которые учитываются в счётчике expiringSoon.
func (e *Engine) ExpiringSoon(licenses []models.License, now time.Time) []ExpiringLicense {
	var res []ExpiringLicense
	for _, lic := range licenses {
		if !e.expiringSoon(lic, now) {
			continue
		}
		left := lic.RenewalDate.Sub(now).Hours() / 24
		res = append(res, ExpiringLicense{
			License:  lic,
			DaysLeft: int(math.Ceil(left)),
		})
	}
	return res
}

func (e *Engine) underutilized(lic models.License) bool {
	return lic.Usage < e.policy.UnderutilizedBelow
}

// expiringSoon: строго больше нуля и строго меньше окна.
func (e *Engine) expiringSoon(lic models.License, now time.Time) bool {
	left := lic.RenewalDate.Sub(now)
	return left > 0 && left < e.policy.expiringWindow()
}

type vendorGroup struct {
	vendor   models.Vendor
	count    int
	cost     decimal.Decimal
	usageSum int64
}

// groupByVendor сохраняет порядок первого появления поставщика.
func groupByVendor(licenses []models.License) []*vendorGroup {
	index := make(map[models.Vendor]*vendorGroup)
	var ordered []*vendorGroup
	for _, lic := range licenses {
		g, ok := index[lic.Vendor]
		if !ok {
			g = &vendorGroup{vendor: lic.Vendor, cost: decimal.Zero}
			index[lic.Vendor] = g
			ordered = append(ordered, g)
		}
		g.count++
		g.cost = g.cost.Add(decimal.NewFromFloat(lic.Cost))
		g.usageSum += int64(lic.Usage)
	}
	return ordered
}

func mean(sum int64, n int) int {
	if n == 0 {
		return 0
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(n)))
	return int(roundHalfUp(avg))
}

// roundHalfUp: все агрегаты неотрицательны, поэтому округление от нуля совпадает с half-up.
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
