// Package analytics содержит чистые функции агрегации над набором лицензий:
// сводку затрат, тренды использования, сравнение поставщиков,
// возможности оптимизации и оценку соответствия требованиям аудита.
//
// Все пороги собраны в Policy, чтобы разные потребители не расходились в константах.
package analytics

import "time"

// Policy — настраиваемые пороги и веса эвристик.
type Policy struct {
	UnderutilizedBelow    int     `yaml:"underutilized_below" env-default:"50"`
	ReclaimRate           float64 `yaml:"reclaim_rate" env-default:"0.3"`
	ExpiringWithinDays    int     `yaml:"expiring_within_days" env-default:"30"`
	HighCostAbove         float64 `yaml:"high_cost_above" env-default:"10000"`
	LowUtilizationPenalty int     `yaml:"low_utilization_penalty" env-default:"20"`
	LargeFleetAbove       int     `yaml:"large_fleet_above" env-default:"100"`
	LargeFleetPenalty     int     `yaml:"large_fleet_penalty" env-default:"5"`
	IncompleteItemPenalty int     `yaml:"incomplete_item_penalty" env-default:"5"`
}

// DefaultPolicy возвращает пороги, с которыми работал дашборд изначально.
func DefaultPolicy() Policy {
	return Policy{
		UnderutilizedBelow:    50,
		ReclaimRate:           0.3,
		ExpiringWithinDays:    30,
		HighCostAbove:         10000,
		LowUtilizationPenalty: 20,
		LargeFleetAbove:       100,
		LargeFleetPenalty:     5,
		IncompleteItemPenalty: 5,
	}
}

func (p Policy) expiringWindow() time.Duration {
	return time.Duration(p.ExpiringWithinDays) * 24 * time.Hour
}
