// Package analytics загружает текущий набор лицензий и чек-лист аудита
// из хранилища и считает по ним агрегаты. Агрегаты не кэшируются:
// каждый вызов читает данные заново.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/license-dashboard/internal/analytics"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// Repository определяет методы хранилища, нужные для расчёта агрегатов.
type Repository interface {
	ListLicenses(ctx context.Context, filter models.LicenseFilter) ([]models.License, error)
	ListChecklist(ctx context.Context) ([]models.ChecklistItem, error)
	SetChecklistItem(ctx context.Context, id int, completed bool) (*models.ChecklistItem, error)
}

// Service считает агрегаты с политикой движка и часами сервиса.
type Service struct {
	repo   Repository
	engine *analytics.Engine
	log    *slog.Logger
	now    func() time.Time
}

// New создает новый экземпляр Service. Часы по умолчанию — time.Now.
func New(repo Repository, engine *analytics.Engine, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: engine,
		log:    log,
		now:    time.Now,
	}
}

// WithClock подменяет источник текущего времени.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// licenses загружает записи в порядке добавления: от него зависит порядок
// поставщиков в группировках.
func (s *Service) licenses(ctx context.Context, op string, filter models.LicenseFilter) ([]models.License, error) {
	filter.OldestFirst = true
	licenses, err := s.repo.ListLicenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return licenses, nil
}

// CostSummary считает сводку затрат. По умолчанию учитываются только
// активные лицензии, includeAll включает все записи.
func (s *Service) CostSummary(ctx context.Context, includeAll bool) (analytics.CostSummary, error) {
	const op = "analytics.CostSummary"

	filter := models.LicenseFilter{Status: string(models.StatusActive)}
	if includeAll {
		filter = models.LicenseFilter{}
	}
	licenses, err := s.licenses(ctx, op, filter)
	if err != nil {
		return analytics.CostSummary{}, err
	}
	return s.engine.CostSummary(licenses), nil
}

// UsageTrends группирует все лицензии по поставщикам.
func (s *Service) UsageTrends(ctx context.Context) (analytics.UsageTrends, error) {
	const op = "analytics.UsageTrends"

	licenses, err := s.licenses(ctx, op, models.LicenseFilter{})
	if err != nil {
		return nil, err
	}
	return s.engine.UsageTrends(licenses), nil
}

// VendorComparison возвращает статистику поставщиков в порядке первого
// появления, начиная с самой ранней лицензии.
func (s *Service) VendorComparison(ctx context.Context) ([]analytics.VendorStats, error) {
	const op = "analytics.VendorComparison"

	licenses, err := s.licenses(ctx, op, models.LicenseFilter{})
	if err != nil {
		return nil, err
	}
	return s.engine.VendorComparison(licenses), nil
}

// OptimizationOpportunities считает возможности оптимизации на текущий момент.
func (s *Service) OptimizationOpportunities(ctx context.Context) (analytics.Opportunities, error) {
	const op = "analytics.OptimizationOpportunities"

	licenses, err := s.licenses(ctx, op, models.LicenseFilter{})
	if err != nil {
		return analytics.Opportunities{}, err
	}
	return s.engine.Opportunities(licenses, s.now()), nil
}

// ExpiringSoon возвращает лицензии, продление которых наступит в пределах окна политики.
func (s *Service) ExpiringSoon(ctx context.Context) ([]analytics.ExpiringLicense, error) {
	const op = "analytics.ExpiringSoon"

	licenses, err := s.licenses(ctx, op, models.LicenseFilter{})
	if err != nil {
		return nil, err
	}
	return s.engine.ExpiringSoon(licenses, s.now()), nil
}

// ComplianceScore считает оценку готовности к аудиту по лицензиям и чек-листу.
func (s *Service) ComplianceScore(ctx context.Context) (analytics.ComplianceReport, error) {
	const op = "analytics.ComplianceScore"

	licenses, err := s.licenses(ctx, op, models.LicenseFilter{})
	if err != nil {
		return analytics.ComplianceReport{}, err
	}
	checklist, err := s.repo.ListChecklist(ctx)
	if err != nil {
		return analytics.ComplianceReport{}, fmt.Errorf("%s: %w", op, err)
	}
	return s.engine.ComplianceScore(licenses, checklist), nil
}

// Checklist возвращает пункты чек-листа аудита.
func (s *Service) Checklist(ctx context.Context) ([]models.ChecklistItem, error) {
	const op = "analytics.Checklist"

	items, err := s.repo.ListChecklist(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// SetChecklistItem отмечает пункт чек-листа.
func (s *Service) SetChecklistItem(ctx context.Context, id int, completed bool) (*models.ChecklistItem, error) {
	const op = "analytics.SetChecklistItem"

	item, err := s.repo.SetChecklistItem(ctx, id, completed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("checklist item updated", slog.Int("id", id), slog.Bool("completed", completed))
	return item, nil
}
