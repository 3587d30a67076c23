// Package license содержит бизнес-логику учёта лицензий и кэширования записей.
package license

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/license-dashboard/internal/cache"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// Repository определяет методы для работы с лицензиями в хранилище.
type Repository interface {
	// CreateLicense сохраняет новую лицензию и возвращает сохранённую запись.
	CreateLicense(ctx context.Context, l models.License) (*models.License, error)
	// ReadLicense возвращает лицензию по ID.
	ReadLicense(ctx context.Context, id string) (*models.License, error)
	// UpdateLicense перезаписывает лицензию с тем же ID.
	UpdateLicense(ctx context.Context, l models.License) (*models.License, error)
	// RemoveLicense удаляет лицензию по ID.
	RemoveLicense(ctx context.Context, id string) error
	// ListLicenses возвращает лицензии по фильтру.
	ListLicenses(ctx context.Context, filter models.LicenseFilter) ([]models.License, error)
}

// Cache описывает методы для кэширования отдельных записей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует операции над лицензиями. Ошибки кэша не прерывают
// операцию, а только логируются.
type Service struct {
	repo  Repository
	store Cache
	log   *slog.Logger
	ttl   time.Duration
	newID func() string
}

// New создает новый экземпляр Service.
func New(repo Repository, store Cache, log *slog.Logger, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		store: store,
		log:   log,
		ttl:   ttl,
		newID: uuid.NewString,
	}
}

// Create проверяет запрос, проставляет значения по умолчанию
// (status=active, usage=0) и сохраняет лицензию.
func (s *Service) Create(ctx context.Context, req models.LicenseRequest) (*models.License, error) {
	const op = "license.Create"

	renewal, err := models.ParseRenewalDate(req.RenewalDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	l := models.License{
		ID:          s.newID(),
		Vendor:      models.Vendor(req.Vendor),
		Product:     req.Product,
		RenewalDate: renewal,
		Status:      models.StatusActive,
		Notes:       req.Notes,
	}
	if req.Quantity != nil {
		l.Quantity = *req.Quantity
	}
	if req.Cost != nil {
		l.Cost = *req.Cost
	}
	if req.Usage != nil {
		l.Usage = *req.Usage
	}
	if req.Status != "" {
		l.Status = models.Status(req.Status)
	}
	if err = l.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CreateLicense(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new license", slog.String("id", created.ID), slog.String("vendor", string(created.Vendor)))

	s.remember(ctx, created)
	return created, nil
}

// Read возвращает лицензию по ID, используя кэш или репозиторий.
func (s *Service) Read(ctx context.Context, id string) (*models.License, error) {
	const op = "license.Read"

	var cached models.License
	found, err := s.store.Get(ctx, cache.LicenseKey(id), &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cache.LicenseKey(id)), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	result, err := s.repo.ReadLicense(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.remember(ctx, result)
	return result, nil
}

// Update применяет к текущей записи только переданные поля, заново
// проверяет результат и сохраняет его. Последняя запись выигрывает.
func (s *Service) Update(ctx context.Context, id string, patch models.LicensePatch) (*models.License, error) {
	const op = "license.Update"

	current, err := s.repo.ReadLicense(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	merged, err := applyPatch(*current, patch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = merged.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdateLicense(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated license", slog.String("id", id))

	s.remember(ctx, updated)
	return updated, nil
}

// Remove удаляет лицензию и инвалидирует кэш.
func (s *Service) Remove(ctx context.Context, id string) error {
	const op = "license.Remove"

	if err := s.repo.RemoveLicense(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.store.Invalidate(ctx, cache.LicenseKey(id)); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cache.LicenseKey(id)), sl.Err(err))
	}
	s.log.Info("removed license", slog.String("id", id))
	return nil
}

// List возвращает лицензии по фильтру, начиная с последних созданных.
func (s *Service) List(ctx context.Context, filter models.LicenseFilter) ([]models.License, error) {
	const op = "license.List"

	licenses, err := s.repo.ListLicenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return licenses, nil
}

// ListByVendor возвращает все лицензии поставщика. Неизвестный
// поставщик даёт пустой список.
func (s *Service) ListByVendor(ctx context.Context, vendor string) ([]models.License, error) {
	const op = "license.ListByVendor"

	licenses, err := s.repo.ListLicenses(ctx, models.LicenseFilter{Vendor: vendor})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return licenses, nil
}

func (s *Service) remember(ctx context.Context, l *models.License) {
	if err := s.store.Set(ctx, cache.LicenseKey(l.ID), l, s.ttl); err != nil {
		s.log.Warn("failed to cache license", slog.String("key", cache.LicenseKey(l.ID)), sl.Err(err))
	}
}

func applyPatch(l models.License, p models.LicensePatch) (models.License, error) {
	if p.Vendor != nil {
		l.Vendor = models.Vendor(*p.Vendor)
	}
	if p.Product != nil {
		l.Product = *p.Product
	}
	if p.Quantity != nil {
		l.Quantity = *p.Quantity
	}
	if p.Cost != nil {
		l.Cost = *p.Cost
	}
	if p.RenewalDate != nil {
		renewal, err := models.ParseRenewalDate(*p.RenewalDate)
		if err != nil {
			return l, err
		}
		l.RenewalDate = renewal
	}
	if p.Status != nil {
		l.Status = models.Status(*p.Status)
	}
	if p.Usage != nil {
		l.Usage = *p.Usage
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
	return l, nil
}
