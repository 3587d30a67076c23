// Package scheduler периодически ищет лицензии с близким продлением
// и публикует по каждой уведомление в брокер.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/license-dashboard/internal/analytics"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// ExpiringSource возвращает лицензии, продление которых наступит скоро.
type ExpiringSource interface {
	ExpiringSoon(ctx context.Context) ([]analytics.ExpiringLicense, error)
}

// Publisher публикует сообщение с ключом маршрутизации.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service рассылает уведомления о продлениях.
type Service struct {
	source     ExpiringSource
	publisher  Publisher
	routingKey string
	interval   time.Duration
	log        *slog.Logger
}

// New создает новый экземпляр Service.
func New(source ExpiringSource, publisher Publisher, routingKey string, interval time.Duration, log *slog.Logger) *Service {
	return &Service{
		source:     source,
		publisher:  publisher,
		routingKey: routingKey,
		interval:   interval,
		log:        log,
	}
}

// Run выполняет рассылку сразу и затем каждые interval, пока не отменён ctx.
func (s *Service) Run(ctx context.Context) {
	s.PublishRenewals(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("renewal scheduler stopped")
			return
		case <-ticker.C:
			s.PublishRenewals(ctx)
		}
	}
}

// PublishRenewals публикует по одному RenewalNotice на каждую лицензию с
// близким продлением и возвращает число опубликованных уведомлений.
// Ошибки только логируются: следующий проход повторит рассылку.
func (s *Service) PublishRenewals(ctx context.Context) int {
	s.log.Info("looking for licenses renewing soon")
	expiring, err := s.source.ExpiringSoon(ctx)
	if err != nil {
		s.log.Error("failed to find expiring licenses", sl.Err(err))
		return 0
	}
	if len(expiring) == 0 {
		s.log.Info("no licenses renewing soon")
		return 0
	}
	s.log.Info("found licenses renewing soon", slog.Int("count", len(expiring)))

	published := 0
	for _, e := range expiring {
		notice := models.RenewalNotice{
			LicenseID:   e.License.ID,
			Vendor:      e.License.Vendor,
			Product:     e.License.Product,
			RenewalDate: e.License.RenewalDate,
			DaysLeft:    e.DaysLeft,
			Cost:        e.License.Cost,
		}
		if err := s.publisher.Publish(ctx, s.routingKey, notice); err != nil {
			s.log.Error("failed to publish renewal notice", slog.String("license_id", notice.LicenseID), sl.Err(err))
			continue
		}
		published++
	}
	return published
}
