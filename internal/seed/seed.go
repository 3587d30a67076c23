// Package seed заполняет хранилище демонстрационным набором лицензий.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/license-dashboard/internal/analytics"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// Store описывает методы хранилища, нужные для заполнения.
type Store interface {
	ClearLicenses(ctx context.Context) (int64, error)
	CreateLicense(ctx context.Context, l models.License) (*models.License, error)
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Samples возвращает пятнадцать демонстрационных лицензий без ID.
func Samples() []models.License {
	return []models.License{
		{Vendor: models.VendorMicrosoft, Product: "Microsoft 365 E5", Quantity: 500, Cost: 45000, RenewalDate: date("2026-03-15"), Status: models.StatusActive, Usage: 92},
		{Vendor: models.VendorSAP, Product: "SAP S/4HANA", Quantity: 200, Cost: 32000, RenewalDate: date("2026-02-25"), Status: models.StatusActive, Usage: 78},
		{Vendor: models.VendorOracle, Product: "Oracle Database Enterprise", Quantity: 150, Cost: 24000, RenewalDate: date("2026-02-10"), Status: models.StatusExpiring, Usage: 85},
		{Vendor: models.VendorSalesforce, Product: "Sales Cloud", Quantity: 300, Cost: 15000, RenewalDate: date("2026-04-20"), Status: models.StatusActive, Usage: 68},
		{Vendor: models.VendorIBM, Product: "IBM Cloud Pak", Quantity: 100, Cost: 9000, RenewalDate: date("2026-05-30"), Status: models.StatusActive, Usage: 45},
		{Vendor: models.VendorMicrosoft, Product: "Azure DevOps", Quantity: 250, Cost: 12500, RenewalDate: date("2026-03-01"), Status: models.StatusActive, Usage: 88},
		{Vendor: models.VendorOracle, Product: "Oracle Cloud Infrastructure", Quantity: 180, Cost: 18000, RenewalDate: date("2026-01-28"), Status: models.StatusExpiring, Usage: 72},
		{Vendor: models.VendorSalesforce, Product: "Service Cloud", Quantity: 200, Cost: 10000, RenewalDate: date("2026-06-15"), Status: models.StatusActive, Usage: 55},
		{Vendor: models.VendorSAP, Product: "SAP Analytics Cloud", Quantity: 120, Cost: 8000, RenewalDate: date("2026-02-05"), Status: models.StatusExpiring, Usage: 62},
		{Vendor: models.VendorIBM, Product: "IBM Watson", Quantity: 80, Cost: 6000, RenewalDate: date("2026-07-10"), Status: models.StatusActive, Usage: 38},
		{Vendor: models.VendorMicrosoft, Product: "Power BI Pro", Quantity: 350, Cost: 17500, RenewalDate: date("2026-04-01"), Status: models.StatusActive, Usage: 75},
		{Vendor: models.VendorOracle, Product: "Oracle EPM Cloud", Quantity: 100, Cost: 15000, RenewalDate: date("2026-03-20"), Status: models.StatusActive, Usage: 68},
		{Vendor: models.VendorSalesforce, Product: "Marketing Cloud", Quantity: 150, Cost: 12000, RenewalDate: date("2026-05-15"), Status: models.StatusActive, Usage: 58},
		{Vendor: models.VendorSAP, Product: "SAP SuccessFactors", Quantity: 180, Cost: 14000, RenewalDate: date("2026-04-10"), Status: models.StatusActive, Usage: 71},
		{Vendor: models.VendorIBM, Product: "IBM Cognos Analytics", Quantity: 75, Cost: 8500, RenewalDate: date("2026-06-01"), Status: models.StatusActive, Usage: 52},
	}
}

// Run очищает таблицу лицензий, сохраняет Samples и логирует сводку
// по поставщикам. Возвращает сохранённые записи.
func Run(ctx context.Context, store Store, engine *analytics.Engine, log *slog.Logger) ([]models.License, error) {
	const op = "seed.Run"

	removed, err := store.ClearLicenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("cleared existing licenses", slog.Int64("count", removed))

	samples := Samples()
	inserted := make([]models.License, 0, len(samples))
	for _, l := range samples {
		l.ID = uuid.NewString()
		created, err := store.CreateLicense(ctx, l)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, l.Product, err)
		}
		inserted = append(inserted, *created)
	}
	log.Info("inserted sample licenses", slog.Int("count", len(inserted)))

	for _, v := range engine.VendorComparison(inserted) {
		log.Info("vendor summary",
			slog.String("vendor", string(v.Vendor)),
			slog.Int("licenses", v.TotalLicenses),
			slog.Float64("cost", v.TotalCost),
		)
	}
	log.Info("total monthly cost", slog.Float64("cost", engine.CostSummary(inserted).TotalCost))
	return inserted, nil
}
