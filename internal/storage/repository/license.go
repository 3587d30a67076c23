package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

const licenseColumns = `id, vendor, product, quantity, cost, renewal_date,
			      status, usage, notes, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanLicense(row scanner) (*models.License, error) {
	var l models.License
	var vendor, status string
	if err := row.Scan(&l.ID, &vendor, &l.Product, &l.Quantity, &l.Cost, &l.RenewalDate,
		&status, &l.Usage, &l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Vendor = models.Vendor(vendor)
	l.Status = models.Status(status)
	return &l, nil
}

// CreateLicense вставляет новую лицензию и возвращает сохранённую запись
// с временными метками, выставленными базой.
func (s *Storage) CreateLicense(ctx context.Context, l models.License) (*models.License, error) {
	const op = "storage.CreateLicense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO licenses (id, vendor, product, quantity, cost, renewal_date, status, usage, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + licenseColumns
	row := s.DB.QueryRowContext(ctx, query,
		l.ID, string(l.Vendor), l.Product, l.Quantity, l.Cost, l.RenewalDate,
		string(l.Status), l.Usage, l.Notes)
	created, err := scanLicense(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ReadLicense возвращает лицензию по ID.
func (s *Storage) ReadLicense(ctx context.Context, id string) (*models.License, error) {
	const op = "storage.ReadLicense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + licenseColumns + ` FROM licenses WHERE id = $1`
	result, err := scanLicense(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLicense перезаписывает изменяемые поля лицензии и обновляет updated_at.
func (s *Storage) UpdateLicense(ctx context.Context, l models.License) (*models.License, error) {
	const op = "storage.UpdateLicense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE licenses
			  SET vendor = $1, product = $2, quantity = $3, cost = $4, renewal_date = $5,
			      status = $6, usage = $7, notes = $8, updated_at = now()
			  WHERE id = $9
			  RETURNING ` + licenseColumns
	row := s.DB.QueryRowContext(ctx, query,
		string(l.Vendor), l.Product, l.Quantity, l.Cost, l.RenewalDate,
		string(l.Status), l.Usage, l.Notes, l.ID)
	updated, err := scanLicense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// RemoveLicense удаляет лицензию по ID.
func (s *Storage) RemoveLicense(ctx context.Context, id string) error {
	const op = "storage.RemoveLicense"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM licenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// ClearLicenses удаляет все лицензии и возвращает число удалённых строк.
func (s *Storage) ClearLicenses(ctx context.Context) (int64, error) {
	const op = "storage.ClearLicenses"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM licenses`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListLicenses возвращает лицензии, начиная с последних созданных, или
// в порядке добавления при filter.OldestFirst. Пустые поля фильтра не
// ограничивают выборку.
func (s *Storage) ListLicenses(ctx context.Context, filter models.LicenseFilter) ([]models.License, error) {
	const op = "storage.ListLicenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var limit sql.NullInt64
	if filter.Limit > 0 {
		limit = sql.NullInt64{Int64: int64(filter.Limit), Valid: true}
	}

	order := `created_at DESC, seq DESC`
	if filter.OldestFirst {
		order = `created_at, seq`
	}

	query := `SELECT ` + licenseColumns + `
			  FROM licenses
			  WHERE ($1 = '' OR vendor = $1)
			    AND ($2 = '' OR status = $2)
			  ORDER BY ` + order + `
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, filter.Vendor, filter.Status, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]models.License, 0)
	for rows.Next() {
		item, err := scanLicense(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
