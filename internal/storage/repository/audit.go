package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// ListChecklist возвращает пункты чек-листа аудита в порядке их создания.
func (s *Storage) ListChecklist(ctx context.Context) ([]models.ChecklistItem, error) {
	const op = "storage.ListChecklist"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, item, completed, updated_at FROM audit_checklist_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]models.ChecklistItem, 0)
	for rows.Next() {
		var item models.ChecklistItem
		if err := rows.Scan(&item.ID, &item.Item, &item.Completed, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SetChecklistItem отмечает пункт чек-листа выполненным или снимает отметку.
func (s *Storage) SetChecklistItem(ctx context.Context, id int, completed bool) (*models.ChecklistItem, error) {
	const op = "storage.SetChecklistItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE audit_checklist_items
			  SET completed = $1, updated_at = now()
			  WHERE id = $2
			  RETURNING id, item, completed, updated_at`
	var item models.ChecklistItem
	err := s.DB.QueryRowContext(ctx, query, completed, id).
		Scan(&item.ID, &item.Item, &item.Completed, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}
