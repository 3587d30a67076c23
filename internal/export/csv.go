// Package export формирует CSV-выгрузку текущего набора записей.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// LicenseHeader — порядок колонок выгрузки лицензий.
var LicenseHeader = []string{
	"id", "vendor", "product", "quantity", "cost", "renewalDate",
	"status", "usage", "notes", "createdAt", "updatedAt",
}

// WriteCSV пишет заголовок и строки. nil превращается в пустое поле,
// вложенные объекты сериализуются в JSON; поля с запятой, кавычкой
// или переводом строки заключаются в кавычки.
func WriteCSV(w io.Writer, header []string, rows [][]any) error {
	const op = "export.WriteCSV"

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				value, err := formatValue(row[i])
				if err != nil {
					return fmt.Errorf("%s: column %s: %w", op, header[i], err)
				}
				record[i] = value
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// WriteLicenses выгружает лицензии в колонках LicenseHeader.
func WriteLicenses(w io.Writer, licenses []models.License) error {
	rows := make([][]any, 0, len(licenses))
	for _, l := range licenses {
		var notes any
		if l.Notes != "" {
			notes = l.Notes
		}
		rows = append(rows, []any{
			l.ID, string(l.Vendor), l.Product, l.Quantity, l.Cost, l.RenewalDate,
			string(l.Status), l.Usage, notes, l.CreatedAt, l.UpdatedAt,
		})
	}
	return WriteCSV(w, LicenseHeader, rows)
}

func formatValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	case time.Time:
		return val.UTC().Format(time.RFC3339), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
