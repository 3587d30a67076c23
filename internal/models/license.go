// Package models содержит доменные структуры, описывающие лицензию,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"errors"
	"time"
)

var (
	// ErrNotFound возвращается, когда запись с указанным идентификатором отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrValidation возвращается, когда значения полей нарушают ограничения модели.
	ErrValidation = errors.New("validation failed")
)

// FieldError описывает нарушение ограничения модели. errors.Is(err, ErrValidation)
// для него истинно, а текст пригоден для ответа клиенту.
type FieldError struct {
	Msg string
}

func (e *FieldError) Error() string { return e.Msg }

// Is сопоставляет FieldError с ErrValidation.
func (e *FieldError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &FieldError{Msg: msg}
}

// Status — состояние лицензии. Не зависит от даты продления.
type Status string

const (
	StatusActive   Status = "active"
	StatusExpiring Status = "expiring"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// Vendor — поставщик программного обеспечения.
type Vendor string

const (
	VendorMicrosoft  Vendor = "Microsoft"
	VendorSAP        Vendor = "SAP"
	VendorOracle     Vendor = "Oracle"
	VendorSalesforce Vendor = "Salesforce"
	VendorIBM        Vendor = "IBM"
	VendorOther      Vendor = "Other"
)

// Vendors перечисляет допустимых поставщиков.
var Vendors = []Vendor{VendorMicrosoft, VendorSAP, VendorOracle, VendorSalesforce, VendorIBM, VendorOther}

// Statuses перечисляет допустимые статусы.
var Statuses = []Status{StatusActive, StatusExpiring, StatusInactive, StatusPending}

// ValidVendor сообщает, входит ли значение в закрытый список поставщиков.
func ValidVendor(v Vendor) bool {
	for _, known := range Vendors {
		if v == known {
			return true
		}
	}
	return false
}

// ValidStatus сообщает, входит ли значение в закрытый список статусов.
func ValidStatus(s Status) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// License представляет одну строку учёта купленной лицензии.
// Cost — ежемесячная стоимость, Usage — процент используемых мест (0..100).
type License struct {
	ID          string    `json:"id"`
	Vendor      Vendor    `json:"vendor"`
	Product     string    `json:"product"`
	Quantity    int       `json:"quantity"`
	Cost        float64   `json:"cost"`
	RenewalDate time.Time `json:"renewalDate"`
	Status      Status    `json:"status"`
	Usage       int       `json:"usage"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate проверяет инварианты лицензии после слияния полей.
func (l License) Validate() error {
	switch {
	case !ValidVendor(l.Vendor):
		return invalid("vendor is not a known vendor")
	case l.Product == "":
		return invalid("product is required")
	case l.Quantity < 0:
		return invalid("quantity must not be negative")
	case l.Cost < 0:
		return invalid("cost must not be negative")
	case l.Usage < 0 || l.Usage > 100:
		return invalid("usage must be between 0 and 100")
	case !ValidStatus(l.Status):
		return invalid("status is not a known status")
	case l.RenewalDate.IsZero():
		return invalid("renewal date is required")
	}
	return nil
}

// LicenseRequest используется для приёма данных из JSON-запроса на создание,
// прежде чем конвертировать их в License. Дата продления приходит строкой.
type LicenseRequest struct {
	Vendor      string   `json:"vendor" validate:"required,oneof=Microsoft SAP Oracle Salesforce IBM Other"`
	Product     string   `json:"product" validate:"required"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0"`
	Cost        *float64 `json:"cost" validate:"required,gte=0"`
	RenewalDate string   `json:"renewalDate" validate:"required"`
	Status      string   `json:"status,omitempty" validate:"omitempty,oneof=active expiring inactive pending"`
	Usage       *int     `json:"usage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes       string   `json:"notes,omitempty"`
}

// LicensePatch описывает частичное обновление: nil означает «не менять».
type LicensePatch struct {
	Vendor      *string  `json:"vendor,omitempty" validate:"omitempty,oneof=Microsoft SAP Oracle Salesforce IBM Other"`
	Product     *string  `json:"product,omitempty" validate:"omitempty,min=1"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Cost        *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
	RenewalDate *string  `json:"renewalDate,omitempty"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=active expiring inactive pending"`
	Usage       *int     `json:"usage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes       *string  `json:"notes,omitempty"`
}

// ParseRenewalDate принимает дату в формате 2006-01-02 или RFC 3339.
func ParseRenewalDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, invalid("renewal date must be YYYY-MM-DD or RFC 3339")
	}
	return t, nil
}
