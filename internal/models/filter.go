package models

// LicenseFilter описывает параметры выборки лицензий.
// Пустые строки означают отсутствие фильтра, Limit == 0 — без ограничения.
// OldestFirst выдаёт записи в порядке добавления вместо обратного.
type LicenseFilter struct {
	Vendor      string `validate:"omitempty,oneof=Microsoft SAP Oracle Salesforce IBM Other"`
	Status      string `validate:"omitempty,oneof=active expiring inactive pending"`
	Limit       int    `validate:"gte=0"`
	Offset      int    `validate:"gte=0"`
	OldestFirst bool
}
