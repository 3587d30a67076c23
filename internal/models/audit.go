package models

import "time"

// ChecklistItem описывает пункт чек-листа готовности к аудиту.
type ChecklistItem struct {
	ID        int       `json:"id"`
	Item      string    `json:"item"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChecklistUpdate используется для приёма отметки о выполнении пункта.
type ChecklistUpdate struct {
	Completed *bool `json:"completed" validate:"required"`
}

// RenewalNotice — сообщение о скором продлении лицензии, публикуемое в RabbitMQ.
type RenewalNotice struct {
	LicenseID   string    `json:"license_id"`
	Vendor      Vendor    `json:"vendor"`
	Product     string    `json:"product"`
	RenewalDate time.Time `json:"renewal_date"`
	DaysLeft    int       `json:"days_left"`
	Cost        float64   `json:"cost"`
}
