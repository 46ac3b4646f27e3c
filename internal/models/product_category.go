package models

import "time"

type Category struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Name        string  `gorm:"size:100;not null"`
	Description *string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
