package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Employee struct {
	ID        string         `gorm:"primaryKey;size:36"`
	UserID    *string        `gorm:"size:36;index"` // opsiyonel giriş hesabı
	User      *User          `gorm:"foreignKey:UserID"`
	Name      string         `gorm:"size:100;not null"`
	RoleTitle string         `gorm:"size:100;not null"`
	Phone     *string        `gorm:"size:50"`
	Status    EmployeeStatus `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Attendance struct {
	ID         string     `gorm:"primaryKey;size:36"`
	EmployeeID string     `gorm:"size:36;index;not null"`
	Employee   Employee   `gorm:"foreignKey:EmployeeID"`
	CheckIn    time.Time  `gorm:"index;not null"`
	CheckOut   *time.Time
	Status     string     `gorm:"size:30;not null"`
	Notes      *string    `gorm:"size:500"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ShiftTemplate: "09:00"-"17:00" gibi tekrar eden vardiya tanımı
type ShiftTemplate struct {
	ID         string      `gorm:"primaryKey;size:36"`
	Name       string      `gorm:"size:100;not null"`
	StartTime  string      `gorm:"size:5;not null"`
	EndTime    string      `gorm:"size:5;not null"`
	StaffCount *int
	Status     ShiftStatus `gorm:"size:20;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ShiftLog struct {
	ID              string     `gorm:"primaryKey;size:36"`
	EmployeeID      string     `gorm:"size:36;index;not null"`
	Employee        Employee   `gorm:"foreignKey:EmployeeID"`
	StartedAt       time.Time  `gorm:"index;not null"`
	EndedAt         *time.Time
	DurationMinutes int        `gorm:"not null;default:0"`
	// [{"start": "...", "end": "..."}]
	Pauses    datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Payroll struct {
	ID         string          `gorm:"primaryKey;size:36"`
	EmployeeID string          `gorm:"size:36;index;not null"`
	Employee   Employee        `gorm:"foreignKey:EmployeeID"`
	Type       PayrollType     `gorm:"size:20;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date       time.Time       `gorm:"index;not null"`
	Note       *string         `gorm:"size:500"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Leave struct {
	ID         string      `gorm:"primaryKey;size:36"`
	EmployeeID string      `gorm:"size:36;index;not null"`
	Employee   Employee    `gorm:"foreignKey:EmployeeID"`
	FromDate   time.Time   `gorm:"not null"`
	ToDate     time.Time   `gorm:"not null"`
	Status     LeaveStatus `gorm:"size:20;not null"`
	Reason     *string     `gorm:"size:500"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
